// Copyright 2025-26 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package osmx

import (
	"time"
)

const (
	// DefaultProgressInterval is the default minimum delay between progress
	// reports.
	DefaultProgressInterval = 500 * time.Millisecond

	// DefaultReadBufferSize is the default buffer size for reading the
	// document stream.
	DefaultReadBufferSize = 1024 * 1024
)

// parseOptions provides optional configuration parameters for parse runs.
type parseOptions struct {
	progressInterval time.Duration // minimum delay between progress reports
	readBufferSize   int           // buffer size for the document stream
}

// ParseOption configures how we set up a parse run.
type ParseOption func(*parseOptions)

// WithProgressInterval lets you set the minimum delay between progress
// reports. A zero interval reports after every element.
func WithProgressInterval(d time.Duration) ParseOption {
	return func(o *parseOptions) {
		o.progressInterval = d
	}
}

// WithReadBufferSize lets you set the buffer size for reading the document
// stream.
func WithReadBufferSize(s int) ParseOption {
	return func(o *parseOptions) {
		o.readBufferSize = s
	}
}

// defaultParseConfig provides a default configuration for parse runs.
var defaultParseConfig = parseOptions{
	progressInterval: DefaultProgressInterval,
	readBufferSize:   DefaultReadBufferSize,
}
