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

package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"m4o.io/osmx/model"
)

// -- *model.Kind Value
type kindValue struct {
	value **model.Kind
}

// NewKindValue creates a cobra Value object for an optional *model.Kind.
// A nil value means no kind was named.
func NewKindValue(def *model.Kind, p **model.Kind) pflag.Value {
	kv := &kindValue{value: p}
	*kv.value = def

	return kv
}

func (k *kindValue) Set(val string) error {
	kind, ok := model.ParseKind(val)
	if !ok {
		return fmt.Errorf("unknown kind %q", val)
	}

	*k.value = &kind

	return nil
}

func (k *kindValue) Type() string {
	return "kind"
}

func (k *kindValue) String() string {
	if *k.value == nil {
		return ""
	}

	return (*k.value).String()
}
