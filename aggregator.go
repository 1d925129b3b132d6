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

// Package osmx streams OpenStreetMap XML extracts and aggregates tag usage
// statistics as it goes.
package osmx

import (
	"bufio"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/destel/rill"

	"m4o.io/osmx/internal/osmfile"
	"m4o.io/osmx/internal/xmlscan"
	"m4o.io/osmx/model"
)

// ErrParse indicates the input is not well-formed OSM XML.
var ErrParse = errors.New("malformed OSM XML")

// Parse is a handle on one background aggregation run. Progress delivers
// throttled element counts while the run is underway; Wait delivers the
// terminal result. A Parse runs exactly once and cannot be restarted.
type Parse struct {
	cfg parseOptions

	progress chan int64
	done     chan struct{}

	stats *TagStats
	err   error
}

// Start begins aggregating the document read from rdr in the background and
// returns immediately.
func Start(ctx context.Context, rdr io.Reader, opts ...ParseOption) *Parse {
	p := newParse(opts...)

	go p.run(ctx, rdr, nil)

	return p
}

// StartFile begins aggregating the extract at path in the background,
// transparently decompressing the archive formats extracts ship in. Errors
// opening the file surface through Wait like any other failure.
func StartFile(ctx context.Context, path string, opts ...ParseOption) *Parse {
	p := newParse(opts...)

	in, err := osmfile.Open(path)
	if err != nil {
		slog.Error("unable to open extract", "path", path, "error", err)
		p.fail(err)

		return p
	}

	go p.run(ctx, in, in)

	return p
}

func newParse(opts ...ParseOption) *Parse {
	cfg := defaultParseConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Parse{
		cfg:      cfg,
		progress: make(chan int64, 1),
		done:     make(chan struct{}),
	}
}

// Progress returns the channel progress reports are delivered on. Reports
// are monotone element counts, throttled to the configured interval; a
// report that was not consumed in time is replaced by a fresher one, so the
// worker never blocks on a slow consumer. The channel closes when the run
// terminates, after a final report carrying the total on success.
func (p *Parse) Progress() <-chan int64 {
	return p.progress
}

// Wait blocks until the run terminates and returns the aggregation, or the
// error that ended the run. Exactly one of the two is set; a failed or
// cancelled run yields no partial statistics. Wait may be called any number
// of times.
func (p *Parse) Wait() (*TagStats, error) {
	<-p.done

	return p.stats, p.err
}

// run drives the scanner through the pipeline: a producer goroutine feeds
// elements into a Try channel and the fold below consumes it in order, one
// element at a time, so the accumulators are only ever touched here.
func (p *Parse) run(ctx context.Context, rdr io.Reader, closer io.Closer) {
	if closer != nil {
		defer closer.Close()
	}

	buffered := bufio.NewReaderSize(rdr, p.cfg.readBufferSize)

	elements := make(chan rill.Try[model.Element])
	go produce(ctx, buffered, elements)

	stats := newTagStats()

	last := time.Now()

	err := rill.ForEach(elements, 1, func(element model.Element) error {
		stats.observe(element)

		if time.Since(last) >= p.cfg.progressInterval {
			p.offer(stats.elements)
			last = time.Now()
		}

		return nil
	})
	if err != nil {
		p.fail(classify(err))

		return
	}

	p.offer(stats.elements)

	p.stats = stats
	close(p.progress)
	close(p.done)
}

// produce feeds scanned elements into the pipeline, ending it with the
// terminal error when the scan fails.
func produce(ctx context.Context, rdr io.Reader, out chan<- rill.Try[model.Element]) {
	defer close(out)

	for element, err := range xmlscan.Elements(ctx, rdr) {
		if err != nil {
			out <- rill.Try[model.Element]{Error: err}

			return
		}

		out <- rill.Try[model.Element]{Value: element}
	}
}

// offer publishes a progress snapshot without blocking the worker. A
// pending snapshot the consumer has not taken yet is replaced by the
// fresher one.
func (p *Parse) offer(n int64) {
	select {
	case p.progress <- n:
	default:
		select {
		case <-p.progress:
		default:
		}

		p.progress <- n
	}
}

// fail records the terminal error. The progress channel closes without a
// final report; failed runs advertise no totals.
func (p *Parse) fail(err error) {
	p.err = err
	close(p.progress)
	close(p.done)
}

// classify maps scan failures onto the package error taxonomy. Malformed
// documents wrap ErrParse; IO and context errors pass through untouched.
func classify(err error) error {
	var syntax *xml.SyntaxError
	if errors.As(err, &syntax) {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}

	return err
}
