// Copyright 2017 the original author or authors.
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
	"io"
	"os"

	humanize "github.com/dustin/go-humanize"
	pb "gopkg.in/cheggaaa/pb.v1"
)

// InputProgress is an input file with an associated ProgressBar rendered on
// stderr. Closing this instance closes the delegate as well as clearing the
// terminal line of progress output.
type InputProgress struct {
	r   io.ReadCloser
	bar *pb.ProgressBar
}

// WrapInputFile creates an instance of os.File with an associated
// ProgressBar that tracks the bytes read relative to the total. Stdin
// cannot be sized and is passed through without a bar.
func WrapInputFile(f *os.File) (*InputProgress, error) {
	if f == os.Stdin {
		// don't bother wrapping stdin
		return &InputProgress{r: os.Stdin}, nil
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	total := int(fi.Size())

	bar := pb.New(total).SetUnits(pb.U_BYTES_DEC).SetWidth(79)
	bar.Output = os.Stderr
	bar.Start()

	return &InputProgress{
		r:   bar.NewProxyReader(f),
		bar: bar,
	}, nil
}

// SetElements prefixes the bar with the running count of scanned elements.
func (ip *InputProgress) SetElements(n int64) {
	if ip.bar == nil {
		return
	}

	ip.bar.Prefix(humanize.Comma(n) + " elements")
}

// Read implements io.Reader.Read by simple delegation.
func (ip *InputProgress) Read(p []byte) (int, error) {
	return ip.r.Read(p)
}

// Close implements io.Closer.Close by closing the delegate instance of
// ReadCloser as well as clearing the terminal line of progress output.
func (ip *InputProgress) Close() error {
	if ip.bar != nil {
		// make sure newline is not printed by Finish()
		ip.bar.Output = nil
		ip.bar.NotPrint = true

		ip.bar.Finish()

		fmt.Fprintf(os.Stderr, "\033[2K\r") // clear status bar
	}

	return ip.r.Close()
}
