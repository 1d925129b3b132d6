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

// Package osmfile opens OpenStreetMap extracts, transparently decompressing
// the archive formats extracts commonly ship in.
package osmfile

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

// Leading magic bytes of the supported archive formats.
var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{'B', 'Z', 'h'}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic   = []byte{0x04, 0x22, 0x4d, 0x18}
)

// NewReader wraps rdr with the decompressor matching its leading magic
// bytes. Input without a recognized magic is passed through untouched.
// Closing the returned reader releases decompressor resources but not rdr.
func NewReader(rdr io.Reader) (io.ReadCloser, error) {
	buffered := bufio.NewReader(rdr)

	magic, err := buffered.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}

	var factory func(rdr io.Reader) (io.Reader, error)

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		factory = func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		}
	case bytes.HasPrefix(magic, bzip2Magic):
		factory = func(r io.Reader) (io.Reader, error) {
			return bzip2.NewReader(r), nil
		}
	case bytes.HasPrefix(magic, xzMagic):
		factory = func(r io.Reader) (io.Reader, error) {
			return xz.NewReader(r)
		}
	case bytes.HasPrefix(magic, zstdMagic):
		factory = func(r io.Reader) (io.Reader, error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}

			return zr.IOReadCloser(), nil
		}
	case bytes.HasPrefix(magic, lz4Magic):
		factory = func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		}
	default:
		return io.NopCloser(buffered), nil
	}

	unpacked, err := factory(buffered)
	if err != nil {
		return nil, fmt.Errorf("decompressor factory error: %w", err)
	}

	if closer, ok := unpacked.(io.ReadCloser); ok {
		return closer, nil
	}

	return io.NopCloser(unpacked), nil
}

// Open opens the extract at path via NewReader. Closing the returned reader
// closes the underlying file as well.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	rdr, err := NewReader(f)
	if err != nil {
		_ = f.Close()

		return nil, err
	}

	return &extract{rdr: rdr, file: f}, nil
}

// extract pairs a decompressing reader with the file underneath it.
type extract struct {
	rdr  io.ReadCloser
	file *os.File
}

func (e *extract) Read(p []byte) (int, error) {
	return e.rdr.Read(p)
}

func (e *extract) Close() error {
	err := e.rdr.Close()

	if cerr := e.file.Close(); err == nil {
		err = cerr
	}

	return err
}
