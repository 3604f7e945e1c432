// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_xz_lib

package bench

import (
	"io"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// The xz and lzma encoders do not support compression levels.
func init() {
	RegisterBackend("xz",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := xz.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		},
		func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(r)
			if err != nil {
				return errReadCloser{err}
			}
			return io.NopCloser(zr)
		})

	RegisterBackend("lzma",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := lzma.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		},
		func(r io.Reader) io.ReadCloser {
			zr, err := lzma.NewReader(r)
			if err != nil {
				return errReadCloser{err}
			}
			return io.NopCloser(zr)
		})
}

// errReadCloser reports an error raised while reading the stream header.
type errReadCloser struct{ err error }

func (e errReadCloser) Read([]byte) (int, error) { return 0, e.err }
func (e errReadCloser) Close() error             { return e.err }
