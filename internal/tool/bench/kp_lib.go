// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_kp_lib

package bench

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

func init() {
	RegisterBackend("kflate",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		},
		func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		})

	RegisterBackend("zstd",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := zstd.NewWriter(w,
				zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(lvl)),
				zstd.WithEncoderConcurrency(1))
			if err != nil {
				panic(err)
			}
			return zw
		},
		func(r io.Reader) io.ReadCloser {
			zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
			if err != nil {
				panic(err)
			}
			return zr.IOReadCloser()
		})

	// S2 has no numeric levels; high levels select the slower modes.
	RegisterBackend("s2",
		func(w io.Writer, lvl int) io.WriteCloser {
			var opts []s2.WriterOption
			switch {
			case lvl >= 9:
				opts = append(opts, s2.WriterBestCompression())
			case lvl >= 6:
				opts = append(opts, s2.WriterBetterCompression())
			}
			return s2.NewWriter(w, opts...)
		},
		func(r io.Reader) io.ReadCloser {
			return io.NopCloser(s2.NewReader(r))
		})
}
