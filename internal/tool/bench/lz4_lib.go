// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_lz4_lib

package bench

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

var lz4Levels = []lz4.CompressionLevel{
	lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4,
	lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

func init() {
	RegisterBackend("lz4",
		func(w io.Writer, lvl int) io.WriteCloser {
			if lvl < 0 {
				lvl = 0
			}
			if lvl >= len(lz4Levels) {
				lvl = len(lz4Levels) - 1
			}
			zw := lz4.NewWriter(w)
			if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[lvl])); err != nil {
				panic(err)
			}
			return zw
		},
		func(r io.Reader) io.ReadCloser {
			return io.NopCloser(lz4.NewReader(r))
		})
}
