// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwtmtf is a fuzz harness for the transform pipeline. The Fuzz
// function follows the go-fuzz convention and is also driven by the native
// fuzz target in the tests.
package bwtmtf

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/dsnet/bwtmtf"
	"github.com/dsnet/bwtmtf/bwt"
	"github.com/dsnet/bwtmtf/mtf"
)

// maxSize bounds the input to the sorter, which is quadratic on long runs.
const maxSize = 1 << 14

func Fuzz(data []byte) int {
	if len(data) > maxSize {
		return -1
	}
	ok := testDecoders(data)
	testEncoders(data)
	if ok {
		return 1 // Favor valid inputs
	}
	return 0
}

// testDecoders tests that the input is handled identically by the streaming
// reader and by the whole-buffer decoder. Both must either agree on the
// output or report a corrupted stream.
func testDecoders(data []byte) bool {
	zr, err := bwtmtf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		panic(err)
	}
	sb, serr := io.ReadAll(zr)
	bb, berr := bwtmtf.Decompress(data)

	switch {
	case serr == nil && berr == nil:
		if !bytes.Equal(sb, bb) {
			panic("mismatching bytes")
		}
		if err := zr.Close(); err != nil {
			panic(err)
		}
		return true
	case serr != nil && berr != nil:
		for _, err := range []error{serr, berr} {
			if zerr, ok := err.(bwtmtf.Error); !ok || !zerr.IsCorrupted() {
				panic(err)
			}
		}
		return false
	default:
		panic("decoders disagree")
	}
}

// testEncoders tests that the pipeline output equals the move-to-front coding
// of the transform stream, and that it decodes back to the input.
func testEncoders(data []byte) {
	out, err := bwtmtf.Compress(data)
	if err != nil {
		panic(err)
	}

	var ptr int
	var blk []byte
	if len(data) > 0 {
		if ptr, blk, err = bwt.Transform(data); err != nil {
			panic(err)
		}
	}
	want := binary.BigEndian.AppendUint32(nil, uint32(ptr))
	want = append(want, blk...)
	mtf.Encode(want)
	if !bytes.Equal(out, want) {
		panic("mismatching pipeline output")
	}

	got, err := bwtmtf.Decompress(out)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(got, data) {
		panic("mismatching bytes")
	}
}
