// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwt implements the Burrows-Wheeler Transform.
//
// The transform permutes a block of bytes so that bytes that occur in similar
// contexts are clustered together, which makes the block more amenable to
// move-to-front coding and entropy coding. The transform is reversible given
// the transformed block and an origin pointer.
//
// The stream format produced by Writer and consumed by Reader holds a single
// block: the origin pointer as a 32-bit big-endian integer followed by the
// transformed bytes. An empty input is represented by an empty stream.
package bwt

import (
	"fmt"

	"github.com/dsnet/bwtmtf/internal/errors"
)

const (
	hdrSize = 4 // Size of the origin pointer

	// MaxBlockSize is the size of the largest block whose origin pointer
	// still fits in the stream header.
	MaxBlockSize = 1<<31 - 1
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "bwt", Msg: fmt.Sprintf(f, a...)}
}

var errClosed = errorf(errors.Closed, "")

type WriterConfig struct {
	// MaxBlockSize is the largest number of bytes the Writer accepts.
	// The zero value means MaxBlockSize.
	MaxBlockSize int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

type ReaderConfig struct {
	// MaxBlockSize is the largest block the Reader decodes. Larger blocks
	// are reported as corrupted without being read in full.
	// The zero value means MaxBlockSize.
	MaxBlockSize int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

func blockSize(n int) (int, error) {
	switch {
	case n == 0:
		return MaxBlockSize, nil
	case n < 0 || n > MaxBlockSize:
		return 0, errorf(errors.Invalid, "block size %d out of range [1, %d]", n, MaxBlockSize)
	}
	return n, nil
}
