// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

// The forward transform sorts all cyclic rotations of the block using the
// circular suffix array and emits the last column of the sorted rotation
// table, along with the row of the unrotated block (the origin pointer).
//
// The inverse transform never rebuilds the suffix array. The first column of
// the sorted table is the transformed block in sorted order, which is obtained
// with a counting sort over the 256 symbols. Since the sort is stable, the
// k-th occurrence of a symbol in the first column and the k-th occurrence in
// the last column belong to the same rotation. This gives, for every row, the
// row of the rotation that is shifted left by one, which is followed n times
// starting from the origin pointer to recover the block.
//
// References:
//
//	https://www.cs.jhu.edu/~langmea/resources/bwt_fm.pdf
//	https://algs4.cs.princeton.edu/55compression/
//	https://www.hpl.hp.com/techreports/Compaq-DEC/SRC-RR-124.pdf

import (
	"github.com/dsnet/bwtmtf/internal"
	"github.com/dsnet/bwtmtf/internal/errors"
	"github.com/dsnet/bwtmtf/suffix"
)

// Encode applies the forward transform to buf in place and returns the
// origin pointer. The block must contain at least one byte.
func Encode(buf []byte) (ptr int, err error) {
	if err := checkBlock(buf); err != nil {
		return -1, err
	}

	t := make([]byte, len(buf))
	sa := make([]int, len(buf))
	copy(t, buf)
	suffix.ComputeSA(t, sa)

	for i, idx := range sa {
		if idx == 0 {
			ptr = i
			idx = len(t)
		}
		buf[i] = t[idx-1]
	}
	return ptr, nil
}

// Decode applies the inverse transform to buf in place using the origin
// pointer returned by Encode.
func Decode(buf []byte, ptr int) error {
	if err := checkBlock(buf); err != nil {
		return err
	}
	if ptr < 0 || ptr >= len(buf) {
		return errorf(errors.Corrupted, "origin pointer %d out of range [0, %d)", ptr, len(buf))
	}

	// Compute the starting row of each symbol in the first column.
	var c [internal.AlphabetSize + 1]int
	for _, v := range buf {
		c[int(v)+1]++
	}
	for i := 0; i < internal.AlphabetSize; i++ {
		c[i+1] += c[i]
	}

	next := make([]int, len(buf))
	sorted := make([]byte, len(buf))
	for i, v := range buf {
		sorted[c[v]] = v
		next[c[v]] = i
		c[v]++
	}

	for i, row := 0, ptr; i < len(buf); i++ {
		buf[i] = sorted[row]
		row = next[row]
	}
	return nil
}

// Transform is like Encode, but leaves text untouched and returns the
// transformed block in a new slice.
func Transform(text []byte) (ptr int, out []byte, err error) {
	if err := checkBlock(text); err != nil {
		return -1, nil, err
	}
	out = append([]byte(nil), text...)
	ptr, err = Encode(out)
	return ptr, out, err
}

// InverseTransform is like Decode, but leaves buf untouched and returns the
// original block in a new slice.
func InverseTransform(ptr int, buf []byte) ([]byte, error) {
	if err := checkBlock(buf); err != nil {
		return nil, err
	}
	out := append([]byte(nil), buf...)
	if err := Decode(out, ptr); err != nil {
		return nil, err
	}
	return out, nil
}

func checkBlock(buf []byte) error {
	switch {
	case buf == nil:
		return errorf(errors.Invalid, "nil block")
	case len(buf) == 0:
		return errorf(errors.Invalid, "empty block")
	case len(buf) > MaxBlockSize:
		return errorf(errors.Invalid, "block size %d exceeds %d", len(buf), MaxBlockSize)
	}
	return nil
}
