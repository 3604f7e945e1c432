// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mtf

import (
	"bytes"

	"github.com/dsnet/bwtmtf/internal"
	"github.com/dsnet/bwtmtf/internal/errors"
)

// List is the recency-ordered list of all byte values.
// The zero value is a list in ascending byte order.
type List struct {
	syms  [internal.AlphabetSize]byte
	ready bool
}

// Reset restores the list to ascending byte order.
func (l *List) Reset() {
	l.syms = internal.IdentityLUT
	l.ready = true
}

// Encode returns the current position of c and moves c to the front.
func (l *List) Encode(c byte) uint8 {
	if !l.ready {
		l.Reset()
	}
	idx := bytes.IndexByte(l.syms[:], c)
	copy(l.syms[1:], l.syms[:idx])
	l.syms[0] = c
	return uint8(idx)
}

// Decode returns the symbol at position idx and moves it to the front.
func (l *List) Decode(idx uint8) byte {
	if !l.ready {
		l.Reset()
	}
	c := l.syms[idx]
	copy(l.syms[1:], l.syms[:idx])
	l.syms[0] = c
	return c
}

// Front returns the most recently used symbol.
func (l *List) Front() byte {
	if !l.ready {
		return 0
	}
	return l.syms[0]
}

// Symbols returns a copy of the list, most recently used symbol first.
func (l *List) Symbols() [internal.AlphabetSize]byte {
	if !l.ready {
		return internal.IdentityLUT
	}
	return l.syms
}

// Encode replaces every byte of buf with its move-to-front index.
func Encode(buf []byte) {
	var l List
	for i, c := range buf {
		buf[i] = l.Encode(c)
	}
}

// Decode replaces every move-to-front index in buf with its byte.
func Decode(buf []byte) {
	var l List
	for i, idx := range buf {
		buf[i] = l.Decode(idx)
	}
}

// DecodeIndexes decodes a sequence of indexes that were not necessarily
// produced as bytes. Every index must be within [0, 256); the sequence is
// validated entirely before any symbol is decoded.
func DecodeIndexes(idxs []int) ([]byte, error) {
	for i, idx := range idxs {
		if idx < 0 || idx >= internal.AlphabetSize {
			return nil, errorf(errors.Invalid, "index %d at position %d out of range [0, %d)", idx, i, internal.AlphabetSize)
		}
	}

	var l List
	out := make([]byte, len(idxs))
	for i, idx := range idxs {
		out[i] = l.Decode(uint8(idx))
	}
	return out, nil
}
