// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package suffix implements a circular suffix array.
//
// A circular suffix array orders all n cyclic rotations of a text of length n.
// Entry i of the array holds the offset at which the i-th smallest rotation
// begins. Rotations are compared as full n-byte strings that wrap around the
// end of the text, so no sentinel symbol needs to be appended to the input.
package suffix

// The rotations are ordered with a 3-way radix quicksort that addresses the
// d-th byte of a rotation through its (offset, depth) pair and never
// materializes a rotation. A partition at depth d is split into the rotations
// whose d-th byte is less than, equal to, or greater than the pivot byte.
// The lesser and greater partitions are sorted at the same depth, while the
// equal partition is sorted at depth d+1. Once d reaches n, every byte of the
// equal rotations has been compared and the partition is done.
//
// The sort takes O(n log n) byte comparisons on average. Inputs made of long
// repeated runs degrade towards O(n^2) since every shared byte of a run is
// inspected once per depth.
//
// References:
//
//	https://algs4.cs.princeton.edu/51radix/Quick3string.java.html
//	https://www.cs.princeton.edu/~rs/strings/paper.pdf

import (
	"fmt"
	"io"

	"github.com/dsnet/bwtmtf/internal"
	"github.com/dsnet/bwtmtf/internal/errors"
)

// Partitions of this size or smaller are ordered with insertion sort.
const insertionCutoff = 15

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "suffix", Msg: fmt.Sprintf(f, a...)}
}

// Array is the circular suffix array of a text.
//
// The Array retains a reference to the text, which must not be modified for
// as long as the Array is in use.
type Array struct {
	text []byte
	sa   []int
}

// New computes the circular suffix array of text.
// A nil text is rejected, while an empty text produces an empty Array.
func New(text []byte) (*Array, error) {
	if text == nil {
		return nil, errorf(errors.Invalid, "nil text")
	}
	sa := make([]int, len(text))
	ComputeSA(text, sa)
	return &Array{text: text, sa: sa}, nil
}

// Len reports the length of the text, which is also the number of rotations.
func (a *Array) Len() int { return len(a.sa) }

// Index returns the offset into the text of the i-th sorted rotation.
func (a *Array) Index(i int) (int, error) {
	if i < 0 || i >= len(a.sa) {
		return 0, errorf(errors.Invalid, "index %d out of range [0, %d)", i, len(a.sa))
	}
	return a.sa[i], nil
}

// Rotation returns a copy of the i-th sorted rotation.
func (a *Array) Rotation(i int) ([]byte, error) {
	off, err := a.Index(i)
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, len(a.text))
	b = append(b, a.text[off:]...)
	return append(b, a.text[:off]...), nil
}

// WriteTo writes the sorted rotation table to w. Each row is written on its
// own line as the offset of the rotation followed by the rotation.
func (a *Array) WriteTo(w io.Writer) (int64, error) {
	var cnt int64
	for _, off := range a.sa {
		n, err := fmt.Fprintf(w, "%d %s%s\n", off, a.text[off:], a.text[:off])
		cnt += int64(n)
		if err != nil {
			return cnt, err
		}
	}
	return cnt, nil
}

// ComputeSA computes the circular suffix array of T and places the result
// in SA. Both T and SA must be the same length.
func ComputeSA(T []byte, SA []int) {
	if len(SA) != len(T) {
		panic("mismatching sizes")
	}
	for i := range SA {
		SA[i] = i
	}
	s := sorter{text: T, sa: SA}
	s.sort(0, len(SA)-1, 0)

	if internal.Debug && !isSorted(T, SA) {
		panic("rotations are not sorted")
	}
}

type sorter struct {
	text []byte
	sa   []int
}

// charAt returns the d-th byte of the rotation referenced by sa[i], or -1 if
// all bytes of the rotation have been consumed.
func (s *sorter) charAt(i, d int) int {
	n := len(s.text)
	if d >= n {
		return -1
	}
	j := s.sa[i] + d
	if j >= n {
		j -= n
	}
	return int(s.text[j])
}

func (s *sorter) swap(i, j int) {
	s.sa[i], s.sa[j] = s.sa[j], s.sa[i]
}

// sort orders sa[lo:hi+1], whose rotations share their first d bytes.
func (s *sorter) sort(lo, hi, d int) {
	for hi-lo > insertionCutoff {
		s.swap(lo, lo+(hi-lo)/2) // Middle pivot avoids sorted-input worst case

		lt, gt := lo, hi
		v := s.charAt(lo, d)
		for i := lo + 1; i <= gt; {
			switch t := s.charAt(i, d); {
			case t < v:
				s.swap(lt, i)
				lt++
				i++
			case t > v:
				s.swap(i, gt)
				gt--
			default:
				i++
			}
		}

		// sa[lo:lt] < v == sa[lt:gt+1] < sa[gt+1:hi+1]
		s.sort(lo, lt-1, d)
		s.sort(gt+1, hi, d)
		if v < 0 {
			return
		}
		lo, hi, d = lt, gt, d+1
	}
	s.insertion(lo, hi, d)
}

func (s *sorter) insertion(lo, hi, d int) {
	for i := lo + 1; i <= hi; i++ {
		for j := i; j > lo && less(s.text, s.sa[j], s.sa[j-1], d); j-- {
			s.swap(j, j-1)
		}
	}
}

// less reports whether the rotation at offset a is smaller than the rotation
// at offset b, given that their first d bytes are known to be equal.
func less(text []byte, a, b, d int) bool {
	n := len(text)
	if d >= n {
		return false
	}
	i, j := (a+d)%n, (b+d)%n
	for ; d < n; d++ {
		if ci, cj := text[i], text[j]; ci != cj {
			return ci < cj
		}
		if i++; i == n {
			i = 0
		}
		if j++; j == n {
			j = 0
		}
	}
	return false
}

// isSorted reports whether sa is a permutation of [0, n) listing the
// rotations of text in non-decreasing order.
func isSorted(text []byte, sa []int) bool {
	seen := make([]bool, len(sa))
	for i, off := range sa {
		if off < 0 || off >= len(sa) || seen[off] {
			return false
		}
		seen[off] = true
		if i > 0 && less(text, off, sa[i-1], 0) {
			return false
		}
	}
	return true
}
