// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwtmtf is a collection of reversible text transforms used to
// precondition data for entropy coding.
//
// The transforms live in sub-packages: suffix sorts the cyclic rotations of
// a block, bwt applies the Burrows-Wheeler Transform and its inverse, and mtf
// applies Move-To-Front coding. This package chains the BWT and MTF stages.
package bwtmtf

// Error is the wrapper type for errors specific to this module.
type Error interface {
	error
	BWTMTFError()

	// IsInvalid reports whether the caller passed an invalid argument, such
	// as a nil or empty block.
	IsInvalid() bool

	// IsCorrupted reports whether the input stream was corrupted.
	IsCorrupted() bool
}
