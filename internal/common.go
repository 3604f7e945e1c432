// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of tables and flags shared by the
// transform packages.
//
// For performance reasons, the algorithms in this module lack strong error
// checking past their public entry points and require that the caller ensure
// that strict invariants are kept.
package internal

// AlphabetSize is the number of distinct symbols every stage operates over.
const AlphabetSize = 256

// IdentityLUT returns the input key itself.
var IdentityLUT [AlphabetSize]byte

func init() {
	for i := range IdentityLUT {
		IdentityLUT[i] = uint8(i)
	}
}
