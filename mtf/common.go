// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package mtf implements Move-To-Front coding over bytes.
//
// The encoder replaces every byte with its position in a list of all 256
// symbols ordered by recency of use, and then moves that byte to the front of
// the list. Runs of a repeated byte become runs of zeros, and bytes that were
// recently seen become small indexes. The list starts in ascending byte
// order at the beginning of every stream.
//
// The encoded stream holds one 8-bit index per input byte, so both
// directions preserve the length of the data.
package mtf

import (
	"fmt"

	"github.com/dsnet/bwtmtf/internal/errors"
)

const chunkSize = 1 << 12 // Size of the Writer's scratch buffer

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "mtf", Msg: fmt.Sprintf(f, a...)}
}

var errClosed = errorf(errors.Closed, "")
