// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command circularsuffix prints the sorted cyclic rotations of its argument.
//
// The first line reports the length of the text. Each following line holds the
// offset of a rotation in the text and the rotation itself, in sorted order.
package main

import (
	"os"

	"github.com/dsnet/bwtmtf/internal/tool/cli"
)

func main() {
	os.Exit(cli.Run(cli.CircularSuffix, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
