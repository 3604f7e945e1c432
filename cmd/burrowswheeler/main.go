// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command burrowswheeler applies the Burrows-Wheeler Transform to stdin.
//
// The mode argument "-" transforms and "+" inverts the transform.
package main

import (
	"os"

	"github.com/dsnet/bwtmtf/internal/tool/cli"
)

func main() {
	os.Exit(cli.Run(cli.BurrowsWheeler, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
