// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command bwtmtf applies the Burrows-Wheeler Transform and then Move-To-Front
// coding to stdin.
//
// The mode argument "-" encodes and "+" decodes. The output of
//
//	bwtmtf -
//
// is identical to that of
//
//	burrowswheeler - | movetofront -
package main

import (
	"os"

	"github.com/dsnet/bwtmtf/internal/tool/cli"
)

func main() {
	os.Exit(cli.Run(cli.BWTMTF, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
