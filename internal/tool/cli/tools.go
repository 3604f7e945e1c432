// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package cli

import (
	"fmt"
	"io"

	"github.com/dsnet/bwtmtf"
	"github.com/dsnet/bwtmtf/bwt"
	"github.com/dsnet/bwtmtf/mtf"
	"github.com/dsnet/bwtmtf/suffix"
)

var (
	BurrowsWheeler = ModeTool("burrowswheeler",
		func(r io.Reader, w io.Writer) error {
			bw, err := bwt.NewWriter(w, nil)
			if err != nil {
				return err
			}
			return copyClose(bw, r, bw.Close)
		},
		func(r io.Reader, w io.Writer) error {
			br, err := bwt.NewReader(r, nil)
			if err != nil {
				return err
			}
			return copyClose(w, br, br.Close)
		})

	MoveToFront = ModeTool("movetofront",
		func(r io.Reader, w io.Writer) error {
			mw := mtf.NewWriter(w)
			return copyClose(mw, r, mw.Close)
		},
		func(r io.Reader, w io.Writer) error {
			mr := mtf.NewReader(r)
			return copyClose(w, mr, mr.Close)
		})

	BWTMTF = ModeTool("bwtmtf",
		func(r io.Reader, w io.Writer) error {
			zw, err := bwtmtf.NewWriter(w, nil)
			if err != nil {
				return err
			}
			return copyClose(zw, r, zw.Close)
		},
		func(r io.Reader, w io.Writer) error {
			zr, err := bwtmtf.NewReader(r, nil)
			if err != nil {
				return err
			}
			return copyClose(w, zr, zr.Close)
		})

	CircularSuffix = Tool{
		Name:  "circularsuffix",
		Usage: "text",
		NArgs: 1,
		Main: func(env *Env) error {
			a, err := suffix.New([]byte(env.Args[0]))
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(env.Stdout, "length: %d\n", a.Len()); err != nil {
				return err
			}
			_, err = a.WriteTo(env.Stdout)
			return err
		},
	}
)

// copyClose copies r to w and then calls done, reporting the first error.
func copyClose(w io.Writer, r io.Reader, done func() error) error {
	_, err := io.Copy(w, r)
	if cerr := done(); err == nil {
		err = cerr
	}
	return err
}
