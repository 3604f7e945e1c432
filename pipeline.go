// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwtmtf

import (
	"bytes"
	"io"

	"github.com/dsnet/bwtmtf/bwt"
	"github.com/dsnet/bwtmtf/mtf"
)

type WriterConfig struct {
	// MaxBlockSize is the largest input accepted by the Writer.
	// The zero value means bwt.MaxBlockSize.
	MaxBlockSize int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

type ReaderConfig struct {
	// MaxBlockSize is the largest block the Reader decodes.
	// The zero value means bwt.MaxBlockSize.
	MaxBlockSize int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

// Writer applies the Burrows-Wheeler Transform followed by Move-To-Front
// coding. The output is only written on Close.
type Writer struct {
	bw *bwt.Writer
	mw *mtf.Writer
}

func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	var bconf bwt.WriterConfig
	if conf != nil {
		bconf.MaxBlockSize = conf.MaxBlockSize
	}
	mw := mtf.NewWriter(w)
	bw, err := bwt.NewWriter(mw, &bconf)
	if err != nil {
		return nil, err
	}
	return &Writer{bw: bw, mw: mw}, nil
}

func (zw *Writer) Write(buf []byte) (int, error) { return zw.bw.Write(buf) }

// Close writes out the transformed data.
// It does not close the underlying io.Writer.
func (zw *Writer) Close() error {
	if err := zw.bw.Close(); err != nil {
		return err
	}
	return zw.mw.Close()
}

func (zw *Writer) Reset(w io.Writer) error {
	zw.mw.Reset(w)
	return zw.bw.Reset(zw.mw)
}

// Reader reverses the Move-To-Front coding and then the Burrows-Wheeler
// Transform.
type Reader struct {
	mr *mtf.Reader
	br *bwt.Reader
}

func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	var bconf bwt.ReaderConfig
	if conf != nil {
		bconf.MaxBlockSize = conf.MaxBlockSize
	}
	mr := mtf.NewReader(r)
	br, err := bwt.NewReader(mr, &bconf)
	if err != nil {
		return nil, err
	}
	return &Reader{mr: mr, br: br}, nil
}

func (zr *Reader) Read(buf []byte) (int, error) { return zr.br.Read(buf) }

func (zr *Reader) Close() error {
	if err := zr.br.Close(); err != nil {
		return err
	}
	return zr.mr.Close()
}

func (zr *Reader) Reset(r io.Reader) error {
	zr.mr.Reset(r)
	return zr.br.Reset(zr.mr)
}

// Compress applies the Burrows-Wheeler Transform to data as a single block
// and then Move-To-Front codes the resulting stream. Empty data produces
// the coding of a zero origin pointer.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data) + 4)
	zw, err := NewWriter(&buf, nil)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	zr, err := NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return out, zr.Close()
}
