// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"encoding/binary"
	"io"

	"github.com/dsnet/bwtmtf/internal/errors"
)

// Writer buffers the entire input and writes the transformed block to the
// underlying io.Writer on Close. Nothing is written before Close.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr      io.Writer // Output destination
	maxSize int       // Largest block accepted
	buf     []byte    // Block being accumulated
	err     error     // Persistent error
}

func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	var maxSize int
	if conf != nil {
		maxSize = conf.MaxBlockSize
	}
	maxSize, err := blockSize(maxSize)
	if err != nil {
		return nil, err
	}

	bw := &Writer{maxSize: maxSize}
	bw.Reset(w)
	return bw, nil
}

func (bw *Writer) Write(buf []byte) (int, error) {
	if bw.err != nil {
		return 0, bw.err
	}
	if len(buf) > bw.maxSize-len(bw.buf) {
		bw.err = errorf(errors.Invalid, "block exceeds %d bytes", bw.maxSize)
		return 0, bw.err
	}
	bw.buf = append(bw.buf, buf...)
	bw.InputOffset += int64(len(buf))
	return len(buf), nil
}

// Close transforms the buffered block and writes it out. An empty block is
// written as a zero origin pointer with no data.
// It does not close the underlying io.Writer.
func (bw *Writer) Close() error {
	if bw.err == errClosed {
		return nil
	}
	if bw.err != nil {
		return bw.err
	}

	var ptr int
	if len(bw.buf) > 0 {
		var err error
		if ptr, err = Encode(bw.buf); err != nil {
			bw.err = err
			return err
		}
	}
	var hdr [hdrSize]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(ptr))
	for _, b := range [][]byte{hdr[:], bw.buf} {
		if len(b) == 0 {
			continue
		}
		n, err := bw.wr.Write(b)
		bw.OutputOffset += int64(n)
		if err != nil {
			bw.err = err
			return err
		}
	}
	bw.err = errClosed
	return nil
}

func (bw *Writer) Reset(w io.Writer) error {
	*bw = Writer{wr: w, maxSize: bw.maxSize, buf: bw.buf[:0]}
	return nil
}
