// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mtf

import "io"

// Writer encodes bytes as they are written. Unlike the bwt.Writer, output is
// written eagerly, so a failure part way through leaves earlier output in the
// underlying io.Writer.
type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr   io.Writer // Output destination
	list List      // State carried across calls to Write
	buf  []byte    // Scratch space for encoded indexes
	err  error     // Persistent error
}

func NewWriter(w io.Writer) *Writer {
	mw := new(Writer)
	mw.Reset(w)
	return mw
}

func (mw *Writer) Write(buf []byte) (int, error) {
	var cnt int
	for len(buf) > 0 && mw.err == nil {
		n := copy(mw.buf, buf)
		for i, c := range mw.buf[:n] {
			mw.buf[i] = mw.list.Encode(c)
		}
		n, mw.err = mw.wr.Write(mw.buf[:n])
		mw.OutputOffset += int64(n)
		mw.InputOffset += int64(n)
		cnt += n
		buf = buf[n:]
	}
	return cnt, mw.err
}

// Close ends the stream. It does not close the underlying io.Writer.
func (mw *Writer) Close() error {
	if mw.err == errClosed {
		return nil
	}
	if mw.err != nil {
		return mw.err
	}
	mw.err = errClosed
	return nil
}

func (mw *Writer) Reset(w io.Writer) error {
	buf := mw.buf
	if buf == nil {
		buf = make([]byte, chunkSize)
	}
	*mw = Writer{wr: w, buf: buf}
	mw.list.Reset()
	return nil
}
