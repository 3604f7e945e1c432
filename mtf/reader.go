// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mtf

import "io"

type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd   io.Reader // Input source
	list List      // State carried across calls to Read
	err  error     // Persistent error
}

func NewReader(r io.Reader) *Reader {
	mr := new(Reader)
	mr.Reset(r)
	return mr
}

func (mr *Reader) Read(buf []byte) (int, error) {
	if mr.err != nil {
		return 0, mr.err
	}

	n, err := mr.rd.Read(buf)
	mr.InputOffset += int64(n)
	for i, idx := range buf[:n] {
		buf[i] = mr.list.Decode(idx)
	}
	mr.OutputOffset += int64(n)
	mr.err = err
	return n, err
}

func (mr *Reader) Close() error {
	if mr.err == nil || mr.err == io.EOF || mr.err == errClosed {
		mr.err = errClosed
		return nil
	}
	return mr.err // Return the persistent error
}

func (mr *Reader) Reset(r io.Reader) error {
	*mr = Reader{rd: r}
	mr.list.Reset()
	return nil
}
