// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"encoding/binary"
	"io"

	"github.com/dsnet/bwtmtf/internal/errors"
)

type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd      io.Reader // Input source
	maxSize int       // Largest block accepted
	toRead  []byte    // Decoded data ready to be emitted from Read
	decoded bool      // The block has been read and decoded
	err     error     // Persistent error
}

func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	var maxSize int
	if conf != nil {
		maxSize = conf.MaxBlockSize
	}
	maxSize, err := blockSize(maxSize)
	if err != nil {
		return nil, err
	}

	br := &Reader{maxSize: maxSize}
	br.Reset(r)
	return br, nil
}

func (br *Reader) Read(buf []byte) (int, error) {
	for {
		if len(br.toRead) > 0 {
			cnt := copy(buf, br.toRead)
			br.toRead = br.toRead[cnt:]
			br.OutputOffset += int64(cnt)
			return cnt, nil
		}
		if br.err != nil {
			return 0, br.err
		}
		if br.decoded {
			br.err = io.EOF
			continue
		}

		func() {
			defer errors.Recover(&br.err)
			br.toRead = br.readBlock()
		}()
		br.decoded = true
	}
}

// readBlock reads the entire stream and returns the decoded block.
func (br *Reader) readBlock() []byte {
	lr := &io.LimitedReader{R: br.rd, N: int64(hdrSize) + int64(br.maxSize) + 1}
	data, err := io.ReadAll(lr)
	br.InputOffset += int64(len(data))
	if err != nil {
		errors.Panic(err)
	}

	switch {
	case len(data) < hdrSize:
		errors.Panic(errorf(errors.Corrupted, "truncated origin pointer"))
	case len(data)-hdrSize > br.maxSize:
		errors.Panic(errorf(errors.Corrupted, "block exceeds %d bytes", br.maxSize))
	}

	ptr := int(int32(binary.BigEndian.Uint32(data)))
	blk := data[hdrSize:]
	if len(blk) == 0 {
		if ptr != 0 {
			errors.Panic(errorf(errors.Corrupted, "origin pointer %d for empty block", ptr))
		}
		return nil
	}
	if err := Decode(blk, ptr); err != nil {
		errors.Panic(err)
	}
	return blk
}

func (br *Reader) Close() error {
	if br.err == nil || br.err == io.EOF || br.err == errClosed {
		br.toRead = nil // Make sure future reads fail
		br.err = errClosed
		return nil
	}
	return br.err // Return the persistent error
}

func (br *Reader) Reset(r io.Reader) error {
	*br = Reader{rd: r, maxSize: br.maxSize}
	return nil
}
