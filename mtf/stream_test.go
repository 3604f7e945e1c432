// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mtf

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/dsnet/bwtmtf/internal/errors"
	"github.com/dsnet/bwtmtf/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream(t *testing.T) {
	// Sizes straddle the scratch buffer of the Writer.
	for _, n := range []int{0, 1, chunkSize - 1, chunkSize, chunkSize + 1, 3*chunkSize + 7} {
		input := testutil.MustCorpus("text", n)
		want := append([]byte(nil), input...)
		Encode(want)

		var buf bytes.Buffer
		mw := NewWriter(&buf)
		for rest := input; len(rest) > 0; {
			m := 1000
			if m > len(rest) {
				m = len(rest)
			}
			cnt, err := mw.Write(rest[:m])
			require.NoError(t, err)
			require.Equal(t, m, cnt)
			rest = rest[m:]
		}
		require.NoError(t, mw.Close())
		assert.True(t, bytes.Equal(want, buf.Bytes()), "n=%d, writer output mismatch", n)
		assert.Equal(t, int64(n), mw.InputOffset)
		assert.Equal(t, int64(n), mw.OutputOffset)

		_, err := mw.Write([]byte("x"))
		assert.True(t, errors.IsClosed(err), "got %v, want closed", err)

		mr := NewReader(iotest.OneByteReader(&buf))
		output, err := io.ReadAll(mr)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(input, output), "n=%d, reader output mismatch", n)
		assert.Equal(t, int64(n), mr.InputOffset)
		assert.Equal(t, int64(n), mr.OutputOffset)
		assert.NoError(t, mr.Close())

		_, err = mr.Read(make([]byte, 1))
		assert.True(t, errors.IsClosed(err), "got %v, want closed", err)
	}
}

func TestStreamReset(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	mw := NewWriter(&buf1)
	mw.Write([]byte("AAABBBCCC"))
	mw.Close()
	mw.Reset(&buf2)
	mw.Write([]byte("AAABBBCCC"))
	mw.Close()
	assert.Equal(t, buf1.Bytes(), buf2.Bytes())

	mr := NewReader(bytes.NewReader(buf1.Bytes()))
	out1, _ := io.ReadAll(mr)
	mr.Reset(bytes.NewReader(buf2.Bytes()))
	out2, _ := io.ReadAll(mr)
	assert.Equal(t, "AAABBBCCC", string(out1))
	assert.Equal(t, "AAABBBCCC", string(out2))
}

func TestStreamIOErrors(t *testing.T) {
	errFail := errors.Error{Code: errors.Unknown, Msg: "injected failure"}
	input := testutil.MustCorpus("text", 3*chunkSize)
	want := append([]byte(nil), input...)
	Encode(want)

	// Output written before the failure is kept in the underlying writer.
	for _, n := range []int64{0, 10, chunkSize, chunkSize + 10} {
		var buf bytes.Buffer
		mw := NewWriter(&testutil.BuggyWriter{W: &buf, N: n, Err: errFail})
		cnt, err := mw.Write(input)
		assert.Equal(t, errFail, err, "N=%d", n)
		assert.Equal(t, int(n), cnt, "N=%d", n)
		assert.Equal(t, string(want[:n]), buf.String(), "N=%d", n)
		assert.Equal(t, errFail, mw.Close(), "N=%d", n)
	}

	for _, n := range []int64{0, 10, chunkSize} {
		mr := NewReader(&testutil.BuggyReader{R: bytes.NewReader(want), N: n, Err: errFail})
		output, err := io.ReadAll(mr)
		assert.Equal(t, errFail, err, "N=%d", n)
		assert.Equal(t, string(input[:n]), string(output), "N=%d", n)
		assert.Equal(t, errFail, mr.Close(), "N=%d", n)
	}
}
