// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"bytes"
	"io"
	"testing"

	"github.com/dsnet/bwtmtf/internal/errors"
	"github.com/dsnet/bwtmtf/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var vectors = []struct {
		input  string
		output string
	}{{
		input:  "",
		output: "\x00\x00\x00\x00",
	}, {
		input:  "ABRACADABRA!",
		output: "\x00\x00\x00\x03ARD!RCAAAABB",
	}, {
		input:  "9876543210",
		output: "\x00\x00\x00\x091234567890",
	}, {
		input:  "a",
		output: "\x00\x00\x00\x00a",
	}}

	for i, v := range vectors {
		var buf bytes.Buffer
		bw, err := NewWriter(&buf, nil)
		require.NoError(t, err)

		// Issue the input in small pieces.
		in := []byte(v.input)
		for len(in) > 0 {
			n := 5
			if n > len(in) {
				n = len(in)
			}
			cnt, err := bw.Write(in[:n])
			require.NoError(t, err)
			assert.Equal(t, n, cnt)
			in = in[n:]
		}
		assert.Equal(t, 0, buf.Len(), "test %d, output written before Close", i)
		require.NoError(t, bw.Close())

		if got := buf.String(); got != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, got, v.output)
		}
		assert.Equal(t, int64(len(v.input)), bw.InputOffset)
		assert.Equal(t, int64(len(v.output)), bw.OutputOffset)

		// Writes after Close are rejected, and Close is idempotent.
		_, err = bw.Write([]byte("x"))
		assert.True(t, errors.IsClosed(err), "test %d, got %v, want closed", i, err)
		assert.NoError(t, bw.Close())
	}
}

func TestReader(t *testing.T) {
	var vectors = []struct {
		input  string
		output string
		check  func(error) bool
	}{{
		input: "\x00\x00\x00\x00", // Empty block
	}, {
		input:  "\x00\x00\x00\x03ARD!RCAAAABB",
		output: "ABRACADABRA!",
	}, {
		input:  "\x00\x00\x00\x00a",
		output: "a",
	}, {
		input: "",
		check: errors.IsCorrupted,
	}, {
		input: "\x00\x00",
		check: errors.IsCorrupted,
	}, {
		input: "\x00\x00\x00\x01", // Empty block with non-zero pointer
		check: errors.IsCorrupted,
	}, {
		input: "\xff\xff\xff\xff",
		check: errors.IsCorrupted,
	}, {
		input: "\x00\x00\x00\x0cARD!RCAAAABB", // Pointer equals block size
		check: errors.IsCorrupted,
	}, {
		input: "\xff\xff\xff\xffARD!RCAAAABB", // Negative pointer
		check: errors.IsCorrupted,
	}, {
		input: "\x7f\xff\xff\xffARD!RCAAAABB",
		check: errors.IsCorrupted,
	}}

	for i, v := range vectors {
		br, err := NewReader(bytes.NewReader([]byte(v.input)), nil)
		require.NoError(t, err)
		output, err := io.ReadAll(br)

		if v.check != nil {
			assert.True(t, v.check(err), "test %d, unexpected error: %v", i, err)
			assert.Error(t, br.Close())
			continue
		}
		require.NoError(t, err, "test %d", i)
		if string(output) != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, output, v.output)
		}
		assert.Equal(t, int64(len(v.input)), br.InputOffset)
		assert.Equal(t, int64(len(v.output)), br.OutputOffset)
		assert.NoError(t, br.Close())

		_, err = br.Read(make([]byte, 1))
		assert.True(t, errors.IsClosed(err), "test %d, got %v, want closed", i, err)
	}
}

func TestStreamRoundTrip(t *testing.T) {
	var bw *Writer
	var br *Reader
	for _, name := range testutil.CorpusNames() {
		n := 50000
		if name == "zeros" {
			n = 2000
		}
		input := testutil.MustCorpus(name, n)

		var buf bytes.Buffer
		if bw == nil {
			var err error
			bw, err = NewWriter(&buf, nil)
			require.NoError(t, err)
		} else {
			bw.Reset(&buf)
		}
		_, err := io.Copy(bw, bytes.NewReader(input))
		require.NoError(t, err, name)
		require.NoError(t, bw.Close(), name)
		assert.Equal(t, len(input)+hdrSize, buf.Len(), name)

		if br == nil {
			br, err = NewReader(&buf, nil)
			require.NoError(t, err)
		} else {
			br.Reset(&buf)
		}
		output, err := io.ReadAll(br)
		require.NoError(t, err, name)
		assert.True(t, bytes.Equal(input, output), "%s, output mismatch", name)
		assert.NoError(t, br.Close(), name)
	}
}

func TestMaxBlockSize(t *testing.T) {
	_, err := NewWriter(io.Discard, &WriterConfig{MaxBlockSize: -1})
	assert.True(t, errors.IsInvalid(err), "got %v, want invalid argument", err)
	_, err = NewReader(bytes.NewReader(nil), &ReaderConfig{MaxBlockSize: -1})
	assert.True(t, errors.IsInvalid(err), "got %v, want invalid argument", err)

	var buf bytes.Buffer
	bw, err := NewWriter(&buf, &WriterConfig{MaxBlockSize: 4})
	require.NoError(t, err)
	_, err = bw.Write([]byte("abc"))
	require.NoError(t, err)
	_, err = bw.Write([]byte("de"))
	assert.True(t, errors.IsInvalid(err), "got %v, want invalid argument", err)
	assert.Equal(t, err, bw.Close())
	assert.Equal(t, 0, buf.Len())

	stream := []byte("\x00\x00\x00\x00abcde")
	br, err := NewReader(bytes.NewReader(stream), &ReaderConfig{MaxBlockSize: 4})
	require.NoError(t, err)
	_, err = io.ReadAll(br)
	assert.True(t, errors.IsCorrupted(err), "got %v, want corrupted input", err)
}

func TestStreamIOErrors(t *testing.T) {
	errFail := errors.Error{Code: errors.Unknown, Msg: "injected failure"}
	input := testutil.MustCorpus("text", 1000)

	// The writer reports failures of the underlying io.Writer on Close.
	for _, n := range []int64{0, 2, hdrSize, 500} {
		bw, err := NewWriter(&testutil.BuggyWriter{W: io.Discard, N: n, Err: errFail}, nil)
		require.NoError(t, err)
		_, err = bw.Write(input)
		require.NoError(t, err)
		assert.Equal(t, errFail, bw.Close(), "N=%d", n)
		assert.Equal(t, n, bw.OutputOffset, "N=%d", n)
	}

	// The reader reports failures of the underlying io.Reader.
	var buf bytes.Buffer
	bw, _ := NewWriter(&buf, nil)
	bw.Write(input)
	require.NoError(t, bw.Close())
	for _, n := range []int64{0, 2, 500} {
		br, err := NewReader(&testutil.BuggyReader{R: bytes.NewReader(buf.Bytes()), N: n, Err: errFail}, nil)
		require.NoError(t, err)
		output, err := io.ReadAll(br)
		assert.Equal(t, errFail, err, "N=%d", n)
		assert.Empty(t, output, "N=%d", n)
	}
}
