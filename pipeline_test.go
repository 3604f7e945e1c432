// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwtmtf

import (
	"bytes"
	"encoding/binary"
	"io"
	"sync"
	"testing"

	"github.com/dsnet/bwtmtf/bwt"
	"github.com/dsnet/bwtmtf/internal/errors"
	"github.com/dsnet/bwtmtf/internal/testutil"
	"github.com/dsnet/bwtmtf/mtf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Error = errors.Error{}

func TestCompress(t *testing.T) {
	var vectors = []struct {
		input  string
		output string
	}{{
		input:  "",
		output: "\x00\x00\x00\x00",
	}, {
		input:  "a",
		output: "\x00\x00\x00\x00a",
	}, {
		input:  "ba",
		output: "\x00\x00\x00\x01\x62\x62",
	}}

	for i, v := range vectors {
		output, err := Compress([]byte(v.input))
		require.NoError(t, err, "test %d", i)
		if string(output) != v.output {
			t.Errorf("test %d, output mismatch:\ngot  %q\nwant %q", i, output, v.output)
		}
		input, err := Decompress(output)
		require.NoError(t, err, "test %d", i)
		if string(input) != v.input {
			t.Errorf("test %d, input mismatch:\ngot  %q\nwant %q", i, input, v.input)
		}
	}
}

// TestComposition checks that the pipeline output is the move-to-front coding
// of the complete transform stream, header included.
func TestComposition(t *testing.T) {
	for _, name := range testutil.CorpusNames() {
		input := testutil.MustCorpus(name, 2000)
		ptr, block, err := bwt.Transform(input)
		require.NoError(t, err)

		want := make([]byte, 4, 4+len(block))
		binary.BigEndian.PutUint32(want, uint32(ptr))
		want = append(want, block...)
		mtf.Encode(want)

		got, err := Compress(input)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(want, got), "%s, output mismatch", name)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, name := range testutil.CorpusNames() {
		n := 50000
		if name == "zeros" {
			n = 2000
		}
		input := testutil.MustCorpus(name, n)
		output, err := Compress(input)
		require.NoError(t, err, name)
		assert.Len(t, output, len(input)+4, name)

		got, err := Decompress(output)
		require.NoError(t, err, name)
		assert.True(t, bytes.Equal(input, got), "%s, round trip mismatch", name)
	}
}

func TestDecompressCorrupted(t *testing.T) {
	encode := func(s string) []byte {
		b := []byte(s)
		mtf.Encode(b)
		return b
	}
	for i, input := range [][]byte{
		nil,
		encode("\x00\x00"),
		encode("\x00\x00\x00\x02"),
		encode("\x00\x00\x00\x05ab"),
		encode("\x80\x00\x00\x00ab"),
	} {
		_, err := Decompress(input)
		assert.True(t, errors.IsCorrupted(err), "test %d, got %v, want corrupted input", i, err)
		if zerr, ok := err.(Error); assert.True(t, ok, "test %d, got %T", i, err) {
			assert.True(t, zerr.IsCorrupted())
			assert.False(t, zerr.IsInvalid())
		}
	}
}

func TestStream(t *testing.T) {
	input := testutil.MustCorpus("text", 10000)
	want, err := Compress(input)
	require.NoError(t, err)

	var buf bytes.Buffer
	zw, err := NewWriter(io.Discard, nil)
	require.NoError(t, err)
	require.NoError(t, zw.Reset(&buf))
	for _, b := range [][]byte{input[:100], input[100:5000], input[5000:]} {
		_, err := zw.Write(b)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	assert.True(t, bytes.Equal(want, buf.Bytes()), "writer output mismatch")

	zr, err := NewReader(bytes.NewReader(nil), nil)
	require.NoError(t, err)
	require.NoError(t, zr.Reset(&buf))
	got, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(input, got), "reader output mismatch")
	assert.NoError(t, zr.Close())
}

func TestMaxBlockSize(t *testing.T) {
	zw, err := NewWriter(io.Discard, &WriterConfig{MaxBlockSize: 8})
	require.NoError(t, err)
	_, err = zw.Write(make([]byte, 9))
	assert.True(t, errors.IsInvalid(err), "got %v, want invalid argument", err)

	data, err := Compress(make([]byte, 9))
	require.NoError(t, err)
	zr, err := NewReader(bytes.NewReader(data), &ReaderConfig{MaxBlockSize: 8})
	require.NoError(t, err)
	_, err = io.ReadAll(zr)
	assert.True(t, errors.IsCorrupted(err), "got %v, want corrupted input", err)
}

func TestConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			input := testutil.NewRand(seed).Symbols(10000, 16)
			output, err := Compress(input)
			if err != nil {
				t.Errorf("seed %d, unexpected error: %v", seed, err)
				return
			}
			got, err := Decompress(output)
			if err != nil || !bytes.Equal(input, got) {
				t.Errorf("seed %d, round trip mismatch: %v", seed, err)
			}
		}(i)
	}
	wg.Wait()
}

func BenchmarkCompress(b *testing.B) {
	input := testutil.MustCorpus("text", 1e5)
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compress(input)
	}
}

func BenchmarkDecompress(b *testing.B) {
	input := testutil.MustCorpus("text", 1e5)
	data, _ := Compress(input)
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Decompress(data)
	}
}
