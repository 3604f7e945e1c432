// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/bwtmtf"
	"github.com/dsnet/bwtmtf/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendNames(t *testing.T) {
	names := BackendNames()
	require.NotEmpty(t, names)
	assert.Equal(t, "std", names[0])
	for _, name := range []string{"raw", "kflate", "zstd", "s2", "xz", "lzma", "lz4"} {
		assert.Contains(t, names, name)
	}
}

func TestPreprocess(t *testing.T) {
	input := testutil.MustCorpus("text", 5000)
	want, err := bwtmtf.Compress(input)
	require.NoError(t, err)

	got1, err := Preprocess(input)
	require.NoError(t, err)
	got2, err := Preprocess(append([]byte(nil), input...))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(want, got1))
	assert.Same(t, &got1[0], &got2[0], "cached output was not reused")
}

func TestVerify(t *testing.T) {
	input := testutil.MustCorpus("repeats", 5000)
	pre, err := Preprocess(input)
	require.NoError(t, err)
	raw := Backends["raw"]

	assert.NoError(t, Verify(input, pre, raw.Decoder))

	bad := append([]byte(nil), pre...)
	bad[len(bad)-1] ^= 0x01
	assert.Error(t, Verify(input, bad, raw.Decoder))
	assert.Error(t, Verify(input[:100], pre, raw.Decoder))
}

func TestLoadInput(t *testing.T) {
	b, err := LoadInput("gen:digits", 1000)
	require.NoError(t, err)
	assert.Len(t, b, 1000)

	_, err = LoadInput("gen:nosuchcorpus", 1000)
	assert.Error(t, err)
	_, err = LoadInput("gen:digits", -1)
	assert.Error(t, err)

	// Runs of one byte sort in quadratic time, so their size is capped.
	b, err = LoadInput("gen:zeros", genLimits["zeros"])
	require.NoError(t, err)
	assert.Len(t, b, genLimits["zeros"])
	_, err = LoadInput("gen:zeros", genLimits["zeros"]+1)
	assert.Error(t, err)
	_, err = LoadInput("gen:zeros", 1e6)
	assert.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "small.txt"), []byte("hello"), 0644))
	Paths = []string{dir}
	defer func() { Paths = nil }()

	b, err = LoadInput("small.txt", 12)
	require.NoError(t, err)
	assert.Len(t, b, 12)
	assert.Equal(t, "hello", string(b[:5]))

	b, err = LoadInput("small.txt", -1)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = LoadInput("missing.txt", 10)
	assert.Error(t, err)
}

func TestGetName(t *testing.T) {
	var vectors = []struct {
		file  string
		level int
		size  int
		name  string
	}{
		{"gen:text", 6, 1e4, "text:6:1e4"},
		{"/tmp/twain.txt", 1, 1e6, "twain.txt:1:1e6"},
	}
	for i, v := range vectors {
		if got := getName(v.file, v.level, v.size); got != v.name {
			t.Errorf("test %d, name mismatch: got %q, want %q", i, got, v.name)
		}
	}
}

func TestSuites(t *testing.T) {
	backends := []string{"raw", "std"}
	files := []string{"gen:text", "gen:nosuchcorpus"}
	levels, sizes := []int{6}, []int{1e3}

	var ticks int
	tick := func() { ticks++ }
	results, names := BenchmarkRatioSuite(backends, files, levels, sizes, tick)
	require.Len(t, results, 2)
	require.Len(t, names, 2)
	assert.Equal(t, 4, ticks)
	assert.Equal(t, "text:6:1e3", names[0])

	// The raw backend only adds the pointer header, and flate should gain
	// from the preprocessing on text.
	assert.InDelta(t, 1000.0/1004.0, results[0][0].R, 1e-9)
	assert.InDelta(t, 1000.0/1004.0, results[0][0].D, 1e-9)
	assert.True(t, results[0][1].R > 1)
	assert.Zero(t, results[1][0].R, "missing input should produce no result")
}
