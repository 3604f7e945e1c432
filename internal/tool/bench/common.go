// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench measures how Burrows-Wheeler and Move-To-Front preprocessing
// affects general purpose compressors, with respect to encode speed, decode
// speed, and ratio.
//
// Each compressor is registered as a backend. A benchmark always runs the
// backend behind the preprocessing stages; the ratio benchmark additionally
// runs the backend on the raw input to report the gain of preprocessing.
package bench

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/dsnet/bwtmtf"
	"github.com/dsnet/bwtmtf/internal/testutil"
	"github.com/dsnet/golib/unitconv"
)

const (
	TestEncodeRate = iota
	TestDecodeRate
	TestCompressRatio
)

// GenPrefix marks an input name as a generated corpus instead of a file.
const GenPrefix = "gen:"

type Encoder func(io.Writer, int) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

type Backend struct {
	Encoder Encoder
	Decoder Decoder
}

var (
	Backends map[string]Backend

	// List of search paths for test files.
	Paths []string
)

func RegisterBackend(name string, enc Encoder, dec Decoder) {
	if Backends == nil {
		Backends = make(map[string]Backend)
	}
	Backends[name] = Backend{Encoder: enc, Decoder: dec}
}

// BackendNames lists the registered backends in sorted order,
// except that "std" always comes first.
func BackendNames() []string {
	var s []string
	for k := range Backends {
		if k != "std" {
			s = append(s, k)
		}
	}
	sort.Strings(s)
	if _, ok := Backends["std"]; ok {
		s = append([]string{"std"}, s...)
	}
	return s
}

// PipelineEncoder returns an Encoder that preprocesses the data before
// handing it to enc.
func PipelineEncoder(enc Encoder) Encoder {
	return func(w io.Writer, lvl int) io.WriteCloser {
		bw := enc(w, lvl)
		zw, err := bwtmtf.NewWriter(bw, nil)
		if err != nil {
			panic(err)
		}
		return &pipeWriter{zw, bw}
	}
}

// PipelineDecoder returns a Decoder that reverses the preprocessing after
// decoding with dec.
func PipelineDecoder(dec Decoder) Decoder {
	return func(r io.Reader) io.ReadCloser {
		br := dec(r)
		zr, err := bwtmtf.NewReader(br, nil)
		if err != nil {
			panic(err)
		}
		return &pipeReader{zr, br}
	}
}

type pipeWriter struct {
	zw *bwtmtf.Writer
	bw io.WriteCloser
}

func (pw *pipeWriter) Write(buf []byte) (int, error) { return pw.zw.Write(buf) }

func (pw *pipeWriter) Close() error {
	err := pw.zw.Close()
	if cerr := pw.bw.Close(); err == nil {
		err = cerr
	}
	return err
}

type pipeReader struct {
	zr *bwtmtf.Reader
	br io.ReadCloser
}

func (pr *pipeReader) Read(buf []byte) (int, error) { return pr.zr.Read(buf) }

func (pr *pipeReader) Close() error {
	err := pr.zr.Close()
	if cerr := pr.br.Close(); err == nil {
		err = cerr
	}
	return err
}

// preprocessed caches the BWT+MTF output of inputs keyed by their hash, since
// the transform dominates the cost of setting up every benchmark.
var preprocessed struct {
	sync.Mutex
	m map[cacheKey][]byte
}

type cacheKey struct {
	sum uint64
	n   int
}

// Preprocess returns the BWT+MTF output of input.
func Preprocess(input []byte) ([]byte, error) {
	key := cacheKey{xxhash.Sum64(input), len(input)}
	preprocessed.Lock()
	b, ok := preprocessed.m[key]
	preprocessed.Unlock()
	if ok {
		return b, nil
	}

	b, err := bwtmtf.Compress(input)
	if err != nil {
		return nil, err
	}
	preprocessed.Lock()
	if preprocessed.m == nil {
		preprocessed.m = make(map[cacheKey][]byte)
	}
	preprocessed.m[key] = b
	preprocessed.Unlock()
	return b, nil
}

// encode compresses input using enc at the given level.
func encode(input []byte, enc Encoder, lvl int) ([]byte, error) {
	buf := new(bytes.Buffer)
	wr := enc(buf, lvl)
	_, err := io.Copy(wr, bytes.NewReader(input))
	if cerr := wr.Close(); err == nil {
		err = cerr
	}
	return buf.Bytes(), err
}

// Verify decodes the output of the full pipeline using the backend dec and
// checks that it hashes to the same value as the original input.
func Verify(input, output []byte, dec Decoder) error {
	h := xxhash.New()
	rd := PipelineDecoder(dec)(bytes.NewReader(output))
	cnt, err := io.Copy(h, rd)
	if cerr := rd.Close(); err == nil {
		err = cerr
	}
	switch {
	case err != nil:
		return err
	case cnt != int64(len(input)):
		return fmt.Errorf("mismatching count: got %d, want %d", cnt, len(input))
	case h.Sum64() != xxhash.Sum64(input):
		return fmt.Errorf("mismatching checksum: got 0x%016x, want 0x%016x", h.Sum64(), xxhash.Sum64(input))
	}
	return nil
}

// BenchmarkEncoder benchmarks a single encoder on the given input data using
// the selected compression level and reports the result.
func BenchmarkEncoder(input []byte, enc Encoder, lvl int) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if enc == nil {
			b.Fatalf("unexpected error: nil Encoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			wr := enc(io.Discard, lvl)
			_, err := io.Copy(wr, bytes.NewBuffer(input))
			if err := wr.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(len(input)))
		}
	})
}

type Result struct {
	R float64 // Rate (MB/s) or ratio (rawSize/compSize)
	D float64 // Delta ratio relative to primary benchmark
}

// BenchmarkEncoderSuite runs multiple benchmarks of the full pipeline across
// all backends, files, levels, and sizes.
//
// The values returned have the following structure:
//
//	results: [len(files)*len(levels)*len(sizes)][len(backends)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkEncoderSuite(backends, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(backends, files, levels, sizes, tick, true,
		func(input []byte, be string, lvl int) Result {
			enc := PipelineEncoder(Backends[be].Encoder)
			result := BenchmarkEncoder(input, enc, lvl)
			if result.N == 0 {
				return Result{}
			}
			us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
			rate := float64(result.Bytes) / us
			return Result{R: rate}
		})
}

// BenchmarkDecoder benchmarks a single decoder on the given pre-compressed
// input data and reports the result.
func BenchmarkDecoder(input []byte, dec Decoder) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		b.StopTimer()
		if dec == nil {
			b.Fatalf("unexpected error: nil Decoder")
		}
		runtime.GC()
		b.StartTimer()
		for i := 0; i < b.N; i++ {
			rd := dec(bufio.NewReader(bytes.NewBuffer(input)))
			cnt, err := io.Copy(io.Discard, rd)
			if err := rd.Close(); err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			b.SetBytes(int64(cnt))
		}
	})
}

// BenchmarkDecoderSuite runs multiple benchmarks of the full inverse pipeline
// across all backends, files, levels, and sizes. Every backend decodes data
// compressed by its own encoder, which is verified before timing.
//
// The values returned have the following structure:
//
//	results: [len(files)*len(levels)*len(sizes)][len(backends)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkDecoderSuite(backends, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(backends, files, levels, sizes, tick, true,
		func(input []byte, be string, lvl int) Result {
			pre, err := Preprocess(input)
			if err != nil {
				return Result{}
			}
			output, err := encode(pre, Backends[be].Encoder, lvl)
			if err != nil {
				return Result{}
			}
			if Verify(input, output, Backends[be].Decoder) != nil {
				return Result{}
			}

			result := BenchmarkDecoder(output, PipelineDecoder(Backends[be].Decoder))
			if result.N == 0 {
				return Result{}
			}
			us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
			rate := float64(result.Bytes) / us
			return Result{R: rate}
		})
}

// BenchmarkRatioSuite computes the compression ratio of every backend behind
// the preprocessing stages. The delta is relative to the ratio the same
// backend achieves on the raw input.
//
// The values returned have the following structure:
//
//	results: [len(files)*len(levels)*len(sizes)][len(backends)]Result
//	names:   [len(files)*len(levels)*len(sizes)]string
func BenchmarkRatioSuite(backends, files []string, levels, sizes []int, tick func()) (results [][]Result, names []string) {
	return benchmarkSuite(backends, files, levels, sizes, tick, false,
		func(input []byte, be string, lvl int) Result {
			pre, err := Preprocess(input)
			if err != nil {
				return Result{}
			}
			output, err := encode(pre, Backends[be].Encoder, lvl)
			if err != nil {
				return Result{}
			}
			raw, err := encode(input, Backends[be].Encoder, lvl)
			if err != nil {
				return Result{}
			}
			ratio := float64(len(input)) / float64(len(output))
			rawRatio := float64(len(input)) / float64(len(raw))
			return Result{R: ratio, D: ratio / rawRatio}
		})
}

type benchFunc func(input []byte, backend string, level int) Result

func benchmarkSuite(backends, files []string, levels, sizes []int, tick func(), relative bool, run benchFunc) ([][]Result, []string) {
	// Allocate buffers for the result.
	d0 := len(files) * len(levels) * len(sizes)
	d1 := len(backends)
	results := make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names := make([]string, d0)

	// Run the benchmark for every backend, file, level, and size.
	var i int
	for _, f := range files {
		for _, l := range levels {
			for _, n := range sizes {
				b, err := LoadInput(f, n)
				name := getName(f, l, len(b))
				for j, be := range backends {
					if tick != nil {
						tick()
					}
					names[i] = name
					if err == nil && len(b) > 0 {
						results[i][j] = run(b, be, l)
					}
					if relative {
						results[i][j].D = results[i][j].R / results[i][0].R
					}
				}
				i++
			}
		}
	}
	return results, names
}

// genLimits caps the size of generated corpora that the suffix sorter handles
// in quadratic time. A block of n identical bytes takes n^2 comparisons.
var genLimits = map[string]int{
	"zeros": 1 << 15,
}

// LoadInput returns n bytes of the named input. Names starting with GenPrefix
// refer to generated corpora, and other names are files looked up in Paths.
// Files shorter than n are replicated; if n < 0 the whole file is returned.
//
// Generated corpora listed in genLimits are rejected above their limit.
func LoadInput(name string, n int) ([]byte, error) {
	if strings.HasPrefix(name, GenPrefix) {
		if n < 0 {
			return nil, fmt.Errorf("generated input %s needs a size", name)
		}
		corpus := strings.TrimPrefix(name, GenPrefix)
		if limit, ok := genLimits[corpus]; ok && n > limit {
			return nil, fmt.Errorf("generated input %s is limited to %d bytes", name, limit)
		}
		b := testutil.Corpus(corpus, n)
		if b == nil {
			return nil, fmt.Errorf("unknown corpus: %s", name)
		}
		return b, nil
	}

	b, err := os.ReadFile(getPath(name))
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("empty input file: %s", name)
	}
	return testutil.ResizeData(b, n), nil
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

func getName(f string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9:
		s := fmt.Sprintf("%e", float64(n))
		re := regexp.MustCompile("\\.0*e\\+0*")
		sn = re.ReplaceAllString(s, "e")
	default:
		s := unitconv.FormatPrefix(float64(n), unitconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", path.Base(strings.TrimPrefix(f, GenPrefix)), l, sn)
}
