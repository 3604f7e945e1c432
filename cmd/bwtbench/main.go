// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Benchmark tool to measure how Burrows-Wheeler and Move-To-Front
// preprocessing interacts with general purpose compressors. Individual
// compressors are referred to as backends.
//
// Example usage:
//
//	$ go build -o bwtbench ./cmd/bwtbench
//	$ ./bwtbench \
//		-tests    ratio                 \
//		-backends std,zstd,xz           \
//		-files    gen:text,gen:repeats  \
//		-levels   6                     \
//		-sizes    1e4,1e5
//
// For the ratio test, the delta is the ratio of the backend with
// preprocessing relative to the same backend without it. For the rate tests,
// the delta is relative to the first backend.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dsnet/bwtmtf/internal/tool/bench"
	"github.com/dsnet/bwtmtf/internal/tool/cli"
	"github.com/dsnet/golib/unitconv"
)

const (
	defaultFiles  = "gen:text,gen:repeats,gen:random,gen:digits"
	defaultLevels = "6"
	defaultSizes  = "1e4,1e5"
)

var (
	testToEnum = map[string]int{
		"encRate": bench.TestEncodeRate,
		"decRate": bench.TestDecodeRate,
		"ratio":   bench.TestCompressRatio,
	}
	enumToTest = map[int]string{
		bench.TestEncodeRate:    "encRate",
		bench.TestDecodeRate:    "decRate",
		bench.TestCompressRatio: "ratio",
	}
)

func defaultTests() string {
	var d []int
	for k := range enumToTest {
		d = append(d, k)
	}
	sort.Ints(d)
	var s []string
	for _, v := range d {
		s = append(s, enumToTest[v])
	}
	return strings.Join(s, ",")
}

func main() {
	// Setup flag arguments.
	f0 := flag.String("tests", defaultTests(), "List of different benchmark tests")
	f1 := flag.String("backends", strings.Join(bench.BackendNames(), ","), "List of backends to benchmark")
	f2 := flag.String("paths", ".", "List of paths to search for test files")
	f3 := flag.String("files", defaultFiles, "List of input files or generated corpora ("+bench.GenPrefix+"name) to benchmark")
	f4 := flag.String("levels", defaultLevels, "List of compression levels to benchmark")
	f5 := flag.String("sizes", defaultSizes, "List of input sizes to benchmark")
	verbose := flag.Bool("v", false, "Log progress at debug level")
	logFile := flag.String("logfile", "", "Also append JSON log records to this file")
	flag.Parse()

	log, lc := cli.NewLogger(os.Stderr, cli.LogConfig{Verbose: *verbose, File: *logFile, MaxSize: 10, MaxBackups: 3})
	defer lc.Close()
	log = log.With("tool", "bwtbench")
	fail := func(msg string, args ...interface{}) {
		log.Error(msg, args...)
		lc.Close()
		os.Exit(cli.ExitUsage)
	}

	// Parse the flag arguments.
	var sep = regexp.MustCompile("[,:]")
	var backends, paths, files []string
	var tests, levels, sizes []int
	paths = sep.Split(*f2, -1)
	files = strings.Split(*f3, ",")
	for _, s := range strings.Split(*f1, ",") {
		if _, ok := bench.Backends[s]; !ok {
			fail("invalid backend", "backend", s)
		}
		backends = append(backends, s)
	}
	for _, s := range sep.Split(*f0, -1) {
		if _, ok := testToEnum[s]; !ok {
			fail("invalid test", "test", s)
		}
		tests = append(tests, testToEnum[s])
	}
	for _, s := range sep.Split(*f4, -1) {
		lvl, err := unitconv.ParsePrefix(s, unitconv.AutoParse)
		if err != nil {
			fail("invalid level", "level", s, "err", err)
		}
		levels = append(levels, int(lvl))
	}
	for _, s := range sep.Split(*f5, -1) {
		nf, err := unitconv.ParsePrefix(s, unitconv.AutoParse)
		if err != nil || nf <= 0 {
			fail("invalid size", "size", s)
		}
		sizes = append(sizes, int(nf))
	}

	bench.Paths = paths
	for _, f := range files {
		for _, n := range sizes {
			if _, err := bench.LoadInput(f, n); err != nil {
				fail("invalid input", "file", f, "size", n, "err", err)
			}
		}
	}

	ts := time.Now()
	log.Debug("starting", "backends", backends, "files", files, "levels", levels, "sizes", sizes)
	runBenchmarks(files, backends, tests, levels, sizes)
	te := time.Now()
	log.Debug("done", "runtime", te.Sub(ts))
	fmt.Printf("RUNTIME: %v\n", te.Sub(ts))
}

func runBenchmarks(files, backends []string, tests, levels, sizes []int) {
	for _, t := range tests {
		var results [][]bench.Result
		var names []string
		var title, suffix string

		fmt.Printf("BENCHMARK: %s\n", enumToTest[t])
		if len(backends) == 0 {
			fmt.Print("\tSKIP: There are no backends available.\n\n")
			continue
		}

		// Progress ticker.
		var cnt int
		tick := func() {
			total := len(backends) * len(files) * len(levels) * len(sizes)
			pct := 100.0 * float64(cnt) / float64(total)
			fmt.Fprintf(os.Stderr, "\t[%6.2f%%] %d of %d\r", pct, cnt, total)
			cnt++
		}

		// Perform the bench. This may take some time.
		switch t {
		case bench.TestEncodeRate:
			title, suffix = "MB/s", ""
			results, names = bench.BenchmarkEncoderSuite(backends, files, levels, sizes, tick)
		case bench.TestDecodeRate:
			title, suffix = "MB/s", ""
			results, names = bench.BenchmarkDecoderSuite(backends, files, levels, sizes, tick)
		case bench.TestCompressRatio:
			title, suffix = "ratio", "x"
			results, names = bench.BenchmarkRatioSuite(backends, files, levels, sizes, tick)
		default:
			panic("unknown test")
		}

		// Print all of the results.
		printResults(results, names, backends, title, suffix)
		fmt.Println()
	}
}

func printResults(results [][]bench.Result, names, backends []string, title, suffix string) {
	// Allocate result table.
	cells := make([][]string, 1+len(names))
	for i := range cells {
		cells[i] = make([]string, 1+2*len(backends))
	}

	// Label the first row.
	cells[0][0] = "benchmark"
	for i, c := range backends {
		cells[0][1+2*i] = c + " " + title
		cells[0][2+2*i] = "delta"
	}

	// Insert all rows.
	for j, row := range results {
		cells[1+j][0] = names[j]
		for i, r := range row {
			if r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0) {
				cells[1+j][1+2*i] = fmt.Sprintf("%.2f", r.R) + suffix
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				cells[1+j][2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
	}

	// Compute the maximum lengths.
	maxLens := make([]int, 1+2*len(backends))
	for _, row := range cells {
		for i, s := range row {
			if maxLens[i] < len(s) {
				maxLens[i] = len(s)
			}
		}
	}

	// Print padded versions of all cells.
	for _, row := range cells {
		fmt.Print("\t")
		for i, s := range row {
			switch {
			case i == 0: // Column 0
				row[i] = s + strings.Repeat(" ", maxLens[i]-len(s))
			case i%2 == 1: // Column 1, 3, 5, 7, ...
				row[i] = strings.Repeat(" ", 6+maxLens[i]-len(s)) + s
			case i%2 == 0: // Column 2, 4, 6, 8, ...
				row[i] = strings.Repeat(" ", 2+maxLens[i]-len(s)) + s
			}
			fmt.Print(row[i])
		}
		fmt.Println()
	}
}
