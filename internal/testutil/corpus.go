// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import "sort"

var corpora = map[string]func(r *Rand, n int) []byte{
	"digits":  genDigits,
	"random":  genRandom,
	"repeats": genRepeats,
	"text":    genText,
	"zeros":   genZeros,
}

// CorpusNames lists the names accepted by Corpus in sorted order.
func CorpusNames() []string {
	var ss []string
	for s := range corpora {
		ss = append(ss, s)
	}
	sort.Strings(ss)
	return ss
}

// Corpus deterministically generates n bytes of the named test corpus.
// It returns nil if no such corpus exists.
func Corpus(name string, n int) []byte {
	gen, ok := corpora[name]
	if !ok {
		return nil
	}
	return gen(NewRand(0), n)
}

// MustCorpus is like Corpus, but panics if the corpus does not exist.
func MustCorpus(name string, n int) []byte {
	b := Corpus(name, n)
	if b == nil {
		panic("unknown corpus: " + name)
	}
	return b
}

func genRandom(r *Rand, n int) []byte { return r.Bytes(n) }
func genZeros(r *Rand, n int) []byte  { return make([]byte, n) }

func genDigits(r *Rand, n int) []byte {
	b := r.Symbols(n, 10)
	for i := range b {
		b[i] += '0'
	}
	return b
}

var words = []string{
	"the", "of", "and", "a", "to", "in", "he", "was", "that", "it", "his",
	"with", "I", "as", "had", "for", "you", "but", "at", "not", "river",
	"boat", "raft", "Tom", "Huck", "Jim", "said", "town", "night", "water",
	"island", "canoe", "judge", "widow", "somebody", "anyway", "reckon",
}

// genText produces English-like prose with the skewed word distribution that
// block-sorting compressors do well on.
func genText(r *Rand, n int) []byte {
	b := make([]byte, 0, n+16)
	for sentence := 0; len(b) < n; sentence++ {
		cnt := 4 + r.Intn(12)
		for i := 0; i < cnt; i++ {
			w := words[r.Intn(len(words))]
			if r.Float32() < 0.5 {
				w = words[r.Intn(len(words)/3)] // Favor common words
			}
			if i > 0 {
				b = append(b, ' ')
			}
			b = append(b, w...)
		}
		b = append(b, ".,;!?"[r.Intn(5)])
		if sentence%7 == 6 {
			b = append(b, '\n')
		} else {
			b = append(b, ' ')
		}
	}
	return b[:n]
}

// genRepeats produces mostly random data where a large bulk of the output is
// a copy of some earlier section. The copies produce long shared contexts in
// the sorted rotations while the random sections keep the alphabet wide.
func genRepeats(r *Rand, n int) []byte {
	var b []byte
	if n == 0 {
		return b
	}

	randLen := func() int {
		p := r.Float32()
		switch {
		case p <= 0.15:
			return 4 + r.Intn(4)
		case p <= 0.30:
			return 8 + r.Intn(8)
		case p <= 0.45:
			return 16 + r.Intn(16)
		case p <= 0.60:
			return 32 + r.Intn(32)
		case p <= 0.75:
			return 64 + r.Intn(64)
		case p <= 0.90:
			return 128 + r.Intn(128)
		default:
			return 256 + r.Intn(256)
		}
	}

	randDist := func() (d int) {
		for d == 0 || d > len(b) {
			// Distances are log-uniform between 1 and 32KiB.
			shift := uint(r.Intn(15))
			d = 1<<shift + r.Intn(1<<shift)
		}
		return d
	}

	writeRand := func(l int) {
		b = append(b, r.Bytes(l)...)
	}

	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(512 + randLen()) // Long copies need a long enough history
	for len(b) < n {
		switch p := r.Float32(); {
		case p <= 0.1:
			writeRand(randLen())
		case p <= 0.9:
			d, l := randDist(), randLen()
			for d <= l {
				d, l = randDist(), randLen()
			}
			writeCopy(d, l)
		default:
			writeCopy(randDist(), randLen())
		}
	}
	return b[:n]
}
