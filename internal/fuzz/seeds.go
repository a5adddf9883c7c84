package fuzztests

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// maxInput bounds both seeds and fuzzer-generated inputs.
const maxInput = 64 << 10

// clamp copies at most maxInput bytes of b.
func clamp(b []byte) []byte {
	return bytes.Clone(b[:min(len(b), maxInput)])
}

// corpus reads the shared testdata/*.calc programs.
func corpus(tb testing.TB) [][]byte {
	tb.Helper()
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "*.calc"))
	if err != nil {
		tb.Fatal(err)
	}
	var out [][]byte
	for _, p := range paths {
		src, err := os.ReadFile(p) // #nosec G304 -- fixed testdata directory
		if err != nil {
			tb.Fatal(err)
		}
		out = append(out, src)
	}
	return out
}

// addCorpusSeeds seeds f with whole files.
func addCorpusSeeds(f *testing.F) {
	for _, src := range corpus(f) {
		f.Add(clamp(src))
	}
	f.Add([]byte{})
	f.Add([]byte("1 + 2\n"))
}

// addLineSeeds seeds f with every line of every file.
func addLineSeeds(f *testing.F) {
	for _, src := range corpus(f) {
		for line := range bytes.SplitSeq(src, []byte{'\n'}) {
			f.Add(clamp(line))
		}
	}
	f.Add([]byte("-0 % +0"))
	f.Add([]byte("\t1000000000 - 1\r"))
}
