package workload

import (
	"strconv"
	"testing"
)

func TestZipfIntsDeterministic(t *testing.T) {
	a := ZipfInts(10_000, 1000, 0.8, 42)
	b := ZipfInts(10_000, 1000, 0.8, 42)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d: %d vs %d, want identical streams for equal seeds", i, a[i], b[i])
		}
	}
}

func TestZipfIntsSeedsDiffer(t *testing.T) {
	a := ZipfInts(1000, 1000, 0.8, 1)
	b := ZipfInts(1000, 1000, 0.8, 2)

	same := 0
	for i := range a {
		if a[i] == b[i] {
			same++
		}
	}
	if same == len(a) {
		t.Error("different seeds produced identical streams")
	}
}

func TestZipfIntsRange(t *testing.T) {
	keySpace := 500
	for _, v := range ZipfInts(50_000, keySpace, 0.99, 7) {
		if v < 0 || v >= keySpace {
			t.Fatalf("value %d outside [0, %d)", v, keySpace)
		}
	}
}

func TestZipfIntsSkew(t *testing.T) {
	// With theta 0.99, a small head of hot values should dominate the stream.
	const n = 100_000
	const keySpace = 10_000
	args := ZipfInts(n, keySpace, 0.99, 42)

	counts := make(map[int]int)
	for _, v := range args {
		counts[v]++
	}

	head := 0
	for v := range keySpace / 100 { // hottest 1% of the value space
		head += counts[v]
	}
	if frac := float64(head) / n; frac < 0.3 {
		t.Errorf("hottest 1%% of values covers %.1f%% of calls, want well above uniform", frac*100)
	}

	if len(counts) < keySpace/100 {
		t.Errorf("only %d distinct values generated, stream suspiciously narrow", len(counts))
	}
}

func TestZipfKeys(t *testing.T) {
	ints := ZipfInts(1000, 100, 0.8, 9)
	keys := ZipfKeys(1000, 100, 0.8, 9)

	if len(keys) != len(ints) {
		t.Fatalf("len(keys) = %d, want %d", len(keys), len(ints))
	}
	for i, v := range ints {
		if want := strconv.Itoa(v); keys[i] != want {
			t.Fatalf("position %d: key %q, want %q", i, keys[i], want)
		}
	}
}
