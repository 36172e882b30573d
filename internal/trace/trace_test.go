package trace

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.zst")
	keys := []string{"alpha", "beta", "alpha", "gamma", "alpha"}

	if err := Write(path, keys); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(keys) {
		t.Fatalf("loaded %d keys, want %d", len(got), len(keys))
	}
	for i := range keys {
		if got[i] != keys[i] {
			t.Errorf("position %d: %q, want %q", i, got[i], keys[i])
		}
	}
}

func TestEmptyTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.zst")

	if err := Write(path, nil); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("loaded %d keys from empty trace, want 0", len(got))
	}
}

func TestLongKeys(t *testing.T) {
	// Canonical keys for composite arguments can run long; make sure the
	// line scanner keeps up.
	path := filepath.Join(t.TempDir(), "long.zst")
	keys := []string{
		strings.Repeat("x", 100_000),
		"short",
		strings.Repeat("y", 500_000),
	}

	if err := Write(path, keys); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(keys) {
		t.Fatalf("loaded %d keys, want %d", len(got), len(keys))
	}
	for i := range keys {
		if got[i] != keys[i] {
			t.Errorf("position %d: length %d, want %d", i, len(got[i]), len(keys[i]))
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.zst")); err == nil {
		t.Fatal("expected error for missing trace file")
	}
}
