// Package trace records and replays memoized-call argument traces. A trace
// is a zstd-compressed file holding one canonical argument key per line, so
// a production call pattern can be captured once and replayed through the
// hit-rate suite.
package trace

import (
	"bufio"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// maxLineBytes bounds a single trace key (canonical keys for composite
// arguments can be long).
const maxLineBytes = 1 << 20

// Write stores keys as a compressed trace at path.
func Write(path string, keys []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace: %w", err)
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close() //nolint:errcheck,gosec // nothing written yet
		return fmt.Errorf("create zstd encoder: %w", err)
	}

	w := bufio.NewWriter(enc)
	for _, key := range keys {
		if _, err := w.WriteString(key); err != nil {
			enc.Close() //nolint:errcheck,gosec // already failing
			f.Close()   //nolint:errcheck,gosec // already failing
			return fmt.Errorf("write trace: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			enc.Close() //nolint:errcheck,gosec // already failing
			f.Close()   //nolint:errcheck,gosec // already failing
			return fmt.Errorf("write trace: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush trace: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close zstd encoder: %w", err)
	}
	return f.Close()
}

// Load replays a recorded trace, returning keys in call order. Empty lines
// are skipped.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var keys []string
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			keys = append(keys, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan trace: %w", err)
	}
	return keys, nil
}
