package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"

	"github.com/memomark/memomark/internal/store"
)

// MemoryResult holds memory usage for one store backend.
type MemoryResult struct {
	Name          string `json:"name"`
	Entries       int    `json:"entries"`
	Bytes         uint64 `json:"bytes"`
	BytesPerEntry int64  `json:"bytesPerEntry"`
	BaselineBytes uint64 `json:"baselineBytes"`
}

type probeOutput struct {
	Name    string `json:"name"`
	Error   string `json:"error,omitempty"`
	Entries int    `json:"entries"`
	Bytes   uint64 `json:"bytes"`
}

// DefaultMemoryEntries is the entry count for memory benchmarks.
const DefaultMemoryEntries = 32768

// DefaultValueSize is the memoized-result size in bytes.
const DefaultValueSize = 1024

// RunMemory measures per-entry memory overhead for every backend. Each
// backend runs in its own probe process so allocator state from one cannot
// pollute another's measurement.
func RunMemory(entries, valSize int) ([]MemoryResult, error) {
	binPath := "./memomark-probe"
	buildCmd := exec.Command("go", "build", "-o", binPath, "./cmd/memprobe") //nolint:noctx // trusted command
	if out, err := buildCmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("build memory probe: %w\n%s", err, out)
	}
	defer os.Remove(binPath) //nolint:errcheck // best-effort cleanup

	names := store.AllNames()
	results := make([]MemoryResult, 0, len(names))

	for _, name := range names {
		res, err := runProbe(binPath, name, entries, valSize)
		if err != nil {
			fmt.Printf("  %s: error: %v\n", name, err)
			continue
		}
		results = append(results, res)
	}

	// Baseline holds the key and value data with no store around it.
	baseline, err := runProbe(binPath, "baseline", entries, valSize)
	if err != nil {
		return nil, fmt.Errorf("baseline probe: %w", err)
	}

	for i := range results {
		results[i].BaselineBytes = baseline.Bytes
		if results[i].Entries > 0 {
			diff := int64(results[i].Bytes) - int64(baseline.Bytes) //nolint:gosec // safe conversion
			results[i].BytesPerEntry = diff / int64(results[i].Entries)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Bytes < results[j].Bytes
	})

	return results, nil
}

func runProbe(binPath, backend string, entries, valSize int) (MemoryResult, error) {
	cmd := exec.Command(binPath, //nolint:gosec,noctx // trusted binary path
		"-backend", backend,
		"-entries", strconv.Itoa(entries),
		"-valsize", strconv.Itoa(valSize),
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return MemoryResult{}, fmt.Errorf("run %s: %w\n%s", backend, err, out)
	}

	var res probeOutput
	if err := json.Unmarshal(out, &res); err != nil {
		return MemoryResult{}, fmt.Errorf("parse output for %s: %w\n%s", backend, err, out)
	}

	if res.Error != "" {
		return MemoryResult{}, fmt.Errorf("%s: %s", backend, res.Error)
	}

	return MemoryResult{
		Name:    res.Name,
		Entries: res.Entries,
		Bytes:   res.Bytes,
	}, nil
}
