package benchmark

import (
	"fmt"

	"github.com/memomark/memomark/internal/store"
	"github.com/memomark/memomark/internal/trace"
	"github.com/memomark/memomark/internal/workload"
	"github.com/memomark/memomark/memoize"
)

// HitRateResult holds hit rates for a single store backend.
type HitRateResult struct {
	Name  string          `json:"name"`
	Rates map[int]float64 `json:"rates"` // capacity -> hit rate percentage
}

// DefaultCapacities is the store capacity ladder for the hit-rate suite.
var DefaultCapacities = []int{1_024, 4_096, 16_384, 65_536}

// Zipf workload shape for the hit-rate suite.
const (
	ZipfKeySpace = 100_000
	ZipfCalls    = 2_000_000
	ZipfTheta    = 0.8
	ZipfSeed     = 42
)

// RunZipfHitRate measures memoized-call hit rate per backend over a
// synthetic Zipf argument stream at each capacity.
func RunZipfHitRate(capacities []int, keySpace, calls int, theta float64) []HitRateResult {
	keys := workload.ZipfKeys(calls, keySpace, theta, ZipfSeed)
	return replay(capacities, keys)
}

// RunTraceHitRate measures memoized-call hit rate per backend over a
// recorded call trace.
func RunTraceHitRate(capacities []int, path string) ([]HitRateResult, error) {
	keys, err := trace.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load call trace: %w", err)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("call trace %s is empty", path)
	}
	return replay(capacities, keys), nil
}

func replay(capacities []int, keys []string) []HitRateResult {
	backends := store.All()
	results := make([]HitRateResult, 0, len(backends))

	for _, backend := range backends {
		rates := make(map[int]float64)
		for _, capacity := range capacities {
			rates[capacity] = replayOne(backend.New, keys, capacity)
		}
		results = append(results, HitRateResult{Name: backend.Name, Rates: rates})
	}

	return results
}

func replayOne(factory store.Factory, keys []string, capacity int) float64 {
	m := memoize.New(digest, memoize.WithStore(factory(capacity)))
	defer m.Close()

	for _, key := range keys {
		m.Do(key) //nolint:errcheck // digest never fails
	}
	return m.Stats().HitRate()
}
