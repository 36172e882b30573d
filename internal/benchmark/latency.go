package benchmark

import (
	"strconv"
	"testing"

	"github.com/memomark/memomark/internal/store"
	"github.com/memomark/memomark/memoize"
)

// LatencyResult holds single-threaded memoized-call latency for one backend.
type LatencyResult struct {
	Name       string  `json:"name"`
	HitNsOp    float64 `json:"hitNsOp"`    // nanoseconds per cached call
	MissNsOp   float64 `json:"missNsOp"`   // nanoseconds per call under heavy eviction
	HitAllocs  int64   `json:"hitAllocs"`  // allocations per cached call
	MissAllocs int64   `json:"missAllocs"` // allocations per call under heavy eviction
}

const latencyCapacity = 10_000

// RunLatency benchmarks the hit path (pre-warmed keys) and the miss path
// (a 20x keyspace that keeps every bounded backend evicting) per backend.
func RunLatency() []LatencyResult {
	backends := store.All()
	results := make([]LatencyResult, 0, len(backends))

	// Pre-generate keys once for all benchmarks
	keys := make([]string, latencyCapacity)
	for i := range latencyCapacity {
		keys[i] = strconv.Itoa(i)
	}
	churnKeys := make([]string, latencyCapacity*20)
	for i := range len(churnKeys) {
		churnKeys[i] = strconv.Itoa(i)
	}

	for _, backend := range backends {
		hitResult := testing.Benchmark(func(b *testing.B) {
			benchHit(b, backend.New, keys)
		})
		missResult := testing.Benchmark(func(b *testing.B) {
			benchMiss(b, backend.New, churnKeys)
		})

		results = append(results, LatencyResult{
			Name:       backend.Name,
			HitNsOp:    float64(hitResult.NsPerOp()),
			MissNsOp:   float64(missResult.NsPerOp()),
			HitAllocs:  hitResult.AllocsPerOp(),
			MissAllocs: missResult.AllocsPerOp(),
		})
	}

	return results
}

func benchHit(b *testing.B, factory store.Factory, keys []string) {
	m := memoize.New(digest, memoize.WithStore(factory(latencyCapacity)))
	defer m.Close()

	for _, k := range keys {
		m.Do(k) //nolint:errcheck // digest never fails
	}

	b.ResetTimer()
	for i := range b.N {
		m.Do(keys[i%latencyCapacity]) //nolint:errcheck // digest never fails
	}
}

func benchMiss(b *testing.B, factory store.Factory, keys []string) {
	m := memoize.New(digest, memoize.WithStore(factory(latencyCapacity)))
	defer m.Close()

	keySpace := len(keys)
	b.ResetTimer()
	for i := range b.N {
		m.Do(keys[i%keySpace]) //nolint:errcheck // digest never fails
	}
}
