package benchmark

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/memomark/memomark/internal/store"
	"github.com/memomark/memomark/internal/workload"
	"github.com/memomark/memomark/memoize"
)

// ThroughputResult holds concurrent memoized-call throughput for one backend.
type ThroughputResult struct {
	Name string          `json:"name"`
	QPS  map[int]float64 `json:"qps"` // goroutine count -> calls per second
}

// DefaultThreadCounts is the concurrency ladder for the throughput suite.
var DefaultThreadCounts = []int{1, 8, 16, 32}

// ThroughputCapacity is the store capacity for the throughput suite.
const ThroughputCapacity = 10_000

const (
	throughputWorkloadSize = 1_000_000
	throughputTheta        = 0.99
	measureDuration        = 1 * time.Second
	opsBatchSize           = 1000
)

// RunThroughput measures memoized-call QPS per backend at each goroutine
// count, over a hot Zipf argument stream.
func RunThroughput(threadCounts []int) []ThroughputResult {
	keys := workload.ZipfKeys(throughputWorkloadSize, ThroughputCapacity, throughputTheta, ZipfSeed)

	backends := store.All()
	results := make([]ThroughputResult, 0, len(backends))

	for _, backend := range backends {
		qps := make(map[int]float64)
		for _, threads := range threadCounts {
			qps[threads] = measureQPS(backend.New, keys, threads)
		}
		results = append(results, ThroughputResult{Name: backend.Name, QPS: qps})
	}

	return results
}

func measureQPS(factory store.Factory, keys []string, threads int) float64 {
	m := memoize.New(digest, memoize.WithStore(factory(ThroughputCapacity)))
	defer m.Close()

	// Warm the store so the measurement is dominated by the hit path.
	for _, k := range keys[:ThroughputCapacity] {
		m.Do(k) //nolint:errcheck // digest never fails
	}

	var ops atomic.Int64
	var stop atomic.Bool
	var wg sync.WaitGroup

	workloadLen := len(keys)

	for range threads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; ; {
				for range opsBatchSize {
					m.Do(keys[i%workloadLen]) //nolint:errcheck // digest never fails
					i++
				}
				ops.Add(opsBatchSize)
				if stop.Load() {
					return
				}
			}
		}()
	}

	time.Sleep(measureDuration)
	stop.Store(true)
	wg.Wait()

	return float64(ops.Load()) / measureDuration.Seconds()
}
