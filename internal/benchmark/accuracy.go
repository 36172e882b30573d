// Package benchmark implements the memomark suite runners.
package benchmark

import (
	"math"

	"github.com/memomark/memomark/montecarlo"
)

// TrueArea is the exact value of the default integrand's area on [0,1].
const TrueArea = 1.0 / 3.0

// DefaultSampleCounts is the sample ladder for the accuracy suite.
var DefaultSampleCounts = []int{1_000, 100_000, 10_000_000}

// DefaultWorkers is the worker count for the partitioned strategy.
const DefaultWorkers = 8

// AccuracyResult holds estimator results for one sample count.
type AccuracyResult struct {
	Samples       int     `json:"samples"`
	Iterative     float64 `json:"iterative"`
	Vectorized    float64 `json:"vectorized"`
	Parallel      float64 `json:"parallel"`
	IterativeErr  float64 `json:"iterativeErr"`
	VectorizedErr float64 `json:"vectorizedErr"`
	ParallelErr   float64 `json:"parallelErr"`
	ErrorScale    float64 `json:"errorScale"` // 1/sqrt(n), the expected error scale
	Agreement     bool    `json:"agreement"`  // iterative == vectorized under the shared seed
}

// RunAccuracy runs every execution strategy at each sample count. The
// iterative and vectorized strategies draw from identically seeded sources,
// so their hit counts must match exactly; the parallel strategy uses
// per-worker streams and is checked only for convergence.
func RunAccuracy(sampleCounts []int, seed uint64, workers int) []AccuracyResult {
	est := montecarlo.New(montecarlo.Square)
	results := make([]AccuracyResult, 0, len(sampleCounts))

	for _, n := range sampleCounts {
		iter, _ := est.Iterative(montecarlo.NewSource(seed), n)
		vec, _ := est.Vectorized(montecarlo.NewSource(seed), n)
		par, _ := est.Parallel(seed, workers, n)

		results = append(results, AccuracyResult{
			Samples:       n,
			Iterative:     iter,
			Vectorized:    vec,
			Parallel:      par,
			IterativeErr:  math.Abs(iter - TrueArea),
			VectorizedErr: math.Abs(vec - TrueArea),
			ParallelErr:   math.Abs(par - TrueArea),
			ErrorScale:    1 / math.Sqrt(float64(n)),
			Agreement:     iter == vec,
		})
	}

	return results
}
