// Package output renders benchmark results as JSON, Markdown, and HTML, and
// computes the ranked-voting summary across suites.
package output

import "github.com/memomark/memomark/internal/benchmark"

// MachineInfo describes the environment a run was collected on.
type MachineInfo struct {
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	NumCPU      int    `json:"numCpu"`
	GoVersion   string `json:"goVersion"`
	CommandLine string `json:"commandLine"`
}

// HitRateData holds hit-rate suite results.
type HitRateData struct {
	Capacities []int                     `json:"capacities"`
	Zipf       []benchmark.HitRateResult `json:"zipf,omitempty"`
	Trace      []benchmark.HitRateResult `json:"trace,omitempty"`
	TracePath  string                    `json:"tracePath,omitempty"`
}

// LatencyData holds latency suite results.
type LatencyData struct {
	Results []benchmark.LatencyResult `json:"results"`
}

// ThroughputData holds throughput suite results.
type ThroughputData struct {
	Threads []int                        `json:"threads"`
	Results []benchmark.ThroughputResult `json:"results"`
}

// MemoryData holds memory suite results.
type MemoryData struct {
	Results []benchmark.MemoryResult `json:"results"`
	Entries int                      `json:"entries"`
	ValSize int                      `json:"valSize"`
}

// Ranking is one backend's position in the overall or per-category standing.
type Ranking struct {
	Rank   int     `json:"rank"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Gold   int     `json:"gold"`
	Silver int     `json:"silver"`
	Bronze int     `json:"bronze"`
}

// BenchmarkMedal records the medalists of a single benchmark, with ties.
type BenchmarkMedal struct {
	Name   string   `json:"name"`
	Gold   []string `json:"gold,omitempty"`
	Silver []string `json:"silver,omitempty"`
	Bronze []string `json:"bronze,omitempty"`
}

// CategoryMedals groups benchmark medals and standings for one category.
type CategoryMedals struct {
	Name       string           `json:"name"`
	Benchmarks []BenchmarkMedal `json:"benchmarks"`
	Rankings   []Ranking        `json:"rankings"`
}

// MedalTable is the per-category medal breakdown.
type MedalTable struct {
	Categories []CategoryMedals `json:"categories"`
}

// Results aggregates everything a run produced. Accuracy reports estimator
// convergence and is informational: it compares execution strategies, not
// backends, so it stays out of the rankings.
type Results struct {
	Timestamp   string                     `json:"timestamp"`
	MachineInfo MachineInfo                `json:"machineInfo"`
	Accuracy    []benchmark.AccuracyResult `json:"accuracy,omitempty"`
	HitRate     *HitRateData               `json:"hitRate,omitempty"`
	Latency     *LatencyData               `json:"latency,omitempty"`
	Throughput  *ThroughputData            `json:"throughput,omitempty"`
	Memory      *MemoryData                `json:"memory,omitempty"`
	Rankings    []Ranking                  `json:"rankings,omitempty"`
	MedalTable  *MedalTable                `json:"medalTable,omitempty"`
}
