package output

import (
	"fmt"
	"os"
	"sort"

	"github.com/memomark/memomark/internal/benchmark"
)

// WriteMarkdown writes benchmark results to a Markdown file.
func WriteMarkdown(filename string, results Results, commandLine string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // best-effort report file

	w := func(format string, args ...any) {
		fmt.Fprintf(f, format, args...)
	}

	w("# memomark Results\n\n")
	w("```\n")
	w("Command: %s\n", commandLine)
	w("Environment: %s/%s, %d CPUs, %s\n", results.MachineInfo.OS, results.MachineInfo.Arch, results.MachineInfo.NumCPU, results.MachineInfo.GoVersion)
	w("```\n\n")

	if len(results.Accuracy) > 0 {
		w("## Estimator Accuracy\n\n")
		writeAccuracyMarkdown(w, results.Accuracy)
	}

	if results.HitRate != nil {
		w("## Hit Rate Benchmarks\n\n")
		writeHitRateMarkdown(w, "Zipf", results.HitRate.Zipf, results.HitRate.Capacities)
		writeHitRateMarkdown(w, "Trace", results.HitRate.Trace, results.HitRate.Capacities)
	}

	if results.Latency != nil {
		w("## Latency Benchmarks\n\n")
		writeLatencyMarkdown(w, results.Latency.Results)
	}

	if results.Throughput != nil {
		w("## Throughput Benchmarks\n\n")
		writeThroughputMarkdown(w, results.Throughput.Results, results.Throughput.Threads)
	}

	if results.Memory != nil && len(results.Memory.Results) > 0 {
		w("## Memory Benchmarks\n\n")
		writeMemoryMarkdown(w, results.Memory.Results)
	}

	if len(results.Rankings) > 0 {
		w("## Overall Rankings\n\n")
		w("| Rank | Backend       | Score | Gold | Silver | Bronze |\n")
		w("|------|---------------|-------|------|--------|--------|\n")
		for _, r := range results.Rankings {
			w("| %4d | %-13s | %5.0f | %4d | %6d | %6d |\n", r.Rank, r.Name, r.Score, r.Gold, r.Silver, r.Bronze)
		}
		w("\n")
	}

	return nil
}

func writeAccuracyMarkdown(w func(string, ...any), data []benchmark.AccuracyResult) {
	w("True value: %.6f\n\n", benchmark.TrueArea)
	w("| Samples    | Iterative | Vectorized | Parallel | Iter err | Vec err | Par err | 1/sqrt(N) | Agree |\n")
	w("|------------|-----------|------------|----------|----------|---------|---------|-----------|-------|\n")
	for _, r := range data {
		w("| %10d | %9.6f | %10.6f | %8.6f | %8.6f | %7.6f | %7.6f | %9.6f | %5v |\n",
			r.Samples, r.Iterative, r.Vectorized, r.Parallel,
			r.IterativeErr, r.VectorizedErr, r.ParallelErr, r.ErrorScale, r.Agreement)
	}
	w("\n")
}

func writeHitRateMarkdown(w func(string, ...any), name string, data []benchmark.HitRateResult, capacities []int) {
	if len(data) == 0 {
		return
	}

	w("### %s\n\n", name)

	w("| Backend       |")
	for _, capacity := range capacities {
		w(" %5dK |", capacity/1024)
	}
	w("    Avg |\n")

	w("|---------------|")
	for range capacities {
		w("--------|")
	}
	w("--------|\n")

	sorted := make([]benchmark.HitRateResult, len(data))
	copy(sorted, data)
	sort.Slice(sorted, func(i, j int) bool {
		return AvgHitRate(sorted[i], capacities) > AvgHitRate(sorted[j], capacities)
	})

	for _, r := range sorted {
		w("| %-13s |", r.Name)
		for _, capacity := range capacities {
			w(" %5.2f%% |", r.Rates[capacity])
		}
		w(" %5.2f%% |\n", AvgHitRate(r, capacities))
	}

	if len(sorted) >= 2 {
		best, second := sorted[0], sorted[1]
		bestAvg := AvgHitRate(best, capacities)
		secondAvg := AvgHitRate(second, capacities)
		pct := (bestAvg - secondAvg) / secondAvg * 100
		w("\n**Winner: %s** (%.2f%% avg, +%.2f%% vs %s)\n", best.Name, bestAvg, pct, second.Name)
	}
	w("\n")
}

func writeLatencyMarkdown(w func(string, ...any), data []benchmark.LatencyResult) {
	if len(data) == 0 {
		return
	}

	sorted := make([]benchmark.LatencyResult, len(data))
	copy(sorted, data)
	sort.Slice(sorted, func(i, j int) bool {
		return AvgLatency(sorted[i]) < AvgLatency(sorted[j])
	})

	w("| Backend       | Hit ns | Hit alloc | Miss ns | Miss alloc | Avg ns |\n")
	w("|---------------|--------|-----------|---------|------------|--------|\n")
	for _, r := range sorted {
		w("| %-13s | %6.0f | %9d | %7.0f | %10d | %6.0f |\n",
			r.Name, r.HitNsOp, r.HitAllocs, r.MissNsOp, r.MissAllocs, AvgLatency(r))
	}

	if len(sorted) >= 2 {
		best, second := sorted[0], sorted[1]
		pct := (AvgLatency(second) - AvgLatency(best)) / AvgLatency(best) * 100
		w("\n**Winner: %s** (%.0f ns avg, %s is %.1f%% slower)\n", best.Name, AvgLatency(best), second.Name, pct)
	}
	w("\n")
}

func writeThroughputMarkdown(w func(string, ...any), data []benchmark.ThroughputResult, threads []int) {
	if len(data) == 0 {
		return
	}

	sorted := make([]benchmark.ThroughputResult, len(data))
	copy(sorted, data)
	sort.Slice(sorted, func(i, j int) bool {
		return AvgQPS(sorted[i]) > AvgQPS(sorted[j])
	})

	w("| Backend       |")
	for _, t := range threads {
		w(" %2dT       |", t)
	}
	w("       Avg |\n")

	w("|---------------|")
	for range threads {
		w("-----------|")
	}
	w("-----------|\n")

	for _, r := range sorted {
		w("| %-13s |", r.Name)
		for _, t := range threads {
			w(" %s |", formatQPS(r.QPS[t]))
		}
		w(" %s |\n", formatQPS(AvgQPS(r)))
	}

	if len(sorted) >= 2 {
		best, second := sorted[0], sorted[1]
		pct := (AvgQPS(best) - AvgQPS(second)) / AvgQPS(second) * 100
		w("\n**Winner: %s** (+%.1f%% vs %s)\n", best.Name, pct, second.Name)
	}
	w("\n")
}

func formatQPS(qps float64) string {
	if qps >= 1_000_000 {
		return fmt.Sprintf("%6.2fM  ", qps/1_000_000)
	}
	return fmt.Sprintf("%6.0fK  ", qps/1_000)
}

func writeMemoryMarkdown(w func(string, ...any), data []benchmark.MemoryResult) {
	w("| Backend       | Entries Kept | Memory (MB) | Overhead (bytes/entry) |\n")
	w("|---------------|--------------|-------------|------------------------|\n")
	for _, r := range data {
		mb := float64(r.Bytes) / 1024 / 1024
		w("| %-13s | %12d | %11.2f | %22d |\n", r.Name, r.Entries, mb, r.BytesPerEntry)
	}
	w("\n")
}
