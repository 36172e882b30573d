package output

import (
	"math"
	"sort"

	"github.com/memomark/memomark/internal/benchmark"
)

// Points awarded by placement: 1st=10, 2nd=7, 3rd=5, 4th=4, 5th=3, 6th=2, 7th=1.
var placementPoints = []float64{10, 7, 5, 4, 3, 2, 1}

// rankedEntry holds a name and score for tie detection.
type rankedEntry struct {
	name  string
	score float64
}

// Round3 rounds to 3 decimal places for tie detection.
func Round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// ComputeRankings turns suite results into an overall standing and a
// per-category medal table. Entries whose scores match to 3 decimal places
// share a medal position; following positions are skipped accordingly.
func ComputeRankings(results Results) ([]Ranking, *MedalTable) {
	scores := make(map[string]float64)
	medals := make(map[string][3]int) // [gold, silver, bronze]

	categoryMedals := make(map[string]map[string][3]int)
	categoryBenchmarks := make(map[string][]BenchmarkMedal)

	// assignPoints expects entries pre-sorted best-first.
	assignPoints := func(category, benchName string, entries []rankedEntry) {
		bm := BenchmarkMedal{Name: benchName}
		pos := 0 // current medal position (0=gold, 1=silver, 2=bronze)
		i := 0

		for i < len(entries) {
			var tied []string
			baseScore := Round3(entries[i].score)
			for i < len(entries) && Round3(entries[i].score) == baseScore {
				tied = append(tied, entries[i].name)
				i++
			}

			for _, n := range tied {
				if pos < len(placementPoints) {
					scores[n] += placementPoints[pos]
				}
				if pos < 3 {
					m := medals[n]
					m[pos]++
					medals[n] = m

					if categoryMedals[category] == nil {
						categoryMedals[category] = make(map[string][3]int)
					}
					cm := categoryMedals[category][n]
					cm[pos]++
					categoryMedals[category][n] = cm
				}
			}

			if pos < 3 {
				switch pos {
				case 0:
					bm.Gold = tied
				case 1:
					bm.Silver = tied
				case 2:
					bm.Bronze = tied
				}
			}

			pos += len(tied)
		}

		categoryBenchmarks[category] = append(categoryBenchmarks[category], bm)
	}

	// Hit rate: rank by average hit rate across capacities (higher is better).
	if results.HitRate != nil {
		hitRateBenchmarks := []struct {
			name string
			data []benchmark.HitRateResult
		}{
			{"Zipf", results.HitRate.Zipf},
			{"Trace", results.HitRate.Trace},
		}
		for _, b := range hitRateBenchmarks {
			if len(b.data) == 0 {
				continue
			}
			sorted := make([]benchmark.HitRateResult, len(b.data))
			copy(sorted, b.data)
			sort.Slice(sorted, func(i, j int) bool {
				return AvgHitRate(sorted[i], results.HitRate.Capacities) > AvgHitRate(sorted[j], results.HitRate.Capacities)
			})
			entries := make([]rankedEntry, len(sorted))
			for i, r := range sorted {
				entries[i] = rankedEntry{r.Name, AvgHitRate(r, results.HitRate.Capacities)}
			}
			assignPoints("Hit Rate", b.name, entries)
		}
	}

	// Latency: rank by the average of hit-path and miss-path ns/op (lower is
	// better).
	if results.Latency != nil && len(results.Latency.Results) > 0 {
		sorted := make([]benchmark.LatencyResult, len(results.Latency.Results))
		copy(sorted, results.Latency.Results)
		sort.Slice(sorted, func(i, j int) bool {
			return AvgLatency(sorted[i]) < AvgLatency(sorted[j])
		})
		entries := make([]rankedEntry, len(sorted))
		for i, r := range sorted {
			entries[i] = rankedEntry{r.Name, AvgLatency(r)}
		}
		assignPoints("Latency", "Memoized Call", entries)
	}

	// Throughput: rank by average QPS across thread counts (higher is better).
	if results.Throughput != nil && len(results.Throughput.Results) > 0 {
		sorted := make([]benchmark.ThroughputResult, len(results.Throughput.Results))
		copy(sorted, results.Throughput.Results)
		sort.Slice(sorted, func(i, j int) bool {
			return AvgQPS(sorted[i]) > AvgQPS(sorted[j])
		})
		entries := make([]rankedEntry, len(sorted))
		for i, r := range sorted {
			entries[i] = rankedEntry{r.Name, AvgQPS(r)}
		}
		assignPoints("Throughput", "Memoized Call", entries)
	}

	// Memory: rank by total bytes (lower is better). Results arrive sorted.
	if results.Memory != nil && len(results.Memory.Results) > 0 {
		entries := make([]rankedEntry, len(results.Memory.Results))
		for i, r := range results.Memory.Results {
			entries[i] = rankedEntry{r.Name, float64(r.Bytes)}
		}
		assignPoints("Memory", "Overhead", entries)
	}

	if len(scores) == 0 {
		return nil, nil
	}

	type backendRank struct {
		name   string
		score  float64
		gold   int
		silver int
		bronze int
	}
	var ranks []backendRank
	for name, score := range scores {
		m := medals[name]
		ranks = append(ranks, backendRank{name, score, m[0], m[1], m[2]})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].score != ranks[j].score {
			return ranks[i].score > ranks[j].score
		}
		if ranks[i].gold != ranks[j].gold {
			return ranks[i].gold > ranks[j].gold
		}
		if ranks[i].silver != ranks[j].silver {
			return ranks[i].silver > ranks[j].silver
		}
		return ranks[i].bronze > ranks[j].bronze
	})

	var overall []Ranking
	for i, r := range ranks {
		overall = append(overall, Ranking{
			Rank:   i + 1,
			Name:   r.name,
			Score:  r.score,
			Gold:   r.gold,
			Silver: r.silver,
			Bronze: r.bronze,
		})
	}

	catOrder := []string{"Hit Rate", "Latency", "Throughput", "Memory"}
	var categories []CategoryMedals
	for _, cat := range catOrder {
		bm := categoryBenchmarks[cat]
		if len(bm) == 0 {
			continue
		}

		cm := categoryMedals[cat]
		catRanks := make([]backendRank, 0, len(cm))
		for name, m := range cm {
			catRanks = append(catRanks, backendRank{
				name:   name,
				gold:   m[0],
				silver: m[1],
				bronze: m[2],
			})
		}
		sort.Slice(catRanks, func(i, j int) bool {
			if catRanks[i].gold != catRanks[j].gold {
				return catRanks[i].gold > catRanks[j].gold
			}
			if catRanks[i].silver != catRanks[j].silver {
				return catRanks[i].silver > catRanks[j].silver
			}
			return catRanks[i].bronze > catRanks[j].bronze
		})

		out := make([]Ranking, len(catRanks))
		for i, r := range catRanks {
			out[i] = Ranking{
				Rank:   i + 1,
				Name:   r.name,
				Gold:   r.gold,
				Silver: r.silver,
				Bronze: r.bronze,
			}
		}

		categories = append(categories, CategoryMedals{
			Name:       cat,
			Benchmarks: bm,
			Rankings:   out,
		})
	}

	return overall, &MedalTable{Categories: categories}
}

// AvgHitRate computes the average hit rate across all capacities.
func AvgHitRate(r benchmark.HitRateResult, capacities []int) float64 {
	var sum float64
	for _, capacity := range capacities {
		sum += r.Rates[capacity]
	}
	return sum / float64(len(capacities))
}

// AvgLatency averages the hit-path and miss-path latencies.
func AvgLatency(r benchmark.LatencyResult) float64 {
	return (r.HitNsOp + r.MissNsOp) / 2
}

// AvgQPS computes the average QPS across all thread counts.
func AvgQPS(r benchmark.ThroughputResult) float64 {
	var sum float64
	for _, qps := range r.QPS {
		sum += qps
	}
	return sum / float64(len(r.QPS))
}
