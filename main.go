// memomark benchmarks memoization store backends and Monte-Carlo estimator
// execution strategies.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/memomark/memomark/internal/benchmark"
	"github.com/memomark/memomark/internal/output"
	"github.com/memomark/memomark/internal/store"
)

// validSuites lists all available benchmark suites.
var validSuites = []string{"accuracy", "hitrate", "latency", "throughput", "memory"}

// validTests lists all available test names.
var validTests = []string{
	// accuracy
	"convergence",
	// hitrate
	"zipf", "trace",
	// latency
	"call-latency",
	// throughput
	"call-throughput",
	// memory
	"memory",
}

// suiteFilter holds which suites to run.
var suiteFilter map[string]bool

// testFilter holds which tests to run.
var testFilter map[string]bool

// capacities holds the store capacities to benchmark.
var capacities []int

// threadCounts holds the goroutine counts for throughput benchmarks.
var threadCounts []int

// sampleCounts holds the sample ladder for the accuracy suite.
var sampleCounts []int

// parseIntList parses a comma-separated string of integers with optional multiplier.
func parseIntList(input string, multiplier int) []int {
	var result []int
	for s := range strings.SplitSeq(input, ",") {
		s = strings.TrimSpace(s)
		var value int
		if _, err := fmt.Sscanf(s, "%d", &value); err == nil {
			result = append(result, value*multiplier)
		}
	}
	return result
}

func main() {
	showHelp := flag.Bool("help", false, "Show help message")
	suites := flag.String("suites", "all", "Comma-separated list of benchmark suites: accuracy,hitrate,latency,throughput,memory (default: all)")
	tests := flag.String("tests", "", "Comma-separated list of tests to run across suites (default: all)")
	backends := flag.String("backends", "", "Comma-separated list of store backends to benchmark (default: all)")
	sizes := flag.String("capacities", "", "Comma-separated store capacities in K (e.g., 1,4,16,64)")
	threads := flag.String("threads", "", "Comma-separated goroutine counts for throughput (e.g., 8,16)")
	samples := flag.String("samples", "", "Comma-separated sample counts in K for the accuracy suite (e.g., 1,100,10000)")
	tracePath := flag.String("trace", "", "Path to a recorded call trace for hit-rate replay")
	seed := flag.Uint64("seed", 42, "Seed for the accuracy suite's random sources")
	htmlOut := flag.String("html", "", "Output results to HTML file (e.g., results.html)")
	outDir := flag.String("outdir", "", "Output directory for results (writes results.{html,md,json})")
	openHTML := flag.Bool("open", false, "Open HTML report in web browser after generation")
	flag.Parse()

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	// Parse suites
	suiteFilter = make(map[string]bool)
	if *suites == "all" || *suites == "" {
		for _, s := range validSuites {
			suiteFilter[s] = true
		}
	} else {
		for s := range strings.SplitSeq(*suites, ",") {
			s = strings.TrimSpace(strings.ToLower(s))
			if s != "" {
				suiteFilter[s] = true
			}
		}
	}

	// Apply backend filter
	if *backends != "" {
		var names []string
		for name := range strings.SplitSeq(*backends, ",") {
			names = append(names, strings.TrimSpace(name))
		}
		store.SetFilter(names)
	}

	// Apply test filter
	if *tests != "" {
		testFilter = make(map[string]bool)
		validTestSet := make(map[string]bool)
		for _, t := range validTests {
			validTestSet[t] = true
		}
		for t := range strings.SplitSeq(*tests, ",") {
			t = strings.TrimSpace(strings.ToLower(t))
			if t == "" {
				continue
			}
			if !validTestSet[t] {
				fmt.Fprintf(os.Stderr, "error: unknown test %q\n\nAvailable tests:\n", t)
				for _, vt := range validTests {
					fmt.Fprintf(os.Stderr, "  %s\n", vt)
				}
				os.Exit(1)
			}
			testFilter[t] = true
		}
	}

	capacities = benchmark.DefaultCapacities
	if *sizes != "" {
		capacities = parseIntList(*sizes, 1024)
	}

	threadCounts = benchmark.DefaultThreadCounts
	if *threads != "" {
		threadCounts = parseIntList(*threads, 1)
	}

	sampleCounts = benchmark.DefaultSampleCounts
	if *samples != "" {
		sampleCounts = parseIntList(*samples, 1000)
	}

	printHeader()

	var results output.Results

	if suiteFilter["accuracy"] {
		results.Accuracy = runAccuracySuite(*seed)
	}

	if suiteFilter["hitrate"] {
		results.HitRate = runHitRateSuite(*tracePath)
	}

	if suiteFilter["latency"] {
		results.Latency = runLatencySuite()
	}

	if suiteFilter["throughput"] {
		results.Throughput = runThroughputSuite()
	}

	if suiteFilter["memory"] {
		results.Memory = runMemorySuite()
	}

	results.Rankings, results.MedalTable = output.ComputeRankings(results)
	printOverallRanking(results.Rankings)

	commandLine := "memomark " + strings.Join(os.Args[1:], " ")
	results.MachineInfo = output.MachineInfo{
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		NumCPU:      runtime.NumCPU(),
		GoVersion:   runtime.Version(),
		CommandLine: commandLine,
	}

	// Determine output paths
	var htmlPath, mdPath, jsonPath string
	if *outDir != "" { //nolint:gocritic // ifElseChain: clearer than switch for exclusive conditions
		if err := os.MkdirAll(*outDir, 0o755); err != nil { //nolint:gosec // G301: 0755 is standard dir permission
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		htmlPath = filepath.Join(*outDir, "memomark_results.html")
		mdPath = filepath.Join(*outDir, "memomark_results.md")
		jsonPath = filepath.Join(*outDir, "memomark_results.json")
	} else if *htmlOut != "" {
		htmlPath = *htmlOut
	} else {
		htmlPath = filepath.Join(os.TempDir(), "memomark_results.html")
	}

	if err := output.WriteHTML(htmlPath, results, commandLine); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing HTML: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results: %s\n", htmlPath)

	if mdPath != "" {
		if err := output.WriteMarkdown(mdPath, results, commandLine); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing Markdown: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("         %s\n", mdPath)
	}

	if jsonPath != "" {
		if err := output.WriteJSON(jsonPath, results, commandLine); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("         %s\n", jsonPath)
	}

	if *openHTML {
		if err := openBrowser(htmlPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open browser: %v\n", err)
		}
	}
}

func printUsage() {
	fmt.Println("memomark - Compare memoization store backends and estimator strategies")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  memomark                         Run all benchmarks (default)")
	fmt.Println("  memomark -suites hitrate         Run only hit rate benchmarks")
	fmt.Println("  memomark -suites accuracy,memory Run accuracy and memory benchmarks")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -suites <list>     Comma-separated suites: accuracy,hitrate,latency,throughput,memory (default: all)")
	fmt.Println("  -tests <list>      Comma-separated tests to run across suites (default: all)")
	fmt.Println("  -backends <list>   Comma-separated store backends to benchmark (default: all)")
	fmt.Println("  -capacities <list> Comma-separated store capacities in K (default: 1,4,16,64)")
	fmt.Println("  -threads <list>    Comma-separated goroutine counts for throughput (default: 1,8,16,32)")
	fmt.Println("  -samples <list>    Comma-separated sample counts in K for accuracy (default: 1,100,10000)")
	fmt.Println("  -trace <file>      Recorded call trace to replay in the hitrate suite")
	fmt.Println("  -seed <n>          Seed for the accuracy suite's random sources (default: 42)")
	fmt.Println("  -outdir <dir>      Output directory for memomark_results.{html,md,json}")
	fmt.Println("  -html <file>       Output results to HTML file (default: temp dir)")
	fmt.Println("  -open              Open HTML report in web browser after generation")
	fmt.Println()
	fmt.Println("Available suites and tests:")
	fmt.Println()
	fmt.Println("  accuracy - Estimator convergence (execution strategies, not backends)")
	fmt.Println("    convergence             Iterative vs vectorized vs parallel at a sample ladder")
	fmt.Println()
	fmt.Println("  hitrate - Memoized-call hit rate (store efficiency)")
	fmt.Println("    zipf                    Synthetic Zipf argument stream")
	fmt.Println("    trace                   Recorded call trace replay (-trace)")
	fmt.Println()
	fmt.Println("  latency - Single-threaded memoized-call latency (ns/op)")
	fmt.Println("    call-latency            Hit-path and miss-path calls")
	fmt.Println()
	fmt.Println("  throughput - Multi-threaded memoized-call throughput (QPS)")
	fmt.Println("    call-throughput         Concurrent calls over a hot Zipf stream")
	fmt.Println()
	fmt.Println("  memory - Memory overhead benchmarks (isolated processes)")
	fmt.Println("    memory                  Per-entry memory overhead")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  memomark -suites hitrate -backends otter,lru,unbounded")
	fmt.Println("  memomark -suites accuracy -samples 10,1000 -seed 7")
	fmt.Println("  memomark -suites hitrate -tests trace -trace calls.zst")
	fmt.Println("  memomark -backends otter,theine -html results.html")
	fmt.Println()
	fmt.Println("Available backends:")
	for _, name := range store.AvailableNames() {
		fmt.Printf("  - %s\n", name)
	}
}

const lineWidth = 80

func printHeader() {
	fmt.Println("memomark")
	fmt.Println()

	var suitesRun []string
	for _, s := range validSuites {
		if suiteFilter[s] {
			suitesRun = append(suitesRun, s)
		}
	}

	fmt.Printf("  backends:   %d\n", len(store.AllNames()))
	fmt.Printf("  suites:     %s\n", strings.Join(suitesRun, ", "))

	var sizeStrs []string
	for _, capacity := range capacities {
		sizeStrs = append(sizeStrs, fmt.Sprintf("%dK", capacity/1024))
	}
	fmt.Printf("  capacities: %s\n", strings.Join(sizeStrs, ", "))
	fmt.Println()
}

func printSuite(name, description string) {
	header := fmt.Sprintf("%s: %s ", name, description)
	padding := max(lineWidth-len(header), 4)
	fmt.Printf("%s%s\n\n", header, strings.Repeat("─", padding))
}

func printTest(name, description string) {
	fmt.Printf("  [%s] %s\n\n", name, description)
}

func shouldRunTest(name string) bool {
	if testFilter == nil {
		return true
	}
	return testFilter[name]
}

func runAccuracySuite(seed uint64) []benchmark.AccuracyResult {
	printSuite("accuracy", "estimator convergence")

	if !shouldRunTest("convergence") {
		return nil
	}

	var sampleStrs []string
	for _, n := range sampleCounts {
		sampleStrs = append(sampleStrs, fmt.Sprintf("%d", n))
	}
	printTest("convergence", fmt.Sprintf("samples: %s, %d workers, seed %d", strings.Join(sampleStrs, ", "), benchmark.DefaultWorkers, seed))

	results := benchmark.RunAccuracy(sampleCounts, seed, benchmark.DefaultWorkers)
	printAccuracyTable(results)
	return results
}

func printAccuracyTable(results []benchmark.AccuracyResult) {
	fmt.Printf("  true value: %.6f\n\n", benchmark.TrueArea)
	fmt.Println("  | Samples    | Iterative | Vectorized | Parallel | 1/sqrt(N) | Agree |")
	fmt.Println("  |------------|-----------|------------|----------|-----------|-------|")

	for _, r := range results {
		fmt.Printf("  | %10d | %9.6f | %10.6f | %8.6f | %9.6f | %5v |\n",
			r.Samples, r.Iterative, r.Vectorized, r.Parallel, r.ErrorScale, r.Agreement)
	}
	fmt.Println()
}

func runHitRateSuite(tracePath string) *output.HitRateData {
	printSuite("hitrate", "memoized-call hit rate")

	data := &output.HitRateData{Capacities: capacities}

	if shouldRunTest("zipf") {
		printTest("zipf", fmt.Sprintf("Zipf synthetic (theta=%.1f, %dM calls, %dK argument space)",
			benchmark.ZipfTheta, benchmark.ZipfCalls/1_000_000, benchmark.ZipfKeySpace/1000))
		data.Zipf = benchmark.RunZipfHitRate(capacities, benchmark.ZipfKeySpace, benchmark.ZipfCalls, benchmark.ZipfTheta)
		printHitRateTable(data.Zipf, capacities)
	}

	if shouldRunTest("trace") && tracePath != "" {
		printTest("trace", "recorded call trace: "+tracePath)
		traceResults, err := benchmark.RunTraceHitRate(capacities, tracePath)
		if err != nil {
			fmt.Printf("  error: %v\n\n", err)
		} else {
			data.Trace = traceResults
			data.TracePath = tracePath
			printHitRateTable(traceResults, capacities)
		}
	}

	return data
}

func printHitRateTable(results []benchmark.HitRateResult, capacities []int) {
	sorted := make([]benchmark.HitRateResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return output.AvgHitRate(sorted[i], capacities) > output.AvgHitRate(sorted[j], capacities)
	})

	fmt.Print("  | Backend       |")
	for _, capacity := range capacities {
		fmt.Printf(" %5dK |", capacity/1024)
	}
	fmt.Println("    Avg |")

	fmt.Print("  |---------------|")
	for range capacities {
		fmt.Print("--------|")
	}
	fmt.Println("--------|")

	for _, r := range sorted {
		fmt.Printf("  | %-13s |", r.Name)
		for _, capacity := range capacities {
			fmt.Printf(" %5.2f%% |", r.Rates[capacity])
		}
		fmt.Printf(" %5.2f%% |\n", output.AvgHitRate(r, capacities))
	}

	if len(sorted) >= 2 {
		best := sorted[0]
		second := sorted[1]
		bestAvg := output.AvgHitRate(best, capacities)
		secondAvg := output.AvgHitRate(second, capacities)
		pct := (bestAvg - secondAvg) / secondAvg * 100
		fmt.Printf("\n  winner: %s (%.2f%% avg, +%.2f%% vs %s)\n", best.Name, bestAvg, pct, second.Name)
	}
	fmt.Println()
}

func runLatencySuite() *output.LatencyData {
	printSuite("latency", "single-threaded (ns/op)")

	data := &output.LatencyData{}

	if shouldRunTest("call-latency") {
		printTest("call-latency", "hit-path and miss-path memoized calls")
		data.Results = benchmark.RunLatency()
		printLatencyTable(data.Results)
	}

	return data
}

func printLatencyTable(results []benchmark.LatencyResult) {
	sorted := make([]benchmark.LatencyResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return output.AvgLatency(sorted[i]) < output.AvgLatency(sorted[j])
	})

	fmt.Println("  | Backend       | Hit ns | Hit alloc | Miss ns | Miss alloc | Avg ns |")
	fmt.Println("  |---------------|--------|-----------|---------|------------|--------|")

	for _, r := range sorted {
		fmt.Printf("  | %-13s | %6.0f | %9d | %7.0f | %10d | %6.0f |\n",
			r.Name, r.HitNsOp, r.HitAllocs, r.MissNsOp, r.MissAllocs, output.AvgLatency(r))
	}

	if len(sorted) >= 2 {
		best := sorted[0]
		second := sorted[1]
		pct := (output.AvgLatency(second) - output.AvgLatency(best)) / output.AvgLatency(best) * 100
		fmt.Printf("\n  winner: %s (%.0f ns avg, %s is %.1f%% slower)\n", best.Name, output.AvgLatency(best), second.Name, pct)
	}
	fmt.Println()
}

func runThroughputSuite() *output.ThroughputData {
	threads := threadCounts

	printSuite("throughput", "multi-threaded (QPS)")

	data := &output.ThroughputData{Threads: threads}

	if shouldRunTest("call-throughput") {
		printTest("call-throughput", fmt.Sprintf("concurrent memoized calls, Zipf, %dK store", benchmark.ThroughputCapacity/1024))
		data.Results = benchmark.RunThroughput(threads)
		printThroughputTable(data.Results, threads)
	}

	return data
}

func printThroughputTable(results []benchmark.ThroughputResult, threads []int) {
	sorted := make([]benchmark.ThroughputResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return output.AvgQPS(sorted[i]) > output.AvgQPS(sorted[j])
	})

	fmt.Print("  | Backend       |")
	for _, t := range threads {
		fmt.Printf(" %2dT       |", t)
	}
	fmt.Println("       Avg |")

	fmt.Print("  |---------------|")
	for range threads {
		fmt.Print("-----------|")
	}
	fmt.Println("-----------|")

	for _, r := range sorted {
		fmt.Printf("  | %-13s |", r.Name)
		for _, t := range threads {
			printQPS(r.QPS[t])
		}
		printQPS(output.AvgQPS(r))
		fmt.Println()
	}

	if len(sorted) >= 2 {
		best := sorted[0]
		second := sorted[1]
		bestAvg := output.AvgQPS(best)
		secondAvg := output.AvgQPS(second)
		pct := (bestAvg - secondAvg) / secondAvg * 100
		fmt.Printf("\n  winner: %s (+%.1f%% vs %s)\n", best.Name, pct, second.Name)
	}
	fmt.Println()
}

func printQPS(qps float64) {
	if qps >= 1_000_000 {
		fmt.Printf(" %6.2fM   |", qps/1_000_000)
	} else {
		fmt.Printf(" %6.0fK   |", qps/1_000)
	}
}

func runMemorySuite() *output.MemoryData {
	entries := benchmark.DefaultMemoryEntries
	valSize := benchmark.DefaultValueSize

	printSuite("memory", "overhead per entry (isolated processes)")

	if !shouldRunTest("memory") {
		return nil
	}

	printTest("memory", fmt.Sprintf("%d entries, %d byte results", entries, valSize))

	results, err := benchmark.RunMemory(entries, valSize)
	if err != nil {
		fmt.Printf("  error: %v\n\n", err)
		return nil
	}

	fmt.Println("  | Backend       | Entries Kept | Memory (MB) | Overhead (bytes/entry) |")
	fmt.Println("  |---------------|--------------|-------------|------------------------|")

	for _, r := range results {
		mb := float64(r.Bytes) / 1024 / 1024
		fmt.Printf("  | %-13s | %12d | %11.2f | %22d |\n",
			r.Name, r.Entries, mb, r.BytesPerEntry)
	}

	if len(results) >= 2 {
		best := results[0]
		second := results[1]
		savings := float64(second.Bytes-best.Bytes) / float64(second.Bytes) * 100
		fmt.Printf("\n  winner: %s (%.1f%% less memory vs %s)\n", best.Name, savings, second.Name)
	}
	fmt.Println()

	return &output.MemoryData{Results: results, Entries: entries, ValSize: valSize}
}

func printOverallRanking(rankings []output.Ranking) {
	if len(rankings) == 0 {
		return
	}

	printSuite("summary", "ranked voting across all tests")

	for i := 0; i < len(rankings) && i < 3; i++ {
		r := rankings[i]
		fmt.Printf("  #%d  %s (%.0f points)\n", r.Rank, r.Name, r.Score)
	}
	fmt.Println()
}

// openBrowser opens the specified path in the default web browser.
func openBrowser(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path) //nolint:noctx // trusted command, fire-and-forget
	case "linux":
		cmd = exec.Command("xdg-open", path) //nolint:noctx // trusted command, fire-and-forget
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path) //nolint:noctx // trusted command, fire-and-forget
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
