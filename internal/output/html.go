package output

import (
	"fmt"
	"html/template"
	"os"
	"sort"
	"time"

	"github.com/memomark/memomark/internal/benchmark"
)

// htmlReport is the view model for the HTML template: every table is
// pre-rendered into headers and rows so the template stays dumb.
type htmlReport struct {
	Title       string
	Timestamp   string
	CommandLine string
	Machine     MachineInfo
	Sections    []htmlSection
}

type htmlSection struct {
	Name   string
	Tables []htmlTable
}

type htmlTable struct {
	Caption string
	Header  []string
	Rows    [][]string
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, sans-serif; margin: 2rem auto; max-width: 70rem; color: #222; }
h1 { border-bottom: 2px solid #ddd; padding-bottom: .3rem; }
table { border-collapse: collapse; margin: 1rem 0; }
caption { text-align: left; font-weight: 600; padding-bottom: .3rem; }
th, td { border: 1px solid #ccc; padding: .3rem .6rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
tr:nth-child(even) { background: #f7f7f7; }
.meta { color: #666; font-size: .85rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">{{.Timestamp}} &middot; {{.Machine.OS}}/{{.Machine.Arch}}, {{.Machine.NumCPU}} CPUs, {{.Machine.GoVersion}}<br>{{.CommandLine}}</p>
{{range .Sections}}
<h2>{{.Name}}</h2>
{{range .Tables}}
<table>
{{if .Caption}}<caption>{{.Caption}}</caption>{{end}}
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</table>
{{end}}
{{end}}
</body>
</html>
`))

// WriteHTML writes benchmark results to an HTML report.
func WriteHTML(filename string, results Results, commandLine string) error {
	report := htmlReport{
		Title:       "memomark Results",
		Timestamp:   time.Now().Format(time.RFC1123),
		CommandLine: commandLine,
		Machine:     results.MachineInfo,
	}

	if len(results.Accuracy) > 0 {
		report.Sections = append(report.Sections, htmlSection{
			Name:   "Estimator Accuracy",
			Tables: []htmlTable{accuracyTable(results.Accuracy)},
		})
	}
	if results.HitRate != nil {
		section := htmlSection{Name: "Hit Rate"}
		if len(results.HitRate.Zipf) > 0 {
			section.Tables = append(section.Tables, hitRateTable("Zipf", results.HitRate.Zipf, results.HitRate.Capacities))
		}
		if len(results.HitRate.Trace) > 0 {
			section.Tables = append(section.Tables, hitRateTable("Trace", results.HitRate.Trace, results.HitRate.Capacities))
		}
		if len(section.Tables) > 0 {
			report.Sections = append(report.Sections, section)
		}
	}
	if results.Latency != nil && len(results.Latency.Results) > 0 {
		report.Sections = append(report.Sections, htmlSection{
			Name:   "Latency",
			Tables: []htmlTable{latencyTable(results.Latency.Results)},
		})
	}
	if results.Throughput != nil && len(results.Throughput.Results) > 0 {
		report.Sections = append(report.Sections, htmlSection{
			Name:   "Throughput",
			Tables: []htmlTable{throughputTable(results.Throughput.Results, results.Throughput.Threads)},
		})
	}
	if results.Memory != nil && len(results.Memory.Results) > 0 {
		report.Sections = append(report.Sections, htmlSection{
			Name:   "Memory",
			Tables: []htmlTable{memoryTable(results.Memory.Results)},
		})
	}
	if len(results.Rankings) > 0 {
		report.Sections = append(report.Sections, htmlSection{
			Name:   "Overall Rankings",
			Tables: []htmlTable{rankingTable(results.Rankings)},
		})
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // template error is the one that matters

	return reportTemplate.Execute(f, report)
}

func accuracyTable(data []benchmark.AccuracyResult) htmlTable {
	t := htmlTable{
		Caption: fmt.Sprintf("True value %.6f", benchmark.TrueArea),
		Header:  []string{"Samples", "Iterative", "Vectorized", "Parallel", "1/sqrt(N)", "Agree"},
	}
	for _, r := range data {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", r.Samples),
			fmt.Sprintf("%.6f", r.Iterative),
			fmt.Sprintf("%.6f", r.Vectorized),
			fmt.Sprintf("%.6f", r.Parallel),
			fmt.Sprintf("%.6f", r.ErrorScale),
			fmt.Sprintf("%v", r.Agreement),
		})
	}
	return t
}

func hitRateTable(name string, data []benchmark.HitRateResult, capacities []int) htmlTable {
	t := htmlTable{Caption: name, Header: []string{"Backend"}}
	for _, capacity := range capacities {
		t.Header = append(t.Header, fmt.Sprintf("%dK", capacity/1024))
	}
	t.Header = append(t.Header, "Avg")

	sorted := make([]benchmark.HitRateResult, len(data))
	copy(sorted, data)
	sort.Slice(sorted, func(i, j int) bool {
		return AvgHitRate(sorted[i], capacities) > AvgHitRate(sorted[j], capacities)
	})

	for _, r := range sorted {
		row := []string{r.Name}
		for _, capacity := range capacities {
			row = append(row, fmt.Sprintf("%.2f%%", r.Rates[capacity]))
		}
		row = append(row, fmt.Sprintf("%.2f%%", AvgHitRate(r, capacities)))
		t.Rows = append(t.Rows, row)
	}
	return t
}

func latencyTable(data []benchmark.LatencyResult) htmlTable {
	sorted := make([]benchmark.LatencyResult, len(data))
	copy(sorted, data)
	sort.Slice(sorted, func(i, j int) bool {
		return AvgLatency(sorted[i]) < AvgLatency(sorted[j])
	})

	t := htmlTable{Header: []string{"Backend", "Hit ns", "Hit allocs", "Miss ns", "Miss allocs", "Avg ns"}}
	for _, r := range sorted {
		t.Rows = append(t.Rows, []string{
			r.Name,
			fmt.Sprintf("%.0f", r.HitNsOp),
			fmt.Sprintf("%d", r.HitAllocs),
			fmt.Sprintf("%.0f", r.MissNsOp),
			fmt.Sprintf("%d", r.MissAllocs),
			fmt.Sprintf("%.0f", AvgLatency(r)),
		})
	}
	return t
}

func throughputTable(data []benchmark.ThroughputResult, threads []int) htmlTable {
	sorted := make([]benchmark.ThroughputResult, len(data))
	copy(sorted, data)
	sort.Slice(sorted, func(i, j int) bool {
		return AvgQPS(sorted[i]) > AvgQPS(sorted[j])
	})

	t := htmlTable{Header: []string{"Backend"}}
	for _, th := range threads {
		t.Header = append(t.Header, fmt.Sprintf("%dT", th))
	}
	t.Header = append(t.Header, "Avg")

	for _, r := range sorted {
		row := []string{r.Name}
		for _, th := range threads {
			row = append(row, formatQPS(r.QPS[th]))
		}
		row = append(row, formatQPS(AvgQPS(r)))
		t.Rows = append(t.Rows, row)
	}
	return t
}

func memoryTable(data []benchmark.MemoryResult) htmlTable {
	t := htmlTable{Header: []string{"Backend", "Entries kept", "Memory (MB)", "Overhead (bytes/entry)"}}
	for _, r := range data {
		t.Rows = append(t.Rows, []string{
			r.Name,
			fmt.Sprintf("%d", r.Entries),
			fmt.Sprintf("%.2f", float64(r.Bytes)/1024/1024),
			fmt.Sprintf("%d", r.BytesPerEntry),
		})
	}
	return t
}

func rankingTable(rankings []Ranking) htmlTable {
	t := htmlTable{Header: []string{"Rank", "Backend", "Score", "Gold", "Silver", "Bronze"}}
	for _, r := range rankings {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", r.Rank),
			r.Name,
			fmt.Sprintf("%.0f", r.Score),
			fmt.Sprintf("%d", r.Gold),
			fmt.Sprintf("%d", r.Silver),
			fmt.Sprintf("%d", r.Bronze),
		})
	}
	return t
}
