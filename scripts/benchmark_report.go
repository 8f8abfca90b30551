// Command benchmark_report turns `go test -bench` output for the mem
// primitives into a markdown table comparing each primitive against the
// standard library baseline it replaces.
//
//	go test -bench . -benchmem ./mem | go run ./scripts/benchmark_report.go
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// memImpl is the sub-benchmark label of the safemem implementation. Any
// other label is treated as the baseline.
const memImpl = "mem"

// BenchmarkResult is one parsed benchmark line.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Size        int
	Impl        string
	Iterations  int
	NsPerOp     float64
	MBPerSec    float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// Comparison pairs the mem result with its baseline for one operation and size.
type Comparison struct {
	Operation string
	Size      int
	Baseline  string
	MemNs     float64
	BaseNs    float64
	MemMBs    float64
	MemAllocs int64
	Ratio     float64 // BaseNs / MemNs; above 1 means mem is faster
	MemOnly   bool
}

var (
	inputFile  = flag.String("input", "", "Input file with benchmark output (stdin if not specified)")
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

// BenchmarkCopy/mem/256-8  1000000  12.5 ns/op  20480.00 MB/s  0 B/op  0 allocs/op
var benchmarkLine = regexp.MustCompile(
	`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+MB/s)?(?:\s+(\d+)\s+B/op)?(?:\s+(\d+)\s+allocs/op)?`,
)

func main() {
	flag.Parse()

	var in io.Reader = os.Stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	results := parseBenchmarks(bufio.NewScanner(in))
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	report := renderReport(compare(results), time.Now())

	if *outputFile == "" {
		fmt.Fprint(os.Stdout, report)
		return
	}
	if err := os.WriteFile(*outputFile, []byte(report), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	for scanner.Scan() {
		line := scanner.Text()

		// go test -json wraps each output line in an event.
		var event map[string]any
		if err := json.Unmarshal([]byte(line), &event); err == nil {
			if output, ok := event["Output"].(string); ok {
				line = output
			}
		}

		m := benchmarkLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		op, impl, size, ok := splitName(m[1])
		if !ok {
			continue
		}

		r := BenchmarkResult{Name: m[1], Operation: op, Impl: impl, Size: size}
		r.Iterations, _ = strconv.Atoi(m[2])
		r.NsPerOp, _ = strconv.ParseFloat(m[3], 64)
		if m[4] != "" {
			r.MBPerSec, _ = strconv.ParseFloat(m[4], 64)
		}
		if m[5] != "" {
			r.BytesPerOp, _ = strconv.ParseInt(m[5], 10, 64)
		}
		if m[6] != "" {
			r.AllocsPerOp, _ = strconv.ParseInt(m[6], 10, 64)
		}
		results = append(results, r)
	}

	return results
}

// splitName parses Benchmark<Op>/<impl>/<size>-<procs>.
func splitName(name string) (op, impl string, size int, ok bool) {
	parts := strings.Split(name, "/")
	if len(parts) != 3 {
		return "", "", 0, false
	}
	last := parts[2]
	if i := strings.LastIndex(last, "-"); i > 0 {
		last = last[:i]
	}
	size, err := strconv.Atoi(last)
	if err != nil {
		return "", "", 0, false
	}
	return strings.TrimPrefix(parts[0], "Benchmark"), parts[1], size, true
}

func compare(results []BenchmarkResult) []Comparison {
	type key struct {
		op   string
		size int
	}
	grouped := make(map[key]map[string]BenchmarkResult)
	for _, r := range results {
		k := key{r.Operation, r.Size}
		if grouped[k] == nil {
			grouped[k] = make(map[string]BenchmarkResult)
		}
		grouped[k][r.Impl] = r
	}

	var out []Comparison
	for k, impls := range grouped {
		m, ok := impls[memImpl]
		if !ok {
			continue
		}
		c := Comparison{
			Operation: k.op,
			Size:      k.size,
			MemNs:     m.NsPerOp,
			MemMBs:    m.MBPerSec,
			MemAllocs: m.AllocsPerOp,
			MemOnly:   true,
		}
		for impl, base := range impls {
			if impl == memImpl {
				continue
			}
			c.Baseline = impl
			c.BaseNs = base.NsPerOp
			c.MemOnly = false
			if m.NsPerOp > 0 {
				c.Ratio = base.NsPerOp / m.NsPerOp
			}
			break
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Operation != out[j].Operation {
			return out[i].Operation < out[j].Operation
		}
		return out[i].Size < out[j].Size
	})
	return out
}

func renderReport(comparisons []Comparison, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# safemem Benchmark Report\n\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	faster, slower, total := 0, 0, 0.0
	paired := 0
	for _, c := range comparisons {
		if c.MemOnly {
			continue
		}
		paired++
		total += c.Ratio
		switch {
		case c.Ratio > 1:
			faster++
		case c.Ratio < 1:
			slower++
		}
	}

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- **Benchmarks**: %d\n", len(comparisons))
	fmt.Fprintf(&sb, "- **With baseline**: %d\n", paired)
	if paired > 0 {
		fmt.Fprintf(&sb, "  - mem faster: %d\n", faster)
		fmt.Fprintf(&sb, "  - baseline faster: %d\n", slower)
		fmt.Fprintf(&sb, "  - Average ratio: **%.2fx**\n", total/float64(paired))
	}
	sb.WriteString("\n")

	sb.WriteString("## Results\n\n")
	sb.WriteString("| Operation | Size | mem (ns/op) | baseline | baseline (ns/op) | Ratio | mem MB/s | Allocs |\n")
	sb.WriteString("|-----------|------|-------------|----------|------------------|-------|----------|--------|\n")
	for _, c := range comparisons {
		if c.MemOnly {
			fmt.Fprintf(&sb, "| %s | %s | %s | *none* | | | %s | %d |\n",
				c.Operation, formatBytes(int64(c.Size)), formatNumber(c.MemNs),
				formatNumber(c.MemMBs), c.MemAllocs)
			continue
		}
		mark := "✓"
		if c.Ratio < 1 {
			mark = "✗"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %.2fx %s | %s | %d |\n",
			c.Operation, formatBytes(int64(c.Size)), formatNumber(c.MemNs),
			c.Baseline, formatNumber(c.BaseNs), c.Ratio, mark,
			formatNumber(c.MemMBs), c.MemAllocs)
	}
	sb.WriteString("\n")

	sb.WriteString("## Notes\n\n")
	sb.WriteString("- **Ratio > 1**: mem is faster than the baseline ✓\n")
	sb.WriteString("- **Ratio < 1**: the baseline is faster ✗\n")
	sb.WriteString("- mem primitives carry bounds and overlap checks the baselines do not\n")

	return sb.String()
}

func formatNumber(n float64) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.2fM", n/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", n/1000)
	case n < 10:
		return fmt.Sprintf("%.2f", n)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1024*1024:
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	case b >= 1024:
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
