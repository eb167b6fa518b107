package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pathwalk/pathwalk/internal/logging"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const maxLine = 1 << 20

type Summary struct {
	Total       int            `json:"total" yaml:"total"`
	Succeeded   int            `json:"succeeded" yaml:"succeeded"`
	Failed      int            `json:"failed" yaml:"failed"`
	Truncated   int            `json:"truncated" yaml:"truncated"`
	RateLimited int            `json:"rate_limited" yaml:"rate_limited"`
	Start       time.Time      `json:"start" yaml:"start"`
	End         time.Time      `json:"end" yaml:"end"`
	Ops         []CountItem    `json:"ops" yaml:"ops"`
	Styles      []CountItem    `json:"styles" yaml:"styles"`
	Statuses    []CountItem    `json:"statuses" yaml:"statuses"`
	TopErrors   []CountItem    `json:"top_errors" yaml:"top_errors"`
	TopLimited  []CountItem    `json:"top_rate_limited" yaml:"top_rate_limited"`
	Latency     LatencySummary `json:"latency" yaml:"latency"`
}

type CountItem struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

type LatencySummary struct {
	P50 float64 `json:"p50" yaml:"p50"`
	P95 float64 `json:"p95" yaml:"p95"`
	P99 float64 `json:"p99" yaml:"p99"`
}

type Reader struct {
	Since time.Time
	// Op keeps only entries for one operation when set.
	Op string
}

func (r *Reader) Read(path string) ([]logging.Op, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open op log")
	}
	defer file.Close()
	return r.ReadFrom(file)
}

func (r *Reader) ReadFrom(in io.Reader) ([]logging.Op, error) {
	var entries []logging.Op
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var op logging.Op
		if err := json.Unmarshal(line, &op); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		if !r.Since.IsZero() && op.Timestamp.Before(r.Since) {
			continue
		}
		if r.Op != "" && op.Op != r.Op {
			continue
		}
		entries = append(entries, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read op log")
	}
	return entries, nil
}

func Summarize(entries []logging.Op) Summary {
	var summary Summary
	if len(entries) == 0 {
		return summary
	}

	summary.Start = entries[0].Timestamp
	summary.End = entries[0].Timestamp

	opCounts := map[string]int{}
	styleCounts := map[string]int{}
	statusCounts := map[string]int{}
	errorCounts := map[string]int{}
	limitedCounts := map[string]int{}
	latencies := make([]int64, 0, len(entries))

	for _, e := range entries {
		summary.Total++
		if e.Timestamp.Before(summary.Start) {
			summary.Start = e.Timestamp
		}
		if e.Timestamp.After(summary.End) {
			summary.End = e.Timestamp
		}

		if e.StatusCode == 200 {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		if e.Truncated {
			summary.Truncated++
		}
		if e.RateLimited {
			summary.RateLimited++
			limitedCounts[e.ClientIP]++
		}

		if e.Op != "" {
			opCounts[e.Op]++
		}
		if e.Style != "" {
			styleCounts[e.Style]++
		}
		statusCounts[strconv.Itoa(e.StatusCode)]++
		if e.Error != "" && !e.RateLimited {
			errorCounts[e.Error]++
		}

		latencies = append(latencies, e.DurationMS)
	}

	summary.Ops = topCounts(opCounts, len(opCounts))
	summary.Styles = topCounts(styleCounts, len(styleCounts))
	summary.Statuses = topCounts(statusCounts, len(statusCounts))
	summary.TopErrors = topCounts(errorCounts, 5)
	summary.TopLimited = topCounts(limitedCounts, 5)
	summary.Latency = latencySummary(latencies)

	return summary
}

func topCounts(counts map[string]int, n int) []CountItem {
	items := make([]CountItem, 0, len(counts))
	for key, count := range counts {
		items = append(items, CountItem{Key: key, Count: count})
	}
	if len(items) == 0 {
		return nil
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Key < items[j].Key
		}
		return items[i].Count > items[j].Count
	})

	if len(items) > n {
		items = items[:n]
	}
	return items
}

func latencySummary(values []int64) LatencySummary {
	if len(values) == 0 {
		return LatencySummary{}
	}
	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return LatencySummary{
		P50: percentile(sorted, 0.50),
		P95: percentile(sorted, 0.95),
		P99: percentile(sorted, 0.99),
	}
}

func percentile(values []int64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	idx := int(float64(len(values)-1) * p)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(values) {
		idx = len(values) - 1
	}
	return float64(values[idx])
}

func RenderText(summary Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %d\n", summary.Total)
	fmt.Fprintf(&b, "Succeeded: %d\n", summary.Succeeded)
	fmt.Fprintf(&b, "Failed: %d\n", summary.Failed)
	fmt.Fprintf(&b, "Truncated: %d\n", summary.Truncated)
	fmt.Fprintf(&b, "Rate limited: %d\n", summary.RateLimited)
	fmt.Fprintf(&b, "Latency p50/p95/p99 (ms): %.0f/%.0f/%.0f\n", summary.Latency.P50, summary.Latency.P95, summary.Latency.P99)

	writeCounts(&b, "Operations", summary.Ops)
	writeCounts(&b, "Styles", summary.Styles)
	writeCounts(&b, "Status codes", summary.Statuses)
	writeCounts(&b, "Top errors", summary.TopErrors)
	writeCounts(&b, "Top rate-limited", summary.TopLimited)

	return b.String()
}

func RenderMarkdown(summary Summary) string {
	var b strings.Builder
	b.WriteString("# Pathwalk Report\n\n")
	b.WriteString("## Totals\n\n")
	fmt.Fprintf(&b, "- Total: %d\n", summary.Total)
	fmt.Fprintf(&b, "- Succeeded: %d\n", summary.Succeeded)
	fmt.Fprintf(&b, "- Failed: %d\n", summary.Failed)
	fmt.Fprintf(&b, "- Truncated: %d\n", summary.Truncated)
	fmt.Fprintf(&b, "- Rate limited: %d\n", summary.RateLimited)
	fmt.Fprintf(&b, "- Latency p50/p95/p99 (ms): %.0f/%.0f/%.0f\n\n", summary.Latency.P50, summary.Latency.P95, summary.Latency.P99)

	writeCountsMarkdown(&b, "Operations", summary.Ops)
	writeCountsMarkdown(&b, "Styles", summary.Styles)
	writeCountsMarkdown(&b, "Status codes", summary.Statuses)
	writeCountsMarkdown(&b, "Top errors", summary.TopErrors)
	writeCountsMarkdown(&b, "Top rate-limited", summary.TopLimited)

	return b.String()
}

func RenderJSON(summary Summary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}

func RenderYAML(summary Summary) ([]byte, error) {
	return yaml.Marshal(summary)
}

// Render picks a renderer by format name: text, md, json or yaml.
func Render(summary Summary, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return []byte(RenderText(summary)), nil
	case "md", "markdown":
		return []byte(RenderMarkdown(summary)), nil
	case "json":
		return RenderJSON(summary)
	case "yaml", "yml":
		return RenderYAML(summary)
	default:
		return nil, errors.Errorf("unknown report format %q", format)
	}
}

func writeCounts(b *strings.Builder, title string, items []CountItem) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: none\n", title)
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
}

func writeCountsMarkdown(b *strings.Builder, title string, items []CountItem) {
	b.WriteString("## ")
	b.WriteString(title)
	b.WriteString("\n\n")
	if len(items) == 0 {
		b.WriteString("- none\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
	b.WriteString("\n")
}

func WriteOutput(w io.Writer, path string, content []byte) error {
	if path == "" {
		_, err := w.Write(content)
		return err
	}
	return errors.Wrap(os.WriteFile(path, content, 0o600), "write report")
}
