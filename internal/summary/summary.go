// Package summary collects per-item outcomes of a run and renders the
// end-of-run report.
package summary

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/utkarsh5026/consume/pool"
)

// maxListedFailures caps the failure list in the report.
const maxListedFailures = 20

// Failure is one failed item.
type Failure struct {
	Item string
	Err  string
}

// Report is what Collect gathered from the outcome stream.
type Report struct {
	Durations []time.Duration
	Failures  []Failure
}

// Collect drains outcomes until the channel is closed.
func Collect[T any](outcomes <-chan pool.Outcome[T]) Report {
	var r Report
	for o := range outcomes {
		r.Durations = append(r.Durations, o.Duration)
		if o.Kind == pool.HandlerFailure {
			r.Failures = append(r.Failures, Failure{Item: fmt.Sprint(o.Item), Err: o.Err.Error()})
		}
	}
	return r
}

// Latency holds handler latency percentiles.
type Latency struct {
	P50, P95, P99, Max time.Duration
}

// Latency computes percentiles over the collected durations.
func (r Report) Latency() Latency {
	if len(r.Durations) == 0 {
		return Latency{}
	}
	sorted := slices.Clone(r.Durations)
	slices.Sort(sorted)
	return Latency{
		P50: percentile(sorted, 50),
		P95: percentile(sorted, 95),
		P99: percentile(sorted, 99),
		Max: sorted[len(sorted)-1],
	}
}

// percentile uses the nearest-rank method on sorted input.
func percentile(sorted []time.Duration, p int) time.Duration {
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

// Render writes the run summary: a totals table, a latency table when
// outcomes were collected, and the failed items.
func Render(w io.Writer, title string, stats pool.Stats, report Report) error {
	printSectionHeader(w, title)

	totals := newTable(w)
	totals.Header("Processed", "Succeeded", "Failed", "Panicked", "Elapsed", "Items/sec", "Concurrency")
	if err := totals.Append(
		FormatNumber(stats.Processed),
		FormatNumber(stats.Succeeded()),
		FormatNumber(stats.Failed),
		FormatNumber(stats.Panicked),
		stats.Elapsed.Round(time.Millisecond).String(),
		FormatRate(stats.Throughput()),
		fmt.Sprintf("%d", stats.Concurrency),
	); err != nil {
		return err
	}
	if err := totals.Render(); err != nil {
		return fmt.Errorf("render totals: %w", err)
	}

	if len(report.Durations) > 0 {
		lat := report.Latency()
		latency := newTable(w)
		latency.Header("P50 (median)", "P95", "P99", "Max")
		if err := latency.Append(
			FormatLatency(lat.P50),
			FormatLatency(lat.P95),
			FormatLatency(lat.P99),
			FormatLatency(lat.Max),
		); err != nil {
			return err
		}
		if err := latency.Render(); err != nil {
			return fmt.Errorf("render latency: %w", err)
		}
	}

	printFailures(w, report.Failures)
	printFooter(w, stats)
	return nil
}

// newTable keeps header labels as written; the default auto-format splits
// "P95" into "P 95" and upper-cases units.
func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithHeaderAutoFormat(tw.Off))
}

func printSectionHeader(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w)
	colorFprintln(w, Bold, "═══════════════════════════════════════════════════════════")
	colorFprintln(w, Bold, title)
	colorFprintln(w, Bold, "═══════════════════════════════════════════════════════════")
}

func printFailures(w io.Writer, failures []Failure) {
	if len(failures) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w)
	colorFprintln(w, Red, "⚠️  Failed items:")
	for i, f := range failures {
		if i == maxListedFailures {
			colorFprintf(w, Red, "  … and %d more\n", len(failures)-maxListedFailures)
			break
		}
		colorFprintf(w, Red, "  • %s: %s\n", f.Item, firstLine(f.Err))
	}
}

func printFooter(w io.Writer, stats pool.Stats) {
	_, _ = fmt.Fprintln(w)
	if stats.Failed == 0 {
		colorFprintf(w, Green, "✅ Successfully processed %s items\n", FormatNumber(stats.Processed))
		return
	}
	colorFprintf(w, Yellow, "Processed %s/%s items successfully\n",
		FormatNumber(stats.Succeeded()), FormatNumber(stats.Processed))
}

// firstLine drops the stack trace attached to recovered panics.
func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
