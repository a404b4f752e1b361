package summary

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/utkarsh5026/consume/pool"
)

func init() {
	color.NoColor = true
}

func TestFormatNumber(t *testing.T) {
	tests := map[uint64]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		123456:  "123,456",
		1234567: "1,234,567",
	}
	for n, want := range tests {
		if got := FormatNumber(n); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFormatLatency(t *testing.T) {
	tests := map[time.Duration]string{
		0:                       "0",
		500 * time.Nanosecond:   "500ns",
		3 * time.Microsecond:    "3µs",
		1500 * time.Nanosecond:  "1.5µs",
		12 * time.Millisecond:   "12ms",
		1250 * time.Microsecond: "1.25ms",
		2500 * time.Millisecond: "2.50s",
	}
	for d, want := range tests {
		if got := FormatLatency(d); got != want {
			t.Errorf("FormatLatency(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	tests := map[float64]string{
		0:         "0.00",
		-3:        "0.00",
		12.345:    "12.35",
		1000:      "1,000.00",
		2500000.5: "2,500,000.50",
	}
	for r, want := range tests {
		if got := FormatRate(r); got != want {
			t.Errorf("FormatRate(%v) = %q, want %q", r, got, want)
		}
	}
}

func TestCollect(t *testing.T) {
	ch := make(chan pool.Outcome[string], 3)
	ch <- pool.Outcome[string]{Item: "a.jpg", Kind: pool.Success, Duration: time.Millisecond}
	ch <- pool.Outcome[string]{Item: "b.jpg", Kind: pool.HandlerFailure, Err: errors.New("denied"), Duration: 2 * time.Millisecond}
	ch <- pool.Outcome[string]{Item: "c.jpg", Kind: pool.Success, Duration: 3 * time.Millisecond}
	close(ch)

	r := Collect(ch)
	if len(r.Durations) != 3 {
		t.Errorf("expected 3 durations, got %d", len(r.Durations))
	}
	if len(r.Failures) != 1 || r.Failures[0].Item != "b.jpg" || r.Failures[0].Err != "denied" {
		t.Errorf("unexpected failures: %+v", r.Failures)
	}
}

func TestReport_Latency(t *testing.T) {
	var r Report
	for i := 1; i <= 100; i++ {
		r.Durations = append(r.Durations, time.Duration(101-i)*time.Millisecond)
	}

	lat := r.Latency()
	if lat.P50 != 50*time.Millisecond || lat.P95 != 95*time.Millisecond ||
		lat.P99 != 99*time.Millisecond || lat.Max != 100*time.Millisecond {
		t.Errorf("unexpected percentiles: %+v", lat)
	}

	if (Report{}).Latency() != (Latency{}) {
		t.Error("expected zero latency for an empty report")
	}

	single := Report{Durations: []time.Duration{7 * time.Millisecond}}.Latency()
	if single.P50 != 7*time.Millisecond || single.P99 != 7*time.Millisecond {
		t.Errorf("unexpected single-sample percentiles: %+v", single)
	}
}

func TestRender(t *testing.T) {
	stats := pool.Stats{
		Processed:   1500,
		Failed:      2,
		Panicked:    1,
		Concurrency: 8,
		Elapsed:     1500 * time.Millisecond,
	}
	report := Report{
		Durations: []time.Duration{time.Millisecond, 2 * time.Millisecond},
		Failures: []Failure{
			{Item: "bad.png", Err: "worker panic: boom\nstack trace:\n..."},
			{Item: "gone.jpg", Err: "no such file"},
		},
	}

	var buf bytes.Buffer
	if err := Render(&buf, "HASH SUMMARY", stats, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"HASH SUMMARY", "1,500", "1,498", "1,000.00", "Items/sec", "P50 (median)", "P95", "P99", "bad.png: worker panic: boom", "gone.jpg", "1,498/1,500"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "stack trace") {
		t.Errorf("stack traces must not reach the summary:\n%s", out)
	}
}

func TestRender_NoOutcomes(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, "LIST SUMMARY", pool.Stats{Processed: 3, Elapsed: time.Second}, Report{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "P50") {
		t.Errorf("expected no latency table without outcomes:\n%s", out)
	}
	if !strings.Contains(out, "Successfully processed 3 items") {
		t.Errorf("expected success footer:\n%s", out)
	}
}

func TestRender_TruncatesFailureList(t *testing.T) {
	var report Report
	for range maxListedFailures + 5 {
		report.Failures = append(report.Failures, Failure{Item: "x", Err: "e"})
	}

	var buf bytes.Buffer
	if err := Render(&buf, "T", pool.Stats{Processed: 25, Failed: 25}, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "and 5 more") {
		t.Errorf("expected truncation notice:\n%s", buf.String())
	}
}
