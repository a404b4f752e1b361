package pool

import (
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/consume/internal/progress"
)

// Mode is the progress mode chosen for a run: bounded (bar) when the
// source knows its length, unbounded (spinner) otherwise.
type Mode = progress.Mode

// telemetry holds the counters shared by the invocations of one run and
// read by the reporter. It is created per run and never reused.
type telemetry struct {
	dispatched atomic.Uint64
	processed  atomic.Uint64
	failed     atomic.Uint64
	panicked   atomic.Uint64
	start      time.Time
}

func newTelemetry() *telemetry {
	return &telemetry{start: time.Now()}
}

// complete records one finished invocation. It is the only place processed
// is incremented.
func (t *telemetry) complete(kind Kind, panicked bool) {
	if kind == HandlerFailure {
		t.failed.Add(1)
		if panicked {
			t.panicked.Add(1)
		}
	}
	t.processed.Add(1)
}

// snapshot is handed to the progress reporter on every tick.
func (t *telemetry) snapshot() progress.Snapshot {
	return progress.Snapshot{
		Processed: t.processed.Load(),
		Failed:    t.failed.Load(),
		Elapsed:   time.Since(t.start),
	}
}

func (t *telemetry) stats(concurrency int, mode Mode) Stats {
	return Stats{
		Dispatched:  t.dispatched.Load(),
		Processed:   t.processed.Load(),
		Failed:      t.failed.Load(),
		Panicked:    t.panicked.Load(),
		Concurrency: concurrency,
		Mode:        mode,
		Elapsed:     time.Since(t.start),
	}
}
