// Package pool provides a small, generic executor that consumes a sequence
// of work items with bounded concurrency and live progress telemetry.
//
// The primary entry points are Consume, for one-shot use, and
// Executor[T, C], which validates configuration once and can be run many
// times. Each item of type T is passed, together with a shared value of
// type C, to a Handler. At most Concurrency handlers run at once; the next
// item is pulled from the source only when a slot frees up.
//
// # Basic Usage
//
//	ctx := context.Background()
//	paths := []string{"a.jpg", "b.jpg", "c.jpg"}
//	err := pool.Consume(ctx, pool.FromSlice(paths),
//	    func(ctx context.Context, path string, db *Index) error {
//	        return db.Add(ctx, path)
//	    },
//	    db,
//	    pool.WithConcurrency(4),
//	    pool.WithProgress(true),
//	)
//
// # Sources
//
// A Source is an iter.Seq plus an optional size hint:
//
//   - FromSlice: Known length, rendered as a progress bar
//   - FromSeqN: A sequence with a caller-supplied length hint
//   - FromSeq: Unknown length, rendered as a spinner
//   - FromChan: Drains a channel, rendered as a spinner
//
// The hint is read once, before the first item is pulled.
//
// # Progress
//
// With WithProgress(true) a background reporter polls the run's counters
// every 100ms (see WithProgressInterval) and shows the processed count and
// items/second. When the last handler returns the executor signals the
// reporter, which draws once more and exits; Run does not return before
// that.
//
// # Error Handling
//
// Failures are isolated per item: a handler that returns an error or
// panics is logged with its index and value, counted as processed and
// failed, and the rest of the batch carries on. Panics are converted to
// errors wrapping ErrHandlerPanic, with a stack trace.
//
// Configuration problems (a concurrency below 1, host parallelism that
// cannot be determined, typed options for the wrong item type) are
// returned by New and Consume before any item is dispatched.
//
// Cancelling the context stops the pulling of new items; invocations
// already running are awaited and Run returns the context's error.
//
// # Configuration Options
//
//   - WithConcurrency(n): Maximum handlers in flight (default: host parallelism)
//   - WithProgress(show): Enable the progress display
//   - WithProgressInterval(d), WithProgressWriter(w), WithRenderer(fn): Tune it
//   - WithLogger(l): zerolog sink for failure diagnostics
//   - WithRateLimit(perSecond, burst): Throttle how fast handlers start
//   - WithOutcomes(ch): Receive an Outcome per item
//   - WithBeforeItemStart(fn), WithOnItemEnd(fn): Per-item hooks
package pool
