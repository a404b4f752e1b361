package pool

import (
	"context"
	"fmt"
	"time"
)

// Handler processes a single item. It receives the run's context and the
// shared value supplied to Run, unchanged, on every invocation.
//
// A returned error (or a panic) marks the item as failed. Failures are
// logged and counted; they never stop the batch.
//
// Type parameters:
//   - T: The item type
//   - C: The shared context type
type Handler[T any, C any] func(ctx context.Context, item T, shared C) error

// Kind tags how an invocation, or the reporter, ended.
type Kind int

const (
	// Success means the handler returned nil.
	Success Kind = iota
	// HandlerFailure means the handler returned an error or panicked.
	HandlerFailure
	// ReporterFailure means the progress display failed. It never appears on
	// per-item outcomes, only in Stats.
	ReporterFailure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case HandlerFailure:
		return "handler-failure"
	case ReporterFailure:
		return "reporter-failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome describes one completed handler invocation.
//
// Fields:
//   - Item: The item passed to the handler
//   - Index: Dispatch position, starting at 0, in the order items were pulled
//   - Kind: Success or HandlerFailure
//   - Err: The handler error or recovered panic (nil on success)
//   - Duration: Wall time spent inside the handler
type Outcome[T any] struct {
	Item     T
	Index    uint64
	Kind     Kind
	Err      error
	Duration time.Duration
}

// Stats is the final telemetry of a run.
type Stats struct {
	// Dispatched is how many items were pulled from the source.
	Dispatched uint64
	// Processed is how many invocations completed, successfully or not.
	Processed uint64
	// Failed counts invocations that returned an error or panicked.
	Failed uint64
	// Panicked counts the subset of Failed that panicked.
	Panicked uint64
	// Concurrency is the resolved in-flight limit.
	Concurrency int
	// Mode is the progress mode selected from the source's size hint.
	Mode Mode
	// Elapsed is the wall time of the run.
	Elapsed time.Duration
	// ReporterErr is the progress display failure, if any.
	ReporterErr error
}

// Throughput returns processed items per second over the whole run.
func (s Stats) Throughput() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Processed) / s.Elapsed.Seconds()
}

// Succeeded returns the number of invocations that returned nil.
func (s Stats) Succeeded() uint64 {
	return s.Processed - s.Failed
}
