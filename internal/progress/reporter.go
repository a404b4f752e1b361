package progress

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// DefaultInterval is the poll cadence used when Options.Interval is zero.
const DefaultInterval = 100 * time.Millisecond

// State is the reporter lifecycle position.
type State int32

const (
	NotStarted State = iota
	Running
	Draining
	Terminated
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// ErrAlreadyStarted is returned by Run when the reporter has been run before.
var ErrAlreadyStarted = errors.New("progress: reporter already started")

// Options configures a Reporter.
type Options struct {
	// Mode selects bar or spinner rendering.
	Mode Mode

	// Interval is the poll cadence.
	// Default: DefaultInterval
	Interval time.Duration

	// Snapshot is called on every tick to read the current telemetry.
	Snapshot func() Snapshot

	// Renderer draws snapshots. When nil, NewRenderer(Mode, Writer) is used.
	Renderer Renderer

	// Writer is where the default renderer draws.
	// Default: os.Stderr
	Writer io.Writer
}

// Reporter periodically renders telemetry until told to stop.
type Reporter struct {
	opts     Options
	renderer Renderer

	state    atomic.Int32
	renders  atomic.Uint64
	failures atomic.Uint64
	firstErr error
}

// NewReporter creates a reporter. It does nothing until Run is called.
func NewReporter(opts Options) *Reporter {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Snapshot == nil {
		opts.Snapshot = func() Snapshot { return Snapshot{} }
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = NewRenderer(opts.Mode, opts.Writer)
	}

	return &Reporter{
		opts:     opts,
		renderer: renderer,
	}
}

// Run renders on every tick until done is closed, then renders once more,
// closes the renderer and returns.
//
// Render failures do not stop the loop. The first one is returned, wrapped,
// once the reporter has terminated.
func (r *Reporter) Run(done <-chan struct{}) error {
	if !r.state.CompareAndSwap(int32(NotStarted), int32(Running)) {
		return ErrAlreadyStarted
	}
	defer r.state.Store(int32(Terminated))

	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	r.render()

	for {
		select {
		case <-done:
			r.state.Store(int32(Draining))
			r.render()
			if err := r.renderer.Close(); err != nil {
				r.fail(err)
			}
			return r.err()

		case <-ticker.C:
			r.render()
		}
	}
}

// State returns the current lifecycle state.
func (r *Reporter) State() State {
	return State(r.state.Load())
}

// Renders returns how many snapshots have been handed to the renderer.
func (r *Reporter) Renders() uint64 {
	return r.renders.Load()
}

// Failures returns how many render or close calls returned an error.
func (r *Reporter) Failures() uint64 {
	return r.failures.Load()
}

func (r *Reporter) render() {
	r.renders.Add(1)
	if err := r.renderer.Render(r.opts.Snapshot()); err != nil {
		r.fail(err)
	}
}

// fail is only called from the Run goroutine, so firstErr needs no lock.
func (r *Reporter) fail(err error) {
	if r.failures.Add(1) == 1 {
		r.firstErr = err
	}
}

func (r *Reporter) err() error {
	if r.firstErr == nil {
		return nil
	}
	return fmt.Errorf("progress: %d render failure(s), first: %w", r.failures.Load(), r.firstErr)
}
