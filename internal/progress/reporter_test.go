package progress

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// recordingRenderer keeps every snapshot it is asked to draw.
type recordingRenderer struct {
	mu      sync.Mutex
	snaps   []Snapshot
	closed  int
	failOn  int // 1-based render call that fails; 0 = never
	calls   int
	closeFn func() error
}

func (r *recordingRenderer) Render(snap Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.snaps = append(r.snaps, snap)
	if r.failOn > 0 && r.calls == r.failOn {
		return errors.New("terminal went away")
	}
	return nil
}

func (r *recordingRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	if r.closeFn != nil {
		return r.closeFn()
	}
	return nil
}

func (r *recordingRenderer) last() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snaps[len(r.snaps)-1]
}

func TestReporter_FinalRenderShowsFinalCount(t *testing.T) {
	var processed atomic.Uint64
	rec := &recordingRenderer{}

	r := NewReporter(Options{
		Mode:     Bounded(10),
		Interval: time.Hour, // only the initial and final renders can happen
		Snapshot: func() Snapshot { return Snapshot{Processed: processed.Load()} },
		Renderer: rec,
	})

	done := make(chan struct{})
	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(done) }()

	processed.Store(10)
	close(done)

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reporter did not terminate after done was closed")
	}

	if got := rec.last().Processed; got != 10 {
		t.Errorf("expected final render to show 10, got %d", got)
	}
	if rec.closed != 1 {
		t.Errorf("expected renderer closed once, got %d", rec.closed)
	}
	if r.State() != Terminated {
		t.Errorf("expected state %s, got %s", Terminated, r.State())
	}
	if r.Renders() < 2 {
		t.Errorf("expected at least 2 renders, got %d", r.Renders())
	}
}

func TestReporter_PollsAtInterval(t *testing.T) {
	rec := &recordingRenderer{}
	r := NewReporter(Options{
		Mode:     Unbounded(),
		Interval: 10 * time.Millisecond,
		Renderer: rec,
	})

	done := make(chan struct{})
	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(done) }()

	time.Sleep(80 * time.Millisecond)
	if r.State() != Running {
		t.Errorf("expected state %s while polling, got %s", Running, r.State())
	}
	close(done)

	if err := <-errCh; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// initial + at least a few ticks + final
	if n := r.Renders(); n < 4 {
		t.Errorf("expected at least 4 renders in 80ms at 10ms cadence, got %d", n)
	}
}

func TestReporter_RenderFailureIsReportedNotFatal(t *testing.T) {
	rec := &recordingRenderer{failOn: 1}
	r := NewReporter(Options{
		Mode:     Unbounded(),
		Interval: 5 * time.Millisecond,
		Renderer: rec,
	})

	done := make(chan struct{})
	errCh := make(chan error, 1)
	go func() { errCh <- r.Run(done) }()

	time.Sleep(30 * time.Millisecond)
	close(done)

	err := <-errCh
	if err == nil {
		t.Fatal("expected render failure to be surfaced, got nil")
	}
	if r.Failures() != 1 {
		t.Errorf("expected 1 failure, got %d", r.Failures())
	}
	if r.Renders() < 3 {
		t.Errorf("expected rendering to continue after a failure, got %d renders", r.Renders())
	}
	if rec.closed != 1 {
		t.Errorf("expected renderer closed once, got %d", rec.closed)
	}
}

func TestReporter_CloseFailureIsReported(t *testing.T) {
	closeErr := errors.New("flush failed")
	rec := &recordingRenderer{closeFn: func() error { return closeErr }}
	r := NewReporter(Options{Mode: Unbounded(), Interval: time.Hour, Renderer: rec})

	done := make(chan struct{})
	close(done)

	err := r.Run(done)
	if !errors.Is(err, closeErr) {
		t.Fatalf("expected %v, got %v", closeErr, err)
	}
}

func TestReporter_RunTwice(t *testing.T) {
	r := NewReporter(Options{Mode: Unbounded(), Renderer: &recordingRenderer{}})

	done := make(chan struct{})
	close(done)

	if err := r.Run(done); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Run(done); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestReporter_NotStartedState(t *testing.T) {
	r := NewReporter(Options{Mode: Unbounded(), Renderer: &recordingRenderer{}})
	if r.State() != NotStarted {
		t.Errorf("expected %s, got %s", NotStarted, r.State())
	}
	if r.opts.Interval != DefaultInterval {
		t.Errorf("expected default interval %v, got %v", DefaultInterval, r.opts.Interval)
	}
}
