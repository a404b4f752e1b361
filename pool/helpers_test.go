package pool

import (
	"errors"
	"iter"
	"sync"

	"github.com/rs/zerolog"
)

// recordingRenderer keeps every snapshot handed to it.
type recordingRenderer struct {
	mu        sync.Mutex
	snaps     []Snapshot
	closed    int
	renderErr error
	panicMsg  string
}

func (r *recordingRenderer) Render(snap Snapshot) error {
	if r.panicMsg != "" {
		panic(r.panicMsg)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
	return r.renderErr
}

func (r *recordingRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

func (r *recordingRenderer) renders() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Snapshot(nil), r.snaps...)
}

// captureRenderer returns a WithRenderer factory that records the mode it
// was built for.
func captureRenderer(rec *recordingRenderer, mode *Mode, calls *int) Option {
	return WithRenderer(func(m Mode) Renderer {
		*mode = m
		*calls++
		return rec
	})
}

func quiet() Option {
	return WithLogger(zerolog.Nop())
}

func intRange(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

// unsizedSeq hides the length of items.
func unsizedSeq(items []int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

var errBoom = errors.New("boom")
