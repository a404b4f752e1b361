package pool

import "iter"

// Source is an input sequence with an optional size hint. The hint is read
// once, before the first item is pulled, and decides between bar and
// spinner rendering.
type Source[T any] interface {
	// Seq returns the items. It is ranged over exactly once per run.
	Seq() iter.Seq[T]
	// Len returns the number of items and true when known in advance.
	Len() (int, bool)
}

type sliceSource[T any] struct {
	items []T
}

// FromSlice returns a bounded source over items.
func FromSlice[T any](items []T) Source[T] {
	return sliceSource[T]{items: items}
}

func (s sliceSource[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range s.items {
			if !yield(item) {
				return
			}
		}
	}
}

func (s sliceSource[T]) Len() (int, bool) { return len(s.items), true }

type seqSource[T any] struct {
	seq   iter.Seq[T]
	n     int
	known bool
}

// FromSeq returns an unbounded source over seq.
func FromSeq[T any](seq iter.Seq[T]) Source[T] {
	return seqSource[T]{seq: seq}
}

// FromSeqN returns a source over seq that claims n items. The claim is only
// a rendering hint: a sequence yielding more or fewer items is still
// processed in full.
func FromSeqN[T any](seq iter.Seq[T], n int) Source[T] {
	return seqSource[T]{seq: seq, n: n, known: n >= 0}
}

func (s seqSource[T]) Seq() iter.Seq[T] {
	if s.seq == nil {
		return func(func(T) bool) {}
	}
	return s.seq
}

func (s seqSource[T]) Len() (int, bool) { return s.n, s.known }

// FromChan returns an unbounded source that drains ch until it is closed.
func FromChan[T any](ch <-chan T) Source[T] {
	return seqSource[T]{seq: func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}}
}
