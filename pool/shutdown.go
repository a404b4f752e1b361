package pool

import "sync"

// shutdownSignal tells the reporter that every invocation has returned.
// The executor fires it once; the reporter selects on Done each cycle.
// A closed Done is the fired state, and it cannot be reset.
type shutdownSignal struct {
	once sync.Once
	done chan struct{}
}

func newShutdownSignal() *shutdownSignal {
	return &shutdownSignal{done: make(chan struct{})}
}

// Fire closes Done. Calls after the first are no-ops.
func (s *shutdownSignal) Fire() {
	s.once.Do(func() { close(s.done) })
}

// Done is closed when the signal fires.
func (s *shutdownSignal) Done() <-chan struct{} {
	return s.done
}
