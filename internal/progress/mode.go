package progress

import "fmt"

// Mode selects bar or spinner rendering. It is fixed for the lifetime of
// a run.
type Mode struct {
	total   int64
	bounded bool
}

// Bounded returns a mode for a batch of exactly total items.
func Bounded(total int) Mode {
	return Mode{total: int64(max(total, 0)), bounded: true}
}

// Unbounded returns a mode for a batch whose size is unknown.
func Unbounded() Mode {
	return Mode{}
}

// IsBounded reports whether the total is known.
func (m Mode) IsBounded() bool { return m.bounded }

// Total returns the expected item count, or -1 for unbounded mode.
func (m Mode) Total() int64 {
	if !m.bounded {
		return -1
	}
	return m.total
}

func (m Mode) String() string {
	if !m.bounded {
		return "unbounded"
	}
	return fmt.Sprintf("bounded(%d)", m.total)
}
