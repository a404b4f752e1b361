package progress

import (
	"fmt"
	"time"
)

// Snapshot is a point-in-time view of batch telemetry.
type Snapshot struct {
	Processed uint64
	Failed    uint64
	Elapsed   time.Duration
}

// Throughput returns processed items per second, or 0 before any time has
// elapsed.
func (s Snapshot) Throughput() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.Processed) / secs
}

// Message formats the status line shown next to the bar or spinner.
func (s Snapshot) Message() string {
	return fmt.Sprintf("#%d %.2f items/second", s.Processed, s.Throughput())
}
