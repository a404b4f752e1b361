// Package cpu reports how much parallelism the host grants this process.
package cpu

import (
	"errors"
	"fmt"
)

// ErrNoCPUs is returned when the host reports zero usable logical CPUs.
var ErrNoCPUs = errors.New("cpu: host reported no usable logical CPUs")

// AvailableParallelism returns the number of logical CPUs the current
// process may run on. The result is always >= 1 when err is nil.
//
// On Linux this honours the scheduler affinity mask (taskset, cpusets),
// elsewhere it falls back to runtime.NumCPU.
func AvailableParallelism() (int, error) {
	n, err := usableCPUs()
	if err != nil {
		return 0, fmt.Errorf("cpu: query available parallelism: %w", err)
	}
	if n < 1 {
		return 0, ErrNoCPUs
	}
	return n, nil
}
