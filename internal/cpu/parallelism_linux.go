//go:build linux

package cpu

import "golang.org/x/sys/unix"

// usableCPUs counts the CPUs in the calling thread's affinity mask.
func usableCPUs() (int, error) {
	var mask unix.CPUSet
	mask.Zero()

	if err := unix.SchedGetaffinity(0, &mask); err != nil { // 0 = current thread
		return 0, err
	}

	return mask.Count(), nil
}
