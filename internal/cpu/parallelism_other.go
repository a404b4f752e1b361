//go:build !linux

package cpu

import "runtime"

// usableCPUs returns runtime.NumCPU; affinity masks are not queried on
// this platform.
func usableCPUs() (int, error) {
	return runtime.NumCPU(), nil
}
