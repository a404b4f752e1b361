// Package benchmarks measures executor throughput under synthetic workloads.
package benchmarks

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// cpuBoundWork simulates a CPU-intensive operation
func cpuBoundWork(iterations int) func(ctx context.Context, task int, sink *int64) error {
	return func(ctx context.Context, task int, sink *int64) error {
		result := 0
		for i := 0; i < iterations; i++ {
			result += i * task
		}
		if result == -1 {
			*sink = int64(result)
		}
		return nil
	}
}

// ioBoundWork simulates an I/O operation with a delay
func ioBoundWork(delay time.Duration) func(ctx context.Context, task int, _ *int64) error {
	return func(ctx context.Context, task int, _ *int64) error {
		select {
		case <-time.After(delay):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// errorProneWork fails a fraction of items
func errorProneWork(errorRate float64) func(ctx context.Context, task int, _ *int64) error {
	return func(ctx context.Context, task int, _ *int64) error {
		if rand.Float64() < errorRate {
			return fmt.Errorf("simulated error for task %d", task)
		}
		return nil
	}
}

func makeTasks(n int) []int {
	tasks := make([]int, n)
	for i := range tasks {
		tasks[i] = i
	}
	return tasks
}

func tasksSeq(n int) func(yield func(int) bool) {
	return func(yield func(int) bool) {
		for i := range n {
			if !yield(i) {
				return
			}
		}
	}
}
