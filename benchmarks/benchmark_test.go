package benchmarks

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/utkarsh5026/consume/pool"
)

// =============================================================================
// Throughput Benchmarks
// =============================================================================

func BenchmarkConsume_ConcurrencyScaling(b *testing.B) {
	concurrencies := []int{1, 2, 4, 8, 16, 32, 64}
	taskCount := 10000

	for _, concurrency := range concurrencies {
		b.Run(fmt.Sprintf("concurrency_%d", concurrency), func(b *testing.B) {
			exec, err := pool.New(cpuBoundWork(100),
				pool.WithConcurrency(concurrency),
				pool.WithLogger(zerolog.Nop()),
			)
			if err != nil {
				b.Fatal(err)
			}
			tasks := makeTasks(taskCount)
			var sink int64

			b.ResetTimer()
			for b.Loop() {
				if _, err := exec.Run(context.Background(), pool.FromSlice(tasks), &sink); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()

			nsPerOp := float64(b.Elapsed().Nanoseconds()) / float64(b.N)
			tasksPerSec := (float64(taskCount) / nsPerOp) * 1e9

			b.ReportMetric(tasksPerSec, "tasks/sec")
			b.ReportMetric(tasksPerSec/float64(concurrency), "tasks/sec/slot")
		})
	}
}

func BenchmarkConsume_LoadScaling(b *testing.B) {
	taskCounts := []int{100, 1000, 10000, 100000}

	for _, taskCount := range taskCounts {
		b.Run(fmt.Sprintf("tasks_%d", taskCount), func(b *testing.B) {
			exec, err := pool.New(cpuBoundWork(100),
				pool.WithConcurrency(8),
				pool.WithLogger(zerolog.Nop()),
			)
			if err != nil {
				b.Fatal(err)
			}
			tasks := makeTasks(taskCount)
			var sink int64

			b.ResetTimer()
			for b.Loop() {
				if _, err := exec.Run(context.Background(), pool.FromSlice(tasks), &sink); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()

			nsPerOp := float64(b.Elapsed().Nanoseconds()) / float64(b.N)
			b.ReportMetric((float64(taskCount)/nsPerOp)*1e9, "tasks/sec")
		})
	}
}

// =============================================================================
// Source and Display Overhead
// =============================================================================

func BenchmarkConsume_Sources(b *testing.B) {
	const taskCount = 10000
	tasks := makeTasks(taskCount)

	sources := map[string]func() pool.Source[int]{
		"slice": func() pool.Source[int] { return pool.FromSlice(tasks) },
		"seq":   func() pool.Source[int] { return pool.FromSeq(tasksSeq(taskCount)) },
		"seqN":  func() pool.Source[int] { return pool.FromSeqN(tasksSeq(taskCount), taskCount) },
		"chan": func() pool.Source[int] {
			ch := make(chan int, 64)
			go func() {
				defer close(ch)
				for _, t := range tasks {
					ch <- t
				}
			}()
			return pool.FromChan(ch)
		},
	}

	for name, newSource := range sources {
		b.Run(name, func(b *testing.B) {
			exec, err := pool.New(cpuBoundWork(10),
				pool.WithConcurrency(8),
				pool.WithLogger(zerolog.Nop()),
			)
			if err != nil {
				b.Fatal(err)
			}
			var sink int64

			for b.Loop() {
				if _, err := exec.Run(context.Background(), newSource(), &sink); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkConsume_ProgressOverhead(b *testing.B) {
	for _, show := range []bool{false, true} {
		b.Run(fmt.Sprintf("progress_%v", show), func(b *testing.B) {
			exec, err := pool.New(cpuBoundWork(100),
				pool.WithConcurrency(8),
				pool.WithProgress(show),
				pool.WithProgressWriter(io.Discard),
				pool.WithLogger(zerolog.Nop()),
			)
			if err != nil {
				b.Fatal(err)
			}
			tasks := makeTasks(10000)
			var sink int64

			for b.Loop() {
				if _, err := exec.Run(context.Background(), pool.FromSlice(tasks), &sink); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// =============================================================================
// Workload Shapes
// =============================================================================

func BenchmarkConsume_IOBound(b *testing.B) {
	for _, concurrency := range []int{4, 16, 64} {
		b.Run(fmt.Sprintf("concurrency_%d", concurrency), func(b *testing.B) {
			exec, err := pool.New(ioBoundWork(time.Millisecond),
				pool.WithConcurrency(concurrency),
				pool.WithLogger(zerolog.Nop()),
			)
			if err != nil {
				b.Fatal(err)
			}
			tasks := makeTasks(256)

			for b.Loop() {
				if _, err := exec.Run(context.Background(), pool.FromSlice(tasks), nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkConsume_WithFailures(b *testing.B) {
	for _, rate := range []float64{0, 0.01, 0.1, 0.5} {
		b.Run(fmt.Sprintf("error_rate_%.2f", rate), func(b *testing.B) {
			exec, err := pool.New(errorProneWork(rate),
				pool.WithConcurrency(8),
				pool.WithLogger(zerolog.Nop()),
			)
			if err != nil {
				b.Fatal(err)
			}
			tasks := makeTasks(5000)

			for b.Loop() {
				if _, err := exec.Run(context.Background(), pool.FromSlice(tasks), nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
