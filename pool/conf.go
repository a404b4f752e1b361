package pool

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/utkarsh5026/consume/internal/cpu"
	"github.com/utkarsh5026/consume/internal/progress"
)

// Snapshot is the telemetry view handed to a Renderer.
type Snapshot = progress.Snapshot

// Renderer draws progress snapshots. See WithRenderer.
type Renderer = progress.Renderer

// Option is a functional option for configuring an Executor.
type Option func(*config)

type config struct {
	concurrency    int
	concurrencySet bool
	parallelism    func() (int, error)

	showProgress   bool
	interval       time.Duration
	progressWriter io.Writer
	renderer       func(Mode) Renderer

	logger      zerolog.Logger
	loggerSet   bool
	rateLimiter *rate.Limiter

	// Typed values checked against the executor's item type in New.
	outcomes    any
	beforeStart any
	onEnd       any
}

func defaultConfig() *config {
	return &config{
		parallelism: cpu.AvailableParallelism,
		interval:    progress.DefaultInterval,
	}
}

// WithConcurrency sets the maximum number of handler invocations in flight.
// Values below 1 make New fail with ErrInvalidConcurrency.
// If not specified, the host's available parallelism is used.
func WithConcurrency(n int) Option {
	return func(cfg *config) {
		cfg.concurrency = n
		cfg.concurrencySet = true
	}
}

// WithProgress enables or disables the live progress display.
// Disabled by default.
func WithProgress(show bool) Option {
	return func(cfg *config) {
		cfg.showProgress = show
	}
}

// WithProgressInterval sets the progress poll cadence.
// Non-positive values are ignored. Default: 100ms.
func WithProgressInterval(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.interval = d
		}
	}
}

// WithProgressWriter sets where the progress display is drawn.
// Default: os.Stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(cfg *config) {
		cfg.progressWriter = w
	}
}

// WithRenderer replaces the default bar/spinner renderer. newRenderer is
// called once per run with the selected mode.
func WithRenderer(newRenderer func(Mode) Renderer) Option {
	return func(cfg *config) {
		cfg.renderer = newRenderer
	}
}

// WithLogger sets the sink for failure diagnostics.
// Invocations log from their own goroutines, so the logger's writer must be
// safe for concurrent use; wrap a plain buffer or file with zerolog.SyncWriter.
// Default: a console logger on stderr at info level.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
		cfg.loggerSet = true
	}
}

// WithRateLimit caps how fast invocations are started.
// perSecond is the sustained rate and burst the number of invocations that
// may start back to back. If either is non-positive, no limit is applied.
//
// Example:
//
//	WithRateLimit(10, 5) // 10 items/sec with bursts of 5
func WithRateLimit(perSecond float64, burst int) Option {
	return func(cfg *config) {
		if perSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithOutcomes delivers one Outcome per completed invocation on ch.
// The executor never closes ch; the caller must keep receiving until Run
// returns or invocations will block.
func WithOutcomes[T any](ch chan<- Outcome[T]) Option {
	return func(cfg *config) {
		if ch != nil {
			cfg.outcomes = ch
		}
	}
}

// WithBeforeItemStart registers a hook called in the invocation goroutine
// right before the handler runs. If the hook panics the handler is skipped
// and the item is counted as a panicked failure.
func WithBeforeItemStart[T any](fn func(item T)) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.beforeStart = fn
		}
	}
}

// WithOnItemEnd registers a hook called after the handler returns, with the
// handler's error (or recovered panic). If the hook panics the item is
// counted as a panicked failure.
func WithOnItemEnd[T any](fn func(item T, err error)) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.onEnd = fn
		}
	}
}

// withParallelism overrides host parallelism detection.
func withParallelism(fn func() (int, error)) Option {
	return func(cfg *config) {
		cfg.parallelism = fn
	}
}
