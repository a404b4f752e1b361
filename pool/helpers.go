package pool

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// resolveConcurrency returns the in-flight limit for a run. An explicit
// value must be >= 1; otherwise host parallelism is queried, and any failure
// is returned rather than falling back to an unbounded limit.
func resolveConcurrency(cfg *config) (int, error) {
	if cfg.concurrencySet {
		if cfg.concurrency < 1 {
			return 0, fmt.Errorf("%w (got %d)", ErrInvalidConcurrency, cfg.concurrency)
		}
		return cfg.concurrency, nil
	}

	if cfg.parallelism == nil {
		return 0, ErrNoParallelism
	}

	n, err := cfg.parallelism()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoParallelism, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: host reported %d", ErrNoParallelism, n)
	}
	return n, nil
}

// typedHooks are the typed option values after checking them against the
// executor's item type.
type typedHooks[T any] struct {
	outcomes    chan<- Outcome[T]
	beforeStart func(T)
	onEnd       func(T, error)
}

// checkHooks validates typed options against T.
//
// Options are untyped so they can share one Option type; a hook registered
// for another item type is a configuration error, reported before any work
// starts.
func checkHooks[T any](cfg *config) (typedHooks[T], error) {
	var h typedHooks[T]
	var zero T

	if cfg.outcomes != nil {
		ch, ok := cfg.outcomes.(chan<- Outcome[T])
		if !ok {
			return h, fmt.Errorf("%w: WithOutcomes channel is %T, executor processes %T",
				ErrOptionType, cfg.outcomes, zero)
		}
		h.outcomes = ch
	}

	if cfg.beforeStart != nil {
		fn, ok := cfg.beforeStart.(func(T))
		if !ok {
			return h, fmt.Errorf("%w: WithBeforeItemStart hook is %T, executor processes %T",
				ErrOptionType, cfg.beforeStart, zero)
		}
		h.beforeStart = fn
	}

	if cfg.onEnd != nil {
		fn, ok := cfg.onEnd.(func(T, error))
		if !ok {
			return h, fmt.Errorf("%w: WithOnItemEnd hook is %T, executor processes %T",
				ErrOptionType, cfg.onEnd, zero)
		}
		h.onEnd = fn
	}

	return h, nil
}

func defaultLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Str("component", "pool").
		Logger()
}
