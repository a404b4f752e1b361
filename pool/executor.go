package pool

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/utkarsh5026/consume/internal/progress"
)

// Executor runs a handler over the items of a Source with bounded
// concurrency. An Executor holds only configuration; every Run gets fresh
// telemetry, so one Executor may be used for several runs, including
// concurrently.
//
// Type parameters:
//   - T: The item type
//   - C: The shared context type
type Executor[T any, C any] struct {
	handler     Handler[T, C]
	cfg         *config
	concurrency int
	logger      zerolog.Logger
	hooks       typedHooks[T]
}

// New validates the configuration and returns an Executor.
//
// Configuration errors are returned here, before any item is touched:
//   - ErrNilHandler if handler is nil
//   - ErrInvalidConcurrency if WithConcurrency was given a value below 1
//   - ErrNoParallelism if no concurrency was given and the host could not
//     report its parallelism
//   - ErrOptionType if a typed option does not match T
//
// Example:
//
//	exec, err := pool.New(hashFile, pool.WithConcurrency(8), pool.WithProgress(true))
//	if err != nil {
//	    return err
//	}
//	stats, err := exec.Run(ctx, pool.FromSlice(paths), db)
func New[T any, C any](handler Handler[T, C], opts ...Option) (*Executor[T, C], error) {
	if handler == nil {
		return nil, ErrNilHandler
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	concurrency, err := resolveConcurrency(cfg)
	if err != nil {
		return nil, err
	}

	hooks, err := checkHooks[T](cfg)
	if err != nil {
		return nil, err
	}

	logger := cfg.logger
	if !cfg.loggerSet {
		logger = defaultLogger()
	}

	return &Executor[T, C]{
		handler:     handler,
		cfg:         cfg,
		concurrency: concurrency,
		logger:      logger,
		hooks:       hooks,
	}, nil
}

// Concurrency returns the resolved in-flight limit.
func (e *Executor[T, C]) Concurrency() int {
	return e.concurrency
}

// Run dispatches every item of src to the handler, with at most
// Concurrency invocations in flight, and returns once all of them have
// returned and the progress display (if enabled) has stopped.
//
// Handler failures do not stop the run and are not returned; they are
// logged and counted in Stats. The returned error is non-nil only when src
// is nil or ctx was cancelled before src was exhausted, in which case no
// further items are pulled and in-flight invocations are awaited.
//
// Completion order is unspecified.
func (e *Executor[T, C]) Run(ctx context.Context, src Source[T], shared C) (Stats, error) {
	if src == nil {
		return Stats{}, ErrNilSource
	}

	mode := modeOf(src)
	tel := newTelemetry()
	sig := newShutdownSignal()
	log := e.logger.With().
		Str("mode", mode.String()).
		Int("concurrency", e.concurrency).
		Logger()

	log.Debug().Msg("batch started")

	var reporter errgroup.Group
	if e.showsProgress(mode) {
		rep := progress.NewReporter(progress.Options{
			Mode:     mode,
			Interval: e.cfg.interval,
			Snapshot: tel.snapshot,
			Renderer: e.newRenderer(mode),
			Writer:   e.cfg.progressWriter,
		})
		reporter.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("progress reporter panic: %v", r)
				}
			}()
			return rep.Run(sig.Done())
		})
	}

	dispatchErr := e.dispatch(ctx, src, shared, tel)

	// Every invocation has returned; let the reporter draw the final count.
	sig.Fire()
	reporterErr := reporter.Wait()

	stats := tel.stats(e.concurrency, mode)
	if reporterErr != nil {
		stats.ReporterErr = reporterErr
		log.Error().
			Err(reporterErr).
			Stringer("kind", ReporterFailure).
			Msg("progress display failed")
	}

	event := log.Debug()
	if stats.Failed > 0 || dispatchErr != nil {
		event = log.Warn()
	}
	event.
		Uint64("processed", stats.Processed).
		Uint64("failed", stats.Failed).
		Uint64("panicked", stats.Panicked).
		Dur("elapsed", stats.Elapsed).
		AnErr("cancel", dispatchErr).
		Msg("batch finished")

	return stats, dispatchErr
}

// dispatch pulls items one at a time, each only after a concurrency slot is
// free, so at most Concurrency items are ever out of the source and
// unfinished. It returns after every started invocation has returned.
func (e *Executor[T, C]) dispatch(ctx context.Context, src Source[T], shared C, tel *telemetry) error {
	sem := semaphore.NewWeighted(int64(e.concurrency))
	var wg sync.WaitGroup

	next, stop := iter.Pull(src.Seq())
	defer stop()

	var err error
	for index := uint64(0); ; index++ {
		if err = sem.Acquire(ctx, 1); err != nil {
			break
		}

		if err = e.waitRate(ctx); err != nil {
			sem.Release(1)
			break
		}

		item, ok := next()
		if !ok {
			sem.Release(1)
			break
		}

		tel.dispatched.Add(1)
		wg.Go(func() {
			defer sem.Release(1)
			e.work(ctx, tel, index, item, shared)
		})
	}

	wg.Wait()
	return err
}

func (e *Executor[T, C]) waitRate(ctx context.Context) error {
	if e.cfg.rateLimiter == nil {
		return ctx.Err()
	}
	err := e.cfg.rateLimiter.Wait(ctx)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	// Wait refuses up front when the next token lies past the deadline.
	return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
}

func (e *Executor[T, C]) showsProgress(mode Mode) bool {
	if !e.cfg.showProgress {
		return false
	}
	// An empty known-length batch has nothing to draw.
	return !mode.IsBounded() || mode.Total() > 0
}

func (e *Executor[T, C]) newRenderer(mode Mode) Renderer {
	if e.cfg.renderer == nil {
		return nil
	}
	return e.cfg.renderer(mode)
}

// modeOf reads the size hint once.
func modeOf[T any](src Source[T]) Mode {
	if n, ok := src.Len(); ok {
		return progress.Bounded(n)
	}
	return progress.Unbounded()
}

// IsCancellation reports whether err returned by Run means the context was
// cancelled or timed out.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
