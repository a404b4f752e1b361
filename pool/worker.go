package pool

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"
)

// work runs one item through the handler and records the outcome. It is
// the body of every invocation goroutine. The hooks share the handler's
// recovery boundary: a panicking hook fails its item like a panicking
// handler does.
func (e *Executor[T, C]) work(ctx context.Context, tel *telemetry, index uint64, item T, shared C) {
	start := time.Now()
	panicked, err := invokeWithRecovery(func() error {
		if e.hooks.beforeStart != nil {
			e.hooks.beforeStart(item)
		}
		return e.handler(ctx, item, shared)
	})
	duration := time.Since(start)

	if e.hooks.onEnd != nil {
		if hookPanicked, hookErr := invokeWithRecovery(func() error {
			e.hooks.onEnd(item, err)
			return nil
		}); hookPanicked {
			panicked = true
			err = errors.Join(err, hookErr)
		}
	}

	kind := Success
	if err != nil {
		kind = HandlerFailure
		e.logger.Error().
			Err(err).
			Uint64("index", index).
			Str("item", fmt.Sprint(item)).
			Dur("duration", duration).
			Bool("panic", panicked).
			Msg("item failed")
	} else {
		e.logger.Trace().
			Uint64("index", index).
			Dur("duration", duration).
			Msg("item done")
	}

	tel.complete(kind, panicked)

	if e.hooks.outcomes == nil {
		return
	}

	select {
	case e.hooks.outcomes <- Outcome[T]{Item: item, Index: index, Kind: kind, Err: err, Duration: duration}:
	case <-ctx.Done():
		// The caller has given up on the run and may have stopped receiving.
	}
}

// invokeWithRecovery calls fn, converting a panic into an error wrapping
// ErrHandlerPanic so one bad item cannot take down the process.
func invokeWithRecovery(fn func() error) (panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrHandlerPanic, r, buf[:n])
			panicked = true
		}
	}()

	return false, fn()
}
