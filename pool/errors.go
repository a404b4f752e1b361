package pool

import "errors"

var (
	// ErrInvalidConcurrency is returned when an explicit concurrency below 1
	// is configured.
	ErrInvalidConcurrency = errors.New("pool: concurrency must be at least 1")

	// ErrNoParallelism is returned when no concurrency was configured and the
	// host parallelism could not be determined.
	ErrNoParallelism = errors.New("pool: cannot determine host parallelism")

	// ErrNilHandler is returned when no handler is supplied.
	ErrNilHandler = errors.New("pool: handler is nil")

	// ErrNilSource is returned when Run is called without a source.
	ErrNilSource = errors.New("pool: source is nil")

	// ErrOptionType is returned when a typed option (outcomes channel, hooks)
	// does not match the executor's item type.
	ErrOptionType = errors.New("pool: option type does not match item type")

	// ErrHandlerPanic wraps panics recovered from a handler invocation.
	ErrHandlerPanic = errors.New("worker panic")
)
