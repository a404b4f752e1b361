package pool

import "context"

// Consume runs handler over every item of src with bounded concurrency and
// returns when all items have been processed and the progress display, if
// enabled with WithProgress, has drawn its final frame and stopped.
//
// Concurrency defaults to the host's available parallelism; use
// WithConcurrency to set it. Handler failures are logged and never abort
// the batch. Only configuration errors (see New) and context cancellation
// are returned.
//
// Example:
//
//	err := pool.Consume(ctx, pool.FromSlice(paths), indexFile, db,
//	    pool.WithProgress(true),
//	    pool.WithConcurrency(8),
//	)
func Consume[T any, C any](
	ctx context.Context,
	src Source[T],
	handler Handler[T, C],
	shared C,
	opts ...Option,
) error {
	exec, err := New(handler, opts...)
	if err != nil {
		return err
	}

	_, err = exec.Run(ctx, src, shared)
	return err
}
