// Package progress renders live throughput for a running batch.
//
// A Reporter polls a Snapshot source on a fixed interval and hands each
// snapshot to a Renderer. Two renderers are provided, both backed by
// github.com/schollz/progressbar/v3:
//
//   - Bounded: a determinate bar, used when the batch size is known up front
//   - Unbounded: an indeterminate spinner, used for streaming inputs
//
// The reporter owns no counters. It stops when the done channel passed to
// Run is closed, after rendering one final time so the last count is shown.
//
//	r := progress.NewReporter(progress.Options{
//	    Mode:     progress.Bounded(len(items)),
//	    Snapshot: telemetry.Snapshot,
//	    Writer:   os.Stderr,
//	})
//	go r.Run(done)
package progress
