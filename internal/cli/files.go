package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/consume/internal/files"
	"github.com/utkarsh5026/consume/internal/logging"
	"github.com/utkarsh5026/consume/internal/summary"
	"github.com/utkarsh5026/consume/pool"
)

func newListCmd(a *app) *cobra.Command {
	var showSummary bool
	cmd := &cobra.Command{
		Use:   "list <dir>...",
		Short: "List matching files",
		Long:  "Walk the given directories and print every file with an allowed extension.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFiles(cmd, args, "LIST SUMMARY", files.List, showSummary)
		},
	}
	cmd.Flags().BoolVar(&showSummary, "summary", false, "print a summary table to stderr")
	return cmd
}

func newHashCmd(a *app) *cobra.Command {
	var showSummary bool
	cmd := &cobra.Command{
		Use:   "hash <dir>...",
		Short: "Print SHA-256 digests of matching files",
		Long:  "Walk the given directories and print the SHA-256 of every file with an allowed extension, in sha256sum format.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFiles(cmd, args, "HASH SUMMARY", files.Hash, showSummary)
		},
	}
	cmd.Flags().BoolVar(&showSummary, "summary", true, "print a summary table to stderr")
	return cmd
}

// runFiles walks roots and runs handler on each matching file.
func (a *app) runFiles(
	cmd *cobra.Command,
	roots []string,
	title string,
	handler pool.Handler[string, *files.Output],
	showSummary bool,
) error {
	if err := checkRoots(roots); err != nil {
		return err
	}

	outcomes := make(chan pool.Outcome[string], 64)
	opts := []pool.Option{
		pool.WithLogger(logging.Component(a.logger, "pool")),
		pool.WithProgress(a.cfg.Progress),
		pool.WithProgressInterval(a.cfg.Interval),
		pool.WithProgressWriter(cmd.ErrOrStderr()),
		pool.WithRateLimit(a.cfg.Rate, a.cfg.Burst),
		pool.WithOutcomes[string](outcomes),
	}
	if a.cfg.Concurrency > 0 {
		opts = append(opts, pool.WithConcurrency(a.cfg.Concurrency))
	}

	exec, err := pool.New(handler, opts...)
	if err != nil {
		return err
	}

	var report summary.Report
	var collector errgroup.Group
	collector.Go(func() error {
		report = summary.Collect(outcomes)
		return nil
	})

	src := files.Source(roots, files.NewMatcher(a.cfg.Extensions), logging.Component(a.logger, "walk"))
	stats, runErr := exec.Run(cmd.Context(), src, files.NewOutput(cmd.OutOrStdout()))
	close(outcomes)
	_ = collector.Wait()

	if showSummary {
		if err := summary.Render(cmd.ErrOrStderr(), title, stats, report); err != nil {
			a.logger.Warn().Err(err).Msg("failed to render summary")
		}
	}

	if runErr != nil {
		return runErr
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrItemsFailed, stats.Failed, stats.Processed)
	}
	return nil
}

func checkRoots(roots []string) error {
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("path %s does not exist: %w", root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("path %s is not a directory", root)
		}
	}
	return nil
}
