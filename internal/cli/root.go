// Package cli implements the consume command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/utkarsh5026/consume/internal/config"
	"github.com/utkarsh5026/consume/internal/logging"
)

// ErrItemsFailed is returned when a command finished but some files failed.
var ErrItemsFailed = errors.New("some files failed")

// app is the state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
}

// Execute runs the root command with the provided context
func Execute(ctx context.Context, args []string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "consume",
		Short: "consume - walk photo libraries and process files concurrently",
		Long: `consume walks one or more directories for media files and runs an
action on each file with bounded concurrency, showing live progress.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./consume.yaml or $HOME/.config/consume/consume.yaml)")
	flags.IntP("concurrency", "c", 0, "maximum files processed at once (0 means available CPUs)")
	flags.Bool("no-progress", false, "disable the progress display")
	flags.Duration("interval", 0, "progress refresh interval")
	flags.StringSlice("ext", nil, "allowed file extensions (comma-separated)")
	flags.Float64("rate", 0, "maximum files started per second (0 means unlimited)")
	flags.Int("burst", 0, "files that may start back to back under --rate")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")
	flags.Bool("no-color", false, "disable colored log output")

	for key, flag := range map[string]string{
		"concurrency":  "concurrency",
		"interval":     "interval",
		"extensions":   "ext",
		"rate":         "rate",
		"burst":        "burst",
		"log.level":    "log-level",
		"log.format":   "log-format",
		"log.no_color": "no-color",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newHashCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// init loads configuration and logging
func (a *app) init(cmd *cobra.Command) error {
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); noProgress {
		a.v.Set("progress", false)
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.Log, cmd.ErrOrStderr())

	a.logger.Debug().
		Str("file", a.v.ConfigFileUsed()).
		Int("concurrency", cfg.Concurrency).
		Bool("progress", cfg.Progress).
		Strs("extensions", cfg.Extensions).
		Msg("loaded configuration")
	return nil
}
