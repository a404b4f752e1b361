package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
)

// SetupSignalHandler creates a context that is cancelled on receiving SIGINT or SIGTERM.
// A second signal will force immediate exit.
func SetupSignalHandler(log zerolog.Logger) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal, finishing in-flight files")
		cancel()

		sig = <-sigCh
		log.Warn().Str("signal", sig.String()).Msg("received second shutdown signal, forcing exit")
		os.Exit(1)
	}()

	return ctx
}
