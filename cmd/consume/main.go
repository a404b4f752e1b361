package main

import (
	"os"

	"github.com/utkarsh5026/consume/internal/cli"
	"github.com/utkarsh5026/consume/internal/logging"
)

func main() {
	log := logging.New(logging.Config{}, os.Stderr)
	ctx := cli.SetupSignalHandler(log)

	if err := cli.Execute(ctx, os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
