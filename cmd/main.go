package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/artistdb/internal/shared"
	"github.com/desertthunder/artistdb/internal/ui"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.App().Run(ctx, os.Args); err != nil {
		logger.Debug("command failed", "error", err)
		fmt.Fprintln(os.Stderr, ui.Error(shared.Describe(err)))
		stop()
		os.Exit(shared.ExitCode(err))
	}
}
