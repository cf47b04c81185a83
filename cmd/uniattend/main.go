package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/uniattend/internal/cmd"
	"github.com/felixgeelhaar/uniattend/internal/exitcode"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ExecuteContext prints the localized error itself.
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		exitcode.ExitWithError(err)
	}
	exitcode.Exit(exitcode.Success)
}
