package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/teranos/partgen/cmd/partgen/commands"
	"github.com/teranos/partgen/display"
	"github.com/teranos/partgen/logger"
)

func main() {
	// Interrupts stop the batch between pairs
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRootCmd().ExecuteContext(ctx); err != nil {
		display.NewPrinter(os.Stderr, logger.Verbosity).Error(err)
		logger.Cleanup()
		stop()
		os.Exit(1)
	}
}
