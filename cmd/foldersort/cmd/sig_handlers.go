package cmd

import (
	"context"
	"os"
	"os/signal"
)

// withInterrupt returns a context cancelled on SIGINT, so that long runs stop between two steps
func withInterrupt() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	// Register for SIGINT.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)
	done := make(chan struct{})

	go func() {
		select {
		case <-signalChan:
			infoLogger.Println("Received SIGINT, stopping after the current step...")
			cancel()
		case <-done:
		}
	}()

	return ctx, func() {
		signal.Stop(signalChan)
		close(done)
		cancel()
	}
}
