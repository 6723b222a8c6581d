package main

import (
	"context"
	"os"
	"os/signal"
)

// signalExitCtx returns a context that is cancelled when one of the signals is received.
// A second signal exits the process immediately with a non-zero code.
func signalExitCtx(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, signals...)
	go func() {
		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
			signal.Stop(sigs)
			return
		}
		<-sigs
		os.Exit(1)
	}()
	return ctx, cancel
}
