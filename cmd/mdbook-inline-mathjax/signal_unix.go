//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// withSignals derives a context canceled on SIGINT or SIGTERM.
// mdbook sends SIGTERM when a build is aborted.
func withSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
