//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// withSignals derives a context canceled on Ctrl+C.
// syscall.SIGTERM does not exist on Windows.
func withSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
