//go:build unix

package utils

import (
	"context"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// ShutdownSignals are the signals that ask the program to close its window.
var ShutdownSignals = []unix.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGHUP}

// NotifyShutdown returns a context that is cancelled when one of
// ShutdownSignals arrives.
func NotifyShutdown(ctx context.Context) (context.Context, context.CancelFunc) {
	sigs := make([]os.Signal, len(ShutdownSignals))
	for i, s := range ShutdownSignals {
		sigs[i] = s
	}
	return signal.NotifyContext(ctx, sigs...)
}
