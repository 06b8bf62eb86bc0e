//go:build !unix

package utils

import (
	"context"
	"os"
	"os/signal"
)

func NotifyShutdown(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}
