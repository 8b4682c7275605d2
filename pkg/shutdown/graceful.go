package shutdown

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

func WithSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// OnDone blocks until ctx is cancelled, then calls stop with a context that
// expires after timeout.
func OnDone(ctx context.Context, timeout time.Duration, stop func(context.Context) error) error {
	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return stop(stopCtx)
}
