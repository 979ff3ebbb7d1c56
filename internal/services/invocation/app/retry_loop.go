package app

import (
	"context"
	"log"
	"time"

	"github.com/gatchaworks/arena/internal/services/invocation/service"
)

type pendingRetrier interface {
	RetryPending(ctx context.Context) (service.RetryReport, error)
}

// runRetryLoop retries unfinished invocations once at startup and then on
// every tick until ctx ends.
func runRetryLoop(ctx context.Context, retrier pendingRetrier, interval time.Duration) {
	if retrier == nil || interval <= 0 {
		return
	}

	retryOnce(ctx, retrier)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			retryOnce(ctx, retrier)
		}
	}
}

func retryOnce(ctx context.Context, retrier pendingRetrier) {
	if _, err := retrier.RetryPending(ctx); err != nil && ctx.Err() == nil {
		log.Printf("invocation retry sweep failed: %v", err)
	}
}
