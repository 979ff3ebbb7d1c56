package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gatchaworks/arena/internal/services/invocation/service"
)

type countingRetrier struct {
	calls atomic.Int32
	err   error
}

func (c *countingRetrier) RetryPending(context.Context) (service.RetryReport, error) {
	c.calls.Add(1)
	return service.RetryReport{}, c.err
}

func TestRunRetryLoopSweepsUntilCanceled(t *testing.T) {
	retrier := &countingRetrier{err: errors.New("store offline")}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		runRetryLoop(ctx, retrier, 5*time.Millisecond)
	}()

	deadline := time.After(2 * time.Second)
	for retrier.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("retry calls = %d, want at least 3", retrier.calls.Load())
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("retry loop did not stop after cancel")
	}
}

func TestRunRetryLoopDisabled(t *testing.T) {
	retrier := &countingRetrier{}
	runRetryLoop(context.Background(), retrier, 0)
	if got := retrier.calls.Load(); got != 0 {
		t.Fatalf("retry calls = %d, want 0", got)
	}
}
