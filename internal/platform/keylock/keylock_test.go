package keylock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLockSerializesSameKey(t *testing.T) {
	locker := New()
	var active, maxActive atomic.Int32
	var wg sync.WaitGroup

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), "inv-1")
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			defer unlock()
			now := active.Add(1)
			for {
				prev := maxActive.Load()
				if now <= prev || maxActive.CompareAndSwap(prev, now) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			active.Add(-1)
		}()
	}
	wg.Wait()

	if maxActive.Load() != 1 {
		t.Fatalf("max concurrent holders = %d, want 1", maxActive.Load())
	}
	if locker.size() != 0 {
		t.Fatalf("tracked keys = %d, want 0", locker.size())
	}
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	locker := New()
	unlockA, err := locker.Lock(context.Background(), "a")
	if err != nil {
		t.Fatalf("lock a: %v", err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := locker.Lock(ctx, "b")
	if err != nil {
		t.Fatalf("lock b while a is held: %v", err)
	}
	unlockB()
}

func TestLockHonorsContext(t *testing.T) {
	locker := New()
	unlock, _ := locker.Lock(context.Background(), "a")
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := locker.Lock(ctx, "a"); err == nil {
		t.Fatal("expected context error while key is held")
	}
}

func TestUnlockIsIdempotent(t *testing.T) {
	locker := New()
	unlock, _ := locker.Lock(context.Background(), "a")
	unlock()
	unlock()
	if locker.size() != 0 {
		t.Fatalf("tracked keys = %d, want 0", locker.size())
	}
}
