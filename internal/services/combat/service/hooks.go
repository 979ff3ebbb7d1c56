package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gatchaworks/arena/internal/platform/timeouts"
	"github.com/gatchaworks/arena/internal/services/combat/domain"
)

// Hook reacts to a committed combat.
type Hook struct {
	Name string
	Run  func(ctx context.Context, combat domain.Combat) error
}

// HookRunner runs hooks in the background after a combat is stored. Each
// hook gets its own timeout; an error or panic in one hook is logged and
// never reaches another hook or the caller.
type HookRunner struct {
	hooks   []Hook
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewHookRunner builds a runner. A non-positive timeout uses
// timeouts.RewardHook.
func NewHookRunner(timeout time.Duration, hooks ...Hook) *HookRunner {
	if timeout <= 0 {
		timeout = timeouts.RewardHook
	}
	return &HookRunner{hooks: hooks, timeout: timeout}
}

// Dispatch starts every hook for combat and returns immediately.
func (r *HookRunner) Dispatch(combat domain.Combat) {
	if r == nil {
		return
	}
	for _, hook := range r.hooks {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.run(hook, combat)
		}()
	}
}

func (r *HookRunner) run(hook Hook, combat domain.Combat) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("combat hook panic hook=%s combat=%s: %v", hook.Name, combat.ID, recovered)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := hook.Run(ctx, combat); err != nil {
		log.Printf("combat hook failed hook=%s combat=%s: %v", hook.Name, combat.ID, err)
	}
}

// Wait blocks until every dispatched hook has returned.
func (r *HookRunner) Wait() {
	if r == nil {
		return
	}
	r.wg.Wait()
}
