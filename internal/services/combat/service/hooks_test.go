package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gatchaworks/arena/internal/services/combat/domain"
)

func TestHookRunnerIsolatesFailures(t *testing.T) {
	var ran atomic.Int32
	runner := NewHookRunner(time.Second,
		Hook{Name: "panics", Run: func(context.Context, domain.Combat) error { panic("boom") }},
		Hook{Name: "fails", Run: func(context.Context, domain.Combat) error { return errors.New("nope") }},
		Hook{Name: "works", Run: func(context.Context, domain.Combat) error {
			ran.Add(1)
			return nil
		}},
	)

	runner.Dispatch(domain.Combat{ID: "c1"})
	runner.Wait()

	if got := ran.Load(); got != 1 {
		t.Fatalf("healthy hook runs = %d, want 1", got)
	}
}

func TestHookRunnerBoundsEachHook(t *testing.T) {
	var sawDeadline atomic.Bool
	runner := NewHookRunner(10*time.Millisecond, Hook{Name: "slow", Run: func(ctx context.Context, _ domain.Combat) error {
		<-ctx.Done()
		sawDeadline.Store(errors.Is(ctx.Err(), context.DeadlineExceeded))
		return ctx.Err()
	}})

	runner.Dispatch(domain.Combat{ID: "c1"})
	runner.Wait()

	if !sawDeadline.Load() {
		t.Fatal("hook context did not hit its deadline")
	}
}

func TestRewardHooksGrantExperience(t *testing.T) {
	monsters := fireAndWind()
	players := &fakePlayers{}
	runner := NewHookRunner(time.Second, RewardHooks(monsters, players)...)
	svc := newTestService(newFakeStore(), monsters, runner)

	if _, err := svc.StartCombat(context.Background(), "wind-0002", "fire-0001", "ash"); err != nil {
		t.Fatalf("StartCombat() error = %v", err)
	}
	runner.Wait()

	if got := monsters.grants["ash/fire-0001"]; got != WinnerMonsterXP {
		t.Fatalf("winner xp = %v, want %d", got, WinnerMonsterXP)
	}
	if got := monsters.grants["ash/wind-0002"]; got != LoserMonsterXP {
		t.Fatalf("loser xp = %v, want %d", got, LoserMonsterXP)
	}
	if got := players.grants["ash"]; got != InitiatorPlayerXP {
		t.Fatalf("player xp = %v, want %d", got, InitiatorPlayerXP)
	}
}

func TestRewardFailureDoesNotAffectCombat(t *testing.T) {
	monsters := fireAndWind()
	monsters.grantErr = errors.New("monster service unavailable")
	players := &fakePlayers{}
	runner := NewHookRunner(time.Second, RewardHooks(monsters, players)...)
	svc := newTestService(newFakeStore(), monsters, runner)

	combat, err := svc.StartCombat(context.Background(), "fire-0001", "wind-0002", "ash")
	if err != nil {
		t.Fatalf("StartCombat() error = %v", err)
	}
	runner.Wait()

	if combat.WinnerID != "fire-0001" {
		t.Fatalf("winner = %s", combat.WinnerID)
	}
	if got := players.grants["ash"]; got != InitiatorPlayerXP {
		t.Fatalf("player xp = %v, want %d despite monster failures", got, InitiatorPlayerXP)
	}
}
