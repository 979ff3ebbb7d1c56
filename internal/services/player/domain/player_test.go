package domain

import (
	"fmt"
	"math"
	"testing"
	"time"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
)

func newTestPlayer(t *testing.T) Player {
	t.Helper()
	player, err := New("ash", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	return player
}

func TestNewPlayer(t *testing.T) {
	player := newTestPlayer(t)
	if player.Level != 0 || player.Experience != 0 || player.ExperienceStep != 50 {
		t.Fatalf("unexpected progression: %+v", player)
	}
	if player.MaxMonsters() != 10 {
		t.Fatalf("MaxMonsters = %d, want 10", player.MaxMonsters())
	}
	if _, err := New("  ", time.Now()); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("New(blank) = %v", err)
	}
}

func TestAddExperience(t *testing.T) {
	player := newTestPlayer(t)

	gained, err := player.AddExperience(120)
	if err != nil {
		t.Fatalf("add experience: %v", err)
	}
	// 120 - 50 = 70 >= 55 -> level 2 with 15 left, next step 60.5.
	if gained != 2 || player.Level != 2 {
		t.Fatalf("gained=%d level=%d", gained, player.Level)
	}
	if math.Abs(player.Experience-15) > 1e-9 || math.Abs(player.ExperienceStep-60.5) > 1e-9 {
		t.Fatalf("experience=%v step=%v", player.Experience, player.ExperienceStep)
	}
	if player.MaxMonsters() != 12 {
		t.Fatalf("MaxMonsters = %d, want 12", player.MaxMonsters())
	}
	if _, err := player.AddExperience(0); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("AddExperience(0) = %v", err)
	}
}

func TestAddExperienceCapsAtMaxLevel(t *testing.T) {
	player := newTestPlayer(t)
	player.Level = MaxLevel

	gained, err := player.AddExperience(1e6)
	if err != nil {
		t.Fatalf("add experience: %v", err)
	}
	if gained != 0 || player.Level != MaxLevel {
		t.Fatalf("gained=%d level=%d", gained, player.Level)
	}
}

func TestLevelUp(t *testing.T) {
	player := newTestPlayer(t)
	if err := player.LevelUp(); err == nil {
		t.Fatal("expected level up without experience to fail")
	}
	player.Experience = 50
	if err := player.LevelUp(); err != nil {
		t.Fatalf("level up: %v", err)
	}
	if player.Level != 1 || player.Experience != 0 {
		t.Fatalf("level=%d experience=%v", player.Level, player.Experience)
	}
}

func TestAddMonster(t *testing.T) {
	player := newTestPlayer(t)

	if err := player.AddMonster(""); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("AddMonster(empty) = %v", err)
	}
	if err := player.AddMonster("m1"); err != nil {
		t.Fatalf("AddMonster: %v", err)
	}
	if err := player.AddMonster("m1"); !apperrors.HasCode(err, apperrors.CodeMonsterAlreadyOwned) {
		t.Fatalf("AddMonster(dup) = %v", err)
	}
	for i := 2; i <= 10; i++ {
		if err := player.AddMonster(fmt.Sprintf("m%d", i)); err != nil {
			t.Fatalf("AddMonster(m%d): %v", i, err)
		}
	}
	if err := player.AddMonster("m11"); !apperrors.HasCode(err, apperrors.CodeInventoryFull) {
		t.Fatalf("AddMonster(full) = %v", err)
	}
	if apperrors.CodeInventoryFull.HTTPStatus() != 409 {
		t.Fatalf("inventory full status = %d, want 409", apperrors.CodeInventoryFull.HTTPStatus())
	}
}

func TestRemoveMonster(t *testing.T) {
	player := newTestPlayer(t)
	_ = player.AddMonster("m1")
	_ = player.AddMonster("m2")

	if err := player.RemoveMonster("m1"); err != nil {
		t.Fatalf("RemoveMonster: %v", err)
	}
	if player.Owns("m1") || !player.Owns("m2") {
		t.Fatalf("inventory = %v", player.MonsterIDs)
	}
	if err := player.RemoveMonster("m1"); !apperrors.HasCode(err, apperrors.CodeMonsterNotFound) {
		t.Fatalf("RemoveMonster(missing) = %v", err)
	}
}
