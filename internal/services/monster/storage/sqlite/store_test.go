package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gatchaworks/arena/internal/services/monster/domain"
	"github.com/gatchaworks/arena/internal/services/monster/storage"
	"github.com/gatchaworks/arena/internal/services/shared/stats"
)

func testMonster(t *testing.T, id, owner string, created time.Time) domain.Monster {
	t.Helper()
	monster, err := domain.New(id, owner, domain.Spec{
		TemplateID: 2,
		Element:    stats.ElementWater,
		Stats:      stats.Block{HP: 120, ATK: 30, DEF: 15, VIT: 12},
		Skills: []domain.SkillSpec{
			{Num: 1, Dmg: 10, Ratio: stats.Ratio{Stat: stats.StatATK, Percent: 20}, LvlMax: 4},
		},
	}, created)
	if err != nil {
		t.Fatalf("new monster: %v", err)
	}
	return monster
}

func TestPutAndGetMonster(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	monster := testMonster(t, "m1", "ash", now)
	if err := store.PutMonster(ctx, monster); err != nil {
		t.Fatalf("put monster: %v", err)
	}

	monster.SkillPoints = 2
	monster.Skills[0].Lvl = 3
	monster.UpdatedAt = now.Add(time.Hour)
	if err := store.PutMonster(ctx, monster); err != nil {
		t.Fatalf("update monster: %v", err)
	}

	got, err := store.GetMonster(ctx, "m1")
	if err != nil {
		t.Fatalf("get monster: %v", err)
	}
	if got.SkillPoints != 2 || got.Skills[0].Lvl != 3 || got.Skills[0].LvlMax != 4 {
		t.Fatalf("monster = %+v", got)
	}
	if got.Element != stats.ElementWater || got.Stats.HP != 120 {
		t.Fatalf("monster stats = %+v %s", got.Stats, got.Element)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("timestamps = %v / %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestGetMonsterNotFound(t *testing.T) {
	store := openTempStore(t)
	if _, err := store.GetMonster(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetMonster error = %v, want ErrNotFound", err)
	}
}

func TestListMonstersScopesByOwner(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	for i, m := range []domain.Monster{
		testMonster(t, "m1", "ash", now),
		testMonster(t, "m2", "ash", now.Add(time.Minute)),
		testMonster(t, "m3", "misty", now.Add(2*time.Minute)),
	} {
		if err := store.PutMonster(ctx, m); err != nil {
			t.Fatalf("put monster %d: %v", i, err)
		}
	}

	mine, err := store.ListMonstersByOwner(ctx, "ash")
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != "m1" || mine[1].ID != "m2" {
		t.Fatalf("owner monsters = %+v", mine)
	}

	batch, err := store.ListMonstersByIDs(ctx, "ash", []string{"m2", "m3", "nope"})
	if err != nil {
		t.Fatalf("list by ids: %v", err)
	}
	if len(batch) != 1 || batch[0].ID != "m2" {
		t.Fatalf("batch = %+v", batch)
	}

	empty, err := store.ListMonstersByIDs(ctx, "ash", nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty batch = %v, %v", empty, err)
	}
}

func TestDeleteMonster(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	if err := store.PutMonster(ctx, testMonster(t, "m1", "ash", time.Now())); err != nil {
		t.Fatalf("put monster: %v", err)
	}
	if err := store.DeleteMonster(ctx, "m1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.DeleteMonster(ctx, "m1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
}

func TestPutMonsterValidation(t *testing.T) {
	store := openTempStore(t)
	if err := store.PutMonster(context.Background(), domain.Monster{}); err == nil {
		t.Fatal("expected validation error for empty monster")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "monster.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
