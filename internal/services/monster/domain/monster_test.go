package domain

import (
	"testing"
	"time"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
	"github.com/gatchaworks/arena/internal/services/shared/stats"
)

func testSpec() Spec {
	return Spec{
		TemplateID: 3,
		Element:    stats.Element("fire"),
		Stats:      stats.Block{HP: 100, ATK: 40, DEF: 20, VIT: 10},
		Skills: []SkillSpec{
			{Num: 1, Dmg: 10, Ratio: stats.Ratio{Stat: "atk", Percent: 25}, Cooldown: 0, LvlMax: 3},
			{Num: 2, Dmg: 30, Ratio: stats.Ratio{Stat: stats.StatHP, Percent: 10}, Cooldown: 2, LvlMax: 1},
		},
	}
}

func newTestMonster(t *testing.T) Monster {
	t.Helper()
	monster, err := New("m1", "ash", testSpec(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("new monster: %v", err)
	}
	return monster
}

func TestNewStartsAtLevelOne(t *testing.T) {
	monster := newTestMonster(t)

	if monster.Level != 1 || monster.ExperienceToNextLevel != 100 || monster.SkillPoints != 0 {
		t.Fatalf("unexpected progression: %+v", monster)
	}
	if monster.Element != stats.ElementFire {
		t.Fatalf("element = %s, want FIRE", monster.Element)
	}
	if monster.Skills[0].Lvl != 1 || monster.Skills[0].Ratio.Stat != stats.StatATK {
		t.Fatalf("unexpected first skill: %+v", monster.Skills[0])
	}
}

func TestNewRejectsInvalidSpecs(t *testing.T) {
	tests := map[string]func(*Spec){
		"element":         func(s *Spec) { s.Element = "EARTH" },
		"hp":              func(s *Spec) { s.Stats.HP = 0 },
		"duplicate skill": func(s *Spec) { s.Skills[1].Num = 1 },
		"ratio stat":      func(s *Spec) { s.Skills[0].Ratio.Stat = "SPD" },
		"lvl max":         func(s *Spec) { s.Skills[0].LvlMax = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			spec := testSpec()
			mutate(&spec)
			if _, err := New("m1", "ash", spec, time.Now()); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
				t.Fatalf("expected invalid argument, got %v", err)
			}
		})
	}
	if _, err := New("m1", " ", testSpec(), time.Now()); err == nil {
		t.Fatal("expected missing owner error")
	}
}

func TestAddExperienceLevelsUp(t *testing.T) {
	monster := newTestMonster(t)

	gained, err := monster.AddExperience(250)
	if err != nil {
		t.Fatalf("add experience: %v", err)
	}
	// 250 - 100 = 150 >= 115 -> level 3 with 35 left over, next step 132.25.
	if gained != 2 || monster.Level != 3 || monster.SkillPoints != 2 {
		t.Fatalf("gained=%d level=%d points=%d", gained, monster.Level, monster.SkillPoints)
	}
	if diff := monster.Experience - 35; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("experience = %v, want 35", monster.Experience)
	}
	// 100 -> 105 -> 110, 40 -> 42 -> 44, 20 -> 21 -> 22, 10 -> 10 -> 10.
	want := stats.Block{HP: 110, ATK: 44, DEF: 22, VIT: 10}
	if monster.Stats != want {
		t.Fatalf("stats = %+v, want %+v", monster.Stats, want)
	}
}

func TestAddExperienceStopsAtMaxLevel(t *testing.T) {
	monster := newTestMonster(t)
	monster.Level = MaxLevel

	gained, err := monster.AddExperience(1e9)
	if err != nil {
		t.Fatalf("add experience: %v", err)
	}
	if gained != 0 || monster.Level != MaxLevel {
		t.Fatalf("gained=%d level=%d", gained, monster.Level)
	}
}

func TestAddExperienceRejectsNonPositive(t *testing.T) {
	monster := newTestMonster(t)
	for _, xp := range []float64{0, -5} {
		if _, err := monster.AddExperience(xp); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
			t.Fatalf("AddExperience(%v) = %v, want invalid argument", xp, err)
		}
	}
}

func TestUpgradeSkill(t *testing.T) {
	monster := newTestMonster(t)

	if err := monster.UpgradeSkill(1); !apperrors.HasCode(err, apperrors.CodeSkillUpgradeRejected) {
		t.Fatalf("upgrade without points = %v", err)
	}

	monster.SkillPoints = 3
	if err := monster.UpgradeSkill(1); err != nil {
		t.Fatalf("upgrade skill 1: %v", err)
	}
	if monster.Skills[0].Lvl != 2 || monster.SkillPoints != 2 {
		t.Fatalf("after upgrade: lvl=%d points=%d", monster.Skills[0].Lvl, monster.SkillPoints)
	}
	if err := monster.UpgradeSkill(2); !apperrors.HasCode(err, apperrors.CodeSkillUpgradeRejected) {
		t.Fatalf("upgrade maxed skill = %v", err)
	}
	if err := monster.UpgradeSkill(9); !apperrors.HasCode(err, apperrors.CodeSkillUpgradeRejected) {
		t.Fatalf("upgrade missing skill = %v", err)
	}
	if monster.SkillPoints != 2 {
		t.Fatalf("failed upgrades must not spend points, got %d", monster.SkillPoints)
	}
}

func TestEnsureOwner(t *testing.T) {
	monster := newTestMonster(t)
	if err := monster.EnsureOwner("ash"); err != nil {
		t.Fatalf("EnsureOwner(owner): %v", err)
	}
	if err := monster.EnsureOwner("misty"); !apperrors.HasCode(err, apperrors.CodeMonsterNotOwned) {
		t.Fatalf("EnsureOwner(other) = %v", err)
	}
}
