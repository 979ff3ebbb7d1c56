package domain

import (
	"testing"

	"github.com/gatchaworks/arena/internal/services/shared/stats"
)

func TestElementMultiplier(t *testing.T) {
	tests := []struct {
		attacker stats.Element
		defender stats.Element
		want     float64
	}{
		{stats.ElementFire, stats.ElementWind, 1.2},
		{stats.ElementFire, stats.ElementWater, 0.8},
		{stats.ElementFire, stats.ElementFire, 1.0},
		{stats.ElementWater, stats.ElementFire, 1.2},
		{stats.ElementWater, stats.ElementWind, 0.8},
		{stats.ElementWater, stats.ElementWater, 1.0},
		{stats.ElementWind, stats.ElementWater, 1.2},
		{stats.ElementWind, stats.ElementFire, 0.8},
		{stats.ElementWind, stats.ElementWind, 1.0},
	}
	for _, tt := range tests {
		if got := ElementMultiplier(tt.attacker, tt.defender); got != tt.want {
			t.Fatalf("ElementMultiplier(%s, %s) = %v, want %v", tt.attacker, tt.defender, got, tt.want)
		}
	}
}

func TestDamage(t *testing.T) {
	attacker := MonsterSnapshot{Element: stats.ElementFire, Stats: stats.Block{HP: 100, ATK: 50, DEF: 10, VIT: 20}}
	tests := []struct {
		name     string
		defender MonsterSnapshot
		skill    SkillSnapshot
		want     int
	}{
		{
			name:     "advantage with atk ratio",
			defender: MonsterSnapshot{Element: stats.ElementWind, Stats: stats.Block{DEF: 5}},
			skill:    SkillSnapshot{Num: 1, Dmg: 20, Ratio: stats.Ratio{Stat: stats.StatATK, Percent: 50}, Lvl: 1},
			want:     49,
		},
		{
			name:     "neutral with skill level bonus",
			defender: MonsterSnapshot{Element: stats.ElementFire, Stats: stats.Block{DEF: 0}},
			skill:    SkillSnapshot{Num: 1, Dmg: 100, Ratio: stats.Ratio{Stat: stats.StatHP, Percent: 0}, Lvl: 3},
			want:     120,
		},
		{
			name:     "disadvantage with hp ratio",
			defender: MonsterSnapshot{Element: stats.ElementWater, Stats: stats.Block{DEF: 0}},
			skill:    SkillSnapshot{Num: 1, Dmg: 0, Ratio: stats.Ratio{Stat: stats.StatHP, Percent: 100}, Lvl: 1},
			want:     80,
		},
		{
			name:     "defense floors at one",
			defender: MonsterSnapshot{Element: stats.ElementFire, Stats: stats.Block{DEF: 10_000}},
			skill:    SkillSnapshot{Num: 1, Dmg: 20, Ratio: stats.Ratio{Stat: stats.StatATK, Percent: 50}, Lvl: 1},
			want:     1,
		},
		{
			name:     "zero damage skill still connects",
			defender: MonsterSnapshot{Element: stats.ElementFire},
			skill:    SkillSnapshot{Num: 1, Lvl: 1},
			want:     1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Damage(attacker, tt.defender, tt.skill); got != tt.want {
				t.Fatalf("Damage() = %d, want %d", got, tt.want)
			}
		})
	}
}
