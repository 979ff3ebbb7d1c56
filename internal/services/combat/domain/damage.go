package domain

import (
	"math"

	"github.com/gatchaworks/arena/internal/services/shared/stats"
)

const (
	advantageMultiplier    = 1.2
	disadvantageMultiplier = 0.8
	neutralMultiplier      = 1.0

	levelDamageStep = 0.1
)

// strongAgainst maps each element to the element it deals bonus damage to.
var strongAgainst = map[stats.Element]stats.Element{
	stats.ElementFire:  stats.ElementWind,
	stats.ElementWind:  stats.ElementWater,
	stats.ElementWater: stats.ElementFire,
}

// ElementMultiplier returns the damage multiplier for attacker hitting defender.
func ElementMultiplier(attacker, defender stats.Element) float64 {
	switch {
	case attacker == defender:
		return neutralMultiplier
	case strongAgainst[attacker] == defender:
		return advantageMultiplier
	default:
		return disadvantageMultiplier
	}
}

// Damage computes the damage skill deals when attacker hits defender. A
// connecting attack always deals at least 1.
func Damage(attacker, defender MonsterSnapshot, skill SkillSnapshot) int {
	base := float64(skill.Dmg) * (1 + levelDamageStep*float64(skill.Lvl-1))
	scaled := float64(attacker.Stats.Value(skill.Ratio.Stat)) * skill.Ratio.Percent / 100
	raw := (base + scaled) * ElementMultiplier(attacker.Element, defender.Element)
	return max(1, int(math.Floor(raw))-defender.Stats.DEF)
}
