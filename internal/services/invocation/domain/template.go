// Package domain holds the summon templates, the weighted template selector
// and the invocation state machine.
package domain

import (
	"fmt"

	"github.com/gatchaworks/arena/internal/services/shared/stats"
)

// SkillTemplate is a skill a summoned monster starts with.
type SkillTemplate struct {
	Num      int         `json:"num" yaml:"num"`
	Dmg      int         `json:"dmg" yaml:"dmg"`
	Ratio    stats.Ratio `json:"ratio" yaml:"ratio"`
	Cooldown int         `json:"cooldown" yaml:"cooldown"`
	LvlMax   int         `json:"lvlMax" yaml:"lvlMax"`
}

// MonsterTemplate is a summonable monster definition. LootRate is a relative
// weight, not a normalized probability.
type MonsterTemplate struct {
	ID       int             `json:"id" yaml:"id"`
	Element  stats.Element   `json:"element" yaml:"element"`
	Stats    stats.Block     `json:"stats" yaml:"stats"`
	Skills   []SkillTemplate `json:"skills" yaml:"skills"`
	LootRate float64         `json:"lootRate" yaml:"lootRate"`
}

// Validate checks a template before it is stored.
func (t MonsterTemplate) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("template id must be positive, got %d", t.ID)
	}
	if _, err := stats.ParseElement(string(t.Element)); err != nil {
		return fmt.Errorf("template %d: %w", t.ID, err)
	}
	if t.Stats.HP <= 0 {
		return fmt.Errorf("template %d: hp must be positive", t.ID)
	}
	if t.LootRate < 0 {
		return fmt.Errorf("template %d: loot rate must not be negative", t.ID)
	}
	for _, skill := range t.Skills {
		if _, err := stats.ParseStat(string(skill.Ratio.Stat)); err != nil {
			return fmt.Errorf("template %d skill %d: %w", t.ID, skill.Num, err)
		}
		if skill.LvlMax < 1 {
			return fmt.Errorf("template %d skill %d: lvlMax must be at least 1", t.ID, skill.Num)
		}
	}
	return nil
}
