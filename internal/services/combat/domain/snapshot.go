// Package domain holds the combat engine: battle snapshots, the damage model,
// the turn simulator, and replay reconstruction. Nothing here performs I/O.
package domain

import "github.com/gatchaworks/arena/internal/services/shared/stats"

// SkillSnapshot is a skill frozen at combat start.
type SkillSnapshot struct {
	Num      int         `json:"num"`
	Dmg      int         `json:"dmg"`
	Ratio    stats.Ratio `json:"ratio"`
	Cooldown int         `json:"cooldown"`
	Lvl      int         `json:"lvl"`
}

// MonsterSnapshot is a monster's stat block frozen at combat start. Later
// leveling of the source monster never reaches a snapshot.
type MonsterSnapshot struct {
	ID            string          `json:"id"`
	OwnerUsername string          `json:"ownerUsername"`
	Element       stats.Element   `json:"element"`
	Stats         stats.Block     `json:"stats"`
	Level         int             `json:"level"`
	Skills        []SkillSnapshot `json:"skills"`
}

// Clone returns a copy that shares no slices with s.
func (s MonsterSnapshot) Clone() MonsterSnapshot {
	out := s
	out.Skills = append([]SkillSnapshot(nil), s.Skills...)
	return out
}
