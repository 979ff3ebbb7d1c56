// Package monsterapi holds the monster service wire types and the client
// other services use to reach it.
package monsterapi

import "github.com/gatchaworks/arena/internal/services/shared/stats"

// Skill is a monster skill as served over the wire.
type Skill struct {
	Num      int         `json:"num"`
	Dmg      int         `json:"dmg"`
	Ratio    stats.Ratio `json:"ratio"`
	Cooldown int         `json:"cooldown"`
	Lvl      int         `json:"lvl"`
	LvlMax   int         `json:"lvlMax"`
}

// Monster is an owned monster as served over the wire.
type Monster struct {
	ID                    string        `json:"id"`
	TemplateID            int           `json:"templateId"`
	OwnerUsername         string        `json:"ownerUsername"`
	Element               stats.Element `json:"element"`
	Stats                 stats.Block   `json:"stats"`
	Level                 int           `json:"level"`
	Experience            float64       `json:"experience"`
	ExperienceToNextLevel float64       `json:"experienceToNextLevel"`
	SkillPoints           int           `json:"skillPoints"`
	Skills                []Skill       `json:"skills"`
}

// SkillTemplate is the skill shape a monster is created from.
type SkillTemplate struct {
	Num      int         `json:"num"`
	Dmg      int         `json:"dmg"`
	Ratio    stats.Ratio `json:"ratio"`
	Cooldown int         `json:"cooldown"`
	LvlMax   int         `json:"lvlMax"`
}

// CreateMonsterRequest asks for a new monster owned by the caller.
type CreateMonsterRequest struct {
	TemplateID int             `json:"templateId"`
	Element    stats.Element   `json:"element"`
	Stats      stats.Block     `json:"stats"`
	Skills     []SkillTemplate `json:"skills"`
}

// BatchRequest selects monsters by id.
type BatchRequest struct {
	IDs []string `json:"ids"`
}

// BatchResponse lists the caller's monsters among the requested ids.
type BatchResponse struct {
	Monsters []Monster `json:"monsters"`
}
