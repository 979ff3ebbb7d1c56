package httpapi

import (
	"github.com/gatchaworks/arena/internal/services/monster/api/monsterapi"
	"github.com/gatchaworks/arena/internal/services/monster/domain"
)

// ToWire converts a monster to its API shape.
func ToWire(m domain.Monster) monsterapi.Monster {
	skills := make([]monsterapi.Skill, 0, len(m.Skills))
	for _, s := range m.Skills {
		skills = append(skills, monsterapi.Skill{
			Num:      s.Num,
			Dmg:      s.Dmg,
			Ratio:    s.Ratio,
			Cooldown: s.Cooldown,
			Lvl:      s.Lvl,
			LvlMax:   s.LvlMax,
		})
	}
	return monsterapi.Monster{
		ID:                    m.ID,
		TemplateID:            m.TemplateID,
		OwnerUsername:         m.OwnerUsername,
		Element:               m.Element,
		Stats:                 m.Stats,
		Level:                 m.Level,
		Experience:            m.Experience,
		ExperienceToNextLevel: m.ExperienceToNextLevel,
		SkillPoints:           m.SkillPoints,
		Skills:                skills,
	}
}

func toWireList(monsters []domain.Monster) []monsterapi.Monster {
	out := make([]monsterapi.Monster, 0, len(monsters))
	for _, m := range monsters {
		out = append(out, ToWire(m))
	}
	return out
}

func specFromRequest(req monsterapi.CreateMonsterRequest) domain.Spec {
	skills := make([]domain.SkillSpec, 0, len(req.Skills))
	for _, s := range req.Skills {
		skills = append(skills, domain.SkillSpec{
			Num:      s.Num,
			Dmg:      s.Dmg,
			Ratio:    s.Ratio,
			Cooldown: s.Cooldown,
			LvlMax:   s.LvlMax,
		})
	}
	return domain.Spec{
		TemplateID: req.TemplateID,
		Element:    req.Element,
		Stats:      req.Stats,
		Skills:     skills,
	}
}
