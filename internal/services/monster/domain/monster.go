// Package domain models owned monsters and their progression.
package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
	"github.com/gatchaworks/arena/internal/services/shared/stats"
)

const (
	// MaxLevel caps monster leveling.
	MaxLevel = 100

	startingLevel         = 1
	startingXPToNextLevel = 100.0
	xpCurveGrowth         = 1.15
	statGrowth            = 1.05
)

// Skill is an owned monster's skill with its upgrade progress.
type Skill struct {
	Num      int
	Dmg      int
	Ratio    stats.Ratio
	Cooldown int
	Lvl      int
	LvlMax   int
}

// CanUpgrade reports whether the skill is below its level cap.
func (s Skill) CanUpgrade() bool {
	return s.Lvl < s.LvlMax
}

// SkillSpec is the template form of a skill used when a monster is created.
type SkillSpec struct {
	Num      int
	Dmg      int
	Ratio    stats.Ratio
	Cooldown int
	LvlMax   int
}

// Monster is a monster owned by a player.
type Monster struct {
	ID                    string
	TemplateID            int
	OwnerUsername         string
	Element               stats.Element
	Stats                 stats.Block
	Level                 int
	Experience            float64
	ExperienceToNextLevel float64
	SkillPoints           int
	Skills                []Skill
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Spec describes the monster to create from a summoned template.
type Spec struct {
	TemplateID int
	Element    stats.Element
	Stats      stats.Block
	Skills     []SkillSpec
}

// Validate rejects specs that cannot produce a playable monster.
func (s Spec) Validate() error {
	if _, err := stats.ParseElement(string(s.Element)); err != nil {
		return apperrors.New(apperrors.CodeInvalidArgument, err.Error())
	}
	if s.Stats.HP <= 0 || s.Stats.ATK < 0 || s.Stats.DEF < 0 || s.Stats.VIT < 0 {
		return apperrors.New(apperrors.CodeInvalidArgument, "hp must be positive and other stats non-negative")
	}
	seen := make(map[int]struct{}, len(s.Skills))
	for _, skill := range s.Skills {
		if _, dup := seen[skill.Num]; dup {
			return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("duplicate skill num %d", skill.Num))
		}
		seen[skill.Num] = struct{}{}
		if _, err := stats.ParseStat(string(skill.Ratio.Stat)); err != nil {
			return apperrors.New(apperrors.CodeInvalidArgument, err.Error())
		}
		if skill.Dmg < 0 || skill.Cooldown < 0 || skill.LvlMax < 1 {
			return apperrors.New(apperrors.CodeInvalidArgument, fmt.Sprintf("skill %d has invalid values", skill.Num))
		}
	}
	return nil
}

// New creates a level 1 monster from spec owned by owner.
func New(id, owner string, spec Spec, now time.Time) (Monster, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return Monster{}, apperrors.New(apperrors.CodeInvalidArgument, "owner username is required")
	}
	if err := spec.Validate(); err != nil {
		return Monster{}, err
	}
	skills := make([]Skill, 0, len(spec.Skills))
	for _, s := range spec.Skills {
		skills = append(skills, Skill{
			Num:      s.Num,
			Dmg:      s.Dmg,
			Ratio:    stats.Ratio{Stat: stats.Stat(strings.ToUpper(string(s.Ratio.Stat))), Percent: s.Ratio.Percent},
			Cooldown: s.Cooldown,
			Lvl:      1,
			LvlMax:   s.LvlMax,
		})
	}
	now = now.UTC()
	return Monster{
		ID:                    id,
		TemplateID:            spec.TemplateID,
		OwnerUsername:         owner,
		Element:               stats.Element(strings.ToUpper(string(spec.Element))),
		Stats:                 spec.Stats,
		Level:                 startingLevel,
		ExperienceToNextLevel: startingXPToNextLevel,
		Skills:                skills,
		CreatedAt:             now,
		UpdatedAt:             now,
	}, nil
}

// AddExperience grants xp and applies every level-up it pays for, returning
// the number of levels gained. Each level grows the XP curve, awards a skill
// point and raises every stat by 5%, truncated.
func (m *Monster) AddExperience(xp float64) (int, error) {
	if xp <= 0 || math.IsNaN(xp) || math.IsInf(xp, 0) {
		return 0, apperrors.New(apperrors.CodeInvalidArgument, "experience must be positive")
	}
	m.Experience += xp
	gained := 0
	for m.Experience >= m.ExperienceToNextLevel && m.Level < MaxLevel {
		m.Experience -= m.ExperienceToNextLevel
		m.Level++
		m.ExperienceToNextLevel *= xpCurveGrowth
		m.SkillPoints++
		m.Stats = stats.Block{
			HP:  int(float64(m.Stats.HP) * statGrowth),
			ATK: int(float64(m.Stats.ATK) * statGrowth),
			DEF: int(float64(m.Stats.DEF) * statGrowth),
			VIT: int(float64(m.Stats.VIT) * statGrowth),
		}
		gained++
	}
	return gained, nil
}

// UpgradeSkill spends a skill point to raise skill num by one level.
func (m *Monster) UpgradeSkill(num int) error {
	if m.SkillPoints <= 0 {
		return apperrors.New(apperrors.CodeSkillUpgradeRejected, "no skill points available")
	}
	for i := range m.Skills {
		if m.Skills[i].Num == num && m.Skills[i].CanUpgrade() {
			m.Skills[i].Lvl++
			m.SkillPoints--
			return nil
		}
	}
	return apperrors.WithMetadata(
		apperrors.CodeSkillUpgradeRejected,
		fmt.Sprintf("cannot upgrade skill %d: it does not exist or is at max level", num),
		map[string]string{"SkillNum": fmt.Sprint(num)},
	)
}

// EnsureOwner rejects access by anyone but the owner.
func (m Monster) EnsureOwner(username string) error {
	if m.OwnerUsername != username {
		return apperrors.WithMetadata(
			apperrors.CodeMonsterNotOwned,
			"monster is not owned by the requesting player",
			map[string]string{"MonsterID": m.ID},
		)
	}
	return nil
}
