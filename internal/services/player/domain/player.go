// Package domain models players, their level curve and monster inventory.
package domain

import (
	"slices"
	"strings"
	"time"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
)

const (
	// MaxLevel caps player leveling.
	MaxLevel = 50

	baseMonsterLimit       = 10
	startingExperienceStep = 50.0
	stepGrowth             = 1.1
)

// Player is a registered player and the monsters they own.
type Player struct {
	Username       string
	Level          int
	Experience     float64
	ExperienceStep float64
	MonsterIDs     []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New creates a level 0 player with an empty inventory.
func New(username string, now time.Time) (Player, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Player{}, apperrors.New(apperrors.CodeInvalidArgument, "username is required")
	}
	now = now.UTC()
	return Player{
		Username:       username,
		ExperienceStep: startingExperienceStep,
		MonsterIDs:     []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// MaxMonsters is the inventory size allowed at the player's level.
func (p Player) MaxMonsters() int {
	return baseMonsterLimit + p.Level
}

// AddExperience grants xp and applies every level-up it pays for.
func (p *Player) AddExperience(xp float64) (int, error) {
	if xp <= 0 {
		return 0, apperrors.New(apperrors.CodeInvalidArgument, "experience must be positive")
	}
	p.Experience += xp
	gained := 0
	for p.canLevelUp() {
		p.levelUp()
		gained++
	}
	return gained, nil
}

// LevelUp spends one step of accumulated experience on a single level.
func (p *Player) LevelUp() error {
	if p.Level >= MaxLevel {
		return apperrors.New(apperrors.CodeInvalidArgument, "player is at max level")
	}
	if p.Experience < p.ExperienceStep {
		return apperrors.New(apperrors.CodeInvalidArgument, "not enough experience to level up")
	}
	p.levelUp()
	return nil
}

func (p *Player) canLevelUp() bool {
	return p.Experience >= p.ExperienceStep && p.Level < MaxLevel
}

func (p *Player) levelUp() {
	p.Experience -= p.ExperienceStep
	p.Level++
	p.ExperienceStep *= stepGrowth
}

// Owns reports whether monsterID is in the inventory.
func (p Player) Owns(monsterID string) bool {
	return slices.Contains(p.MonsterIDs, monsterID)
}

// AddMonster puts monsterID in the inventory.
func (p *Player) AddMonster(monsterID string) error {
	monsterID = strings.TrimSpace(monsterID)
	if monsterID == "" {
		return apperrors.New(apperrors.CodeInvalidArgument, "monster id is required")
	}
	if p.Owns(monsterID) {
		return apperrors.WithMetadata(apperrors.CodeMonsterAlreadyOwned, "monster already owned",
			map[string]string{"MonsterID": monsterID})
	}
	if len(p.MonsterIDs) >= p.MaxMonsters() {
		return apperrors.WithMetadata(apperrors.CodeInventoryFull, "monster limit reached",
			map[string]string{"Username": p.Username})
	}
	p.MonsterIDs = append(p.MonsterIDs, monsterID)
	return nil
}

// RemoveMonster takes monsterID out of the inventory.
func (p *Player) RemoveMonster(monsterID string) error {
	idx := slices.Index(p.MonsterIDs, monsterID)
	if idx < 0 {
		return apperrors.WithMetadata(apperrors.CodeMonsterNotFound, "monster not owned by player",
			map[string]string{"MonsterID": monsterID})
	}
	p.MonsterIDs = slices.Delete(p.MonsterIDs, idx, idx+1)
	return nil
}
