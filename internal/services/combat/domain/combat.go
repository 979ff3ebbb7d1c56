package domain

import (
	"strings"
	"time"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
)

// Status is the lifecycle state of a stored combat.
type Status string

// StatusCompleted marks a combat whose simulation finished.
const StatusCompleted Status = "COMPLETED"

// Combat is the persisted record of one simulated battle.
type Combat struct {
	ID                string
	InitiatorUsername string
	Monster1          MonsterSnapshot
	Monster2          MonsterSnapshot
	Logs              []TurnLog
	WinnerID          string
	WinnerUsername    string
	TotalTurns        int
	Status            Status
	CreatedAt         time.Time
}

// NewCombat records result for the battle between m1 and m2.
func NewCombat(id, initiator string, m1, m2 MonsterSnapshot, result SimulationResult, now time.Time) Combat {
	return Combat{
		ID:                id,
		InitiatorUsername: initiator,
		Monster1:          m1,
		Monster2:          m2,
		Logs:              result.Logs,
		WinnerID:          result.WinnerID,
		WinnerUsername:    result.WinnerUsername,
		TotalTurns:        result.TotalTurns,
		Status:            StatusCompleted,
		CreatedAt:         now.UTC(),
	}
}

// Winner returns the snapshot of the winning monster.
func (c Combat) Winner() MonsterSnapshot {
	if c.WinnerID == c.Monster2.ID {
		return c.Monster2
	}
	return c.Monster1
}

// Loser returns the snapshot of the monster that did not win.
func (c Combat) Loser() MonsterSnapshot {
	if c.WinnerID == c.Monster2.ID {
		return c.Monster1
	}
	return c.Monster2
}

// ValidatePair rejects combats a player cannot start.
func ValidatePair(monster1ID, monster2ID string) error {
	monster1ID = strings.TrimSpace(monster1ID)
	monster2ID = strings.TrimSpace(monster2ID)
	if monster1ID == "" || monster2ID == "" {
		return apperrors.New(apperrors.CodeInvalidCombat, "both monster ids are required")
	}
	if monster1ID == monster2ID {
		return apperrors.New(apperrors.CodeInvalidCombat, "a monster cannot fight itself")
	}
	return nil
}

// Summary is the list view of a combat.
type Summary struct {
	ID                string    `json:"id"`
	InitiatorUsername string    `json:"initiatorUsername"`
	Monster1ID        string    `json:"monster1Id"`
	Monster2ID        string    `json:"monster2Id"`
	WinnerID          string    `json:"winnerId"`
	WinnerUsername    string    `json:"winnerUsername"`
	TotalTurns        int       `json:"totalTurns"`
	Status            Status    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Summary returns the list view of c.
func (c Combat) Summary() Summary {
	return Summary{
		ID:                c.ID,
		InitiatorUsername: c.InitiatorUsername,
		Monster1ID:        c.Monster1.ID,
		Monster2ID:        c.Monster2.ID,
		WinnerID:          c.WinnerID,
		WinnerUsername:    c.WinnerUsername,
		TotalTurns:        c.TotalTurns,
		Status:            c.Status,
		CreatedAt:         c.CreatedAt,
	}
}
