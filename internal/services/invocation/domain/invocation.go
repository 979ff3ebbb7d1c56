package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Status is the step an invocation has reached.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusMonsterCreated Status = "MONSTER_CREATED"
	StatusPlayerUpdated  Status = "PLAYER_UPDATED"
	StatusCompleted      Status = "COMPLETED"
	StatusFailed         Status = "FAILED"
)

// RetryableStatuses are the statuses a retry batch picks up.
var RetryableStatuses = []Status{StatusPending, StatusMonsterCreated, StatusPlayerUpdated, StatusFailed}

// Retryable reports whether s may still be driven to completion.
func (s Status) Retryable() bool {
	return slices.Contains(RetryableStatuses, s)
}

// Invocation tracks one summon from template selection to the monster
// landing in the player's inventory.
type Invocation struct {
	ID           string
	Username     string
	TemplateID   int
	MonsterID    string
	Status       Status
	ErrorMessage string
	RetryCount   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewInvocation starts a PENDING invocation.
func NewInvocation(id, username string, templateID int, now time.Time) Invocation {
	now = now.UTC()
	return Invocation{
		ID:         id,
		Username:   username,
		TemplateID: templateID,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ErrInvocationCompleted is returned when a completed invocation is moved.
var ErrInvocationCompleted = errors.New("invocation already completed")

func (i *Invocation) touch(now time.Time) error {
	if i.Status == StatusCompleted {
		return ErrInvocationCompleted
	}
	i.UpdatedAt = now.UTC()
	return nil
}

// MarkMonsterCreated records the created monster.
func (i *Invocation) MarkMonsterCreated(monsterID string, now time.Time) error {
	if err := i.touch(now); err != nil {
		return err
	}
	i.MonsterID = monsterID
	i.Status = StatusMonsterCreated
	return nil
}

// MarkPlayerUpdated records that the monster is in the player's inventory.
func (i *Invocation) MarkPlayerUpdated(now time.Time) error {
	if err := i.touch(now); err != nil {
		return err
	}
	if i.MonsterID == "" {
		return fmt.Errorf("invocation %s has no monster", i.ID)
	}
	i.Status = StatusPlayerUpdated
	return nil
}

// MarkCompleted finishes the invocation.
func (i *Invocation) MarkCompleted(now time.Time) error {
	if err := i.touch(now); err != nil {
		return err
	}
	if i.Status != StatusPlayerUpdated {
		return fmt.Errorf("invocation %s cannot complete from %s", i.ID, i.Status)
	}
	i.Status = StatusCompleted
	return nil
}

// MarkFailed records a failure and counts the attempt.
func (i *Invocation) MarkFailed(message string, now time.Time) error {
	if err := i.touch(now); err != nil {
		return err
	}
	i.Status = StatusFailed
	i.ErrorMessage = message
	i.RetryCount++
	return nil
}

// ResetForRetry clears the last error before another attempt.
func (i *Invocation) ResetForRetry(now time.Time) error {
	if err := i.touch(now); err != nil {
		return err
	}
	i.ErrorMessage = ""
	return nil
}
