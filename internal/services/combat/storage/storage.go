// Package storage defines combat history persistence contracts.
package storage

import (
	"context"
	"errors"

	"github.com/gatchaworks/arena/internal/platform/filter"
	"github.com/gatchaworks/arena/internal/services/combat/domain"
)

// ErrNotFound indicates a requested combat does not exist.
var ErrNotFound = errors.New("record not found")

// FilterSchema lists the fields combat history can be filtered on.
var FilterSchema = filter.Schema{
	"winner_username":    {Column: "winner_username", Kind: filter.KindString},
	"initiator_username": {Column: "initiator_username", Kind: filter.KindString},
	"total_turns":        {Column: "total_turns", Kind: filter.KindInt},
	"created_at":         {Column: "created_at", Kind: filter.KindTimestamp},
}

// Page selects a window of a newest-first listing.
type Page struct {
	Size   int
	Offset int
}

// CombatPage is one page of combats. NextOffset is zero on the last page.
type CombatPage struct {
	Combats    []domain.Combat
	NextOffset int
}

// CombatStore persists completed combats.
type CombatStore interface {
	PutCombat(ctx context.Context, combat domain.Combat) error
	GetCombat(ctx context.Context, id string) (domain.Combat, error)
	// ListCombats lists combats matching cond newest first.
	ListCombats(ctx context.Context, cond filter.SQLCondition, page Page) (CombatPage, error)
	// ListCombatsByInitiator lists combats a player started that also match
	// cond, newest first.
	ListCombatsByInitiator(ctx context.Context, username string, cond filter.SQLCondition, page Page) (CombatPage, error)
}
