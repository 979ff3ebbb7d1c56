// Package storage defines monster persistence contracts.
package storage

import (
	"context"
	"errors"

	"github.com/gatchaworks/arena/internal/services/monster/domain"
)

// ErrNotFound indicates a requested monster does not exist.
var ErrNotFound = errors.New("record not found")

// MonsterStore persists owned monsters.
type MonsterStore interface {
	PutMonster(ctx context.Context, monster domain.Monster) error
	GetMonster(ctx context.Context, id string) (domain.Monster, error)
	ListMonstersByOwner(ctx context.Context, owner string) ([]domain.Monster, error)
	// ListMonstersByIDs returns the monsters among ids owned by owner.
	ListMonstersByIDs(ctx context.Context, owner string, ids []string) ([]domain.Monster, error)
	DeleteMonster(ctx context.Context, id string) error
}
