// Package storage defines player persistence contracts.
package storage

import (
	"context"
	"errors"

	"github.com/gatchaworks/arena/internal/services/player/domain"
)

var (
	// ErrNotFound indicates a requested player does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a player with the same username exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// PlayerStore persists players and their inventories.
type PlayerStore interface {
	CreatePlayer(ctx context.Context, player domain.Player) error
	GetPlayer(ctx context.Context, username string) (domain.Player, error)
	// ListPlayers lists players by username without their inventories.
	ListPlayers(ctx context.Context) ([]domain.Player, error)
	// UpdatePlayer replaces progression and the full inventory of an
	// existing player.
	UpdatePlayer(ctx context.Context, player domain.Player) error
}
