// Package service implements player progression and inventory bookkeeping.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
	"github.com/gatchaworks/arena/internal/platform/keylock"
	"github.com/gatchaworks/arena/internal/services/player/domain"
	"github.com/gatchaworks/arena/internal/services/player/storage"
)

// Service owns player reads and mutations. Mutations of one player are
// serialized so inventory limits hold under concurrent summons.
type Service struct {
	store storage.PlayerStore
	locks *keylock.Locker
	now   func() time.Time
}

// New builds a player service.
func New(store storage.PlayerStore, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, locks: keylock.New(), now: now}
}

// Create registers a new player.
func (s *Service) Create(ctx context.Context, username string) (domain.Player, error) {
	player, err := domain.New(username, s.now())
	if err != nil {
		return domain.Player{}, err
	}
	if err := s.store.CreatePlayer(ctx, player); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return domain.Player{}, apperrors.WithMetadata(apperrors.CodePlayerAlreadyExists, "player already exists",
				map[string]string{"Username": player.Username})
		}
		return domain.Player{}, fmt.Errorf("create player: %w", err)
	}
	log.Printf("player created username=%s", player.Username)
	return player, nil
}

// Get loads a player. With createIfMissing an unknown player is registered
// on the spot.
func (s *Service) Get(ctx context.Context, username string, createIfMissing bool) (domain.Player, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Player{}, apperrors.New(apperrors.CodeInvalidArgument, "username is required")
	}
	player, err := s.store.GetPlayer(ctx, username)
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return domain.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !createIfMissing {
		return domain.Player{}, playerNotFound(username)
	}
	player, err = s.Create(ctx, username)
	if apperrors.HasCode(err, apperrors.CodePlayerAlreadyExists) {
		return s.Get(ctx, username, false)
	}
	return player, err
}

// List lists every player.
func (s *Service) List(ctx context.Context) ([]domain.Player, error) {
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// AddExperience grants xp to username.
func (s *Service) AddExperience(ctx context.Context, username string, xp float64) (domain.Player, error) {
	return s.mutate(ctx, username, func(p *domain.Player) error {
		previous := p.Level
		if _, err := p.AddExperience(xp); err != nil {
			return err
		}
		if p.Level > previous {
			log.Printf("player leveled up username=%s from=%d to=%d", p.Username, previous, p.Level)
		}
		return nil
	})
}

// LevelUp spends one experience step on a level.
func (s *Service) LevelUp(ctx context.Context, username string) (domain.Player, error) {
	return s.mutate(ctx, username, func(p *domain.Player) error {
		return p.LevelUp()
	})
}

// AddMonster records monsterID in username's inventory.
func (s *Service) AddMonster(ctx context.Context, username, monsterID string) (domain.Player, error) {
	return s.mutate(ctx, username, func(p *domain.Player) error {
		return p.AddMonster(monsterID)
	})
}

// RemoveMonster drops monsterID from username's inventory.
func (s *Service) RemoveMonster(ctx context.Context, username, monsterID string) (domain.Player, error) {
	return s.mutate(ctx, username, func(p *domain.Player) error {
		return p.RemoveMonster(monsterID)
	})
}

func (s *Service) mutate(ctx context.Context, username string, change func(*domain.Player) error) (domain.Player, error) {
	username = strings.TrimSpace(username)
	unlock, err := s.locks.Lock(ctx, username)
	if err != nil {
		return domain.Player{}, err
	}
	defer unlock()

	player, err := s.Get(ctx, username, false)
	if err != nil {
		return domain.Player{}, err
	}
	if err := change(&player); err != nil {
		return domain.Player{}, err
	}
	player.UpdatedAt = s.now().UTC()
	if err := s.store.UpdatePlayer(ctx, player); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Player{}, playerNotFound(username)
		}
		return domain.Player{}, fmt.Errorf("update player: %w", err)
	}
	return player, nil
}

func playerNotFound(username string) error {
	return apperrors.WithMetadata(apperrors.CodePlayerNotFound, "player not found",
		map[string]string{"Username": username})
}
