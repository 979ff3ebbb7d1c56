// Package service implements monster ownership and progression on top of the
// monster store, keeping the player inventory in step.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
	"github.com/gatchaworks/arena/internal/platform/id"
	"github.com/gatchaworks/arena/internal/platform/keylock"
	"github.com/gatchaworks/arena/internal/services/monster/domain"
	"github.com/gatchaworks/arena/internal/services/monster/storage"
	"github.com/gatchaworks/arena/internal/services/player/api/playerapi"
)

// PlayerInventory updates the owning player's monster list.
type PlayerInventory interface {
	AddMonster(ctx context.Context, username, monsterID string) (playerapi.Player, error)
	RemoveMonster(ctx context.Context, username, monsterID string) (playerapi.Player, error)
}

// Service owns monster lifecycle operations. Every call takes the acting
// player explicitly. Writes to one monster are serialized by id.
type Service struct {
	store   storage.MonsterStore
	players PlayerInventory
	locks   *keylock.Locker
	newID   id.Generator
	now     func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithIDGenerator overrides monster id generation.
func WithIDGenerator(gen id.Generator) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a monster service.
func New(store storage.MonsterStore, players PlayerInventory, opts ...Option) *Service {
	s := &Service{
		store:   store,
		players: players,
		locks:   keylock.New(),
		newID:   id.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new monster for username and adds it to their inventory.
// The monster is removed again when the inventory rejects it.
func (s *Service) Create(ctx context.Context, username string, spec domain.Spec) (domain.Monster, error) {
	monsterID, err := s.newID()
	if err != nil {
		return domain.Monster{}, fmt.Errorf("generate monster id: %w", err)
	}
	monster, err := domain.New(monsterID, username, spec, s.now())
	if err != nil {
		return domain.Monster{}, err
	}
	if err := s.store.PutMonster(ctx, monster); err != nil {
		return domain.Monster{}, fmt.Errorf("save monster: %w", err)
	}
	log.Printf("monster created monster=%s owner=%s template=%d", monster.ID, monster.OwnerUsername, monster.TemplateID)

	if _, err := s.players.AddMonster(ctx, monster.OwnerUsername, monster.ID); err != nil {
		log.Printf("add monster to player failed, rolling back monster=%s owner=%s err=%v", monster.ID, monster.OwnerUsername, err)
		if delErr := s.store.DeleteMonster(context.WithoutCancel(ctx), monster.ID); delErr != nil {
			log.Printf("roll back monster=%s: %v", monster.ID, delErr)
		}
		return domain.Monster{}, err
	}
	return monster, nil
}

// Get loads one of username's monsters.
func (s *Service) Get(ctx context.Context, username, monsterID string) (domain.Monster, error) {
	monster, err := s.load(ctx, monsterID)
	if err != nil {
		return domain.Monster{}, err
	}
	if err := monster.EnsureOwner(username); err != nil {
		return domain.Monster{}, err
	}
	return monster, nil
}

// ListMine lists username's monsters.
func (s *Service) ListMine(ctx context.Context, username string) ([]domain.Monster, error) {
	monsters, err := s.store.ListMonstersByOwner(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list monsters: %w", err)
	}
	return monsters, nil
}

// Batch returns username's monsters among ids; foreign ids are left out.
func (s *Service) Batch(ctx context.Context, username string, ids []string) ([]domain.Monster, error) {
	if len(ids) == 0 {
		return []domain.Monster{}, nil
	}
	monsters, err := s.store.ListMonstersByIDs(ctx, username, ids)
	if err != nil {
		return nil, fmt.Errorf("batch monsters: %w", err)
	}
	return monsters, nil
}

// AddExperience grants xp to one of username's monsters.
func (s *Service) AddExperience(ctx context.Context, username, monsterID string, xp float64) (domain.Monster, error) {
	if xp <= 0 {
		return domain.Monster{}, apperrors.New(apperrors.CodeInvalidArgument, "experience must be positive")
	}
	return s.mutate(ctx, monsterID, func(m domain.Monster) error {
		return m.EnsureOwner(username)
	}, s.grant(xp))
}

// RewardExperience grants xp to a monster on behalf of its owner. A monster
// the caller does not own reads as missing.
func (s *Service) RewardExperience(ctx context.Context, username, monsterID string, xp float64) (domain.Monster, error) {
	if xp <= 0 {
		return domain.Monster{}, apperrors.New(apperrors.CodeInvalidArgument, "experience must be positive")
	}
	return s.mutate(ctx, monsterID, func(m domain.Monster) error {
		if m.OwnerUsername != username {
			return notFound(m.ID)
		}
		return nil
	}, s.grant(xp))
}

func (s *Service) grant(xp float64) func(*domain.Monster) error {
	return func(m *domain.Monster) error {
		previous := m.Level
		if _, err := m.AddExperience(xp); err != nil {
			return err
		}
		if m.Level > previous {
			log.Printf("monster leveled up monster=%s from=%d to=%d", m.ID, previous, m.Level)
		}
		return nil
	}
}

// UpgradeSkill spends one of the monster's skill points on skill num.
func (s *Service) UpgradeSkill(ctx context.Context, username, monsterID string, num int) (domain.Monster, error) {
	monster, err := s.mutate(ctx, monsterID, func(m domain.Monster) error {
		return m.EnsureOwner(username)
	}, func(m *domain.Monster) error {
		return m.UpgradeSkill(num)
	})
	if err != nil {
		return domain.Monster{}, err
	}
	log.Printf("monster skill upgraded monster=%s skill=%d", monster.ID, num)
	return monster, nil
}

// Delete removes one of username's monsters and drops it from their inventory.
func (s *Service) Delete(ctx context.Context, username, monsterID string) error {
	monsterID = strings.TrimSpace(monsterID)
	unlock, err := s.locks.Lock(ctx, monsterID)
	if err != nil {
		return err
	}
	defer unlock()

	monster, err := s.Get(ctx, username, monsterID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteMonster(ctx, monster.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return notFound(monster.ID)
		}
		return fmt.Errorf("delete monster: %w", err)
	}
	log.Printf("monster deleted monster=%s owner=%s", monster.ID, username)
	if _, err := s.players.RemoveMonster(ctx, username, monster.ID); err != nil {
		return err
	}
	return nil
}

// mutate loads monsterID, checks access, applies change and saves it while
// holding the monster's lock.
func (s *Service) mutate(ctx context.Context, monsterID string, authorize func(domain.Monster) error, change func(*domain.Monster) error) (domain.Monster, error) {
	monsterID = strings.TrimSpace(monsterID)
	unlock, err := s.locks.Lock(ctx, monsterID)
	if err != nil {
		return domain.Monster{}, err
	}
	defer unlock()

	monster, err := s.load(ctx, monsterID)
	if err != nil {
		return domain.Monster{}, err
	}
	if err := authorize(monster); err != nil {
		return domain.Monster{}, err
	}
	if err := change(&monster); err != nil {
		return domain.Monster{}, err
	}
	monster.UpdatedAt = s.now().UTC()
	if err := s.store.PutMonster(ctx, monster); err != nil {
		return domain.Monster{}, fmt.Errorf("save monster: %w", err)
	}
	return monster, nil
}

func (s *Service) load(ctx context.Context, monsterID string) (domain.Monster, error) {
	monsterID = strings.TrimSpace(monsterID)
	if monsterID == "" {
		return domain.Monster{}, apperrors.New(apperrors.CodeInvalidArgument, "monster id is required")
	}
	monster, err := s.store.GetMonster(ctx, monsterID)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Monster{}, notFound(monsterID)
	}
	if err != nil {
		return domain.Monster{}, fmt.Errorf("get monster: %w", err)
	}
	return monster, nil
}

func notFound(monsterID string) error {
	return apperrors.WithMetadata(apperrors.CodeMonsterNotFound, "monster not found",
		map[string]string{"MonsterID": monsterID})
}
