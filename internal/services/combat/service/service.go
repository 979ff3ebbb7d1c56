// Package service runs combats between owned monsters, stores their history
// and dispatches post-combat rewards.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
	"github.com/gatchaworks/arena/internal/platform/filter"
	"github.com/gatchaworks/arena/internal/platform/id"
	"github.com/gatchaworks/arena/internal/platform/pagination"
	"github.com/gatchaworks/arena/internal/platform/requestctx"
	"github.com/gatchaworks/arena/internal/services/combat/domain"
	"github.com/gatchaworks/arena/internal/services/combat/storage"
	"github.com/gatchaworks/arena/internal/services/monster/api/monsterapi"
	"github.com/gatchaworks/arena/internal/services/player/api/playerapi"
)

// MonsterSource reads and rewards monsters on behalf of their owner.
type MonsterSource interface {
	FetchMonsters(ctx context.Context, username string, ids []string) ([]monsterapi.Monster, error)
	GrantExperience(ctx context.Context, username, id string, amount float64) (monsterapi.Monster, error)
}

// PlayerRewarder grants player experience.
type PlayerRewarder interface {
	GrantExperience(ctx context.Context, username string, amount float64) (playerapi.Player, error)
}

// Dispatcher receives each stored combat.
type Dispatcher interface {
	Dispatch(combat domain.Combat)
}

var pageSizes = pagination.PageSizeConfig{Default: 20, Max: 100}

// Service owns combat orchestration and history.
type Service struct {
	store    storage.CombatStore
	monsters MonsterSource
	hooks    Dispatcher
	newID    id.Generator
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithIDGenerator overrides combat id generation.
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

// New builds a combat service. hooks may be nil.
func New(store storage.CombatStore, monsters MonsterSource, hooks Dispatcher, opts ...Option) *Service {
	s := &Service{
		store:    store,
		monsters: monsters,
		hooks:    hooks,
		newID:    id.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartCombat fights two of username's monsters and stores the result. Log
// text uses the locale carried by ctx. Rewards run after the combat is
// stored and never change the returned combat.
func (s *Service) StartCombat(ctx context.Context, monster1ID, monster2ID, username string) (domain.Combat, error) {
	if err := domain.ValidatePair(monster1ID, monster2ID); err != nil {
		return domain.Combat{}, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Combat{}, apperrors.New(apperrors.CodeInvalidArgument, "username is required")
	}
	monster1ID = strings.TrimSpace(monster1ID)
	monster2ID = strings.TrimSpace(monster2ID)

	fetched, err := s.monsters.FetchMonsters(ctx, username, []string{monster1ID, monster2ID})
	if err != nil {
		return domain.Combat{}, err
	}
	m1, err := pick(fetched, monster1ID)
	if err != nil {
		return domain.Combat{}, err
	}
	m2, err := pick(fetched, monster2ID)
	if err != nil {
		return domain.Combat{}, err
	}

	combatID, err := s.newID()
	if err != nil {
		return domain.Combat{}, fmt.Errorf("generate combat id: %w", err)
	}
	simulator := domain.NewSimulator(domain.LocalizedDescriber(requestctx.LocaleFromContext(ctx)))
	result := simulator.Simulate(m1, m2)
	combat := domain.NewCombat(combatID, username, m1, m2, result, s.now())

	if err := s.store.PutCombat(ctx, combat); err != nil {
		return domain.Combat{}, fmt.Errorf("save combat: %w", err)
	}
	log.Printf("combat finished combat=%s initiator=%s winner=%s turns=%d",
		combat.ID, username, combat.WinnerID, combat.TotalTurns)

	if s.hooks != nil {
		s.hooks.Dispatch(combat)
	}
	return combat, nil
}

func pick(monsters []monsterapi.Monster, monsterID string) (domain.MonsterSnapshot, error) {
	for _, monster := range monsters {
		if monster.ID == monsterID {
			return Snapshot(monster), nil
		}
	}
	return domain.MonsterSnapshot{}, apperrors.WithMetadata(apperrors.CodeInvalidCombat,
		"monster not found or not owned", map[string]string{"MonsterID": monsterID})
}

// Snapshot freezes a served monster for battle.
func Snapshot(monster monsterapi.Monster) domain.MonsterSnapshot {
	skills := make([]domain.SkillSnapshot, 0, len(monster.Skills))
	for _, skill := range monster.Skills {
		skills = append(skills, domain.SkillSnapshot{
			Num:      skill.Num,
			Dmg:      skill.Dmg,
			Ratio:    skill.Ratio,
			Cooldown: skill.Cooldown,
			Lvl:      skill.Lvl,
		})
	}
	return domain.MonsterSnapshot{
		ID:            monster.ID,
		OwnerUsername: monster.OwnerUsername,
		Element:       monster.Element,
		Stats:         monster.Stats,
		Level:         monster.Level,
		Skills:        skills,
	}
}

// GetCombat loads a stored combat.
func (s *Service) GetCombat(ctx context.Context, combatID string) (domain.Combat, error) {
	combatID = strings.TrimSpace(combatID)
	if combatID == "" {
		return domain.Combat{}, apperrors.New(apperrors.CodeInvalidArgument, "combat id is required")
	}
	combat, err := s.store.GetCombat(ctx, combatID)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Combat{}, apperrors.WithMetadata(apperrors.CodeCombatNotFound, "combat not found",
			map[string]string{"CombatID": combatID})
	}
	if err != nil {
		return domain.Combat{}, fmt.Errorf("get combat: %w", err)
	}
	return combat, nil
}

// ListQuery selects a page of combat history.
type ListQuery struct {
	// Filter is an AIP-160 expression over storage.FilterSchema.
	Filter    string
	PageSize  int
	PageToken string
}

// ListResult is one page of combat history.
type ListResult struct {
	Combats       []domain.Combat
	NextPageToken string
}

// ListCombats lists all combats newest first.
func (s *Service) ListCombats(ctx context.Context, query ListQuery) (ListResult, error) {
	cond, err := filter.Parse(query.Filter, storage.FilterSchema)
	if err != nil {
		return ListResult{}, apperrors.Wrap(apperrors.CodeInvalidArgument, err.Error(), err)
	}
	page, err := toPage(query)
	if err != nil {
		return ListResult{}, err
	}
	result, err := s.store.ListCombats(ctx, cond, page)
	if err != nil {
		return ListResult{}, fmt.Errorf("list combats: %w", err)
	}
	return toResult(result), nil
}

// ListMyCombats lists the combats username started newest first, narrowed by
// the same filter ListCombats accepts.
func (s *Service) ListMyCombats(ctx context.Context, username string, query ListQuery) (ListResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return ListResult{}, apperrors.New(apperrors.CodeInvalidArgument, "username is required")
	}
	cond, err := filter.Parse(query.Filter, storage.FilterSchema)
	if err != nil {
		return ListResult{}, apperrors.Wrap(apperrors.CodeInvalidArgument, err.Error(), err)
	}
	page, err := toPage(query)
	if err != nil {
		return ListResult{}, err
	}
	result, err := s.store.ListCombatsByInitiator(ctx, username, cond, page)
	if err != nil {
		return ListResult{}, fmt.Errorf("list combats: %w", err)
	}
	return toResult(result), nil
}

func toPage(query ListQuery) (storage.Page, error) {
	offset, err := pagination.DecodeOffset(query.PageToken)
	if err != nil {
		return storage.Page{}, apperrors.Wrap(apperrors.CodeInvalidArgument, err.Error(), err)
	}
	return storage.Page{Size: pagination.ClampPageSize(query.PageSize, pageSizes), Offset: offset}, nil
}

func toResult(page storage.CombatPage) ListResult {
	return ListResult{Combats: page.Combats, NextPageToken: pagination.EncodeOffset(page.NextOffset)}
}
