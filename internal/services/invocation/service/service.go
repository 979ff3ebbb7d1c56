// Package service drives summons: template selection, remote monster
// creation and the retry loop that finishes interrupted invocations.
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
	"github.com/gatchaworks/arena/internal/services/invocation/domain"
	"github.com/gatchaworks/arena/internal/services/invocation/storage"
	"github.com/gatchaworks/arena/internal/services/monster/api/monsterapi"
	"github.com/gatchaworks/arena/internal/services/player/api/playerapi"
)

//go:generate go tool mockgen -destination=./mocks/clients_mock.go -package=mocks . PlayerReader,MonsterCreator

// PlayerReader loads the summoning player.
type PlayerReader interface {
	GetPlayer(ctx context.Context, username string) (playerapi.Player, error)
}

// MonsterCreator creates a monster for a player. The monster service adds
// the new monster to the player's inventory itself.
type MonsterCreator interface {
	CreateMonster(ctx context.Context, username string, req monsterapi.CreateMonsterRequest) (monsterapi.Monster, error)
}

// Service orchestrates invocations.
type Service struct {
	invocations storage.InvocationStore
	templates   storage.TemplateStore
	players     PlayerReader
	monsters    MonsterCreator
	rng         domain.RandomSource
	locks       *keylock.Locker
	newID       id.Generator
	now         func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithIDGenerator overrides invocation id generation.
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

// New builds an invocation service.
func New(
	invocations storage.InvocationStore,
	templates storage.TemplateStore,
	players PlayerReader,
	monsters MonsterCreator,
	rng domain.RandomSource,
	opts ...Option,
) *Service {
	s := &Service{
		invocations: invocations,
		templates:   templates,
		players:     players,
		monsters:    monsters,
		rng:         rng,
		locks:       keylock.New(),
		newID:       id.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Invoke summons one monster for username.
func (s *Service) Invoke(ctx context.Context, username string) (domain.Invocation, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Invocation{}, apperrors.New(apperrors.CodeInvalidArgument, "username is required")
	}

	player, err := s.players.GetPlayer(ctx, username)
	if err != nil {
		return domain.Invocation{}, err
	}
	if player.InventoryFull() {
		return domain.Invocation{}, apperrors.WithMetadata(apperrors.CodeInventoryFull, "monster limit reached",
			map[string]string{"Username": username})
	}

	templates, err := s.templates.ListTemplates(ctx)
	if err != nil {
		return domain.Invocation{}, fmt.Errorf("list templates: %w", err)
	}
	template, err := domain.SelectTemplate(templates, s.rng)
	if err != nil {
		return domain.Invocation{}, err
	}

	invocationID, err := s.newID()
	if err != nil {
		return domain.Invocation{}, fmt.Errorf("generate invocation id: %w", err)
	}
	unlock, err := s.locks.Lock(ctx, invocationID)
	if err != nil {
		return domain.Invocation{}, err
	}
	defer unlock()

	invocation := domain.NewInvocation(invocationID, username, template.ID, s.now())
	if err := s.invocations.PutInvocation(ctx, invocation); err != nil {
		return domain.Invocation{}, fmt.Errorf("save invocation: %w", err)
	}

	monster, err := s.monsters.CreateMonster(ctx, username, CreateRequest(template))
	if err != nil {
		return s.fail(ctx, invocation, err)
	}
	if err := s.finish(ctx, &invocation, monster.ID); err != nil {
		return s.fail(ctx, invocation, err)
	}
	log.Printf("invocation completed invocation=%s username=%s template=%d monster=%s",
		invocation.ID, username, template.ID, monster.ID)
	return invocation, nil
}

// finish walks a created monster through PLAYER_UPDATED to COMPLETED. The
// monster id is saved first so a retry never creates it twice; invocation
// is only advanced past MONSTER_CREATED once the final save succeeds.
func (s *Service) finish(ctx context.Context, invocation *domain.Invocation, monsterID string) error {
	if monsterID != "" {
		created := *invocation
		if err := created.MarkMonsterCreated(monsterID, s.now()); err != nil {
			return err
		}
		if err := s.invocations.PutInvocation(ctx, created); err != nil {
			invocation.MonsterID = monsterID
			return fmt.Errorf("save invocation: %w", err)
		}
		*invocation = created
	}
	completed := *invocation
	if err := completed.MarkPlayerUpdated(s.now()); err != nil {
		return err
	}
	if err := completed.MarkCompleted(s.now()); err != nil {
		return err
	}
	if err := s.invocations.PutInvocation(ctx, completed); err != nil {
		return fmt.Errorf("save invocation: %w", err)
	}
	*invocation = completed
	return nil
}

func (s *Service) fail(ctx context.Context, invocation domain.Invocation, cause error) (domain.Invocation, error) {
	if err := invocation.MarkFailed(cause.Error(), s.now()); err != nil {
		return invocation, err
	}
	if err := s.invocations.PutInvocation(context.WithoutCancel(ctx), invocation); err != nil {
		log.Printf("save failed invocation invocation=%s err=%v", invocation.ID, err)
	}
	log.Printf("invocation failed invocation=%s username=%s retries=%d err=%v",
		invocation.ID, invocation.Username, invocation.RetryCount, cause)
	return invocation, &apperrors.Error{
		Code:     apperrors.CodeInvocationFailed,
		Message:  "invocation failed: " + cause.Error(),
		Metadata: map[string]string{"InvocationID": invocation.ID},
		Cause:    cause,
	}
}

// RetryOutcome is what happened to one invocation in a retry batch.
type RetryOutcome struct {
	Invocation domain.Invocation
	// Skipped is set when another caller finished the invocation first.
	Skipped bool
	Err     error
}

// RetryReport summarizes a retry batch.
type RetryReport struct {
	Outcomes []RetryOutcome
}

// Completed counts invocations the batch drove to COMPLETED.
func (r RetryReport) Completed() int {
	n := 0
	for _, outcome := range r.Outcomes {
		if !outcome.Skipped && outcome.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts invocations that failed again.
func (r RetryReport) Failed() int {
	n := 0
	for _, outcome := range r.Outcomes {
		if outcome.Err != nil {
			n++
		}
	}
	return n
}

// RetryPending retries every unfinished invocation in order. Per-invocation
// failures are reported in the batch, not returned.
func (s *Service) RetryPending(ctx context.Context) (RetryReport, error) {
	pending, err := s.invocations.ListInvocationsByStatus(ctx, domain.RetryableStatuses)
	if err != nil {
		return RetryReport{}, fmt.Errorf("list pending invocations: %w", err)
	}
	report := RetryReport{Outcomes: make([]RetryOutcome, 0, len(pending))}
	for _, invocation := range pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Outcomes = append(report.Outcomes, s.retry(ctx, invocation.ID))
	}
	if len(report.Outcomes) > 0 {
		log.Printf("invocation retry batch size=%d completed=%d failed=%d",
			len(report.Outcomes), report.Completed(), report.Failed())
	}
	return report, nil
}

func (s *Service) retry(ctx context.Context, invocationID string) RetryOutcome {
	unlock, err := s.locks.Lock(ctx, invocationID)
	if err != nil {
		return RetryOutcome{Invocation: domain.Invocation{ID: invocationID}, Err: err}
	}
	defer unlock()

	invocation, err := s.invocations.GetInvocation(ctx, invocationID)
	if err != nil {
		return RetryOutcome{Invocation: domain.Invocation{ID: invocationID}, Err: fmt.Errorf("reload invocation: %w", err)}
	}
	if !invocation.Status.Retryable() {
		return RetryOutcome{Invocation: invocation, Skipped: true}
	}
	if err := invocation.ResetForRetry(s.now()); err != nil {
		return RetryOutcome{Invocation: invocation, Err: err}
	}

	monsterID := ""
	if invocation.MonsterID == "" {
		monsterID, err = s.createFor(ctx, invocation)
		if err != nil {
			failed, _ := s.fail(ctx, invocation, err)
			return RetryOutcome{Invocation: failed, Err: err}
		}
	}
	if err := s.finish(ctx, &invocation, monsterID); err != nil {
		failed, _ := s.fail(ctx, invocation, err)
		return RetryOutcome{Invocation: failed, Err: err}
	}
	log.Printf("invocation retried invocation=%s monster=%s", invocation.ID, invocation.MonsterID)
	return RetryOutcome{Invocation: invocation}
}

func (s *Service) createFor(ctx context.Context, invocation domain.Invocation) (string, error) {
	template, err := s.templates.GetTemplate(ctx, invocation.TemplateID)
	if errors.Is(err, storage.ErrNotFound) {
		return "", apperrors.WithMetadata(apperrors.CodeTemplateNotFound,
			fmt.Sprintf("template %d not found", invocation.TemplateID),
			map[string]string{"TemplateID": fmt.Sprint(invocation.TemplateID)})
	}
	if err != nil {
		return "", fmt.Errorf("get template: %w", err)
	}
	monster, err := s.monsters.CreateMonster(ctx, invocation.Username, CreateRequest(template))
	if err != nil {
		return "", err
	}
	return monster.ID, nil
}

// History lists a player's invocations newest first.
func (s *Service) History(ctx context.Context, username string) ([]domain.Invocation, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "username is required")
	}
	invocations, err := s.invocations.ListInvocationsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list invocations: %w", err)
	}
	return invocations, nil
}

// Templates lists the summonable templates.
func (s *Service) Templates(ctx context.Context) ([]domain.MonsterTemplate, error) {
	templates, err := s.templates.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// CreateRequest maps a template onto a monster creation request.
func CreateRequest(template domain.MonsterTemplate) monsterapi.CreateMonsterRequest {
	skills := make([]monsterapi.SkillTemplate, 0, len(template.Skills))
	for _, skill := range template.Skills {
		skills = append(skills, monsterapi.SkillTemplate{
			Num:      skill.Num,
			Dmg:      skill.Dmg,
			Ratio:    skill.Ratio,
			Cooldown: skill.Cooldown,
			LvlMax:   skill.LvlMax,
		})
	}
	return monsterapi.CreateMonsterRequest{
		TemplateID: template.ID,
		Element:    template.Element,
		Stats:      template.Stats,
		Skills:     skills,
	}
}
