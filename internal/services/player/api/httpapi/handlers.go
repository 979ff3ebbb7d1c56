package httpapi

import (
	"context"
	"net/http"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/services/player/api/playerapi"
	"github.com/gatchaworks/arena/internal/services/player/domain"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// PlayerService is the player behavior the API serves.
type PlayerService interface {
	Create(ctx context.Context, username string) (domain.Player, error)
	Get(ctx context.Context, username string, createIfMissing bool) (domain.Player, error)
	List(ctx context.Context) ([]domain.Player, error)
	AddExperience(ctx context.Context, username string, xp float64) (domain.Player, error)
	LevelUp(ctx context.Context, username string) (domain.Player, error)
	AddMonster(ctx context.Context, username, monsterID string) (domain.Player, error)
	RemoveMonster(ctx context.Context, username, monsterID string) (domain.Player, error)
}

type handlers struct {
	svc PlayerService
}

// ToWire converts a player to its API shape.
func ToWire(p domain.Player) playerapi.Player {
	ids := p.MonsterIDs
	if ids == nil {
		ids = []string{}
	}
	return playerapi.Player{
		Username:       p.Username,
		Level:          p.Level,
		Experience:     p.Experience,
		ExperienceStep: p.ExperienceStep,
		MonsterIDs:     ids,
		MaxMonsters:    p.MaxMonsters(),
	}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	players, err := h.svc.List(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	out := make([]playerapi.Player, 0, len(players))
	for _, p := range players {
		out = append(out, ToWire(p))
	}
	_ = httpx.WriteJSON(w, http.StatusOK, out)
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	username, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	player, err := h.svc.Create(r.Context(), username)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, ToWire(player))
}

func (h handlers) handleMe(w http.ResponseWriter, r *http.Request) {
	username, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	player, err := h.svc.Get(r.Context(), username, true)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, ToWire(player))
}

func (h handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	player, ok := h.lookup(w, r)
	if !ok {
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, ToWire(player))
}

func (h handlers) handleLevel(w http.ResponseWriter, r *http.Request) {
	player, ok := h.lookup(w, r)
	if !ok {
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, player.Level)
}

func (h handlers) handleMonsters(w http.ResponseWriter, r *http.Request) {
	player, ok := h.lookup(w, r)
	if !ok {
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, ToWire(player).MonsterIDs)
}

func (h handlers) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, username string) (domain.Player, error) {
		amount, err := httpx.QueryFloat(r, "amount")
		if err != nil {
			return domain.Player{}, err
		}
		return h.svc.AddExperience(ctx, username, amount)
	})
}

func (h handlers) handleLevelUp(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, username string) (domain.Player, error) {
		return h.svc.LevelUp(ctx, username)
	})
}

func (h handlers) handleAddMonster(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, username string) (domain.Player, error) {
		return h.svc.AddMonster(ctx, username, r.PathValue("id"))
	})
}

func (h handlers) handleRemoveMonster(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, username string) (domain.Player, error) {
		return h.svc.RemoveMonster(ctx, username, r.PathValue("id"))
	})
}

// lookup reads the path player, registering it when callers look themselves up.
func (h handlers) lookup(w http.ResponseWriter, r *http.Request) (domain.Player, bool) {
	caller, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return domain.Player{}, false
	}
	username := r.PathValue("username")
	player, err := h.svc.Get(r.Context(), username, username == caller)
	if err != nil {
		httpx.WriteError(w, err)
		return domain.Player{}, false
	}
	return player, true
}

func (h handlers) mutate(w http.ResponseWriter, r *http.Request, call func(context.Context, string) (domain.Player, error)) {
	caller, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	username := r.PathValue("username")
	if username != caller {
		httpx.WriteError(w, apperrors.WithMetadata(apperrors.CodePermissionDenied,
			"players may only modify their own profile", map[string]string{"Username": username}))
		return
	}
	player, err := call(r.Context(), username)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, ToWire(player))
}
