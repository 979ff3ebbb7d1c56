package httpapi

import (
	"context"
	"net/http"

	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/services/monster/api/monsterapi"
	"github.com/gatchaworks/arena/internal/services/monster/domain"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// MonsterService is the monster behavior the API serves.
type MonsterService interface {
	Create(ctx context.Context, username string, spec domain.Spec) (domain.Monster, error)
	Get(ctx context.Context, username, monsterID string) (domain.Monster, error)
	ListMine(ctx context.Context, username string) ([]domain.Monster, error)
	Batch(ctx context.Context, username string, ids []string) ([]domain.Monster, error)
	AddExperience(ctx context.Context, username, monsterID string, xp float64) (domain.Monster, error)
	RewardExperience(ctx context.Context, username, monsterID string, xp float64) (domain.Monster, error)
	UpgradeSkill(ctx context.Context, username, monsterID string, num int) (domain.Monster, error)
	Delete(ctx context.Context, username, monsterID string) error
}

type handlers struct {
	svc MonsterService
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	username, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	var req monsterapi.CreateMonsterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	monster, err := h.svc.Create(r.Context(), username, specFromRequest(req))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, ToWire(monster))
}

func (h handlers) handleBatch(w http.ResponseWriter, r *http.Request) {
	username, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	var req monsterapi.BatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	monsters, err := h.svc.Batch(r.Context(), username, req.IDs)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, monsterapi.BatchResponse{Monsters: toWireList(monsters)})
}

func (h handlers) handleListMine(w http.ResponseWriter, r *http.Request) {
	username, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	monsters, err := h.svc.ListMine(r.Context(), username)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, toWireList(monsters))
}

func (h handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	h.respondMonster(w, r, func(ctx context.Context, username string) (domain.Monster, error) {
		return h.svc.Get(ctx, username, r.PathValue("id"))
	})
}

func (h handlers) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	h.respondMonster(w, r, func(ctx context.Context, username string) (domain.Monster, error) {
		amount, err := httpx.QueryFloat(r, "amount")
		if err != nil {
			return domain.Monster{}, err
		}
		return h.svc.AddExperience(ctx, username, r.PathValue("id"), amount)
	})
}

func (h handlers) handleRewardExperience(w http.ResponseWriter, r *http.Request) {
	h.respondMonster(w, r, func(ctx context.Context, username string) (domain.Monster, error) {
		amount, err := httpx.QueryFloat(r, "amount")
		if err != nil {
			return domain.Monster{}, err
		}
		return h.svc.RewardExperience(ctx, username, r.PathValue("id"), amount)
	})
}

func (h handlers) handleUpgradeSkill(w http.ResponseWriter, r *http.Request) {
	h.respondMonster(w, r, func(ctx context.Context, username string) (domain.Monster, error) {
		num, err := httpx.PathInt(r, "num")
		if err != nil {
			return domain.Monster{}, err
		}
		return h.svc.UpgradeSkill(ctx, username, r.PathValue("id"), num)
	})
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	username, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), username, r.PathValue("id")); err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h handlers) respondMonster(w http.ResponseWriter, r *http.Request, call func(context.Context, string) (domain.Monster, error)) {
	username, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	monster, err := call(r.Context(), username)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, ToWire(monster))
}
