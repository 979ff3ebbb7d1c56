package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/platform/requestctx"
	"github.com/gatchaworks/arena/internal/services/combat/domain"
	"github.com/gatchaworks/arena/internal/services/combat/service"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// CombatService is the combat behavior the API serves.
type CombatService interface {
	StartCombat(ctx context.Context, monster1ID, monster2ID, username string) (domain.Combat, error)
	GetCombat(ctx context.Context, combatID string) (domain.Combat, error)
	ListCombats(ctx context.Context, query service.ListQuery) (service.ListResult, error)
	ListMyCombats(ctx context.Context, username string, query service.ListQuery) (service.ListResult, error)
}

// StartCombatRequest names the two fighting monsters.
type StartCombatRequest struct {
	Monster1ID string `json:"monster1Id"`
	Monster2ID string `json:"monster2Id"`
}

// Combat is a stored combat as served over the wire.
type Combat struct {
	ID                string                 `json:"id"`
	InitiatorUsername string                 `json:"initiatorUsername"`
	Monster1          domain.MonsterSnapshot `json:"monster1"`
	Monster2          domain.MonsterSnapshot `json:"monster2"`
	Logs              []domain.TurnLog       `json:"logs"`
	WinnerID          string                 `json:"winnerId"`
	WinnerUsername    string                 `json:"winnerUsername"`
	TotalTurns        int                    `json:"totalTurns"`
	Status            domain.Status          `json:"status"`
	Result            string                 `json:"result"`
	CreatedAt         time.Time              `json:"createdAt"`
}

// CombatList is one page of combat summaries.
type CombatList struct {
	Combats       []domain.Summary `json:"combats"`
	NextPageToken string           `json:"nextPageToken,omitempty"`
}

func toWire(ctx context.Context, combat domain.Combat) Combat {
	logs := combat.Logs
	if logs == nil {
		logs = []domain.TurnLog{}
	}
	return Combat{
		ID:                combat.ID,
		InitiatorUsername: combat.InitiatorUsername,
		Monster1:          combat.Monster1,
		Monster2:          combat.Monster2,
		Logs:              logs,
		WinnerID:          combat.WinnerID,
		WinnerUsername:    combat.WinnerUsername,
		TotalTurns:        combat.TotalTurns,
		Status:            combat.Status,
		Result:            domain.DescribeWinner(requestctx.LocaleFromContext(ctx), combat),
		CreatedAt:         combat.CreatedAt,
	}
}

func toList(result service.ListResult) CombatList {
	summaries := make([]domain.Summary, 0, len(result.Combats))
	for _, combat := range result.Combats {
		summaries = append(summaries, combat.Summary())
	}
	return CombatList{Combats: summaries, NextPageToken: result.NextPageToken}
}

type handlers struct {
	svc CombatService
}

func (h handlers) handleStart(w http.ResponseWriter, r *http.Request) {
	username, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	var req StartCombatRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	combat, err := h.svc.StartCombat(r.Context(), req.Monster1ID, req.Monster2ID, username)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, toWire(r.Context(), combat))
}

func listQuery(r *http.Request) (service.ListQuery, error) {
	pageSize, err := httpx.QueryInt(r, "page_size", 0)
	if err != nil {
		return service.ListQuery{}, err
	}
	return service.ListQuery{
		Filter:    r.URL.Query().Get("filter"),
		PageSize:  pageSize,
		PageToken: r.URL.Query().Get("page_token"),
	}, nil
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	query, err := listQuery(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	result, err := h.svc.ListCombats(r.Context(), query)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, toList(result))
}

func (h handlers) handleListMine(w http.ResponseWriter, r *http.Request) {
	username, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	query, err := listQuery(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	result, err := h.svc.ListMyCombats(r.Context(), username, query)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, toList(result))
}

func (h handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	combat, err := h.svc.GetCombat(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, toWire(r.Context(), combat))
}

func (h handlers) handleFrames(w http.ResponseWriter, r *http.Request) {
	combat, err := h.svc.GetCombat(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, domain.Replay(combat))
}
