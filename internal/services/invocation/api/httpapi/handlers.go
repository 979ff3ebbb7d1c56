package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/services/invocation/domain"
	"github.com/gatchaworks/arena/internal/services/invocation/service"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// InvocationService is the summoning behavior the API serves.
type InvocationService interface {
	Invoke(ctx context.Context, username string) (domain.Invocation, error)
	RetryPending(ctx context.Context) (service.RetryReport, error)
	History(ctx context.Context, username string) ([]domain.Invocation, error)
	Templates(ctx context.Context) ([]domain.MonsterTemplate, error)
}

// Invocation is an invocation as served over the wire.
type Invocation struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	TemplateID   int       `json:"templateId"`
	MonsterID    string    `json:"monsterId,omitempty"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	RetryCount   int       `json:"retryCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RetryOutcome is one retried invocation.
type RetryOutcome struct {
	Invocation Invocation `json:"invocation"`
	Skipped    bool       `json:"skipped,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// RetryResponse summarizes a retry batch.
type RetryResponse struct {
	Completed int            `json:"completed"`
	Failed    int            `json:"failed"`
	Outcomes  []RetryOutcome `json:"outcomes"`
}

func toWire(invocation domain.Invocation) Invocation {
	return Invocation{
		ID:           invocation.ID,
		Username:     invocation.Username,
		TemplateID:   invocation.TemplateID,
		MonsterID:    invocation.MonsterID,
		Status:       string(invocation.Status),
		ErrorMessage: invocation.ErrorMessage,
		RetryCount:   invocation.RetryCount,
		CreatedAt:    invocation.CreatedAt,
		UpdatedAt:    invocation.UpdatedAt,
	}
}

type handlers struct {
	svc InvocationService
}

func (h handlers) handleInvoke(w http.ResponseWriter, r *http.Request) {
	username, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	invocation, err := h.svc.Invoke(r.Context(), username)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, toWire(invocation))
}

func (h handlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	username, err := authctx.Username(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	invocations, err := h.svc.History(r.Context(), username)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	out := make([]Invocation, 0, len(invocations))
	for _, invocation := range invocations {
		out = append(out, toWire(invocation))
	}
	_ = httpx.WriteJSON(w, http.StatusOK, out)
}

func (h handlers) handleRetry(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.RetryPending(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	resp := RetryResponse{
		Completed: report.Completed(),
		Failed:    report.Failed(),
		Outcomes:  make([]RetryOutcome, 0, len(report.Outcomes)),
	}
	for _, outcome := range report.Outcomes {
		wire := RetryOutcome{Invocation: toWire(outcome.Invocation), Skipped: outcome.Skipped}
		if outcome.Err != nil {
			wire.Error = outcome.Err.Error()
		}
		resp.Outcomes = append(resp.Outcomes, wire)
	}
	_ = httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h handlers) handleTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.svc.Templates(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, templates)
}
