// Package httpapi exposes the monster service over JSON HTTP.
package httpapi

import (
	"net/http"

	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// NewHandler builds the authenticated monster API.
func NewHandler(svc MonsterService, verifier authctx.Verifier) http.Handler {
	mux := http.NewServeMux()
	Register(mux, svc)
	return httpx.Chain(mux,
		httpx.RequestID("monster"),
		httpx.AccessLog(),
		httpx.RecoverPanic(),
		authctx.RequireUser(verifier),
	)
}

// Register mounts the monster routes on mux.
func Register(mux *http.ServeMux, svc MonsterService) {
	h := handlers{svc: svc}
	mux.HandleFunc("POST /monsters", h.handleCreate)
	mux.HandleFunc("POST /monsters/batch", h.handleBatch)
	mux.HandleFunc("GET /monsters/mine", h.handleListMine)
	mux.HandleFunc("GET /monsters/{id}", h.handleGet)
	mux.HandleFunc("POST /monsters/{id}/experience", h.handleAddExperience)
	mux.HandleFunc("POST /monsters/{id}/experience/reward", h.handleRewardExperience)
	mux.HandleFunc("POST /monsters/{id}/skills/{num}/upgrade", h.handleUpgradeSkill)
	mux.HandleFunc("DELETE /monsters/{id}", h.handleDelete)
}
