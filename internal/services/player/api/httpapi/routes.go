// Package httpapi exposes the player service over JSON HTTP.
package httpapi

import (
	"net/http"

	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// NewHandler builds the authenticated player API.
func NewHandler(svc PlayerService, verifier authctx.Verifier) http.Handler {
	mux := http.NewServeMux()
	Register(mux, svc)
	return httpx.Chain(mux,
		httpx.RequestID("player"),
		httpx.AccessLog(),
		httpx.RecoverPanic(),
		authctx.RequireUser(verifier),
	)
}

// Register mounts the player routes on mux.
func Register(mux *http.ServeMux, svc PlayerService) {
	h := handlers{svc: svc}
	mux.HandleFunc("GET /players", h.handleList)
	mux.HandleFunc("POST /players", h.handleCreate)
	mux.HandleFunc("GET /players/me", h.handleMe)
	mux.HandleFunc("GET /players/{username}", h.handleGet)
	mux.HandleFunc("GET /players/{username}/level", h.handleLevel)
	mux.HandleFunc("GET /players/{username}/monsters", h.handleMonsters)
	mux.HandleFunc("POST /players/{username}/experience", h.handleAddExperience)
	mux.HandleFunc("POST /players/{username}/level-up", h.handleLevelUp)
	mux.HandleFunc("POST /players/{username}/monsters/{id}", h.handleAddMonster)
	mux.HandleFunc("DELETE /players/{username}/monsters/{id}", h.handleRemoveMonster)
}
