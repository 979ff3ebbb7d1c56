// Package httpapi exposes combats over JSON HTTP and replays them over
// websocket.
package httpapi

import (
	"net/http"

	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
	"github.com/gatchaworks/arena/internal/services/shared/i18nhttp"
)

// NewHandler builds the authenticated combat API.
func NewHandler(svc CombatService, verifier authctx.Verifier) http.Handler {
	mux := http.NewServeMux()
	Register(mux, svc)
	return httpx.Chain(mux,
		httpx.RequestID("combat"),
		httpx.AccessLog(),
		httpx.RecoverPanic(),
		authctx.RequireUser(verifier),
		i18nhttp.Middleware(),
	)
}

// Register mounts the combat routes on mux.
func Register(mux *http.ServeMux, svc CombatService) {
	h := handlers{svc: svc}
	mux.HandleFunc("POST /combats", h.handleStart)
	mux.HandleFunc("GET /combats", h.handleList)
	mux.HandleFunc("GET /combats/mine", h.handleListMine)
	mux.HandleFunc("GET /combats/{id}", h.handleGet)
	mux.HandleFunc("GET /combats/{id}/frames", h.handleFrames)
	mux.HandleFunc("GET /combats/{id}/replay", h.handleReplay)
}
