// Package httpapi exposes summoning over JSON HTTP.
package httpapi

import (
	"net/http"

	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// NewHandler builds the authenticated invocation API.
func NewHandler(svc InvocationService, verifier authctx.Verifier) http.Handler {
	mux := http.NewServeMux()
	Register(mux, svc)
	return httpx.Chain(mux,
		httpx.RequestID("invocation"),
		httpx.AccessLog(),
		httpx.RecoverPanic(),
		authctx.RequireUser(verifier),
	)
}

// Register mounts the invocation routes on mux.
func Register(mux *http.ServeMux, svc InvocationService) {
	h := handlers{svc: svc}
	mux.HandleFunc("POST /invocations", h.handleInvoke)
	mux.HandleFunc("GET /invocations/mine", h.handleHistory)
	mux.HandleFunc("POST /invocations/retry", h.handleRetry)
	mux.HandleFunc("GET /templates", h.handleTemplates)
}
