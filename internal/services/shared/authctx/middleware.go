package authctx

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/platform/requestctx"
)

// AccessTokenParam is the query fallback for clients that cannot set headers,
// such as browser websockets.
const AccessTokenParam = "access_token"

// Verifier resolves a bearer token to a username.
type Verifier interface {
	Verify(token string) (string, error)
}

// RequireUser rejects requests without a valid bearer token and stores the
// authenticated username in the request context.
func RequireUser(verifier Verifier) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				httpx.WriteError(w, apperrors.New(apperrors.CodeUnauthenticated, "bearer token is required"))
				return
			}
			username, err := verifier.Verify(token)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithUsername(r.Context(), username)))
		})
	}
}

// BearerToken extracts the token from the Authorization header, falling back
// to the access_token query parameter.
func BearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return strings.TrimSpace(r.URL.Query().Get(AccessTokenParam))
}

// Username returns the authenticated username or an UNAUTHENTICATED error.
func Username(ctx context.Context) (string, error) {
	username := requestctx.UsernameFromContext(ctx)
	if username == "" {
		return "", apperrors.New(apperrors.CodeUnauthenticated, "authenticated player is required")
	}
	return username, nil
}
