package i18nhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatchaworks/arena/internal/platform/requestctx"
)

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		name   string
		target string
		accept string
		want   string
	}{
		{name: "default", target: "/", want: "en-US"},
		{name: "query wins", target: "/?lang=fr-FR", accept: "en-US", want: "fr-FR"},
		{name: "accept language", target: "/", accept: "fr-FR,fr;q=0.9", want: "fr-FR"},
		{name: "unsupported falls back", target: "/?lang=ja-JP", want: "en-US"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			if got := ResolveLocale(req); got != tt.want {
				t.Fatalf("ResolveLocale() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMiddlewareStoresLocale(t *testing.T) {
	var seen string
	handler := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestctx.LocaleFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/?lang=fr-FR", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "fr-FR" {
		t.Fatalf("locale = %q, want fr-FR", seen)
	}
}
