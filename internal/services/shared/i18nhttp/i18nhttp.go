// Package i18nhttp resolves the caller's locale for HTTP requests.
package i18nhttp

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/platform/i18n/catalog"
	"github.com/gatchaworks/arena/internal/platform/requestctx"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

// ResolveLocale picks the best supported locale for r: the lang query
// parameter first, then Accept-Language, then the base locale.
func ResolveLocale(r *http.Request) string {
	bundle := catalog.Default()
	if r == nil {
		return bundle.Match(catalog.BaseLocale).String()
	}
	if lang := strings.TrimSpace(r.URL.Query().Get(LangParam)); lang != "" {
		return bundle.Match(lang).String()
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return bundle.Match(tags[0].String()).String()
		}
	}
	return bundle.Match(catalog.BaseLocale).String()
}

// Middleware stores the resolved locale in the request context.
func Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestctx.WithLocale(r.Context(), ResolveLocale(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
