package requestctx

import (
	"context"
	"testing"
)

func TestUsernameFromContextRoundTrip(t *testing.T) {
	ctx := WithUsername(context.Background(), "ash")
	if got := UsernameFromContext(ctx); got != "ash" {
		t.Fatalf("UsernameFromContext = %q, want %q", got, "ash")
	}
}

func TestUsernameFromContextEmpty(t *testing.T) {
	if got := UsernameFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := UsernameFromContext(nil); got != "" {
		t.Fatalf("expected empty string for nil context, got %q", got)
	}
}

func TestWithRequestIDNilContext(t *testing.T) {
	ctx := WithRequestID(nil, "req-1")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("RequestIDFromContext = %q, want %q", got, "req-1")
	}
}

func TestLocaleFromContextRoundTrip(t *testing.T) {
	ctx := WithLocale(context.Background(), "fr-FR")
	if got := LocaleFromContext(ctx); got != "fr-FR" {
		t.Fatalf("LocaleFromContext() = %q, want %q", got, "fr-FR")
	}
	if got := LocaleFromContext(context.Background()); got != "" {
		t.Fatalf("LocaleFromContext(empty) = %q, want empty", got)
	}
}
