package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
	"github.com/gatchaworks/arena/internal/platform/requestctx"
)

func TestChainAppliesMiddlewareInOrder(t *testing.T) {
	t.Parallel()

	called := ""
	mw1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called += "1"
			next.ServeHTTP(w, r)
		})
	}
	mw2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called += "2"
			next.ServeHTTP(w, r)
		})
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called += "h"
		w.WriteHeader(http.StatusNoContent)
	}), mw1, nil, mw2)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if called != "12h" {
		t.Fatalf("call order = %q, want %q", called, "12h")
	}
}

func TestRequestIDAddsHeaderAndContext(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID("combat")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestctx.RequestIDFromContext(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	got := rr.Header().Get(RequestIDHeader)
	if !strings.HasPrefix(got, "combat-") {
		t.Fatalf("request id = %q, want combat- prefix", got)
	}
	if seen != got {
		t.Fatalf("context request id = %q, want %q", seen, got)
	}
}

func TestRequestIDPreservesIncomingHeader(t *testing.T) {
	t.Parallel()

	h := RequestID("combat")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get(RequestIDHeader); got != "upstream-1" {
		t.Fatalf("request id = %q, want upstream-1", got)
	}
}

func TestRecoverPanicReturnsJSONInternalError(t *testing.T) {
	var logs bytes.Buffer
	previous := log.Writer()
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(previous) })

	h := RecoverPanic()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/combats", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(logs.String(), "path=/combats") {
		t.Fatalf("expected panic log to include path, got %q", logs.String())
	}
}

func TestWriteErrorUsesDomainCode(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteError(rr, apperrors.WithMetadata(apperrors.CodeInventoryFull, "inventory full", map[string]string{"Max": "10"}))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
	var body ErrorBody
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != "INVENTORY_FULL" || body.Error != "inventory full" || body.Metadata["Max"] != "10" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestWriteErrorHidesUntypedErrors(t *testing.T) {
	var logs bytes.Buffer
	previous := log.Writer()
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(previous) })

	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("sql: connection refused"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rr.Body.String(), "connection refused") {
		t.Fatalf("expected internal detail to stay out of body, got %q", rr.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"ash"}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "unknown field", body: `{"nom":"ash"}`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)), &got)
			if tt.wantErr {
				if !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
					t.Fatalf("expected invalid argument, got %v", err)
				}
				return
			}
			if err != nil || got.Name != "ash" {
				t.Fatalf("DecodeJSON = %+v, %v", got, err)
			}
		})
	}
}

func TestQueryHelpers(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?page_size=5&amount=2.5&bad=x", nil)
	if got, err := QueryInt(req, "page_size", 10); err != nil || got != 5 {
		t.Fatalf("QueryInt(page_size) = %d, %v", got, err)
	}
	if got, err := QueryInt(req, "missing", 10); err != nil || got != 10 {
		t.Fatalf("QueryInt(missing) = %d, %v", got, err)
	}
	if _, err := QueryInt(req, "bad", 10); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("QueryInt(bad) error = %v", err)
	}
	if got, err := QueryFloat(req, "amount"); err != nil || got != 2.5 {
		t.Fatalf("QueryFloat(amount) = %v, %v", got, err)
	}
	if _, err := QueryFloat(req, "missing"); !apperrors.HasCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("QueryFloat(missing) error = %v", err)
	}
}

func TestAccessLogRecordsStatus(t *testing.T) {
	var logs bytes.Buffer
	previous := log.Writer()
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(previous) })

	h := AccessLog()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	if !strings.Contains(logs.String(), "status=418") {
		t.Fatalf("expected status in access log, got %q", logs.String())
	}
}
