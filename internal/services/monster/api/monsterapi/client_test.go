package monsterapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
	"github.com/gatchaworks/arena/internal/platform/httpx"
	"github.com/gatchaworks/arena/internal/services/shared/stats"
)

type fakeTokens struct{}

func (fakeTokens) Issue(username string) (string, error) { return "token-" + username, nil }

func TestFetchMonstersSendsIDsAsOwner(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/monsters/batch" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-ash" {
			t.Fatalf("Authorization = %q", got)
		}
		var req BatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(req.IDs) != 2 {
			t.Fatalf("ids = %v", req.IDs)
		}
		httpx.WriteJSON(w, http.StatusOK, BatchResponse{Monsters: []Monster{
			{ID: req.IDs[0], OwnerUsername: "ash", Element: stats.ElementFire},
		}})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, fakeTokens{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	monsters, err := client.FetchMonsters(context.Background(), "ash", []string{"m1", "m2"})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(monsters) != 1 || monsters[0].ID != "m1" {
		t.Fatalf("monsters = %+v", monsters)
	}
}

func TestGrantExperienceEncodesAmount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/monsters/m1/experience/reward" || r.URL.Query().Get("amount") != "100" {
			t.Fatalf("unexpected request %s", r.URL.String())
		}
		httpx.WriteJSON(w, http.StatusOK, Monster{ID: "m1", Level: 2})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, fakeTokens{})
	monster, err := client.GrantExperience(context.Background(), "ash", "m1", 100)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if monster.Level != 2 {
		t.Fatalf("level = %d, want 2", monster.Level)
	}
}

func TestCreateMonsterSurfacesPeerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, apperrors.New(apperrors.CodeInventoryFull, "monster limit reached"))
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, fakeTokens{})
	_, err := client.CreateMonster(context.Background(), "ash", CreateMonsterRequest{TemplateID: 1})
	if !apperrors.HasCode(err, apperrors.CodeInventoryFull) {
		t.Fatalf("CreateMonster error = %v, want INVENTORY_FULL", err)
	}
}
