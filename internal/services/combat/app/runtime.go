// Package app wires the combat service runtime.
package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	platformgrpc "github.com/gatchaworks/arena/internal/platform/grpc"
	"github.com/gatchaworks/arena/internal/platform/serve"
	"github.com/gatchaworks/arena/internal/platform/timeouts"
	"github.com/gatchaworks/arena/internal/services/combat/api/httpapi"
	"github.com/gatchaworks/arena/internal/services/combat/service"
	combatsqlite "github.com/gatchaworks/arena/internal/services/combat/storage/sqlite"
	"github.com/gatchaworks/arena/internal/services/monster/api/monsterapi"
	"github.com/gatchaworks/arena/internal/services/player/api/playerapi"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
	"github.com/gatchaworks/arena/internal/services/shared/svcclient"
)

// RuntimeConfig controls combat startup and dependencies.
type RuntimeConfig struct {
	HTTPPort        int
	GRPCPort        int
	DBPath          string
	MonsterURL      string
	PlayerURL       string
	PeerGRPCAddrs   []string
	Tokens          authctx.Config
	RequestTimeout  time.Duration
	GRPCDialTimeout time.Duration
	// HookTimeout caps each post-combat reward call.
	HookTimeout time.Duration
}

const defaultCombatDB = "data/combat.db"

// Run starts the combat API and blocks until ctx ends. Reward hooks still in
// flight at shutdown are awaited before the store closes.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(cfg.MonsterURL) == "" {
		return fmt.Errorf("monster url is required")
	}
	if strings.TrimSpace(cfg.PlayerURL) == "" {
		return fmt.Errorf("player url is required")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = defaultCombatDB
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = timeouts.ServiceRequest
	}
	if cfg.GRPCDialTimeout <= 0 {
		cfg.GRPCDialTimeout = timeouts.GRPCDial
	}

	tokens, err := authctx.NewTokens(cfg.Tokens)
	if err != nil {
		return fmt.Errorf("configure tokens: %w", err)
	}

	store, err := combatsqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open combat sqlite store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("close combat sqlite store: %v", closeErr)
		}
	}()

	if len(cfg.PeerGRPCAddrs) > 0 {
		if err := platformgrpc.WaitForPeers(ctx, cfg.PeerGRPCAddrs, cfg.GRPCDialTimeout, log.Printf); err != nil {
			return fmt.Errorf("wait for peers: %w", err)
		}
	}
	monsters, err := monsterapi.NewClient(cfg.MonsterURL, tokens, svcclient.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("monster client: %w", err)
	}
	players, err := playerapi.NewClient(cfg.PlayerURL, tokens, svcclient.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("player client: %w", err)
	}

	hooks := service.NewHookRunner(cfg.HookTimeout, service.RewardHooks(monsters, players)...)
	defer hooks.Wait()

	svc := service.New(store, monsters, hooks)
	return serve.Run(ctx, serve.Config{
		Service:  "combat",
		HTTPPort: cfg.HTTPPort,
		GRPCPort: cfg.GRPCPort,
		Handler:  httpapi.NewHandler(svc, tokens),
	})
}
