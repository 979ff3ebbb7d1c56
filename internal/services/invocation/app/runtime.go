// Package app wires the invocation service runtime.
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
	"github.com/gatchaworks/arena/internal/random"
	"github.com/gatchaworks/arena/internal/services/invocation/api/httpapi"
	"github.com/gatchaworks/arena/internal/services/invocation/service"
	"github.com/gatchaworks/arena/internal/services/invocation/storage/seed"
	invocationsqlite "github.com/gatchaworks/arena/internal/services/invocation/storage/sqlite"
	"github.com/gatchaworks/arena/internal/services/monster/api/monsterapi"
	"github.com/gatchaworks/arena/internal/services/player/api/playerapi"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
	"github.com/gatchaworks/arena/internal/services/shared/svcclient"
)

// RuntimeConfig controls invocation startup and dependencies.
type RuntimeConfig struct {
	HTTPPort        int
	GRPCPort        int
	DBPath          string
	PlayerURL       string
	MonsterURL      string
	PeerGRPCAddrs   []string
	Tokens          authctx.Config
	RequestTimeout  time.Duration
	GRPCDialTimeout time.Duration
	// RetryInterval enables the background retry sweep when positive.
	RetryInterval time.Duration
}

const defaultInvocationDB = "data/invocation.db"

// Run starts the invocation API and blocks until ctx ends.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(cfg.PlayerURL) == "" {
		return fmt.Errorf("player url is required")
	}
	if strings.TrimSpace(cfg.MonsterURL) == "" {
		return fmt.Errorf("monster url is required")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = defaultInvocationDB
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

	store, err := invocationsqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open invocation sqlite store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("close invocation sqlite store: %v", closeErr)
		}
	}()

	templates, err := seed.Defaults()
	if err != nil {
		return fmt.Errorf("load template seed: %w", err)
	}
	if _, err := seed.Apply(ctx, store, templates); err != nil {
		return fmt.Errorf("seed templates: %w", err)
	}

	if len(cfg.PeerGRPCAddrs) > 0 {
		if err := platformgrpc.WaitForPeers(ctx, cfg.PeerGRPCAddrs, cfg.GRPCDialTimeout, log.Printf); err != nil {
			return fmt.Errorf("wait for peers: %w", err)
		}
	}
	players, err := playerapi.NewClient(cfg.PlayerURL, tokens, svcclient.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("player client: %w", err)
	}
	monsters, err := monsterapi.NewClient(cfg.MonsterURL, tokens, svcclient.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("monster client: %w", err)
	}

	rng, err := random.NewSource()
	if err != nil {
		return fmt.Errorf("seed summon rng: %w", err)
	}
	svc := service.New(store, store, players, monsters, rng)

	if cfg.RetryInterval > 0 {
		go runRetryLoop(ctx, svc, cfg.RetryInterval)
	}

	return serve.Run(ctx, serve.Config{
		Service:  "invocation",
		HTTPPort: cfg.HTTPPort,
		GRPCPort: cfg.GRPCPort,
		Handler:  httpapi.NewHandler(svc, tokens),
	})
}
