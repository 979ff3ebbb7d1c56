// Package app wires the monster service runtime.
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
	"github.com/gatchaworks/arena/internal/services/monster/api/httpapi"
	"github.com/gatchaworks/arena/internal/services/monster/service"
	monstersqlite "github.com/gatchaworks/arena/internal/services/monster/storage/sqlite"
	"github.com/gatchaworks/arena/internal/services/player/api/playerapi"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
	"github.com/gatchaworks/arena/internal/services/shared/svcclient"
)

// RuntimeConfig controls monster startup and dependencies.
type RuntimeConfig struct {
	HTTPPort        int
	GRPCPort        int
	DBPath          string
	PlayerURL       string
	PlayerGRPCAddr  string
	Tokens          authctx.Config
	RequestTimeout  time.Duration
	GRPCDialTimeout time.Duration
}

const defaultMonsterDB = "data/monster.db"

// Run starts the monster API and blocks until ctx ends.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(cfg.PlayerURL) == "" {
		return fmt.Errorf("player url is required")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = defaultMonsterDB
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

	store, err := monstersqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open monster sqlite store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("close monster sqlite store: %v", closeErr)
		}
	}()

	if strings.TrimSpace(cfg.PlayerGRPCAddr) != "" {
		if err := platformgrpc.WaitForPeers(ctx, []string{cfg.PlayerGRPCAddr}, cfg.GRPCDialTimeout, log.Printf); err != nil {
			return fmt.Errorf("wait for player service: %w", err)
		}
	}
	players, err := playerapi.NewClient(cfg.PlayerURL, tokens, svcclient.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return fmt.Errorf("player client: %w", err)
	}

	svc := service.New(store, players)
	return serve.Run(ctx, serve.Config{
		Service:  "monster",
		HTTPPort: cfg.HTTPPort,
		GRPCPort: cfg.GRPCPort,
		Handler:  httpapi.NewHandler(svc, tokens),
	})
}
