// Package app wires the player service runtime.
package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gatchaworks/arena/internal/platform/serve"
	"github.com/gatchaworks/arena/internal/services/player/api/httpapi"
	"github.com/gatchaworks/arena/internal/services/player/service"
	playersqlite "github.com/gatchaworks/arena/internal/services/player/storage/sqlite"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// RuntimeConfig controls player startup.
type RuntimeConfig struct {
	HTTPPort int
	GRPCPort int
	DBPath   string
	Tokens   authctx.Config
}

const defaultPlayerDB = "data/player.db"

// Run starts the player API and blocks until ctx ends.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = defaultPlayerDB
	}
	tokens, err := authctx.NewTokens(cfg.Tokens)
	if err != nil {
		return fmt.Errorf("configure tokens: %w", err)
	}

	store, err := playersqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open player sqlite store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("close player sqlite store: %v", closeErr)
		}
	}()

	svc := service.New(store, nil)
	return serve.Run(ctx, serve.Config{
		Service:  "player",
		HTTPPort: cfg.HTTPPort,
		GRPCPort: cfg.GRPCPort,
		Handler:  httpapi.NewHandler(svc, tokens),
	})
}
