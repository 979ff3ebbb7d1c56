// Package player parses player command flags and launches the player runtime.
package player

import (
	"context"
	"flag"

	entrypoint "github.com/gatchaworks/arena/internal/platform/cmd"
	playerapp "github.com/gatchaworks/arena/internal/services/player/app"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// Config holds player command configuration.
type Config struct {
	HTTPPort int    `env:"GATCHA_PLAYER_HTTP_PORT" envDefault:"8084"`
	GRPCPort int    `env:"GATCHA_PLAYER_GRPC_PORT" envDefault:"9084"`
	DBPath   string `env:"GATCHA_PLAYER_DB_PATH" envDefault:"data/player.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.HTTPPort, "http-port", cfg.HTTPPort, "The player HTTP API port")
	fs.IntVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "The player health gRPC port")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The player SQLite database path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the player runtime.
func Run(ctx context.Context, cfg Config) error {
	tokens, err := authctx.LoadConfigFromEnv(nil)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePlayer, func(ctx context.Context) error {
		return playerapp.Run(ctx, playerapp.RuntimeConfig{
			HTTPPort: cfg.HTTPPort,
			GRPCPort: cfg.GRPCPort,
			DBPath:   cfg.DBPath,
			Tokens:   tokens,
		})
	})
}
