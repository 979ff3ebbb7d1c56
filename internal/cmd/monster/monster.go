// Package monster parses monster command flags and launches the monster runtime.
package monster

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/gatchaworks/arena/internal/platform/cmd"
	"github.com/gatchaworks/arena/internal/platform/discovery"
	monsterapp "github.com/gatchaworks/arena/internal/services/monster/app"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// Config holds monster command configuration.
type Config struct {
	HTTPPort        int           `env:"GATCHA_MONSTER_HTTP_PORT" envDefault:"8083"`
	GRPCPort        int           `env:"GATCHA_MONSTER_GRPC_PORT" envDefault:"9083"`
	DBPath          string        `env:"GATCHA_MONSTER_DB_PATH" envDefault:"data/monster.db"`
	PlayerURL       string        `env:"GATCHA_MONSTER_PLAYER_URL"`
	PlayerGRPCAddr  string        `env:"GATCHA_MONSTER_PLAYER_GRPC_ADDR"`
	RequestTimeout  time.Duration `env:"GATCHA_MONSTER_REQUEST_TIMEOUT" envDefault:"5s"`
	GRPCDialTimeout time.Duration `env:"GATCHA_MONSTER_DIAL_TIMEOUT" envDefault:"10s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.PlayerURL = discovery.OrDefaultHTTPBaseURL(cfg.PlayerURL, discovery.ServicePlayer)
	cfg.PlayerGRPCAddr = discovery.OrDefaultGRPCAddr(cfg.PlayerGRPCAddr, discovery.ServicePlayer)
	fs.IntVar(&cfg.HTTPPort, "http-port", cfg.HTTPPort, "The monster HTTP API port")
	fs.IntVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "The monster health gRPC port")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The monster SQLite database path")
	fs.StringVar(&cfg.PlayerURL, "player-url", cfg.PlayerURL, "The player HTTP base URL")
	fs.StringVar(&cfg.PlayerGRPCAddr, "player-grpc-addr", cfg.PlayerGRPCAddr, "The player health gRPC address")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "Per-request timeout for peer calls")
	fs.DurationVar(&cfg.GRPCDialTimeout, "dial-timeout", cfg.GRPCDialTimeout, "gRPC dependency dial timeout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the monster runtime.
func Run(ctx context.Context, cfg Config) error {
	tokens, err := authctx.LoadConfigFromEnv(nil)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMonster, func(ctx context.Context) error {
		return monsterapp.Run(ctx, monsterapp.RuntimeConfig{
			HTTPPort:        cfg.HTTPPort,
			GRPCPort:        cfg.GRPCPort,
			DBPath:          cfg.DBPath,
			PlayerURL:       cfg.PlayerURL,
			PlayerGRPCAddr:  cfg.PlayerGRPCAddr,
			Tokens:          tokens,
			RequestTimeout:  cfg.RequestTimeout,
			GRPCDialTimeout: cfg.GRPCDialTimeout,
		})
	})
}
