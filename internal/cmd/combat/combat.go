// Package combat parses combat command flags and launches the combat runtime.
package combat

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/gatchaworks/arena/internal/platform/cmd"
	"github.com/gatchaworks/arena/internal/platform/discovery"
	combatapp "github.com/gatchaworks/arena/internal/services/combat/app"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// Config holds combat command configuration.
type Config struct {
	HTTPPort        int           `env:"GATCHA_COMBAT_HTTP_PORT" envDefault:"8081"`
	GRPCPort        int           `env:"GATCHA_COMBAT_GRPC_PORT" envDefault:"9081"`
	DBPath          string        `env:"GATCHA_COMBAT_DB_PATH" envDefault:"data/combat.db"`
	MonsterURL      string        `env:"GATCHA_COMBAT_MONSTER_URL"`
	PlayerURL       string        `env:"GATCHA_COMBAT_PLAYER_URL"`
	MonsterGRPCAddr string        `env:"GATCHA_COMBAT_MONSTER_GRPC_ADDR"`
	PlayerGRPCAddr  string        `env:"GATCHA_COMBAT_PLAYER_GRPC_ADDR"`
	RequestTimeout  time.Duration `env:"GATCHA_COMBAT_REQUEST_TIMEOUT" envDefault:"5s"`
	GRPCDialTimeout time.Duration `env:"GATCHA_COMBAT_DIAL_TIMEOUT" envDefault:"10s"`
	HookTimeout     time.Duration `env:"GATCHA_COMBAT_HOOK_TIMEOUT" envDefault:"10s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.MonsterURL = discovery.OrDefaultHTTPBaseURL(cfg.MonsterURL, discovery.ServiceMonster)
	cfg.PlayerURL = discovery.OrDefaultHTTPBaseURL(cfg.PlayerURL, discovery.ServicePlayer)
	cfg.MonsterGRPCAddr = discovery.OrDefaultGRPCAddr(cfg.MonsterGRPCAddr, discovery.ServiceMonster)
	cfg.PlayerGRPCAddr = discovery.OrDefaultGRPCAddr(cfg.PlayerGRPCAddr, discovery.ServicePlayer)
	fs.IntVar(&cfg.HTTPPort, "http-port", cfg.HTTPPort, "The combat HTTP API port")
	fs.IntVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "The combat health gRPC port")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The combat SQLite database path")
	fs.StringVar(&cfg.MonsterURL, "monster-url", cfg.MonsterURL, "The monster HTTP base URL")
	fs.StringVar(&cfg.PlayerURL, "player-url", cfg.PlayerURL, "The player HTTP base URL")
	fs.StringVar(&cfg.MonsterGRPCAddr, "monster-grpc-addr", cfg.MonsterGRPCAddr, "The monster health gRPC address")
	fs.StringVar(&cfg.PlayerGRPCAddr, "player-grpc-addr", cfg.PlayerGRPCAddr, "The player health gRPC address")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "Per-request timeout for peer calls")
	fs.DurationVar(&cfg.GRPCDialTimeout, "dial-timeout", cfg.GRPCDialTimeout, "gRPC dependency dial timeout")
	fs.DurationVar(&cfg.HookTimeout, "hook-timeout", cfg.HookTimeout, "Timeout for each post-combat reward call")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the combat runtime.
func Run(ctx context.Context, cfg Config) error {
	tokens, err := authctx.LoadConfigFromEnv(nil)
	if err != nil {
		return err
	}
	var peers []string
	for _, addr := range []string{cfg.MonsterGRPCAddr, cfg.PlayerGRPCAddr} {
		if addr != "" {
			peers = append(peers, addr)
		}
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCombat, func(ctx context.Context) error {
		return combatapp.Run(ctx, combatapp.RuntimeConfig{
			HTTPPort:        cfg.HTTPPort,
			GRPCPort:        cfg.GRPCPort,
			DBPath:          cfg.DBPath,
			MonsterURL:      cfg.MonsterURL,
			PlayerURL:       cfg.PlayerURL,
			PeerGRPCAddrs:   peers,
			Tokens:          tokens,
			RequestTimeout:  cfg.RequestTimeout,
			GRPCDialTimeout: cfg.GRPCDialTimeout,
			HookTimeout:     cfg.HookTimeout,
		})
	})
}
