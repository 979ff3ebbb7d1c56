// Package invocation parses invocation command flags and launches the
// invocation runtime.
package invocation

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/gatchaworks/arena/internal/platform/cmd"
	"github.com/gatchaworks/arena/internal/platform/discovery"
	invocationapp "github.com/gatchaworks/arena/internal/services/invocation/app"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// Config holds invocation command configuration.
type Config struct {
	HTTPPort        int           `env:"GATCHA_INVOCATION_HTTP_PORT" envDefault:"8082"`
	GRPCPort        int           `env:"GATCHA_INVOCATION_GRPC_PORT" envDefault:"9082"`
	DBPath          string        `env:"GATCHA_INVOCATION_DB_PATH" envDefault:"data/invocation.db"`
	PlayerURL       string        `env:"GATCHA_INVOCATION_PLAYER_URL"`
	MonsterURL      string        `env:"GATCHA_INVOCATION_MONSTER_URL"`
	PlayerGRPCAddr  string        `env:"GATCHA_INVOCATION_PLAYER_GRPC_ADDR"`
	MonsterGRPCAddr string        `env:"GATCHA_INVOCATION_MONSTER_GRPC_ADDR"`
	RequestTimeout  time.Duration `env:"GATCHA_INVOCATION_REQUEST_TIMEOUT" envDefault:"5s"`
	GRPCDialTimeout time.Duration `env:"GATCHA_INVOCATION_DIAL_TIMEOUT" envDefault:"10s"`
	RetryInterval   time.Duration `env:"GATCHA_INVOCATION_RETRY_INTERVAL" envDefault:"0s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.PlayerURL = discovery.OrDefaultHTTPBaseURL(cfg.PlayerURL, discovery.ServicePlayer)
	cfg.MonsterURL = discovery.OrDefaultHTTPBaseURL(cfg.MonsterURL, discovery.ServiceMonster)
	cfg.PlayerGRPCAddr = discovery.OrDefaultGRPCAddr(cfg.PlayerGRPCAddr, discovery.ServicePlayer)
	cfg.MonsterGRPCAddr = discovery.OrDefaultGRPCAddr(cfg.MonsterGRPCAddr, discovery.ServiceMonster)
	fs.IntVar(&cfg.HTTPPort, "http-port", cfg.HTTPPort, "The invocation HTTP API port")
	fs.IntVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "The invocation health gRPC port")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The invocation SQLite database path")
	fs.StringVar(&cfg.PlayerURL, "player-url", cfg.PlayerURL, "The player HTTP base URL")
	fs.StringVar(&cfg.MonsterURL, "monster-url", cfg.MonsterURL, "The monster HTTP base URL")
	fs.StringVar(&cfg.PlayerGRPCAddr, "player-grpc-addr", cfg.PlayerGRPCAddr, "The player health gRPC address")
	fs.StringVar(&cfg.MonsterGRPCAddr, "monster-grpc-addr", cfg.MonsterGRPCAddr, "The monster health gRPC address")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "Per-request timeout for peer calls")
	fs.DurationVar(&cfg.GRPCDialTimeout, "dial-timeout", cfg.GRPCDialTimeout, "gRPC dependency dial timeout")
	fs.DurationVar(&cfg.RetryInterval, "retry-interval", cfg.RetryInterval, "Background retry sweep interval (0 disables)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the invocation runtime.
func Run(ctx context.Context, cfg Config) error {
	tokens, err := authctx.LoadConfigFromEnv(nil)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceInvocation, func(ctx context.Context) error {
		return invocationapp.Run(ctx, invocationapp.RuntimeConfig{
			HTTPPort:        cfg.HTTPPort,
			GRPCPort:        cfg.GRPCPort,
			DBPath:          cfg.DBPath,
			PlayerURL:       cfg.PlayerURL,
			MonsterURL:      cfg.MonsterURL,
			PeerGRPCAddrs:   peerAddrs(cfg.PlayerGRPCAddr, cfg.MonsterGRPCAddr),
			Tokens:          tokens,
			RequestTimeout:  cfg.RequestTimeout,
			GRPCDialTimeout: cfg.GRPCDialTimeout,
			RetryInterval:   cfg.RetryInterval,
		})
	})
}

func peerAddrs(addrs ...string) []string {
	out := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
