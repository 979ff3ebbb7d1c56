// Package authctx issues and verifies the player identity tokens every
// service accepts, and exposes the authenticated username to handlers.
package authctx

import (
	"fmt"
	"strings"
	"time"

	"github.com/gatchaworks/arena/internal/platform/config"
)

const minSecretBytes = 16

// tokenEnv holds raw env values before post-parse validation.
type tokenEnv struct {
	Secret string        `env:"GATCHA_TOKEN_SECRET"`
	Issuer string        `env:"GATCHA_TOKEN_ISSUER" envDefault:"gatcha-arena"`
	TTL    time.Duration `env:"GATCHA_TOKEN_TTL" envDefault:"1h"`
}

// Config defines how identity tokens are signed and verified.
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Now    func() time.Time
}

// LoadConfigFromEnv reads token configuration from the environment.
func LoadConfigFromEnv(now func() time.Time) (Config, error) {
	var raw tokenEnv
	if err := config.ParseEnv(&raw); err != nil {
		return Config{}, fmt.Errorf("parse token env: %w", err)
	}
	cfg := Config{
		Secret: []byte(strings.TrimSpace(raw.Secret)),
		Issuer: strings.TrimSpace(raw.Issuer),
		TTL:    raw.TTL,
		Now:    now,
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.Secret) == 0 {
		return fmt.Errorf("GATCHA_TOKEN_SECRET is required")
	}
	if len(c.Secret) < minSecretBytes {
		return fmt.Errorf("GATCHA_TOKEN_SECRET must be at least %d bytes", minSecretBytes)
	}
	if c.Issuer == "" {
		return fmt.Errorf("GATCHA_TOKEN_ISSUER is required")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("GATCHA_TOKEN_TTL must be positive")
	}
	return nil
}

func (c Config) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now().UTC()
}
