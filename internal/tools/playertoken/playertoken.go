// Package playertoken mints player identity tokens for local use against the
// service APIs.
package playertoken

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/gatchaworks/arena/internal/services/shared/authctx"
)

// Run parses args, signs a token for the requested player with cfg, and
// writes it to out.
func Run(out io.Writer, args []string, cfg authctx.Config) error {
	if out == nil {
		return errors.New("output is required")
	}
	fs := flag.NewFlagSet("player-token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	username := fs.String("username", "", "Player username the token identifies")
	ttl := fs.Duration("ttl", cfg.TTL, "Token lifetime")
	export := fs.Bool("export", false, "Print as a shell export of GATCHA_TOKEN")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if strings.TrimSpace(*username) == "" {
		return errors.New("-username is required")
	}

	cfg.TTL = *ttl
	tokens, err := authctx.NewTokens(cfg)
	if err != nil {
		return fmt.Errorf("configure tokens: %w", err)
	}
	token, err := tokens.Issue(*username)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	if *export {
		_, err = fmt.Fprintf(out, "export GATCHA_TOKEN=%s\n", token)
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
