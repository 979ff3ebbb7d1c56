// Package main provides a one-shot utility that prints a player identity token.
package main

import (
	"os"

	"github.com/gatchaworks/arena/internal/platform/config"
	"github.com/gatchaworks/arena/internal/services/shared/authctx"
	"github.com/gatchaworks/arena/internal/tools/playertoken"
)

func main() {
	cfg, err := authctx.LoadConfigFromEnv(nil)
	if err != nil {
		config.Exitf("load token config: %v", err)
	}
	if err := playertoken.Run(os.Stdout, os.Args[1:], cfg); err != nil {
		config.Exitf("issue player token: %v", err)
	}
}
