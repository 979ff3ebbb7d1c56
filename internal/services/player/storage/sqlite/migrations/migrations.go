// Package migrations embeds the player store schema.
package migrations

import "embed"

// FS holds the player store migrations.
//
//go:embed *.sql
var FS embed.FS
