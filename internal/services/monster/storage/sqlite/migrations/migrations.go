// Package migrations embeds the monster store schema.
package migrations

import "embed"

// FS holds the monster store migrations.
//
//go:embed *.sql
var FS embed.FS
