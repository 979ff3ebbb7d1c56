// Package migrations embeds the combat store schema.
package migrations

import "embed"

// FS holds the combat store migrations.
//
//go:embed *.sql
var FS embed.FS
