// Package migrations embeds the invocation store schema.
package migrations

import "embed"

// FS holds the invocation store migrations.
//
//go:embed *.sql
var FS embed.FS
