// Package migrations embeds the SQL schema migrations so they ship with
// the binary and with test helpers.
package migrations

import "embed"

// FS holds the migration files.
//
//go:embed *.sql
var FS embed.FS
