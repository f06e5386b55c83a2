// Package migrations embeds the database schema migrations so the server
// binary can apply them at startup without a separate migration step.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
