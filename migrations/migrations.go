// Package migrations embeds the SQL migration files for the migrate CLI
// subcommand.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
