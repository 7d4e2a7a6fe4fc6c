// Package migrations embeds the goose schema migrations of the SQL account
// stores, one directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
