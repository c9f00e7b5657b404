// Package migrations holds the SQLite schema, applied in order by internal/migration.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
