// Package migrations embeds the SQL migrations for the database snapshot backends.
package migrations

import "embed"

// Postgres holds the migrations applied by the postgres backend.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite holds the migrations applied by the sqlite backend.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
