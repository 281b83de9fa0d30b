// Package migrations embeds the SQL migration files describing the travel
// schema. The API never migrates the production store; goose applies these
// files to local and test databases only.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
