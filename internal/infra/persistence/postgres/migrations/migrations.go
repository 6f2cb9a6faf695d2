// Package migrations embeds the SQL migration files for the accounts schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
