// Package migrations embeds the golang-migrate SQL files of the schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
