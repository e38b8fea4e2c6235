// Package migrations embeds the schema so every binary migrates without a checkout on disk.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS
