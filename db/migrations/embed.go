// Package migrations embeds the schema for the store blobs and the backup log.
package migrations

import "embed"

// Files holds the numbered up and down SQL files applied at startup.
//
//go:embed *.sql
var Files embed.FS
