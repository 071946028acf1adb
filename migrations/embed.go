// Package migrations embeds the SQL schema files applied at startup and
// by cmd/migrate.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed *.sql
var files embed.FS

func GetFS() fs.FS {
	return files
}
