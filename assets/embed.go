// Package assets embeds the default round table and the SQLite migrations.
package assets

import (
	"embed"
	"io"
	"io/fs"
)

//go:embed rounds.txt sql/*.sql
var FS embed.FS

// Rounds opens the embedded default round table.
func Rounds() (io.ReadCloser, error) {
	return FS.Open("rounds.txt")
}

// Migrations returns the embedded sql/ directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}
