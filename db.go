// db.go
//
// SQLite helpers for ROUNDS_SOURCE=sqlite.
// Responsibilities:
//   - Opening the database with WAL journaling and a busy timeout.
//   - Applying the embedded assets/sql/*.sql migrations once each,
//     recorded in a _migrations table.
//   - Seeding an empty rounds table from the embedded default table.

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/luckygame/apps/go-server/internal/round"
)

// openDB opens (and creates if missing) the SQLite file at path.
func openDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	return db, nil
}

// migrate runs every *.sql file of fsys in lexical order, skipping the
// ones already listed in _migrations. Each file runs in its own tx.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if strings.TrimSpace(string(body)) == "" {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// seedOrLoad fills an empty rounds table with def and returns the
// registry read back from the table.
func seedOrLoad(ctx context.Context, db *sql.DB, def *round.Registry) (*round.Registry, error) {
	st := round.NewStore(db)
	n, err := st.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rounds: %w", err)
	}
	if n == 0 {
		if err := st.Seed(ctx, def); err != nil {
			return nil, err
		}
		log.Info().Int("rounds", def.Len()).Msg("seeded rounds table")
	}
	return st.Load(ctx)
}
