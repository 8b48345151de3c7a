package round

import (
	"context"
	"database/sql"
	"fmt"
	"math"
)

// Store reads and seeds the rounds table (see assets/sql).
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Count returns the number of rows in the rounds table.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM rounds`).Scan(&n)
	return n, err
}

// Seed inserts every round of reg, leaving existing rows untouched.
func (s *Store) Seed(ctx context.Context, reg *Registry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, idx := range reg.Indices() {
		if idx > math.MaxInt64 {
			return fmt.Errorf("%w: index %d does not fit the rounds table", ErrInvalidRound, idx)
		}
		rd, _ := reg.Lookup(idx)
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO rounds(idx, lucky, color) VALUES(?,?,?)`,
			int64(idx), nullable(rd.Lucky), nullable(rd.Color),
		); err != nil {
			return fmt.Errorf("seed round %d: %w", idx, err)
		}
	}
	return tx.Commit()
}

// Load reads the whole table into a Registry.
func (s *Store) Load(ctx context.Context) (*Registry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idx, lucky, color FROM rounds ORDER BY idx`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(map[uint64]Round)
	for rows.Next() {
		var (
			idx          int64
			lucky, color sql.NullString
		)
		if err := rows.Scan(&idx, &lucky, &color); err != nil {
			return nil, err
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: negative index %d", ErrInvalidRound, idx)
		}
		m[uint64(idx)] = Round{Lucky: lucky.String, Color: color.String}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return New(m)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
