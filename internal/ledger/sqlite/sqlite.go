// Package sqlite keeps the ledger in a local SQLite file. Rows are
// stored exactly as their spreadsheet cells so the aggregation code
// sees the same data regardless of backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/Ilyakalimullin123/telegram-expense-bot/internal/ledger"
)

type Store struct {
	db *sql.DB
}

var _ ledger.Store = (*Store)(nil)

func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	// database/sql serializes access through a single connection; the
	// ledger's append order is the rowid order.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) AppendRow(ctx context.Context, row []string) error {
	cells := make([]string, 4)
	copy(cells, row)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (ts, category, amount, comment) VALUES (?, ?, ?, ?)`,
		cells[0], cells[1], cells[2], cells[3])
	if err != nil {
		return fmt.Errorf("insert ledger row: %w", err)
	}
	return nil
}

func (s *Store) Rows(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ts, category, amount, comment FROM entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select ledger rows: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var ts, category, amount, comment string
		if err := rows.Scan(&ts, &category, &amount, &comment); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		out = append(out, []string{ts, category, amount, comment})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return out, nil
}
