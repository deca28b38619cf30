// Package memory is an in-process ledger store used by tests and as
// the default backend when no spreadsheet is configured.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu   sync.Mutex
	rows [][]string
}

func New() *Store {
	return &Store{}
}

// Seed pre-loads data rows, mainly for tests.
func Seed(rows [][]string) *Store {
	s := New()
	for _, r := range rows {
		s.rows = append(s.rows, append([]string(nil), r...))
	}
	return s
}

func (s *Store) AppendRow(_ context.Context, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, append([]string(nil), row...))
	return nil
}

func (s *Store) Rows(_ context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}
