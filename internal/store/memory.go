package store

import (
	"context"
	"sync"
)

type memTable struct {
	headers []string
	rows    [][]string
}

// MemoryStore is a mutex-guarded in-process RecordStore. It backs tests
// and the standalone (no Postgres DSN) deployment mode.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string]*memTable
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string]*memTable)}
}

func (s *MemoryStore) List(_ context.Context, table string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[table]
	if !ok {
		// missing table reads as empty, never an error
		return nil, nil
	}

	out := make([]Record, 0, len(t.rows))
	for _, row := range t.rows {
		rec := make(Record, len(t.headers))
		for i, col := range t.headers {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, table string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[table]
	if !ok {
		t = &memTable{}
		s.tables[table] = t
	}

	seen := make(map[string]int, len(t.headers))
	for i, col := range t.headers {
		seen[col] = i
	}
	for col := range rec {
		if _, ok := seen[col]; !ok {
			seen[col] = len(t.headers)
			t.headers = append(t.headers, col)
		}
	}

	row := make([]string, len(t.headers))
	for col, val := range rec {
		row[seen[col]] = val
	}
	t.rows = append(t.rows, row)
	return nil
}

func (s *MemoryStore) DeleteWhere(_ context.Context, table, column, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[table]
	if !ok {
		return false, nil
	}
	colIdx := -1
	for i, col := range t.headers {
		if col == column {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return false, nil
	}
	for i, row := range t.rows {
		if colIdx < len(row) && row[colIdx] == value {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) UpdateCell(_ context.Context, table string, rowIndex int, column, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tables[table]
	if !ok {
		return ErrRowNotFound
	}
	dataIdx := rowIndex - HeaderRowIndex - 1
	if dataIdx < 0 || dataIdx >= len(t.rows) {
		return ErrRowNotFound
	}
	colIdx := -1
	for i, col := range t.headers {
		if col == column {
			colIdx = i
			break
		}
	}
	if colIdx < 0 {
		return ErrRowNotFound
	}
	row := t.rows[dataIdx]
	for len(row) <= colIdx {
		row = append(row, "")
	}
	row[colIdx] = value
	t.rows[dataIdx] = row
	return nil
}
