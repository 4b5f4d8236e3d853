package sheetdb

import (
	"context"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store used by tests and local experiments. It
// honors the same positional semantics as the real adapters.
type MemStore struct {
	mu     sync.Mutex
	tables map[string][][]string
}

// NewMemStore constructs an empty MemStore with all known tables.
func NewMemStore() *MemStore {
	tables := make(map[string][][]string, len(TableNames()))
	for _, name := range TableNames() {
		tables[name] = nil
	}
	return &MemStore{tables: tables}
}

// ListRows returns a copy of the table rows.
func (m *MemStore) ListRows(_ context.Context, table string) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cols := Columns(table)
	if cols == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	rows := make([]Row, 0, len(m.tables[table]))
	for _, values := range m.tables[table] {
		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow adds a row at the end of the table.
func (m *MemStore) AppendRow(_ context.Context, table string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkShape(table, values); err != nil {
		return err
	}
	m.tables[table] = append(m.tables[table], append([]string(nil), values...))
	return nil
}

// UpdateRow replaces the row at index.
func (m *MemStore) UpdateRow(_ context.Context, table string, index int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkShape(table, values); err != nil {
		return err
	}
	if index < 0 || index >= len(m.tables[table]) {
		return fmt.Errorf("%w: %s row %d", ErrRowNotFound, table, index)
	}
	m.tables[table][index] = append([]string(nil), values...)
	return nil
}

// DeleteRow removes the row at index; later rows shift up.
func (m *MemStore) DeleteRow(_ context.Context, table string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if Columns(table) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	rows := m.tables[table]
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("%w: %s row %d", ErrRowNotFound, table, index)
	}
	m.tables[table] = append(rows[:index:index], rows[index+1:]...)
	return nil
}

func (m *MemStore) checkShape(table string, values []string) error {
	cols := Columns(table)
	if cols == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if len(values) != len(cols) {
		return fmt.Errorf("%w: %s wants %d columns, got %d", ErrColumnCount, table, len(cols), len(values))
	}
	return nil
}
