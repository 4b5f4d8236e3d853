package sheetdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gudangkain/gudangkain/internal/platform/db"
)

// PostgresStore keeps every table as a relation with text columns in schema
// order plus a serial position. It implements the same positional contract as
// the workbook adapter: row indexes are resolved against the current ordering
// inside one transaction, so update/delete stay consistent with a fresh read.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs the adapter and creates missing relations.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	for _, table := range TableNames() {
		cols := make([]string, 0, len(Columns(table)))
		for _, col := range Columns(table) {
			cols = append(cols, fmt.Sprintf("%s TEXT NOT NULL DEFAULT ''", col))
		}
		stmt := fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS sheet_%s (pos BIGSERIAL PRIMARY KEY, %s)",
			table, strings.Join(cols, ", "),
		)
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: ensure sheet_%s: %v", ErrBackendUnavailable, table, err)
		}
	}
	return nil
}

// ListRows reads all rows of a table ordered by insertion.
func (s *PostgresStore) ListRows(ctx context.Context, table string) ([]Row, error) {
	cols := Columns(table)
	if cols == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	query := fmt.Sprintf("SELECT %s FROM sheet_%s ORDER BY pos", strings.Join(cols, ", "), table)
	pgRows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrBackendUnavailable, table, err)
	}
	defer pgRows.Close()

	var rows []Row
	for pgRows.Next() {
		values := make([]string, len(cols))
		targets := make([]any, len(cols))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := pgRows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrBackendUnavailable, table, err)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		rows = append(rows, row)
	}
	if err := pgRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrBackendUnavailable, table, err)
	}
	return rows, nil
}

// AppendRow inserts one row at the end of a table.
func (s *PostgresStore) AppendRow(ctx context.Context, table string, values []string) error {
	cols := Columns(table)
	if cols == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if len(values) != len(cols) {
		return fmt.Errorf("%w: %s wants %d columns, got %d", ErrColumnCount, table, len(cols), len(values))
	}
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = values[i]
	}
	stmt := fmt.Sprintf(
		"INSERT INTO sheet_%s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)
	if _, err := s.pool.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("%w: append %s: %v", ErrBackendUnavailable, table, err)
	}
	return nil
}

// UpdateRow rewrites the row at index in the current ordering.
func (s *PostgresStore) UpdateRow(ctx context.Context, table string, index int, values []string) error {
	cols := Columns(table)
	if cols == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if len(values) != len(cols) {
		return fmt.Errorf("%w: %s wants %d columns, got %d", ErrColumnCount, table, len(cols), len(values))
	}
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		pos, err := s.posAt(ctx, tx, table, index)
		if err != nil {
			return err
		}
		assignments := make([]string, len(cols))
		args := make([]any, 0, len(cols)+1)
		for i, col := range cols {
			assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
			args = append(args, values[i])
		}
		args = append(args, pos)
		stmt := fmt.Sprintf(
			"UPDATE sheet_%s SET %s WHERE pos = $%d",
			table, strings.Join(assignments, ", "), len(cols)+1,
		)
		if _, err := tx.Exec(ctx, stmt, args...); err != nil {
			return fmt.Errorf("%w: update %s: %v", ErrBackendUnavailable, table, err)
		}
		return nil
	})
}

// DeleteRow removes the row at index in the current ordering.
func (s *PostgresStore) DeleteRow(ctx context.Context, table string, index int) error {
	if Columns(table) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		pos, err := s.posAt(ctx, tx, table, index)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM sheet_%s WHERE pos = $1", table), pos); err != nil {
			return fmt.Errorf("%w: delete %s: %v", ErrBackendUnavailable, table, err)
		}
		return nil
	})
}

func (s *PostgresStore) posAt(ctx context.Context, tx pgx.Tx, table string, index int) (int64, error) {
	if index < 0 {
		return 0, fmt.Errorf("%w: %s row %d", ErrRowNotFound, table, index)
	}
	var pos int64
	query := fmt.Sprintf("SELECT pos FROM sheet_%s ORDER BY pos OFFSET $1 LIMIT 1", table)
	if err := tx.QueryRow(ctx, query, index).Scan(&pos); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s row %d", ErrRowNotFound, table, index)
		}
		return 0, fmt.Errorf("%w: locate %s row %d: %v", ErrBackendUnavailable, table, index, err)
	}
	return pos, nil
}
