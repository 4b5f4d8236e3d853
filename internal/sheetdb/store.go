// Package sheetdb implements the flat-table backend the application persists
// into: a set of named tables with a fixed column order, accessed through a
// narrow list/append/update/delete contract. Two adapters exist, one keeping
// every table as a sheet inside an xlsx workbook and one keeping them in
// PostgreSQL relations.
package sheetdb

import (
	"context"
	"errors"
)

// Row is one record of a table keyed by column name.
type Row map[string]string

// Store is the CRUD contract consumed by the domain repositories. Rows are
// addressed positionally; the index is only meaningful against a fresh read
// of the same table.
type Store interface {
	ListRows(ctx context.Context, table string) ([]Row, error)
	AppendRow(ctx context.Context, table string, values []string) error
	UpdateRow(ctx context.Context, table string, index int, values []string) error
	DeleteRow(ctx context.Context, table string, index int) error
}

var (
	// ErrBackendUnavailable signals the underlying store cannot be reached.
	ErrBackendUnavailable = errors.New("sheetdb: backend unavailable")
	// ErrRowNotFound signals update/delete targeted a row that no longer exists.
	ErrRowNotFound = errors.New("sheetdb: row not found")
	// ErrUnknownTable signals access to a table outside the schema registry.
	ErrUnknownTable = errors.New("sheetdb: unknown table")
	// ErrColumnCount signals a value slice that does not match the table schema.
	ErrColumnCount = errors.New("sheetdb: column count mismatch")
)
