package sheetdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemStorePositionalSemantics(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	require.NoError(t, store.AppendRow(ctx, TableInvoices, []string{"INV-250115-001", "2025-01-15 09:00:00", "Toko A"}))
	require.NoError(t, store.AppendRow(ctx, TableInvoices, []string{"INV-250115-002", "2025-01-15 10:00:00", "Toko B"}))

	rows, err := store.ListRows(ctx, TableInvoices)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Toko A", rows[0]["customer_name"])

	require.NoError(t, store.DeleteRow(ctx, TableInvoices, 0))
	rows, err = store.ListRows(ctx, TableInvoices)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "INV-250115-002", rows[0]["invoice_number"])

	err = store.UpdateRow(ctx, TableInvoices, 5, []string{"INV-250115-003", "2025-01-15 11:00:00", "Toko C"})
	require.ErrorIs(t, err, ErrRowNotFound)
}

func TestMemStoreRejectsUnknownTableAndShape(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	_, err := store.ListRows(ctx, "tabel_misterius")
	require.ErrorIs(t, err, ErrUnknownTable)

	err = store.AppendRow(ctx, TableInvoices, []string{"cuma-satu-kolom"})
	require.ErrorIs(t, err, ErrColumnCount)
}
