package sheetdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkbookRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gudang.xlsx")
	wb, err := NewWorkbook(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	ctx := context.Background()

	require.NoError(t, wb.AppendRow(ctx, TableMasterBarang, []string{"KB-01", "CV Sumber", "Katun Combed", "merah", "R1", "25000"}))
	require.NoError(t, wb.AppendRow(ctx, TableMasterBarang, []string{"KB-02", "CV Sumber", "Rayon", "biru", "R2", "18000"}))

	rows, err := wb.ListRows(ctx, TableMasterBarang)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Katun Combed", rows[0]["nama_bahan"])
	require.Equal(t, "biru", rows[1]["warna"])

	require.NoError(t, wb.UpdateRow(ctx, TableMasterBarang, 1, []string{"KB-02", "CV Sumber", "Rayon Premium", "biru", "R2", "19000"}))
	require.NoError(t, wb.DeleteRow(ctx, TableMasterBarang, 0))

	rows, err = wb.ListRows(ctx, TableMasterBarang)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Rayon Premium", rows[0]["nama_bahan"])
}

func TestWorkbookSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gudang.xlsx")
	ctx := context.Background()

	wb, err := NewWorkbook(path)
	require.NoError(t, err)
	require.NoError(t, wb.AppendRow(ctx, TableEmployees, []string{"Budi", "produksi", "4500000", "e1"}))
	require.NoError(t, wb.Close())

	reopened, err := NewWorkbook(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	rows, err := reopened.ListRows(ctx, TableEmployees)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Budi", rows[0]["nama_karyawan"])

	err = reopened.UpdateRow(ctx, TableEmployees, 3, []string{"Budi", "produksi", "4500000", "e1"})
	require.ErrorIs(t, err, ErrRowNotFound)
}
