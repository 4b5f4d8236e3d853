package catalog

import (
	"context"
	"strconv"

	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

// Repository maps master item records onto the master_barang table.
type Repository struct {
	store sheetdb.Store
}

// NewRepository constructs Repository.
func NewRepository(store sheetdb.Store) *Repository {
	return &Repository{store: store}
}

// List reads every master item in table order.
func (r *Repository) List(ctx context.Context) ([]MaterialVariant, error) {
	rows, err := r.store.ListRows(ctx, sheetdb.TableMasterBarang)
	if err != nil {
		return nil, err
	}
	items := make([]MaterialVariant, 0, len(rows))
	for _, row := range rows {
		items = append(items, fromRow(row))
	}
	return items, nil
}

// Append adds one master item at the end of the table.
func (r *Repository) Append(ctx context.Context, item MaterialVariant) error {
	return r.store.AppendRow(ctx, sheetdb.TableMasterBarang, toValues(item))
}

// DeleteAt removes the row at index. The index must come from a fresh List.
func (r *Repository) DeleteAt(ctx context.Context, index int) error {
	return r.store.DeleteRow(ctx, sheetdb.TableMasterBarang, index)
}

func fromRow(row sheetdb.Row) MaterialVariant {
	harga, _ := strconv.ParseFloat(row["harga"], 64)
	return MaterialVariant{
		KodeBahan:    row["kode_bahan"],
		NamaSupplier: row["nama_supplier"],
		NamaBahan:    row["nama_bahan"],
		Warna:        row["warna"],
		Rak:          row["rak"],
		Harga:        harga,
	}
}

func toValues(item MaterialVariant) []string {
	return []string{
		item.KodeBahan,
		item.NamaSupplier,
		item.NamaBahan,
		item.Warna,
		item.Rak,
		strconv.FormatFloat(item.Harga, 'f', -1, 64),
	}
}
