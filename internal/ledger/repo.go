package ledger

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

// Repository maps movements onto the barang_masuk and barang_keluar tables.
// Movements carry a surrogate row_id column; positions are resolved here,
// against a fresh read taken immediately before the mutation.
type Repository struct {
	store sheetdb.Store
}

// NewRepository constructs Repository.
func NewRepository(store sheetdb.Store) *Repository {
	return &Repository{store: store}
}

func tableFor(kind Kind) (string, error) {
	switch kind {
	case KindIncoming:
		return sheetdb.TableBarangMasuk, nil
	case KindOutgoing:
		return sheetdb.TableBarangKeluar, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// List reads one ledger in append order.
func (r *Repository) List(ctx context.Context, kind Kind) ([]Movement, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.store.ListRows(ctx, table)
	if err != nil {
		return nil, err
	}
	movements := make([]Movement, 0, len(rows))
	for _, row := range rows {
		movements = append(movements, fromRow(kind, row))
	}
	return movements, nil
}

// Append adds one movement at the end of its ledger.
func (r *Repository) Append(ctx context.Context, m Movement) error {
	table, err := tableFor(m.Kind)
	if err != nil {
		return err
	}
	return r.store.AppendRow(ctx, table, toValues(m))
}

// Update rewrites the movement with the given row id in place.
func (r *Repository) Update(ctx context.Context, kind Kind, rowID string, m Movement) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	index, err := r.indexOf(ctx, table, rowID)
	if err != nil {
		return err
	}
	m.Kind = kind
	m.RowID = rowID
	return r.store.UpdateRow(ctx, table, index, toValues(m))
}

// Delete removes the movement with the given row id.
func (r *Repository) Delete(ctx context.Context, kind Kind, rowID string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	index, err := r.indexOf(ctx, table, rowID)
	if err != nil {
		return err
	}
	return r.store.DeleteRow(ctx, table, index)
}

func (r *Repository) indexOf(ctx context.Context, table, rowID string) (int, error) {
	rows, err := r.store.ListRows(ctx, table)
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if row["row_id"] == rowID {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrMovementNotFound, rowID)
}

func fromRow(kind Kind, row sheetdb.Row) Movement {
	ts, err := sheetdb.ParseTime(row["tanggal_waktu"])
	if err != nil {
		ts = time.Time{}
	}
	qty, _ := strconv.ParseInt(row["stok"], 10, 64)
	yard, _ := strconv.ParseFloat(row["yard"], 64)
	return Movement{
		RowID:      row["row_id"],
		Kind:       kind,
		Timestamp:  ts,
		KodeBahan:  row["kode_bahan"],
		Warna:      row["warna"],
		Qty:        qty,
		Yard:       yard,
		Keterangan: row["keterangan"],
	}
}

func toValues(m Movement) []string {
	return []string{
		sheetdb.FormatTime(m.Timestamp),
		m.KodeBahan,
		m.Warna,
		strconv.FormatInt(m.Qty, 10),
		strconv.FormatFloat(m.Yard, 'f', -1, 64),
		m.Keterangan,
		m.RowID,
	}
}
