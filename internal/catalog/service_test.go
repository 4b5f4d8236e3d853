package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gudangkain/gudangkain/internal/shared"
	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

func newService() *Service {
	return NewService(NewRepository(sheetdb.NewMemStore()), shared.NewWriteGate())
}

func item(kode, warna string) MaterialVariant {
	return MaterialVariant{
		KodeBahan:    kode,
		NamaSupplier: "CV Sumber",
		NamaBahan:    "Katun",
		Warna:        warna,
		Rak:          "R1",
		Harga:        25000,
	}
}

func TestAddRejectsDuplicateKey(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, item("X", "merah")))
	err := svc.Add(ctx, item("X", "merah"))
	require.ErrorIs(t, err, ErrDuplicateItem)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestAddAllowsSameCodeDifferentColor(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, item("X", "merah")))
	require.NoError(t, svc.Add(ctx, item("X", "biru")))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestRenameCollisionGuard(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, item("X", "merah")))
	require.NoError(t, svc.Add(ctx, item("Y", "biru")))

	err := svc.Rename(ctx, ItemKey{"X", "merah"}, item("Y", "biru"))
	require.ErrorIs(t, err, ErrDuplicateItem)

	// Keeping the same key while changing attributes must pass the guard.
	updated := item("X", "merah")
	updated.Harga = 30000
	require.NoError(t, svc.Rename(ctx, ItemKey{"X", "merah"}, updated))

	got, err := svc.Get(ctx, ItemKey{"X", "merah"})
	require.NoError(t, err)
	require.Equal(t, 30000.0, got.Harga)
}

func TestRenameMovesEntry(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, item("X", "merah")))
	require.NoError(t, svc.Rename(ctx, ItemKey{"X", "merah"}, item("Y", "biru")))

	_, err := svc.Get(ctx, ItemKey{"X", "merah"})
	require.ErrorIs(t, err, ErrItemNotFound)
	_, err = svc.Get(ctx, ItemKey{"Y", "biru"})
	require.NoError(t, err)
}

func TestRemoveIsIdempotent(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, item("X", "merah")))
	require.NoError(t, svc.Remove(ctx, ItemKey{"X", "merah"}))
	require.NoError(t, svc.Remove(ctx, ItemKey{"X", "merah"}))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestAddValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	bad := item("", "merah")
	require.ErrorIs(t, svc.Add(ctx, bad), ErrInvalidItem)

	negative := item("X", "merah")
	negative.Harga = -1
	require.ErrorIs(t, svc.Add(ctx, negative), ErrInvalidItem)
}
