package sheetdb

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	Store
	reads atomic.Int64
}

func (c *countingStore) ListRows(ctx context.Context, table string) ([]Row, error) {
	c.reads.Add(1)
	return c.Store.ListRows(ctx, table)
}

func newCacheFixture(t *testing.T) (*CachedStore, *countingStore) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	backend := &countingStore{Store: NewMemStore()}
	return NewCachedStore(backend, client, time.Minute, nil), backend
}

func TestCachedStoreServesRepeatReadsFromCache(t *testing.T) {
	cached, backend := newCacheFixture(t)
	ctx := context.Background()

	require.NoError(t, cached.AppendRow(ctx, TableInvoices, []string{"INV-250115-001", "2025-01-15 09:00:00", "Toko A"}))

	rows, err := cached.ListRows(ctx, TableInvoices)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	before := backend.reads.Load()

	rows, err = cached.ListRows(ctx, TableInvoices)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, before, backend.reads.Load(), "second read must come from cache")
}

func TestCachedStoreInvalidatesWholeCacheOnWrite(t *testing.T) {
	cached, backend := newCacheFixture(t)
	ctx := context.Background()

	_, err := cached.ListRows(ctx, TableInvoices)
	require.NoError(t, err)
	_, err = cached.ListRows(ctx, TableMasterBarang)
	require.NoError(t, err)
	before := backend.reads.Load()

	// A write to one table must refresh reads of every table.
	require.NoError(t, cached.AppendRow(ctx, TableInvoices, []string{"INV-250115-001", "2025-01-15 09:00:00", "Toko A"}))

	rows, err := cached.ListRows(ctx, TableInvoices)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	_, err = cached.ListRows(ctx, TableMasterBarang)
	require.NoError(t, err)
	require.Equal(t, before+2, backend.reads.Load(), "both tables must be re-read after invalidation")
}
