package sheetdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const cacheVersionKey = "sheetdb:version"

// CachedStore is a read-through TTL cache in front of a Store. Reads are
// served from Redis when fresh; concurrent misses for the same table collapse
// into one backend read. Every write goes to the backend first and then bumps
// the cache version, which invalidates every cached table at once so a read
// after a write is guaranteed fresh.
type CachedStore struct {
	backend Store
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	group   singleflight.Group
}

// NewCachedStore wraps backend with a Redis cache using the given TTL.
func NewCachedStore(backend Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedStore{backend: backend, client: client, ttl: ttl, logger: logger}
}

// ListRows serves rows from cache, falling back to the backend on a miss.
// Cache failures degrade to direct backend reads.
func (c *CachedStore) ListRows(ctx context.Context, table string) ([]Row, error) {
	key, err := c.rowsKey(ctx, table)
	if err != nil {
		c.warn("cache key", err)
		return c.backend.ListRows(ctx, table)
	}

	if payload, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var rows []Row
		if err := json.Unmarshal(payload, &rows); err == nil {
			return rows, nil
		}
		c.warn("cache decode", err)
	} else if !errors.Is(err, redis.Nil) {
		c.warn("cache get", err)
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		rows, err := c.backend.ListRows(ctx, table)
		if err != nil {
			return nil, err
		}
		if payload, err := json.Marshal(rows); err == nil {
			if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
				c.warn("cache set", err)
			}
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	rows, _ := result.([]Row)
	return rows, nil
}

// AppendRow writes through and invalidates the cache.
func (c *CachedStore) AppendRow(ctx context.Context, table string, values []string) error {
	if err := c.backend.AppendRow(ctx, table, values); err != nil {
		return err
	}
	return c.InvalidateAll(ctx)
}

// UpdateRow writes through and invalidates the cache.
func (c *CachedStore) UpdateRow(ctx context.Context, table string, index int, values []string) error {
	if err := c.backend.UpdateRow(ctx, table, index, values); err != nil {
		return err
	}
	return c.InvalidateAll(ctx)
}

// DeleteRow writes through and invalidates the cache.
func (c *CachedStore) DeleteRow(ctx context.Context, table string, index int) error {
	if err := c.backend.DeleteRow(ctx, table, index); err != nil {
		return err
	}
	return c.InvalidateAll(ctx)
}

// InvalidateAll drops every cached table by bumping the version; old entries
// expire with their TTL.
func (c *CachedStore) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, cacheVersionKey).Err(); err != nil {
		return fmt.Errorf("sheetdb: invalidate cache: %w", err)
	}
	return nil
}

func (c *CachedStore) rowsKey(ctx context.Context, table string) (string, error) {
	version, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("sheetdb:rows:%d:%s", version, table), nil
}

func (c *CachedStore) warn(msg string, err error) {
	if c.logger != nil {
		c.logger.Warn(msg, slog.Any("error", err))
	}
}
