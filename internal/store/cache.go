package store

import (
	"context"
	"sync"
	"time"
)

// Cache holds table snapshots for read-through serving. Invalidation is
// coarse on purpose: any successful write clears the whole cache, never a
// single table. Nothing relies on finer granularity and keeping it coarse
// avoids masking write-ordering bugs during testing.
type Cache interface {
	Get(ctx context.Context, table string) ([]Record, bool)
	Set(ctx context.Context, table string, recs []Record)
	Clear(ctx context.Context)
}

type memCacheEntry struct {
	recs    []Record
	savedAt time.Time
}

// MemoryCache is the default process-local cache with a fixed TTL per
// table key. It offers no cross-process consistency.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memCacheEntry
	now     func() time.Time
}

// NewMemoryCache builds a cache with the given lifetime.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memCacheEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, table string) ([]Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[table]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.savedAt) >= c.ttl {
		delete(c.entries, table)
		return nil, false
	}
	return entry.recs, true
}

func (c *MemoryCache) Set(_ context.Context, table string, recs []Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[table] = memCacheEntry{recs: recs, savedAt: c.now()}
}

func (c *MemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memCacheEntry)
}

// CachedStore serves reads through a Cache and forwards writes to the
// underlying store. A failed write leaves the cache untouched, so a
// subsequent read may still serve the previous valid snapshot.
type CachedStore struct {
	inner RecordStore
	cache Cache
}

// NewCachedStore wraps a RecordStore with a read-through cache.
func NewCachedStore(inner RecordStore, cache Cache) *CachedStore {
	return &CachedStore{inner: inner, cache: cache}
}

func (s *CachedStore) List(ctx context.Context, table string) ([]Record, error) {
	if recs, ok := s.cache.Get(ctx, table); ok {
		return recs, nil
	}
	recs, err := s.inner.List(ctx, table)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, table, recs)
	return recs, nil
}

func (s *CachedStore) Append(ctx context.Context, table string, rec Record) error {
	if err := s.inner.Append(ctx, table, rec); err != nil {
		return err
	}
	s.cache.Clear(ctx)
	return nil
}

func (s *CachedStore) DeleteWhere(ctx context.Context, table, column, value string) (bool, error) {
	deleted, err := s.inner.DeleteWhere(ctx, table, column, value)
	if err != nil {
		return false, err
	}
	if deleted {
		s.cache.Clear(ctx)
	}
	return deleted, nil
}

func (s *CachedStore) UpdateCell(ctx context.Context, table string, rowIndex int, column, value string) error {
	if err := s.inner.UpdateCell(ctx, table, rowIndex, column, value); err != nil {
		return err
	}
	s.cache.Clear(ctx)
	return nil
}
