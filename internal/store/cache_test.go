package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore tracks how many reads reach the backing store.
type countingStore struct {
	RecordStore
	lists int
}

func (s *countingStore) List(ctx context.Context, table string) ([]Record, error) {
	s.lists++
	return s.RecordStore.List(ctx, table)
}

// failingStore rejects all writes.
type failingStore struct {
	RecordStore
}

func (s *failingStore) Append(context.Context, string, Record) error {
	return errors.New("backend down")
}

func TestMemoryCacheTTL(t *testing.T) {
	cache := NewMemoryCache(5 * time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	cache.Set(ctx, "suppliers", []Record{{"name": "a"}})

	recs, ok := cache.Get(ctx, "suppliers")
	require.True(t, ok)
	assert.Len(t, recs, 1)

	now = now.Add(5*time.Minute + time.Second)
	_, ok = cache.Get(ctx, "suppliers")
	assert.False(t, ok)
}

func TestCachedStoreServesReadsFromCache(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{RecordStore: NewMemoryStore()}
	cached := NewCachedStore(backing, NewMemoryCache(time.Minute))

	require.NoError(t, cached.Append(ctx, "t", Record{"name": "a"}))

	_, err := cached.List(ctx, "t")
	require.NoError(t, err)
	_, err = cached.List(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, 1, backing.lists)
}

func TestCachedStoreClearsWholeCacheOnWrite(t *testing.T) {
	ctx := context.Background()
	backing := &countingStore{RecordStore: NewMemoryStore()}
	cached := NewCachedStore(backing, NewMemoryCache(time.Minute))

	_, err := cached.List(ctx, "a")
	require.NoError(t, err)
	_, err = cached.List(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, 2, backing.lists)

	// a write to one table invalidates every cached table
	require.NoError(t, cached.Append(ctx, "a", Record{"k": "v"}))

	_, err = cached.List(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 3, backing.lists)
}

func TestCachedStoreKeepsCacheOnFailedWrite(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	require.NoError(t, mem.Append(ctx, "t", Record{"name": "a"}))

	backing := &countingStore{RecordStore: &failingStore{RecordStore: mem}}
	cached := NewCachedStore(backing, NewMemoryCache(time.Minute))

	_, err := cached.List(ctx, "t")
	require.NoError(t, err)

	assert.Error(t, cached.Append(ctx, "t", Record{"name": "b"}))

	// cached snapshot still valid, no second read of the backend
	_, err = cached.List(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, 1, backing.lists)
}
