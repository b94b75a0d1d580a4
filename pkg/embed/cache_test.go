package embed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestCache(t *testing.T) *Cache {
	dsn := filepath.Join(t.TempDir(), "test.db")
	cache, err := NewCache(context.Background(), CacheConfig{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCache_PutGetRoundtrip(t *testing.T) {
	cache := makeTestCache(t)
	ctx := context.Background()

	entries := []Entry{
		{Fingerprint: "fp-1", Vector: []float64{0.1, 0.2, 0.3}},
		{Fingerprint: "fp-2", Vector: []float64{-1.5, 0, 2.25}},
	}
	require.NoError(t, cache.PutMany(ctx, entries, time.Hour))

	got, err := cache.GetMany(ctx, []string{"fp-1", "fp-2", "fp-missing"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, got["fp-1"])
	assert.Equal(t, []float64{-1.5, 0, 2.25}, got["fp-2"])
	assert.NotContains(t, got, "fp-missing")
}

func TestCache_GetManyEmpty(t *testing.T) {
	cache := makeTestCache(t)
	got, err := cache.GetMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCache_PutManyUpsert(t *testing.T) {
	cache := makeTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.PutMany(ctx, []Entry{{Fingerprint: "fp", Vector: []float64{1, 2}}}, time.Hour))
	require.NoError(t, cache.PutMany(ctx, []Entry{{Fingerprint: "fp", Vector: []float64{3, 4}}}, time.Hour))

	got, err := cache.GetMany(ctx, []string{"fp"})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, got["fp"], "second write wins")
}

func TestCache_TTLExpiry(t *testing.T) {
	cache := makeTestCache(t)
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	require.NoError(t, cache.PutMany(ctx, []Entry{{Fingerprint: "fp", Vector: []float64{1}}}, time.Hour))

	got, err := cache.GetMany(ctx, []string{"fp"})
	require.NoError(t, err)
	assert.Contains(t, got, "fp", "entry is alive within the TTL")

	cache.now = func() time.Time { return now.Add(2 * time.Hour) }
	got, err = cache.GetMany(ctx, []string{"fp"})
	require.NoError(t, err)
	assert.NotContains(t, got, "fp", "expired entry is a miss")
}

func TestCache_ExpiredRowsCleanedOnPut(t *testing.T) {
	cache := makeTestCache(t)
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	require.NoError(t, cache.PutMany(ctx, []Entry{{Fingerprint: "old", Vector: []float64{1}}}, time.Minute))

	cache.now = func() time.Time { return now.Add(time.Hour) }
	require.NoError(t, cache.PutMany(ctx, []Entry{{Fingerprint: "new", Vector: []float64{2}}}, time.Hour))

	var count int
	require.NoError(t, cache.db.Get(&count, "SELECT count(*) FROM embeddings"))
	assert.Equal(t, 1, count, "expired row is physically removed on the next write")
}

func TestCache_Counters(t *testing.T) {
	cache := makeTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Inc(ctx, "embedding_cache_hit", 3))
	require.NoError(t, cache.Inc(ctx, "embedding_cache_hit", 2))

	value, err := cache.Counter(ctx, "embedding_cache_hit")
	require.NoError(t, err)
	assert.Equal(t, 5, value)

	_, err = cache.Counter(ctx, "unknown")
	assert.Error(t, err)
}

func TestEncodeDecodeVector(t *testing.T) {
	vector := []float64{0.5, -1.25, 3.14159, 0}
	decoded, err := decodeVector(encodeVector(vector), len(vector))
	require.NoError(t, err)
	assert.Equal(t, vector, decoded)

	_, err = decodeVector([]byte{1, 2, 3}, 4)
	require.Error(t, err, "size mismatch is rejected")
}

func TestCache_CorruptRowSkipped(t *testing.T) {
	cache := makeTestCache(t)
	ctx := context.Background()

	// declared dim disagrees with the blob size
	_, err := cache.db.ExecContext(ctx,
		"INSERT INTO embeddings (fingerprint, vector, dim, expires_at) VALUES (?, ?, ?, ?)",
		"corrupt", []byte{1, 2, 3}, 4, time.Now().Add(time.Hour).UTC())
	require.NoError(t, err)

	got, err := cache.GetMany(ctx, []string{"corrupt"})
	require.NoError(t, err)
	assert.NotContains(t, got, "corrupt")
}
