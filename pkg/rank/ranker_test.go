package rank

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedsift/pkg/domain"
	"github.com/umputun/feedsift/pkg/embed"
	"github.com/umputun/feedsift/pkg/rank/mocks"
)

// unitVector returns a 2d unit vector whose cosine similarity with (1,0) is x
func unitVector(x float64) []float64 {
	return []float64{x, math.Sqrt(1 - x*x)}
}

func testArticles(n int) []domain.Article {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	articles := make([]domain.Article, n)
	for i := range articles {
		articles[i] = domain.Article{
			Title:     string(rune('a' + i)),
			Key:       "key-" + string(rune('a'+i)),
			Published: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return articles
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortByDate, ParseSortMode("date"))
	assert.Equal(t, SortByRelevance, ParseSortMode("relevance"))
	assert.Equal(t, SortByRelevance, ParseSortMode(""))
	assert.Equal(t, SortByRelevance, ParseSortMode("garbage"))
}

func TestRanker_RankByDate(t *testing.T) {
	articles := testArticles(3)
	r := NewRanker(&mocks.ResolverMock{
		ResolveFunc: func(_ context.Context, _ []embed.Request) (map[string][]float64, error) {
			t.Fatal("date mode must not resolve embeddings")
			return nil, nil
		},
	})

	ranked, err := r.Rank(context.Background(), "any query", articles, SortByDate)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "key-c", ranked[0].Key, "newest first")
	assert.Equal(t, "key-a", ranked[2].Key)

	// input untouched
	assert.Equal(t, "key-a", articles[0].Key)
}

func TestRanker_RankEmptyQueryFallsBackToDate(t *testing.T) {
	articles := testArticles(2)
	r := NewRanker(&mocks.ResolverMock{})
	ranked, err := r.Rank(context.Background(), "", articles, SortByRelevance)
	require.NoError(t, err)
	assert.Equal(t, "key-b", ranked[0].Key)
}

func TestRanker_RankByRelevance(t *testing.T) {
	articles := testArticles(5)
	queryFP := embed.QueryFingerprint("galaxies")

	// similarity per key: e closest, then a, c, b, d
	sims := map[string]float64{
		"key-a": 0.90,
		"key-b": 0.50,
		"key-c": 0.70,
		"key-d": 0.10,
		"key-e": 0.95,
	}

	resolver := &mocks.ResolverMock{
		ResolveFunc: func(_ context.Context, reqs []embed.Request) (map[string][]float64, error) {
			vectors := map[string][]float64{queryFP: unitVector(1)}
			for key, sim := range sims {
				vectors[key] = unitVector(sim)
			}
			require.Len(t, reqs, 6, "query plus five articles in one round trip")
			return vectors, nil
		},
	}

	r := NewRanker(resolver)
	ranked, err := r.Rank(context.Background(), "galaxies", articles, SortByRelevance)
	require.NoError(t, err)
	require.Len(t, ranked, 5)

	gotKeys := make([]string, len(ranked))
	for i, a := range ranked {
		gotKeys[i] = a.Key
	}
	assert.Equal(t, []string{"key-e", "key-a", "key-c", "key-b", "key-d"}, gotKeys)

	// distances are attached and ascending
	for i := range ranked {
		require.NotNil(t, ranked[i].Distance)
		if i > 0 {
			assert.GreaterOrEqual(t, *ranked[i].Distance, *ranked[i-1].Distance)
		}
	}
	assert.InDelta(t, 0.05, *ranked[0].Distance, 1e-9)

	require.Len(t, resolver.ResolveCalls(), 1, "one resolve pass for the whole batch")
}

func TestRanker_RankUnresolvedSortsLast(t *testing.T) {
	articles := testArticles(3)
	queryFP := embed.QueryFingerprint("q")

	resolver := &mocks.ResolverMock{
		ResolveFunc: func(_ context.Context, _ []embed.Request) (map[string][]float64, error) {
			return map[string][]float64{
				queryFP: unitVector(1),
				"key-a": unitVector(0.2),
				// key-b missing
				"key-c": unitVector(0.8),
			}, nil
		},
	}

	r := NewRanker(resolver)
	ranked, err := r.Rank(context.Background(), "q", articles, SortByRelevance)
	require.NoError(t, err)
	require.Len(t, ranked, 3, "unresolved articles are kept, never dropped")
	assert.Equal(t, "key-c", ranked[0].Key)
	assert.Equal(t, "key-a", ranked[1].Key)
	assert.Equal(t, "key-b", ranked[2].Key, "missing embedding sorts last")
	assert.True(t, math.IsInf(*ranked[2].Distance, 1))
}

func TestRanker_RankResolveFailure(t *testing.T) {
	resolver := &mocks.ResolverMock{
		ResolveFunc: func(_ context.Context, _ []embed.Request) (map[string][]float64, error) {
			return nil, embed.ErrEmbeddingUnavailable
		},
	}
	r := NewRanker(resolver)
	_, err := r.Rank(context.Background(), "q", testArticles(2), SortByRelevance)
	require.Error(t, err)
	assert.ErrorIs(t, err, embed.ErrEmbeddingUnavailable)
}

func TestRanker_RankQueryEmbeddingMissing(t *testing.T) {
	resolver := &mocks.ResolverMock{
		ResolveFunc: func(_ context.Context, _ []embed.Request) (map[string][]float64, error) {
			return map[string][]float64{"key-a": unitVector(0.5)}, nil
		},
	}
	r := NewRanker(resolver)
	_, err := r.Rank(context.Background(), "q", testArticles(1), SortByRelevance)
	require.Error(t, err)
	assert.ErrorIs(t, err, embed.ErrEmbeddingUnavailable)
}

func TestRanker_RankDimensionMismatchFatal(t *testing.T) {
	queryFP := embed.QueryFingerprint("q")
	resolver := &mocks.ResolverMock{
		ResolveFunc: func(_ context.Context, _ []embed.Request) (map[string][]float64, error) {
			return map[string][]float64{
				queryFP: {1, 0},
				"key-a": {1, 0, 0}, // wrong dimension
			}, nil
		},
	}
	r := NewRanker(resolver)
	_, err := r.Rank(context.Background(), "q", testArticles(1), SortByRelevance)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}

func TestRanker_RankDeterministic(t *testing.T) {
	articles := testArticles(4)
	queryFP := embed.QueryFingerprint("q")
	resolver := &mocks.ResolverMock{
		ResolveFunc: func(_ context.Context, _ []embed.Request) (map[string][]float64, error) {
			// all articles equally distant, stable sort keeps input order
			vectors := map[string][]float64{queryFP: unitVector(1)}
			for _, key := range []string{"key-a", "key-b", "key-c", "key-d"} {
				vectors[key] = unitVector(0.5)
			}
			return vectors, nil
		},
	}
	r := NewRanker(resolver)

	first, err := r.Rank(context.Background(), "q", articles, SortByRelevance)
	require.NoError(t, err)
	second, err := r.Rank(context.Background(), "q", articles, SortByRelevance)
	require.NoError(t, err)
	assert.Equal(t, first, second, "identical inputs produce identical order")
	assert.Equal(t, "key-a", first[0].Key)
}
