package rank

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/umputun/feedsift/pkg/domain"
	"github.com/umputun/feedsift/pkg/embed"
)

//go:generate moq -out mocks/resolver.go -pkg mocks -skip-ensure -fmt goimports . Resolver

// Resolver obtains embedding vectors for fingerprinted texts
type Resolver interface {
	Resolve(ctx context.Context, reqs []embed.Request) (map[string][]float64, error)
}

// SortMode selects the ordering of ranked output
type SortMode string

// available sort modes
const (
	SortByDate      SortMode = "date"
	SortByRelevance SortMode = "relevance"
)

// ParseSortMode maps a request string to a sort mode, defaulting to relevance
func ParseSortMode(s string) SortMode {
	if s == string(SortByDate) {
		return SortByDate
	}
	return SortByRelevance
}

// Ranker orders articles by date or by semantic relevance to a query
type Ranker struct {
	resolver Resolver
}

// NewRanker creates a ranking engine over the given resolver
func NewRanker(resolver Resolver) *Ranker {
	return &Ranker{resolver: resolver}
}

// Rank returns a reordered copy of the articles. Relevance mode resolves the
// query and all article embeddings in one round trip and sorts ascending by
// cosine distance; articles without a resolved embedding sort last, never
// dropped. An embedding service failure propagates as ErrEmbeddingUnavailable
// so the caller can fall back to date order.
func (r *Ranker) Rank(ctx context.Context, query string, articles []domain.Article, mode SortMode) ([]domain.Article, error) {
	if mode != SortByRelevance || query == "" {
		return sortByDate(articles), nil
	}

	reqs := make([]embed.Request, 0, len(articles)+1)
	queryFP := embed.QueryFingerprint(query)
	reqs = append(reqs, embed.Request{Fingerprint: queryFP, Text: query})
	for _, a := range articles {
		reqs = append(reqs, embed.Request{Fingerprint: embed.ArticleFingerprint(a), Text: embed.EmbeddingText(a)})
	}

	vectors, err := r.resolver.Resolve(ctx, reqs)
	if err != nil {
		return nil, fmt.Errorf("resolve embeddings: %w", err)
	}

	queryVector, ok := vectors[queryFP]
	if !ok {
		return nil, fmt.Errorf("query embedding missing: %w", embed.ErrEmbeddingUnavailable)
	}

	ranked := make([]domain.Article, len(articles))
	for i, a := range articles {
		vector, ok := vectors[embed.ArticleFingerprint(a)]
		if !ok {
			ranked[i] = a.WithDistance(math.Inf(1))
			continue
		}
		distance, err := CosineDistance(queryVector, vector)
		if err != nil {
			// dimension mismatch is a version-skew bug, not a soft miss
			return nil, fmt.Errorf("distance for %s: %w", a.Key, err)
		}
		ranked[i] = a.WithDistance(distance)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Distance < *ranked[j].Distance
	})

	log.Printf("[DEBUG] ranked %d articles by relevance to %q", len(ranked), query)
	return ranked, nil
}

// sortByDate returns a copy ordered by published time descending, key breaks
// ties so repeated calls are reproducible
func sortByDate(articles []domain.Article) []domain.Article {
	sorted := make([]domain.Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Published.Equal(sorted[j].Published) {
			return sorted[i].Published.After(sorted[j].Published)
		}
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}
