package dedup

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/umputun/feedsift/pkg/domain"
	"github.com/umputun/feedsift/pkg/embed"
	"github.com/umputun/feedsift/pkg/rank"
)

//go:generate moq -out mocks/resolver.go -pkg mocks -skip-ensure -fmt goimports . Resolver

// Resolver obtains embedding vectors for fingerprinted texts
type Resolver interface {
	Resolve(ctx context.Context, reqs []embed.Request) (map[string][]float64, error)
}

// DefaultThreshold is the cosine similarity at which two articles are
// considered the same story
const DefaultThreshold = 0.85

// Engine finds pairwise-similar article groups and collapses each group to
// its most recent member. The comparison is genuinely quadratic, O(n²·D) for
// n articles and D-dimensional vectors; callers bound n before invoking at
// scale.
type Engine struct {
	resolver  Resolver
	threshold float64
}

// NewEngine creates a dedup engine, zero threshold means DefaultThreshold
func NewEngine(resolver Resolver, threshold float64) *Engine {
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	return &Engine{resolver: resolver, threshold: threshold}
}

// PairScore records one comparison for offline threshold analysis
type PairScore struct {
	Lengths    [2]int  `json:"lengths"` // description lengths of the compared pair
	Similarity float64 `json:"similarity"`
}

// Metrics describes one merge pass
type Metrics struct {
	Comparisons int           `json:"comparisons"`
	Duplicates  int           `json:"duplicates"`
	Elapsed     time.Duration `json:"elapsed"`
	Scores      []PairScore   `json:"scores,omitempty"`
}

// Result is the merged article set plus pass metrics
type Result struct {
	Articles []domain.Article
	Metrics  Metrics
}

// Merge collapses near-duplicate articles. An article folded into a group is
// never compared again as a standalone item, keeping the pass at O(n²).
// A pair with a missing embedding on either side is skipped, not scored zero.
func (e *Engine) Merge(ctx context.Context, articles []domain.Article) (*Result, error) {
	started := time.Now()

	reqs := make([]embed.Request, len(articles))
	for i, a := range articles {
		reqs[i] = embed.Request{Fingerprint: embed.ArticleFingerprint(a), Text: embed.EmbeddingText(a)}
	}
	vectors, err := e.resolver.Resolve(ctx, reqs)
	if err != nil {
		return nil, fmt.Errorf("resolve embeddings for dedup: %w", err)
	}

	metrics := Metrics{}
	consumed := make(map[string]bool) // keys already folded into a group
	groups := make([][]int, 0)

	for i := range articles {
		if consumed[articles[i].Key] {
			continue
		}
		group := []int{i}

		for j := i + 1; j < len(articles); j++ {
			if consumed[articles[j].Key] {
				continue
			}

			vi, okI := vectors[embed.ArticleFingerprint(articles[i])]
			vj, okJ := vectors[embed.ArticleFingerprint(articles[j])]
			if !okI || !okJ {
				log.Printf("[WARN] missing embedding for pair %s / %s, comparison skipped", articles[i].Key, articles[j].Key)
				continue
			}
			metrics.Comparisons++

			similarity, err := rank.CosineSimilarity(vi, vj)
			if err != nil {
				return nil, fmt.Errorf("compare %s and %s: %w", articles[i].Key, articles[j].Key, err)
			}
			metrics.Scores = append(metrics.Scores, PairScore{
				Lengths:    [2]int{len(articles[i].Description), len(articles[j].Description)},
				Similarity: similarity,
			})

			if similarity >= e.threshold {
				group = append(group, j)
				consumed[articles[j].Key] = true
				metrics.Duplicates++
			}
		}

		if len(group) > 1 {
			groups = append(groups, group)
			consumed[articles[i].Key] = true
		}
	}

	// ungrouped articles pass through in their original order, each group
	// contributes only its most recent member
	merged := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if !consumed[a.Key] {
			merged = append(merged, a)
		}
	}
	for _, group := range groups {
		latest := articles[group[0]]
		for _, idx := range group[1:] {
			if articles[idx].Published.After(latest.Published) {
				latest = articles[idx]
			}
		}
		merged = append(merged, latest)
	}

	metrics.Elapsed = time.Since(started)
	if metrics.Duplicates > 0 {
		log.Printf("[INFO] dedup collapsed %d duplicates in %d comparisons (%v)",
			metrics.Duplicates, metrics.Comparisons, metrics.Elapsed.Round(time.Millisecond))
	}
	return &Result{Articles: merged, Metrics: metrics}, nil
}

// BandStat summarizes comparisons whose descriptions both fall in one length band
type BandStat struct {
	Band          string  `json:"band"`
	Comparisons   int     `json:"comparisons"`
	AvgSimilarity float64 `json:"avg_similarity"`
}

// AnalyzeMetrics buckets pair scores by description length, useful for tuning
// the similarity threshold offline
func AnalyzeMetrics(m Metrics) []BandStat {
	bands := []struct {
		name     string
		min, max int
	}{
		{"0-100", 0, 100},
		{"101-500", 101, 500},
		{"501-1000", 501, 1000},
		{"1001+", 1001, 1<<31 - 1},
	}

	stats := make([]BandStat, 0, len(bands))
	for _, band := range bands {
		var sum float64
		var count int
		for _, score := range m.Scores {
			if score.Lengths[0] >= band.min && score.Lengths[0] <= band.max &&
				score.Lengths[1] >= band.min && score.Lengths[1] <= band.max {
				sum += score.Similarity
				count++
			}
		}
		stat := BandStat{Band: band.name, Comparisons: count}
		if count > 0 {
			stat.AvgSimilarity = sum / float64(count)
		}
		stats = append(stats, stat)
	}
	return stats
}
