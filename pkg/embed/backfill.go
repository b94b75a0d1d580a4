package embed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/embedder.go -pkg mocks -skip-ensure -fmt goimports . Embedder

// ErrEmbeddingUnavailable signals that the external embedding service failed
// and relevance ranking or dedup could not be applied. Callers decide whether
// to fall back to date ordering.
var ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

// Store is the durable cache the backfill reads and writes
type Store interface {
	GetMany(ctx context.Context, fingerprints []string) (map[string][]float64, error)
	PutMany(ctx context.Context, entries []Entry, ttl time.Duration) error
	Inc(ctx context.Context, name string, by int) error
}

// Embedder maps a text batch to fixed-dimension vectors
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Request names one text to resolve, addressed by its cache fingerprint
type Request struct {
	Fingerprint string
	Text        string
}

// ServiceOptions tune the backfill service
type ServiceOptions struct {
	TTL         time.Duration // cache lifetime for backfilled vectors
	LookupChunk int           // fingerprints per concurrent cache lookup
}

// Service resolves embedding vectors through the cache, batching all misses
// into a single call to the external service and writing results back before
// returning. One call per resolve pass is the primary latency and cost
// control.
type Service struct {
	store    Store
	embedder Embedder
	opts     ServiceOptions
}

// NewService creates a backfill service over the given store and embedder
func NewService(store Store, embedder Embedder, opts ServiceOptions) *Service {
	if opts.TTL == 0 {
		opts.TTL = 30 * 24 * time.Hour
	}
	if opts.LookupChunk == 0 {
		opts.LookupChunk = 64
	}
	return &Service{store: store, embedder: embedder, opts: opts}
}

// Resolve returns a vector per fingerprint. Cache lookups run concurrently in
// chunks; store errors degrade to misses. All misses go out in one batched
// embed call and are written back with the configured TTL. An embed failure
// is fatal to the resolve pass.
func (s *Service) Resolve(ctx context.Context, reqs []Request) (map[string][]float64, error) {
	if len(reqs) == 0 {
		return map[string][]float64{}, nil
	}

	// dedupe fingerprints, the same article can appear in query and dedup passes
	unique := make([]Request, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		if !seen[req.Fingerprint] {
			seen[req.Fingerprint] = true
			unique = append(unique, req)
		}
	}

	resolved := s.lookup(ctx, unique)

	var misses []Request
	for _, req := range unique {
		if _, ok := resolved[req.Fingerprint]; !ok {
			misses = append(misses, req)
		}
	}
	s.count(ctx, "embedding_cache_hit", len(unique)-len(misses))
	s.count(ctx, "embedding_cache_miss", len(misses))

	if len(misses) == 0 {
		return resolved, nil
	}

	texts := make([]string, len(misses))
	for i, req := range misses {
		texts[i] = req.Text
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	}
	if len(vectors) != len(misses) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrEmbeddingUnavailable, len(vectors), len(misses))
	}

	entries := make([]Entry, len(misses))
	for i, req := range misses {
		entries[i] = Entry{Fingerprint: req.Fingerprint, Vector: vectors[i]}
		resolved[req.Fingerprint] = vectors[i]
	}

	// writeback failure is not fatal, the vectors are already in hand
	if err := s.store.PutMany(ctx, entries, s.opts.TTL); err != nil {
		log.Printf("[WARN] embedding cache writeback failed: %v", err)
	}

	return resolved, nil
}

// lookup runs chunked cache reads concurrently and merges the hits. Any
// chunk's store error turns that chunk into misses.
func (s *Service) lookup(ctx context.Context, reqs []Request) map[string][]float64 {
	resolved := make(map[string][]float64, len(reqs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(reqs); start += s.opts.LookupChunk {
		end := min(start+s.opts.LookupChunk, len(reqs))
		chunk := reqs[start:end]

		g.Go(func() error {
			fingerprints := make([]string, len(chunk))
			for i, req := range chunk {
				fingerprints[i] = req.Fingerprint
			}
			hits, err := s.store.GetMany(gctx, fingerprints)
			if err != nil {
				log.Printf("[WARN] embedding cache lookup failed, treating %d keys as misses: %v", len(chunk), err)
				return nil
			}
			mu.Lock()
			for fp, vector := range hits {
				resolved[fp] = vector
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // chunk errors already degraded to misses

	return resolved
}

// count bumps an observability counter, ignoring failures
func (s *Service) count(ctx context.Context, name string, by int) {
	if by == 0 {
		return
	}
	if err := s.store.Inc(ctx, name, by); err != nil {
		log.Printf("[DEBUG] counter %s not updated: %v", name, err)
	}
}
