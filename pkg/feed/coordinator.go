package feed

import (
	"context"
	"log"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/umputun/feedsift/pkg/domain"
)

//go:generate moq -out mocks/source_fetcher.go -pkg mocks -skip-ensure -fmt goimports . SourceFetcher
//go:generate moq -out mocks/source_parser.go -pkg mocks -skip-ensure -fmt goimports . SourceParser

// SourceFetcher retrieves one raw feed document
type SourceFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]byte, error)
}

// SourceParser converts a raw feed document into articles
type SourceParser interface {
	Parse(raw []byte, sourceURL string) ([]domain.Article, error)
}

// CoordinatorOptions control retention and visibility windows
type CoordinatorOptions struct {
	MaxAge           time.Duration // hard retention ceiling, older items never enter the set
	VisibilityWindow time.Duration // survivors older than this are flagged hidden
}

// Coordinator fans fetch+parse out across all configured sources, tolerates
// per-source failure and produces a merged, time-sorted article set with
// per-source statistics. Output depends only on the fetched data, never on
// completion order, so results are safe to memoize.
type Coordinator struct {
	fetcher SourceFetcher
	parser  SourceParser
	opts    CoordinatorOptions
	now     func() time.Time
}

// NewCoordinator creates an ingestion coordinator
func NewCoordinator(fetcher SourceFetcher, parser SourceParser, opts CoordinatorOptions) *Coordinator {
	if opts.MaxAge == 0 {
		opts.MaxAge = 32 * 24 * time.Hour
	}
	if opts.VisibilityWindow == 0 {
		opts.VisibilityWindow = 4 * 24 * time.Hour
	}
	return &Coordinator{fetcher: fetcher, parser: parser, opts: opts, now: time.Now}
}

// sourceResult is the private accumulation buffer owned by one fetch task
type sourceResult struct {
	source   string
	articles []domain.Article
	err      error
}

// IngestAll fetches and parses every source concurrently, waiting for all of
// them to settle. A single source failing never aborts the batch; it shows up
// as a failed entry in the stats.
func (c *Coordinator) IngestAll(ctx context.Context, sources []string) *domain.FetchResult {
	started := c.now()
	results := make([]sourceResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(idx int, sourceURL string) {
			defer wg.Done()
			results[idx] = c.ingestOne(ctx, sourceURL)
		}(i, src)
	}
	wg.Wait()

	now := c.now()
	stats := make([]domain.SourceStat, 0, len(sources))
	var merged []domain.Article

	for _, res := range results {
		if res.err != nil {
			log.Printf("[WARN] source failed: %s: %v", res.source, res.err)
			stats = append(stats, domain.SourceStat{Source: res.source, Failed: true})
			continue
		}

		stat := domain.SourceStat{Source: res.source, Total: len(res.articles)}
		var survivors []domain.Article
		for _, a := range res.articles {
			if now.Sub(a.Published) > c.opts.MaxAge {
				stat.Stale++
				continue
			}
			survivors = append(survivors, a.WithHidden(now.Sub(a.Published) > c.opts.VisibilityWindow))
		}

		// a source with zero survivors is reported as failed for observability
		if len(survivors) == 0 {
			stat.Failed = true
			stats = append(stats, stat)
			continue
		}

		for _, a := range survivors {
			if a.Hidden {
				stat.Hidden++
			}
		}
		stat.Shown = len(survivors) - stat.Hidden
		stats = append(stats, stat)
		merged = append(merged, survivors...)
	}

	// ordering is a function of the data only: published desc, key breaks ties
	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].Published.Equal(merged[j].Published) {
			return merged[i].Published.After(merged[j].Published)
		}
		return merged[i].Key < merged[j].Key
	})

	logStatsTable(stats)
	log.Printf("[INFO] ingested %d articles from %d/%d sources in %v",
		len(merged), countOK(stats), len(sources), time.Since(started).Round(time.Millisecond))

	return &domain.FetchResult{Articles: merged, Stats: stats, UpdateTime: now}
}

// ingestOne runs fetch+parse for a single source, owning its own buffer
func (c *Coordinator) ingestOne(ctx context.Context, sourceURL string) sourceResult {
	raw, err := c.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return sourceResult{source: sourceURL, err: err}
	}
	articles, err := c.parser.Parse(raw, sourceURL)
	if err != nil {
		return sourceResult{source: sourceURL, err: err}
	}
	return sourceResult{source: sourceURL, articles: articles}
}

// logStatsTable prints the per-source summary with a TOTAL row first
func logStatsTable(stats []domain.SourceStat) {
	var total domain.SourceStat
	for _, s := range stats {
		total.Shown += s.Shown
		total.Hidden += s.Hidden
		total.Stale += s.Stale
		total.Total += s.Total
	}
	log.Printf("[INFO] TOTAL shown:%d hidden:%d stale:%d total:%d", total.Shown, total.Hidden, total.Stale, total.Total)
	for _, s := range stats {
		if s.Failed {
			log.Printf("[INFO] %s failed", hostName(s.Source))
			continue
		}
		log.Printf("[INFO] %s shown:%d hidden:%d stale:%d total:%d", hostName(s.Source), s.Shown, s.Hidden, s.Stale, s.Total)
	}
}

// countOK counts sources that produced at least one surviving article
func countOK(stats []domain.SourceStat) int {
	n := 0
	for _, s := range stats {
		if !s.Failed {
			n++
		}
	}
	return n
}

// hostName extracts a short display name from a feed URL
func hostName(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil || u.Host == "" {
		return feedURL
	}
	host := u.Host
	for _, prefix := range []string{"www.", "rss."} {
		if strings.HasPrefix(host, prefix) {
			host = strings.TrimPrefix(host, prefix)
			break
		}
	}
	return host
}
