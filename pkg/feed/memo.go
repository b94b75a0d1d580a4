package feed

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/umputun/feedsift/pkg/domain"
)

// MemoOptions control the staleness bands of the ingestion result cache
type MemoOptions struct {
	Fresh  time.Duration // results younger than this are served as-is
	Stale  time.Duration // results older than Fresh but younger than this are served while a refresh runs
	Expire time.Duration // results older than this are discarded and refetched inline
}

// Memo caches ingestion results per category with serve-stale-while-revalidate
// semantics. The coordinator's output is a pure function of the fetched data,
// which makes the memoization safe.
type Memo struct {
	coordinator *Coordinator
	opts        MemoOptions

	mu         sync.Mutex
	entries    map[string]*memoEntry
	refreshing map[string]bool
}

type memoEntry struct {
	result  *domain.FetchResult
	fetched time.Time
}

// NewMemo creates a result cache around the coordinator
func NewMemo(coordinator *Coordinator, opts MemoOptions) *Memo {
	if opts.Fresh == 0 {
		opts.Fresh = 5 * time.Minute
	}
	if opts.Stale == 0 {
		opts.Stale = time.Hour
	}
	if opts.Expire == 0 {
		opts.Expire = 4 * time.Hour
	}
	return &Memo{
		coordinator: coordinator,
		opts:        opts,
		entries:     map[string]*memoEntry{},
		refreshing:  map[string]bool{},
	}
}

// Get returns the ingestion result for the category, fetching inline on a
// cold or expired entry and refreshing in the background on a stale one.
func (m *Memo) Get(ctx context.Context, category string, sources []string) *domain.FetchResult {
	m.mu.Lock()
	entry, ok := m.entries[category]
	m.mu.Unlock()

	if !ok || time.Since(entry.fetched) > m.opts.Expire {
		return m.refresh(ctx, category, sources)
	}

	if time.Since(entry.fetched) > m.opts.Fresh {
		m.refreshAsync(category, sources)
	}
	return entry.result
}

// Invalidate drops the cached result for a category
func (m *Memo) Invalidate(category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, category)
}

// refresh runs ingestion inline and stores the result
func (m *Memo) refresh(ctx context.Context, category string, sources []string) *domain.FetchResult {
	result := m.coordinator.IngestAll(ctx, sources)

	m.mu.Lock()
	m.entries[category] = &memoEntry{result: result, fetched: time.Now()}
	m.mu.Unlock()
	return result
}

// refreshAsync kicks off a background refresh unless one is already running
func (m *Memo) refreshAsync(category string, sources []string) {
	m.mu.Lock()
	if m.refreshing[category] {
		m.mu.Unlock()
		return
	}
	m.refreshing[category] = true
	m.mu.Unlock()

	go func() {
		defer func() {
			m.mu.Lock()
			m.refreshing[category] = false
			m.mu.Unlock()
		}()
		// background refresh gets its own deadline, detached from the request
		ctx, cancel := context.WithTimeout(context.Background(), m.opts.Stale)
		defer cancel()
		log.Printf("[DEBUG] background refresh for category %s", category)
		m.refresh(ctx, category, sources)
	}()
}
