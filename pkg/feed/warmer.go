package feed

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/umputun/feedsift/pkg/config"
)

//go:generate moq -out mocks/category_lister.go -pkg mocks -skip-ensure -fmt goimports . CategoryLister

// CategoryLister names the categories to keep warm
type CategoryLister interface {
	GetCategories() map[string]config.Category
}

// WarmerOptions control the background refresh cadence
type WarmerOptions struct {
	Interval time.Duration // time between refresh cycles
	Timeout  time.Duration // per-cycle deadline
}

// Warmer periodically refreshes every category through the memo so requests
// hit a warm cache instead of paying the full ingestion cost inline
type Warmer struct {
	memo   *Memo
	lister CategoryLister
	opts   WarmerOptions

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewWarmer creates a background cache warmer
func NewWarmer(memo *Memo, lister CategoryLister, opts WarmerOptions) *Warmer {
	if opts.Interval == 0 {
		opts.Interval = 30 * time.Minute
	}
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Minute
	}
	return &Warmer{memo: memo, lister: lister, opts: opts}
}

// Start begins the refresh loop, running one cycle immediately
func (w *Warmer) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.opts.Interval)
		defer ticker.Stop()

		w.refreshAll(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.refreshAll(ctx)
			}
		}
	}()

	log.Printf("[INFO] cache warmer started with interval %v", w.opts.Interval)
}

// Stop gracefully stops the warmer
func (w *Warmer) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	log.Printf("[INFO] cache warmer stopped")
}

// refreshAll runs one warm cycle over every configured category
func (w *Warmer) refreshAll(ctx context.Context) {
	categories := w.lister.GetCategories()

	cycleCtx, cancel := context.WithTimeout(ctx, w.opts.Timeout)
	defer cancel()

	for name, cat := range categories {
		if cycleCtx.Err() != nil {
			return
		}
		result := w.memo.Get(cycleCtx, name, cat.Feeds)
		log.Printf("[DEBUG] warmed category %s with %d articles", name, len(result.Articles))
	}
}
