package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/umputun/feedsift/pkg/domain"
	"github.com/umputun/feedsift/pkg/embed"
	"github.com/umputun/feedsift/pkg/rank"
)

const pageSize = 30

// allowed visibility windows in days
var allowedWindows = map[int]bool{2: true, 4: true, 7: true, 30: true}

// articlesResponse is the consumer-facing payload
type articlesResponse struct {
	Articles   []domain.Article    `json:"articles"`
	Stats      []domain.SourceStat `json:"stats"`
	UpdateTime time.Time           `json:"update_time"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	Pages      int                 `json:"pages"`
	Sort       string              `json:"sort"`
	Degraded   bool                `json:"degraded"` // true when relevance sort was requested but not applied
}

// articlesHandler serves the merged, optionally deduplicated and ranked
// article set for a category. A total embedding failure degrades to date
// order with the degraded flag set, never a hard error.
func (s *Server) articlesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.PathValue("category")
	if name == "" {
		name = r.URL.Query().Get("category")
	}
	if name == "" {
		name = s.config.DefaultCategory()
	}
	category, ok := s.config.GetCategory(name)
	if !ok {
		name = s.config.DefaultCategory()
		if category, ok = s.config.GetCategory(name); !ok {
			RenderError(w, r, fmt.Errorf("category %q not found", name), http.StatusNotFound)
			return
		}
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		query = category.DefaultQuery
	}
	mode := rank.ParseSortMode(r.URL.Query().Get("sort"))

	result := s.ingester.Get(ctx, name, category.Feeds)
	articles := result.Articles

	// recompute visibility for a non-default window, the surviving set never changes
	if window, ok := requestedWindow(r); ok && window != s.config.VisibilityWindow() {
		articles = domain.ApplyVisibility(articles, window, time.Now())
	}

	degraded := false

	if s.dedupRequested(r) {
		merged, err := s.deduper.Merge(ctx, articles)
		switch {
		case err != nil && errors.Is(err, embed.ErrEmbeddingUnavailable):
			log.Printf("[WARN] dedup skipped, embeddings unavailable: %v", err)
			degraded = true
		case err != nil:
			RenderError(w, r, err, http.StatusInternalServerError)
			return
		default:
			articles = merged.Articles
		}
	}

	ranked, err := s.ranker.Rank(ctx, query, articles, mode)
	switch {
	case err != nil && errors.Is(err, embed.ErrEmbeddingUnavailable):
		// relevance not applied, fall back to date order and say so
		log.Printf("[WARN] relevance sort unavailable, falling back to date: %v", err)
		degraded = true
		if ranked, err = s.ranker.Rank(ctx, query, articles, rank.SortByDate); err != nil {
			RenderError(w, r, err, http.StatusInternalServerError)
			return
		}
	case err != nil:
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	page := pageParam(r)
	paged, pages := paginate(ranked, page)

	RenderJSON(w, r, http.StatusOK, articlesResponse{
		Articles:   paged,
		Stats:      result.Stats,
		UpdateTime: result.UpdateTime,
		Total:      len(ranked),
		Page:       page,
		Pages:      pages,
		Sort:       string(mode),
		Degraded:   degraded,
	})
}

// categoriesHandler lists configured categories with their default queries
func (s *Server) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	type categoryInfo struct {
		Name         string `json:"name"`
		Feeds        int    `json:"feeds"`
		DefaultQuery string `json:"default_query"`
	}

	categories := s.config.GetCategories()
	list := make([]categoryInfo, 0, len(categories))
	for name, cat := range categories {
		list = append(list, categoryInfo{Name: name, Feeds: len(cat.Feeds), DefaultQuery: cat.DefaultQuery})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })

	RenderJSON(w, r, http.StatusOK, list)
}

// dedupRequested checks the per-request override, falling back to config
func (s *Server) dedupRequested(r *http.Request) bool {
	if v := r.URL.Query().Get("dedup"); v != "" {
		return v == "1" || v == "true"
	}
	return s.config.DedupEnabled()
}

// requestedWindow extracts a valid visibility window from the days parameter
func requestedWindow(r *http.Request) (time.Duration, bool) {
	daysStr := r.URL.Query().Get("days")
	if daysStr == "" {
		return 0, false
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil || !allowedWindows[days] {
		return 0, false
	}
	return time.Duration(days) * 24 * time.Hour, true
}

// pageParam extracts the requested page, 1-based
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// paginate slices one page out of the ranked set
func paginate(articles []domain.Article, page int) (paged []domain.Article, pages int) {
	pages = (len(articles) + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}
	start := (page - 1) * pageSize
	if start >= len(articles) {
		return []domain.Article{}, pages
	}
	end := min(start+pageSize, len(articles))
	return articles[start:end], pages
}
