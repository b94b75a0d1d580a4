package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/umputun/feedsift/pkg/embed"
	"github.com/umputun/feedsift/pkg/feed"
	"github.com/umputun/feedsift/pkg/rank"
)

// rssHandler exports the ranked article set for a category as RSS 2.0, so
// the curated result can be consumed by a regular feed reader
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.PathValue("category")
	if name == "" {
		name = s.config.DefaultCategory()
	}
	category, ok := s.config.GetCategory(name)
	if !ok {
		RenderError(w, r, fmt.Errorf("category %q not found", name), http.StatusNotFound)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		query = category.DefaultQuery
	}

	result := s.ingester.Get(ctx, name, category.Feeds)

	ranked, err := s.ranker.Rank(ctx, query, result.Articles, rank.SortByRelevance)
	if err != nil && errors.Is(err, embed.ErrEmbeddingUnavailable) {
		log.Printf("[WARN] rss relevance sort unavailable, falling back to date: %v", err)
		ranked, err = s.ranker.Rank(ctx, query, result.Articles, rank.SortByDate)
	}
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	out, err := s.generator(r).GenerateRSS(ranked, name, query)
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(out)); err != nil {
		log.Printf("[ERROR] can't write rss response: %v", err)
	}
}

// opmlHandler exports the configured sources as an OPML subscription list
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	categories := map[string][]string{}
	for name, cat := range s.config.GetCategories() {
		categories[name] = cat.Feeds
	}

	out, err := s.generator(r).GenerateOPML(categories)
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	if _, err := w.Write([]byte(out)); err != nil {
		log.Printf("[ERROR] can't write opml response: %v", err)
	}
}

// generator builds a feed generator rooted at the request's own host
func (s *Server) generator(r *http.Request) *feed.Generator {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return feed.NewGenerator(scheme + "://" + r.Host)
}
