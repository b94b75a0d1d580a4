package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/feedsift/pkg/config"
	"github.com/umputun/feedsift/pkg/dedup"
	"github.com/umputun/feedsift/pkg/domain"
	"github.com/umputun/feedsift/pkg/rank"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/ingester.go -pkg mocks -skip-ensure -fmt goimports . Ingester
//go:generate moq -out mocks/ranker.go -pkg mocks -skip-ensure -fmt goimports . Ranker
//go:generate moq -out mocks/deduper.go -pkg mocks -skip-ensure -fmt goimports . Deduper

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	ingester Ingester
	ranker   Ranker
	deduper  Deduper
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetCategory(name string) (config.Category, bool)
	GetCategories() map[string]config.Category
	DefaultCategory() string
	VisibilityWindow() time.Duration
	DedupEnabled() bool
}

// Ingester produces the merged article set for a category
type Ingester interface {
	Get(ctx context.Context, category string, sources []string) *domain.FetchResult
}

// Ranker orders articles by date or relevance
type Ranker interface {
	Rank(ctx context.Context, query string, articles []domain.Article, mode rank.SortMode) ([]domain.Article, error)
}

// Deduper merges near-duplicate articles
type Deduper interface {
	Merge(ctx context.Context, articles []domain.Article) (*dedup.Result, error)
}

// New initializes a new server instance
func New(cfg ConfigProvider, ingester Ingester, ranker Ranker, deduper Deduper, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		ingester: ingester,
		ranker:   ranker,
		deduper:  deduper,
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedsift", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /articles", s.articlesHandler)
		r.HandleFunc("GET /articles/{category}", s.articlesHandler)
		r.HandleFunc("GET /categories", s.categoriesHandler)
		r.HandleFunc("GET /rss", s.rssHandler)
		r.HandleFunc("GET /rss/{category}", s.rssHandler)
		r.HandleFunc("GET /opml", s.opmlHandler)
		r.HandleFunc("GET /status", s.statusHandler)
	})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
