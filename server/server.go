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

	"github.com/umputun/pulsenews/pkg/domain"
	"github.com/umputun/pulsenews/pkg/feed"
	"github.com/umputun/pulsenews/pkg/service"
)

//go:generate moq -out mocks/news.go -pkg mocks -skip-ensure -fmt goimports . NewsService

// NewsService is the application surface exposed over http
type NewsService interface {
	RunCycleOnce(ctx context.Context) (*domain.CycleReport, error)
	Start(ctx context.Context, interval time.Duration) domain.SchedulerStatus
	Stop() domain.SchedulerStatus
	Status() domain.SchedulerStatus
	Articles(ctx context.Context, q service.ArticleQuery) ([]domain.ProcessedArticle, bool, error)
	Sources(ctx context.Context) (service.SourcesInfo, error)
	Stats(ctx context.Context) (domain.ArticleStats, error)
	Cleanup(ctx context.Context, days int) (int64, error)
	Ping(ctx context.Context) error
	Scrape(ctx context.Context, url string) (*service.ScrapeResult, error)
}

// Config for the http server
type Config struct {
	Listen   string
	Timeout  time.Duration
	BaseURL  string        // used for rss links
	Interval time.Duration // scheduler interval when start request doesn't set one
	Version  string
	Debug    bool
}

// Server represents HTTP server instance
type Server struct {
	cfg       Config
	news      NewsService
	generator *feed.Generator

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
	ctx        context.Context // parent of background runs started over http
}

// New initializes a new server instance
func New(cfg Config, news NewsService) *Server {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	s := &Server{
		cfg:       cfg,
		news:      news,
		generator: feed.NewGenerator(cfg.BaseURL, cfg.Interval),
		router:    routegroup.New(http.NewServeMux()),
		ctx:       context.Background(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	log.Printf("[INFO] starting server on %s", s.cfg.Listen)

	s.lock.Lock()
	s.ctx = ctx
	s.httpServer = &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.Timeout,
		ReadTimeout:       s.cfg.Timeout,
		// fetch and scrape run synchronously and may take longer than regular requests
		WriteTimeout: 10 * s.cfg.Timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// Handler returns the root handler with all middlewares and routes
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("pulsenews", "umputun", s.cfg.Version))
	s.router.Use(rest.Ping)

	if s.cfg.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /health", s.healthHandler)

		r.HandleFunc("POST /scheduler/start", s.schedulerStartHandler)
		r.HandleFunc("POST /scheduler/stop", s.schedulerStopHandler)
		r.HandleFunc("GET /scheduler/status", s.schedulerStatusHandler)
		r.HandleFunc("POST /fetch", s.fetchHandler)

		r.HandleFunc("GET /news", s.newsHandler)
		r.HandleFunc("GET /news/category/{category}", s.newsHandler)
		r.HandleFunc("GET /news/sources", s.sourcesHandler)
		r.HandleFunc("GET /stats", s.statsHandler)
		r.HandleFunc("POST /cleanup", s.cleanupHandler)
		r.HandleFunc("POST /scrape", s.scrapeHandler)

		r.HandleFunc("GET /rss", s.rssHandler)
		r.HandleFunc("GET /rss/{category}", s.rssHandler)
		r.HandleFunc("GET /opml", s.opmlHandler)
	})

	// RSS routes, feed readers get links relative to base url
	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /rss/{category}", s.rssHandler)
}

// baseContext returns the context background runs are bound to, never the request context
func (s *Server) baseContext() context.Context {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.ctx
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
