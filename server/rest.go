package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/pulsenews/pkg/domain"
	"github.com/umputun/pulsenews/pkg/pipeline"
	"github.com/umputun/pulsenews/pkg/service"
)

const (
	defaultNewsLimit   = 20
	maxNewsLimit       = 100
	defaultCleanupDays = 30
	fetchPreviewSize   = 5
)

// statusHandler returns server status with scheduler state
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":    "ok",
		"version":   s.cfg.Version,
		"time":      time.Now().UTC(),
		"scheduler": s.news.Status(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// healthHandler reports store availability
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.news.Ping(r.Context()); err != nil {
		log.Printf("[WARN] health check failed: %v", err)
		renderJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "error", "error": err.Error()})
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// schedulerStartHandler starts background fetching, body {"interval_minutes": N} is optional
func (s *Server) schedulerStartHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IntervalMinutes int `json:"interval_minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if req.IntervalMinutes < 0 {
		renderError(w, r, fmt.Errorf("interval_minutes must be positive"), http.StatusBadRequest)
		return
	}

	interval := s.cfg.Interval
	if req.IntervalMinutes > 0 {
		interval = time.Duration(req.IntervalMinutes) * time.Minute
	}

	message := "news fetching started"
	if s.news.Status().Running {
		message = "news fetching is already running"
	}
	status := s.news.Start(s.baseContext(), interval)
	renderJSON(w, r, http.StatusOK, map[string]any{
		"message":          message,
		"interval_minutes": int(status.Interval / time.Minute),
		"status":           status,
	})
}

// schedulerStopHandler stops background fetching
func (s *Server) schedulerStopHandler(w http.ResponseWriter, r *http.Request) {
	status := s.news.Stop()
	renderJSON(w, r, http.StatusOK, map[string]any{"message": "news fetching stopped", "status": status})
}

// schedulerStatusHandler returns scheduler status
func (s *Server) schedulerStatusHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.news.Status())
}

// fetchHandler runs one fetch cycle and returns its report with a short preview of stored articles
func (s *Server) fetchHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.news.RunCycleOnce(r.Context())
	if errors.Is(err, pipeline.ErrCycleInProgress) {
		renderError(w, r, err, http.StatusConflict)
		return
	}
	if err != nil {
		log.Printf("[ERROR] manual fetch failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	preview := report.Processed
	if len(preview) > fetchPreviewSize {
		preview = preview[:fetchPreviewSize]
	}
	if preview == nil {
		preview = []domain.ProcessedArticle{}
	}
	renderJSON(w, r, http.StatusOK, map[string]any{
		"message":            "news fetch completed",
		"articles_processed": report.Stats.Stored,
		"stats":              report.Stats,
		"sources":            report.Sources,
		"articles":           preview,
	})
}

// newsHandler lists stored articles, serves both /news and /news/category/{category}
func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	q, page, err := parseNewsQuery(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	articles, hasMore, err := s.news.Articles(r.Context(), q)
	if err != nil {
		log.Printf("[ERROR] failed to get news: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if articles == nil {
		articles = []domain.ProcessedArticle{}
	}

	renderJSON(w, r, http.StatusOK, map[string]any{
		"news":          articles,
		"count":         len(articles),
		"page":          page,
		"limit":         q.Limit,
		"has_more":      hasMore,
		"category":      q.Category,
		"source_filter": q.Source,
	})
}

// parseNewsQuery reads limit, page, category, source, hours and with_images parameters
func parseNewsQuery(r *http.Request) (q service.ArticleQuery, page int, err error) {
	params := r.URL.Query()

	q.Limit = defaultNewsLimit
	if v := params.Get("limit"); v != "" {
		if q.Limit, err = strconv.Atoi(v); err != nil || q.Limit < 1 || q.Limit > maxNewsLimit {
			return q, 0, fmt.Errorf("limit must be between 1 and %d", maxNewsLimit)
		}
	}

	page = 1
	if v := params.Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			return q, 0, fmt.Errorf("page must be a positive number")
		}
	}
	q.Offset = (page - 1) * q.Limit

	category := r.PathValue("category")
	if category == "" {
		category = params.Get("category")
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if category != "top" {
		q.Category = category
	}

	q.Source = strings.TrimSpace(params.Get("source"))

	if v := params.Get("hours"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil || hours < 1 {
			return q, 0, fmt.Errorf("hours must be a positive number")
		}
		q.Since = time.Now().Add(-time.Duration(hours) * time.Hour)
	}

	q.WithImages = true
	if v := params.Get("with_images"); v != "" {
		if q.WithImages, err = strconv.ParseBool(v); err != nil {
			return q, 0, fmt.Errorf("with_images must be true or false")
		}
	}
	return q, page, nil
}

// sourcesHandler returns configured and stored sources with known categories
func (s *Server) sourcesHandler(w http.ResponseWriter, r *http.Request) {
	info, err := s.news.Sources(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get sources: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{
		"rss_sources":        info.Feeds,
		"news_api_available": info.Headlines,
		"stored_sources":     info.Stored,
		"total_sources":      len(info.Feeds),
		"categories":         domain.Categories,
	})
}

// statsHandler returns store statistics
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.news.Stats(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get stats: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

// cleanupHandler deletes articles older than ?days=N, 30 by default
func (s *Server) cleanupHandler(w http.ResponseWriter, r *http.Request) {
	days := defaultCleanupDays
	if v := r.URL.Query().Get("days"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			renderError(w, r, fmt.Errorf("invalid days %q", v), http.StatusBadRequest)
			return
		}
		days = d
	}

	deleted, err := s.news.Cleanup(r.Context(), days)
	if errors.Is(err, service.ErrInvalidRequest) {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("[ERROR] cleanup failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"deleted": deleted, "days": days})
}

// scrapeHandler scrapes, processes and stores a single url from {"url": "..."}
func (s *Server) scrapeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	res, err := s.news.Scrape(r.Context(), req.URL)
	if errors.Is(err, service.ErrInvalidRequest) {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("[ERROR] scrape failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}
