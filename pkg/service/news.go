// Package service is the application surface used by the http server and the command line:
// scheduler control, manual fetch and scrape, article queries and store maintenance.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pulsenews/pkg/content"
	"github.com/umputun/pulsenews/pkg/dedup"
	"github.com/umputun/pulsenews/pkg/domain"
	"github.com/umputun/pulsenews/pkg/scheduler"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/scraper.go -pkg mocks -skip-ensure -fmt goimports . Scraper
//go:generate moq -out mocks/processor.go -pkg mocks -skip-ensure -fmt goimports . Processor

// Store is the article persistence used by the service
type Store interface {
	InsertIfAbsent(ctx context.Context, article domain.ProcessedArticle) (bool, error)
	Query(ctx context.Context, filter domain.ArticleFilter) ([]domain.ProcessedArticle, error)
	Stats(ctx context.Context) (domain.ArticleStats, error)
	Cleanup(ctx context.Context, olderThan time.Time) (int64, error)
	Sources(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// Scheduler runs fetch cycles in background and on demand
type Scheduler interface {
	Start(ctx context.Context, interval time.Duration) *scheduler.Run
	Stop()
	Status() domain.SchedulerStatus
	RunOnce(ctx context.Context) (*domain.CycleReport, error)
}

// Scraper fetches an arbitrary page with its text, metadata and images
type Scraper interface {
	Scrape(ctx context.Context, url string) (*content.Page, error)
}

// Processor enriches a raw article
type Processor interface {
	Process(ctx context.Context, raw domain.RawArticle) (domain.ProcessResult, error)
}

// Params for the news service
type Params struct {
	Store            Store
	Scheduler        Scheduler
	Scraper          Scraper
	Processor        Processor
	Feeds            []domain.FeedSource
	HeadlinesEnabled bool
	RetentionDays    int              // 0 disables retention cleanup
	CleanupInterval  time.Duration    // how often retention runs, default 24h
	Delivered        *dedup.Delivered // set shared with fetch cycles, stored scrapes are added so cycles skip them
}

// News is the application service
type News struct {
	Params
	now func() time.Time
}

// ArticleQuery defines an article listing request
type ArticleQuery struct {
	domain.ArticleFilter
	WithImages bool // only articles with a plausible image url
}

// SourcesInfo describes configured and stored sources
type SourcesInfo struct {
	Feeds     []domain.FeedSource `json:"feeds"`
	Headlines bool                `json:"headlines"`
	Stored    []string            `json:"stored"`
}

// ScrapeResult is the outcome of a manual scrape
type ScrapeResult struct {
	Article  domain.ProcessedArticle `json:"article"`
	Page     *content.Page           `json:"page"`
	Stored   bool                    `json:"stored"` // false if the article was already stored
	Degraded bool                    `json:"degraded"`
}

// ErrInvalidRequest returned for requests rejected before touching any dependency
var ErrInvalidRequest = errors.New("invalid request")

// NewNews makes the news service
func NewNews(params Params) *News {
	if params.CleanupInterval <= 0 {
		params.CleanupInterval = 24 * time.Hour
	}
	return &News{Params: params, now: time.Now}
}

// RunCycleOnce runs a single fetch cycle now
func (n *News) RunCycleOnce(ctx context.Context) (*domain.CycleReport, error) {
	return n.Scheduler.RunOnce(ctx)
}

// Start starts background fetching, idempotent
func (n *News) Start(ctx context.Context, interval time.Duration) domain.SchedulerStatus {
	n.Scheduler.Start(ctx, interval)
	return n.Scheduler.Status()
}

// Stop stops background fetching and waits for the running loop to exit
func (n *News) Stop() domain.SchedulerStatus {
	n.Scheduler.Stop()
	return n.Scheduler.Status()
}

// Status returns scheduler status
func (n *News) Status() domain.SchedulerStatus {
	return n.Scheduler.Status()
}

// Articles returns stored articles newest first and reports whether more are available past the page.
// With WithImages the image filter is applied before paging.
func (n *News) Articles(ctx context.Context, q ArticleQuery) (articles []domain.ProcessedArticle, hasMore bool, err error) {
	if !q.WithImages {
		f := q.ArticleFilter
		if f.Limit > 0 {
			f.Limit++ // one extra to detect the next page
		}
		res, err := n.Store.Query(ctx, f)
		if err != nil {
			return nil, false, fmt.Errorf("query articles: %w", err)
		}
		if q.Limit > 0 && len(res) > q.Limit {
			return res[:q.Limit], true, nil
		}
		return res, false, nil
	}

	all, err := n.Store.Query(ctx, domain.ArticleFilter{Source: q.Source, Category: q.Category, Since: q.Since})
	if err != nil {
		return nil, false, fmt.Errorf("query articles: %w", err)
	}
	withImages := make([]domain.ProcessedArticle, 0, len(all))
	for _, a := range all {
		if IsValidImageURL(a.ImageURL) {
			withImages = append(withImages, a)
		}
	}

	start := min(max(q.Offset, 0), len(withImages))
	end := len(withImages)
	if q.Limit > 0 {
		end = min(start+q.Limit, len(withImages))
	}
	return withImages[start:end], end < len(withImages), nil
}

// Sources returns configured feeds, headline api flag and sources found in the store
func (n *News) Sources(ctx context.Context) (SourcesInfo, error) {
	stored, err := n.Store.Sources(ctx)
	if err != nil {
		return SourcesInfo{}, fmt.Errorf("get stored sources: %w", err)
	}
	feeds := n.Feeds
	if feeds == nil {
		feeds = []domain.FeedSource{}
	}
	return SourcesInfo{Feeds: feeds, Headlines: n.HeadlinesEnabled, Stored: stored}, nil
}

// Stats returns store statistics
func (n *News) Stats(ctx context.Context) (domain.ArticleStats, error) {
	st, err := n.Store.Stats(ctx)
	if err != nil {
		return domain.ArticleStats{}, fmt.Errorf("get stats: %w", err)
	}
	return st, nil
}

// Cleanup deletes articles older than the given number of days
func (n *News) Cleanup(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidRequest, days)
	}
	cutoff := n.now().Add(-time.Duration(days) * 24 * time.Hour)
	deleted, err := n.Store.Cleanup(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup articles: %w", err)
	}
	lgr.Printf("[INFO] cleanup removed %d articles older than %d days", deleted, days)
	return deleted, nil
}

// Ping checks the store
func (n *News) Ping(ctx context.Context) error {
	return n.Store.Ping(ctx)
}

// Scrape fetches an arbitrary article page, processes and stores it
func (n *News) Scrape(ctx context.Context, rawURL string) (*ScrapeResult, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: bad url %q", ErrInvalidRequest, rawURL)
	}

	page, err := n.Scraper.Scrape(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("scrape %s: %w", u, err)
	}

	raw := domain.RawArticle{
		Title:     page.Title,
		Content:   page.Text,
		URL:       u.String(),
		Source:    u.Scheme + "://" + u.Host,
		ImageURL:  page.TopImage,
		Authors:   []string{},
		Published: page.Published,
	}
	if page.Author != "" {
		raw.Authors = []string{page.Author}
	}
	if raw.Published.IsZero() {
		raw.Published = n.now()
	}
	if raw.Title == "" {
		raw.Title = u.String()
	}

	res, err := n.Processor.Process(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("process %s: %w", u, err)
	}
	stored, err := n.Store.InsertIfAbsent(context.WithoutCancel(ctx), res.Article)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", u, err)
	}
	if n.Delivered != nil {
		n.Delivered.Add(raw.URL)
	}
	lgr.Printf("[INFO] scraped %s, stored: %v, degraded: %v", u, stored, res.Degraded)
	return &ScrapeResult{Article: res.Article, Page: page, Stored: stored, Degraded: res.Degraded}, nil
}

// RunRetention deletes articles older than RetentionDays right away and then every CleanupInterval.
// Blocks until ctx is done, returns immediately if retention is disabled.
func (n *News) RunRetention(ctx context.Context) {
	if n.RetentionDays <= 0 {
		return
	}
	lgr.Printf("[INFO] retention cleanup every %v, keep %d days", n.CleanupInterval, n.RetentionDays)

	ticker := time.NewTicker(n.CleanupInterval)
	defer ticker.Stop()
	for {
		if _, err := n.Cleanup(ctx, n.RetentionDays); err != nil {
			lgr.Printf("[WARN] retention cleanup failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
