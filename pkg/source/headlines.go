package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-resty/resty/v2"

	"github.com/umputun/pulsenews/pkg/domain"
)

// HeadlinesConfig defines the headline API source
type HeadlinesConfig struct {
	Endpoint string // e.g. https://newsapi.org/v2
	APIKey   string
	Country  string
	Category string
	PageSize int
	Timeout  time.Duration
	Workers  int
}

// Headlines is a source adapter for a NewsAPI-compatible top-headlines endpoint
type Headlines struct {
	client    *resty.Client
	extractor Extractor
	cfg       HeadlinesConfig
	now       func() time.Time
}

type headlinesResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

// NewHeadlines makes a headline API adapter, extractor is optional
func NewHeadlines(extractor Extractor, cfg HeadlinesConfig) *Headlines {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://newsapi.org/v2"
	}
	if cfg.Country == "" {
		cfg.Country = "us"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "PulseNews/1.0")

	return &Headlines{client: client, extractor: extractor, cfg: cfg, now: time.Now}
}

// Name returns the source name
func (h *Headlines) Name() string { return "headlines" }

// Fetch queries top headlines and converts them to raw articles
func (h *Headlines) Fetch(ctx context.Context) (domain.FetchResult, error) {
	params := map[string]string{
		"apiKey":   h.cfg.APIKey,
		"country":  h.cfg.Country,
		"pageSize": strconv.Itoa(h.cfg.PageSize),
	}
	if h.cfg.Category != "" {
		params["category"] = h.cfg.Category
	}

	var payload headlinesResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&payload).
		SetError(&payload).
		Get("/top-headlines")
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("request headlines: %w", err)
	}
	if resp.IsError() {
		return domain.FetchResult{}, fmt.Errorf("headline api status %d: %s", resp.StatusCode(), payload.Message)
	}
	if payload.Status != "ok" {
		return domain.FetchResult{}, fmt.Errorf("headline api error %s: %s", payload.Code, payload.Message)
	}

	now := h.now()
	slots := make([]slot, len(payload.Articles))

	forEach(len(payload.Articles), h.cfg.Workers, func(i int) {
		item := payload.Articles[i]
		title, link := strings.TrimSpace(item.Title), strings.TrimSpace(item.URL)
		if title == "" || link == "" {
			return
		}

		text, fellBack, err := extractOrFallback(ctx, h.extractor, link, item.Description, item.Content)
		if fellBack {
			lgr.Printf("[DEBUG] extraction failed for %s, using api description: %v", link, err)
		}

		article := domain.RawArticle{
			Title:     title,
			Content:   text,
			URL:       link,
			Source:    strings.TrimSpace(item.Source.Name),
			ImageURL:  absoluteImage(item.URLToImage),
			Authors:   []string{},
			Published: now,
		}
		if article.Source == "" {
			article.Source = "Unknown"
		}
		if author := strings.TrimSpace(item.Author); author != "" {
			article.Authors = []string{author}
		}
		if ts, err := time.Parse(time.RFC3339, item.PublishedAt); err == nil {
			article.Published = ts
		}
		slots[i] = slot{article: article, ok: true, fellBack: fellBack}
	})

	return collect(slots), nil
}

// absoluteImage keeps only absolute http(s) image urls
func absoluteImage(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return ""
}
