package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html/charset"

	"github.com/umputun/pulsenews/pkg/images"
)

const maxPageSize = 5 * 1024 * 1024

// Config defines extractor settings
type Config struct {
	Timeout       time.Duration
	UserAgent     string
	MinTextLength int // extracted text shorter than this is treated as a failed extraction
}

// HTTPExtractor fetches article pages and extracts readable text using trafilatura
type HTTPExtractor struct {
	client        *http.Client
	userAgent     string
	minTextLength int
}

// Page is a scraped article page
type Page struct {
	URL       string            `json:"url"`
	Title     string            `json:"title"`
	Text      string            `json:"text"`
	Author    string            `json:"author,omitempty"`
	Published time.Time         `json:"published,omitzero"`
	TopImage  string            `json:"top_image,omitempty"`
	Images    []string          `json:"images,omitempty"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// NewHTTPExtractor creates a new content extractor
func NewHTTPExtractor(cfg Config) *HTTPExtractor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (compatible; PulseNews/1.0)"
	}
	return &HTTPExtractor{
		client:        &http.Client{Timeout: cfg.Timeout},
		userAgent:     cfg.UserAgent,
		minTextLength: cfg.MinTextLength,
	}
}

// Extract retrieves the page at urlStr and returns its main text
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	parsedURL, body, err := e.fetch(ctx, urlStr)
	if err != nil {
		return "", err
	}

	result, err := extractText(body, parsedURL)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", urlStr, err)
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" {
		return "", fmt.Errorf("no text content extracted from %s", urlStr)
	}
	if len([]rune(text)) < e.minTextLength {
		return "", fmt.Errorf("extracted text too short (%d chars) from %s", len([]rune(text)), urlStr)
	}
	return text, nil
}

// Scrape fetches a page once and returns text, metadata and images.
// Only the fetch can fail, an unextractable body yields a page with empty text.
func (e *HTTPExtractor) Scrape(ctx context.Context, urlStr string) (*Page, error) {
	parsedURL, body, err := e.fetch(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	page := &Page{URL: urlStr}

	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
		sel := images.SelectFromDocument(doc, urlStr)
		page.TopImage, page.Images = sel.Best, sel.Images
		page.Meta = metadataFromDocument(doc)
		page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if result, err := extractText(body, parsedURL); err == nil {
		page.Text = strings.TrimSpace(result.ContentText)
		if result.Metadata.Title != "" {
			page.Title = result.Metadata.Title
		}
		page.Author = result.Metadata.Author
		page.Published = result.Metadata.Date
		if page.TopImage == "" {
			page.TopImage = result.Metadata.Image
		}
	}

	// meta tags fill what trafilatura could not find
	if page.Title == "" {
		page.Title = firstNonEmpty(page.Meta["og_title"], page.Meta["twitter_title"])
	}
	if page.Author == "" {
		page.Author = page.Meta["author"]
	}
	if page.Published.IsZero() {
		if ts, err := time.Parse(time.RFC3339, page.Meta["publish_date"]); err == nil {
			page.Published = ts
		}
	}
	if page.Text == "" {
		page.Text = firstNonEmpty(page.Meta["description"], page.Meta["og_description"])
	}
	return page, nil
}

// fetch validates the URL and downloads the page body as utf-8, capped at maxPageSize
func (e *HTTPExtractor) fetch(ctx context.Context, urlStr string) (*url.URL, []byte, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, nil, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, nil, fmt.Errorf("invalid URL: %s", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	setPageHeaders(req, e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	// pages are decoded to utf-8 using the declared or sniffed charset
	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxPageSize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, nil, fmt.Errorf("detect charset of %s: %w", urlStr, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("read body of %s: %w", urlStr, err)
	}
	return parsedURL, body, nil
}

func extractText(body []byte, pageURL *url.URL) (*trafilatura.ExtractResult, error) {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   false,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	}
	result, err := trafilatura.Extract(bytes.NewReader(body), opts)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("no content extracted")
	}
	return result, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
