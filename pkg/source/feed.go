package source

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pulsenews/pkg/domain"
	"github.com/umputun/pulsenews/pkg/images"
)

// FeedConfig defines a single syndication feed source
type FeedConfig struct {
	Name    string
	URL     string
	Limit   int // max entries taken per fetch, most recent first
	Workers int // concurrent full-document extractions
}

// Feed is a source adapter for one RSS/Atom feed
type Feed struct {
	parser    FeedParser
	extractor Extractor
	cfg       FeedConfig
	now       func() time.Time
}

// NewFeed makes a feed adapter. Extractor is optional, without it the feed summary is used as article text.
func NewFeed(parser FeedParser, extractor Extractor, cfg FeedConfig) *Feed {
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 3
	}
	return &Feed{parser: parser, extractor: extractor, cfg: cfg, now: time.Now}
}

// Name returns the source name
func (f *Feed) Name() string { return f.cfg.Name }

// Fetch parses the feed and converts the most recent entries to raw articles
func (f *Feed) Fetch(ctx context.Context) (domain.FetchResult, error) {
	parsed, err := f.parser.Parse(ctx, f.cfg.URL)
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("parse feed %s: %w", f.cfg.Name, err)
	}

	entries := latest(parsed.Entries, f.cfg.Limit)
	now := f.now()

	slots := make([]slot, len(entries))

	forEach(len(entries), f.cfg.Workers, func(i int) {
		e := entries[i]
		if e.Title == "" || e.Link == "" {
			return
		}
		article, fellBack := f.toArticle(ctx, e, now)
		slots[i] = slot{article: article, ok: true, fellBack: fellBack}
	})

	res := collect(slots)
	lgr.Printf("[DEBUG] feed %s: %d entries, %d articles, %d fallbacks", f.cfg.Name, len(parsed.Entries),
		len(res.Articles), res.Fallbacks)
	return res, nil
}

func (f *Feed) toArticle(ctx context.Context, e domain.FeedEntry, now time.Time) (domain.RawArticle, bool) {
	text, fellBack, err := extractOrFallback(ctx, f.extractor, e.Link, e.Summary, e.Content)
	if fellBack {
		lgr.Printf("[DEBUG] extraction failed for %s, using feed text: %v", e.Link, err)
	}

	article := domain.RawArticle{
		Title:     e.Title,
		Content:   text,
		URL:       e.Link,
		Source:    f.cfg.Name,
		ImageURL:  f.entryImage(e),
		Authors:   slices.Clone(e.Authors),
		Published: e.Published,
	}
	if article.Authors == nil {
		article.Authors = []string{}
	}
	if article.Published.IsZero() {
		article.Published = now
	}
	return article, fellBack
}

// entryImage prefers feed-native image metadata, then the best image found in the summary markup
func (f *Feed) entryImage(e domain.FeedEntry) string {
	base, _ := url.Parse(e.Link)
	if e.ImageURL != "" {
		if u := images.Resolve(base, e.ImageURL); u != "" {
			return u
		}
	}
	if e.Summary != "" {
		return images.Select(e.Summary, e.Link).Best
	}
	return ""
}

// latest returns up to limit entries, newest first, undated entries keep feed order after dated ones
func latest(entries []domain.FeedEntry, limit int) []domain.FeedEntry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b domain.FeedEntry) int {
		switch {
		case a.Published.IsZero() && b.Published.IsZero():
			return 0
		case a.Published.IsZero():
			return 1
		case b.Published.IsZero():
			return -1
		}
		return b.Published.Compare(a.Published)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
