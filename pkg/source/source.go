// Package source implements the adapters turning upstream news sources into raw articles.
// Each adapter is tolerant to per-item failures: a broken entry is dropped or falls back
// to the text provided by the source itself, it never fails the whole fetch.
package source

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/pulsenews/pkg/domain"
)

//go:generate moq -out mocks/feed_parser.go -pkg mocks -skip-ensure -fmt goimports . FeedParser
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor

// FeedParser fetches and parses a syndication feed
type FeedParser interface {
	Parse(ctx context.Context, url string) (*domain.ParsedFeed, error)
}

// Extractor fetches a document and returns its main text
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

var textPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

// htmlToText strips markup from feed-provided html and collapses whitespace
func htmlToText(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(html.UnescapeString(textPolicy.Sanitize(s))), " ")
}

// forEach runs fn for every index in [0,n) with at most workers in flight
func forEach(n, workers int, fn func(i int)) {
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// extractOrFallback returns full document text when possible, fallback text otherwise.
// The second value reports whether a configured extractor failed and the fallback was used.
func extractOrFallback(ctx context.Context, ex Extractor, link string, fallback ...string) (text string, fellBack bool, err error) {
	if ex != nil && link != "" {
		text, err = ex.Extract(ctx, link)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, false, nil
		}
	}
	for _, f := range fallback {
		if t := htmlToText(f); t != "" {
			return t, ex != nil, err
		}
	}
	return "", ex != nil, err
}

// slot holds the conversion result of one upstream item at its original position
type slot struct {
	article  domain.RawArticle
	ok       bool
	fellBack bool
}

// collect turns slots into a fetch result keeping upstream order
func collect(slots []slot) domain.FetchResult {
	res := domain.FetchResult{Articles: make([]domain.RawArticle, 0, len(slots))}
	for _, s := range slots {
		if !s.ok {
			res.Dropped++
			continue
		}
		if s.fellBack {
			res.Fallbacks++
		}
		res.Articles = append(res.Articles, s.article)
	}
	return res
}
