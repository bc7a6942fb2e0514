package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/umputun/pulsenews/pkg/domain"
)

// Parser fetches and parses RSS/Atom feeds
type Parser struct {
	client    *http.Client
	userAgent string
}

// NewParser creates a new feed parser
func NewParser(timeout time.Duration, userAgent string) *Parser {
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (compatible; PulseNews/1.0)"
	}
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Parse fetches and parses a feed from the given URL
func (p *Parser) Parse(ctx context.Context, url string) (*domain.ParsedFeed, error) {
	body, err := p.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	result := &domain.ParsedFeed{
		Title:       feed.Title,
		Description: feed.Description,
		Link:        feed.Link,
		Entries:     make([]domain.FeedEntry, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		entry := domain.FeedEntry{
			Title:    strings.TrimSpace(item.Title),
			Link:     strings.TrimSpace(item.Link),
			Summary:  item.Description,
			Content:  item.Content,
			ImageURL: nativeImage(item),
		}

		switch {
		case item.GUID != "":
			entry.GUID = item.GUID
		case item.Link != "":
			entry.GUID = item.Link
		default:
			entry.GUID = fmt.Sprintf("%s-%s", feed.Title, item.Title)
		}

		for _, a := range item.Authors {
			if a != nil && a.Name != "" {
				entry.Authors = append(entry.Authors, a.Name)
			}
		}
		if len(entry.Authors) == 0 && item.Author != nil && item.Author.Name != "" {
			entry.Authors = []string{item.Author.Name}
		}

		if item.PublishedParsed != nil {
			entry.Published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			entry.Published = *item.UpdatedParsed
		}

		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}

// nativeImage looks for feed-provided image metadata,
// media:thumbnail first, then media:content, the item image and finally an image enclosure
func nativeImage(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		if u := mediaURL(media["thumbnail"]); u != "" {
			return u
		}
		if u := mediaURL(media["content"]); u != "" {
			return u
		}
		// media:group wraps content elements in some feeds
		for _, group := range media["group"] {
			if u := mediaURL(group.Children["content"]); u != "" {
				return u
			}
		}
	}

	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

// mediaURL returns the url attribute of the first media element that is not a non-image medium
func mediaURL(elems []ext.Extension) string {
	for _, e := range elems {
		u := e.Attrs["url"]
		if u == "" {
			continue
		}
		if medium := e.Attrs["medium"]; medium != "" && medium != "image" {
			continue
		}
		if typ := e.Attrs["type"]; typ != "" && !strings.HasPrefix(typ, "image/") {
			continue
		}
		return u
	}
	return ""
}

// fetch retrieves content from a URL
func (p *Parser) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	setFeedHeaders(req, p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// feedAccept prefers syndication formats, html last for sites serving the feed as a page
const feedAccept = "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,text/html;q=0.7,*/*;q=0.5"

// setFeedHeaders makes the request look like a regular feed reader, some cdn-fronted feeds reject bare clients
func setFeedHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", feedAccept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
}
