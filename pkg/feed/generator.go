package feed

import (
	"encoding/xml"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/umputun/pulsenews/pkg/domain"
)

const (
	channelPrefix      = "PulseNews"
	channelDescription = "Summarized and categorized news from configured sources"
)

// Generator renders stored articles as RSS and configured feeds as OPML
type Generator struct {
	baseURL string
	ttl     int // minutes
	now     func() time.Time
}

// NewGenerator makes a generator, links are built off baseURL.
// The refresh interval is advertised to readers as channel ttl, zero omits it.
func NewGenerator(baseURL string, refresh time.Duration) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     int(refresh / time.Minute),
		now:     time.Now,
	}
}

// GenerateRSS makes an RSS 2.0 document, category is used for title and self link only
func (g *Generator) GenerateRSS(articles []domain.ProcessedArticle, category string) (string, error) {
	title, selfLink := channelPrefix+" - Latest", g.baseURL+"/rss"
	if category != "" {
		title = channelPrefix + " - " + category
		selfLink = g.baseURL + "/rss/" + url.PathEscape(category)
	}

	items := make([]*RSSItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, rssItem(a))
	}

	return marshalXML(&RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   channelDescription,
			Language:      "en",
			Generator:     "pulsenews",
			TTL:           g.ttl,
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         items,
		},
	}, "RSS")
}

// GenerateOPML makes an OPML 2.0 subscription list of the configured feeds
func (g *Generator) GenerateOPML(feeds []domain.FeedSource) (string, error) {
	outlines := make([]OPMLOutline, 0, len(feeds))
	for _, f := range feeds {
		outlines = append(outlines, OPMLOutline{Text: f.Name, Title: f.Name, Type: "rss", XMLURL: f.URL})
	}

	return marshalXML(&OPML{
		Version: "2.0",
		Head:    OPMLHead{Title: channelPrefix + " Feed Subscriptions", DateCreated: g.now().Format(time.RFC1123Z)},
		Body:    OPMLBody{Outlines: outlines},
	}, "OPML")
}

func rssItem(a domain.ProcessedArticle) *RSSItem {
	item := &RSSItem{
		Title:       a.Title,
		Link:        a.URL,
		GUID:        RSSGUID{Value: a.URLHash, IsPermaLink: "false"},
		Description: a.Summary,
		Author:      strings.Join(a.Authors, ", "),
		PubDate:     a.Published.Format(time.RFC1123Z),
	}
	if a.Category != "" {
		item.Categories = []string{a.Category}
	}
	if a.ImageURL != "" {
		item.Enclosure = &RSSEnclosure{URL: a.ImageURL, Type: imageType(a.ImageURL)}
	}
	return item
}

// imageType guesses enclosure mime type from the image url path, jpeg if unknown
func imageType(imageURL string) string {
	p := imageURL
	if u, err := url.Parse(imageURL); err == nil {
		p = u.Path
	}
	if t := mime.TypeByExtension(strings.ToLower(path.Ext(p))); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}

func marshalXML(doc any, kind string) (string, error) {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", kind, err)
	}
	return xml.Header + string(out), nil
}
