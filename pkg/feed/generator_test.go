package feed

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pulsenews/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://example.com", 30*time.Minute)
	generator.now = func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }

	pubTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	articles := []domain.ProcessedArticle{
		{
			Title:     "Test Article 1",
			URL:       "https://example.com/article1",
			URLHash:   "hash1",
			Summary:   "First summary.",
			Authors:   []string{"John Doe", "Jane Roe"},
			Published: pubTime,
			Category:  "technology",
			ImageURL:  "https://cdn.example.com/a1.png",
		},
		{
			Title:     "Test Article 2",
			URL:       "https://example.com/article2",
			URLHash:   "hash2",
			Summary:   "Second summary.",
			Published: pubTime.Add(time.Hour),
			Category:  "science",
		},
	}

	t.Run("generate RSS for all categories", func(t *testing.T) {
		rss, err := generator.GenerateRSS(articles, "")
		require.NoError(t, err)

		// check basic structure
		assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
		assert.Contains(t, rss, `<title>PulseNews - Latest</title>`)
		assert.Contains(t, rss, `<link>https://example.com/</link>`)
		assert.Contains(t, rss, `<ttl>30</ttl>`)
		assert.Contains(t, rss, `<generator>pulsenews</generator>`)
		assert.Contains(t, rss, `<lastBuildDate>Tue, 02 Jan 2024 00:00:00 +0000</lastBuildDate>`)

		// check atom self link (namespace is on the link element)
		assert.Contains(t, rss, `<link xmlns="http://www.w3.org/2005/Atom" href="https://example.com/rss" rel="self" type="application/rss+xml"></link>`)

		// check items
		assert.Contains(t, rss, `<title>Test Article 1</title>`)
		assert.Contains(t, rss, `<link>https://example.com/article1</link>`)
		assert.Contains(t, rss, `<guid isPermaLink="false">hash1</guid>`)
		assert.Contains(t, rss, `<author>John Doe, Jane Roe</author>`)
		assert.Contains(t, rss, `<description>First summary.</description>`)
		assert.Contains(t, rss, `<category>technology</category>`)
		assert.Contains(t, rss, `<pubDate>Mon, 01 Jan 2024 12:00:00 +0000</pubDate>`)
		assert.Contains(t, rss, `<enclosure url="https://cdn.example.com/a1.png" type="image/png" length="0"></enclosure>`)

		// second item has no image and no author
		assert.Contains(t, rss, `<title>Test Article 2</title>`)
		assert.Equal(t, 1, strings.Count(rss, "<enclosure"))
		assert.Equal(t, 1, strings.Count(rss, "<author>"))
	})

	t.Run("generate RSS for category", func(t *testing.T) {
		rss, err := generator.GenerateRSS(articles[:1], "technology")
		require.NoError(t, err)

		assert.Contains(t, rss, `<title>PulseNews - technology</title>`)
		assert.Contains(t, rss, `href="https://example.com/rss/technology"`)
	})

	t.Run("empty articles", func(t *testing.T) {
		rss, err := generator.GenerateRSS(nil, "")
		require.NoError(t, err)

		assert.Contains(t, rss, `<channel>`)
		assert.NotContains(t, rss, `<item>`)
	})

	t.Run("generator with trailing slash in base URL", func(t *testing.T) {
		gen := NewGenerator("https://example.com/", 0)
		rss, err := gen.GenerateRSS(articles[:1], "")
		require.NoError(t, err)

		// should not have double slashes
		assert.Contains(t, rss, `<link>https://example.com/</link>`)
		assert.Contains(t, rss, `href="https://example.com/rss"`)
		assert.NotContains(t, rss, `https://example.com//`)
	})

	t.Run("parsable", func(t *testing.T) {
		rss, err := generator.GenerateRSS(articles, "")
		require.NoError(t, err)

		var doc RSS
		require.NoError(t, xml.Unmarshal([]byte(rss), &doc))
		require.Len(t, doc.Channel.Items, 2)
		assert.Equal(t, RSSGUID{Value: "hash2", IsPermaLink: "false"}, doc.Channel.Items[1].GUID)
	})
}

func TestImageType(t *testing.T) {
	tbl := []struct{ url, want string }{
		{"https://cdn.example.com/a.jpg", "image/jpeg"},
		{"https://cdn.example.com/a.JPEG?w=300", "image/jpeg"},
		{"https://cdn.example.com/a.webp", "image/webp"},
		{"https://cdn.example.com/a.png#x", "image/png"},
		{"https://cdn.example.com/image/12345", "image/jpeg"},
		{"https://cdn.example.com/a.html", "image/jpeg"},
	}
	for _, tt := range tbl {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, imageType(tt.url))
		})
	}
}

func TestGenerator_GenerateOPML(t *testing.T) {
	generator := NewGenerator("https://example.com", 0)

	feeds := []domain.FeedSource{
		{Name: "Tech News", URL: "https://technews.com/feed.xml"},
		{Name: "Science Daily", URL: "https://sciencedaily.com/rss"},
	}

	opml, err := generator.GenerateOPML(feeds)
	require.NoError(t, err)

	// check basic structure
	assert.Contains(t, opml, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, opml, `<opml version="2.0">`)
	assert.Contains(t, opml, `<title>PulseNews Feed Subscriptions</title>`)

	assert.Contains(t, opml, `text="Tech News"`)
	assert.Contains(t, opml, `title="Tech News"`)
	assert.Contains(t, opml, `type="rss"`)
	assert.Contains(t, opml, `xmlUrl="https://technews.com/feed.xml"`)
	assert.Contains(t, opml, `text="Science Daily"`)
	assert.Contains(t, opml, `xmlUrl="https://sciencedaily.com/rss"`)
}

func TestRSSXMLStructure(t *testing.T) {
	generator := NewGenerator("https://example.com", 0)

	articles := []domain.ProcessedArticle{{
		Title:     "Test & Article <with> Special Characters",
		URL:       "https://example.com/article",
		URLHash:   "guid1",
		Summary:   "Summary with <html> tags",
		Authors:   []string{"Author & Co."},
		Category:  "business",
		Published: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}}

	rss, err := generator.GenerateRSS(articles, "")
	require.NoError(t, err)

	// XML special characters should be escaped
	assert.Contains(t, rss, "Test &amp; Article &lt;with&gt; Special Characters")
	assert.Contains(t, rss, "Author &amp; Co.")
	assert.Contains(t, rss, "Summary with &lt;html&gt; tags")

	assert.NotContains(t, rss, "<ttl>", "no ttl without refresh interval")
	assert.Regexp(t, `(?s)<rss[^>]*>.*<channel>.*</channel>.*</rss>`, rss)
}
