package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Test Feed</title>
	<link>http://example.com</link>
	<description>Test Description</description>
	<item>
		<title>Test Article 1</title>
		<link>http://example.com/article1</link>
		<description>Article 1 description</description>
		<content:encoded><![CDATA[<p>Full content of article 1</p>]]></content:encoded>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		<guid>http://example.com/article1</guid>
		<author>test@example.com (Test Author)</author>
		<media:thumbnail url="http://example.com/thumb1.jpg" width="240" height="135"/>
	</item>
	<item>
		<title>Test Article 2</title>
		<link>http://example.com/article2</link>
		<description><![CDATA[<p>Article 2 <img src="/pic.jpg"></p>]]></description>
		<media:content url="http://example.com/video.mp4" medium="video"/>
		<media:content url="http://example.com/photo2.jpg" medium="image"/>
	</item>
	<item>
		<title>Test Article 3</title>
		<link>http://example.com/article3</link>
		<enclosure url="http://example.com/audio.mp3" type="audio/mpeg" length="1"/>
		<enclosure url="http://example.com/photo3.png" type="image/png" length="1"/>
	</item>
</channel>
</rss>`

	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA, gotAccept = r.Header.Get("User-Agent"), r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssContent))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "test-agent")
	feed, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "test-agent", gotUA)
	assert.Contains(t, gotAccept, "application/rss+xml")

	assert.Equal(t, "Test Feed", feed.Title)
	assert.Equal(t, "Test Description", feed.Description)
	assert.Equal(t, "http://example.com", feed.Link)

	require.Len(t, feed.Entries, 3)

	e1 := feed.Entries[0]
	assert.Equal(t, "Test Article 1", e1.Title)
	assert.Equal(t, "http://example.com/article1", e1.Link)
	assert.Equal(t, "Article 1 description", e1.Summary)
	assert.Equal(t, "<p>Full content of article 1</p>", e1.Content)
	assert.Equal(t, "http://example.com/article1", e1.GUID)
	assert.Equal(t, []string{"Test Author"}, e1.Authors)
	assert.False(t, e1.Published.IsZero())
	assert.Equal(t, "http://example.com/thumb1.jpg", e1.ImageURL)

	e2 := feed.Entries[1]
	assert.Equal(t, "http://example.com/article2", e2.GUID, "guid falls back to link")
	assert.True(t, e2.Published.IsZero())
	assert.Equal(t, "http://example.com/photo2.jpg", e2.ImageURL, "non-image media skipped")
	assert.Contains(t, e2.Summary, `<img src="/pic.jpg">`)

	assert.Equal(t, "http://example.com/photo3.png", feed.Entries[2].ImageURL)
}

func TestParser_Parse_AtomFeed(t *testing.T) {
	atomContent := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Test Atom Feed</title>
	<link href="http://example.com"/>
	<subtitle>Test Subtitle</subtitle>
	<entry>
		<title>Atom Entry 1</title>
		<link href="http://example.com/entry1"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<summary>Entry 1 summary</summary>
		<author><name>John Doe</name></author>
		<author><name>Jane Roe</name></author>
	</entry>
</feed>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(atomContent))
	}))
	defer server.Close()

	feed, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Test Atom Feed", feed.Title)
	assert.Equal(t, "Test Subtitle", feed.Description)

	require.Len(t, feed.Entries, 1)
	entry := feed.Entries[0]
	assert.Equal(t, "Atom Entry 1", entry.Title)
	assert.Equal(t, "http://example.com/entry1", entry.Link)
	assert.Equal(t, "urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a", entry.GUID)
	assert.Equal(t, []string{"John Doe", "Jane Roe"}, entry.Authors)
	assert.Equal(t, 2006, entry.Published.Year(), "updated used when published is missing")
	assert.Empty(t, entry.ImageURL)
}

func TestParser_Parse_Errors(t *testing.T) {
	t.Run("HTTP error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
	})

	t.Run("invalid XML", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not xml"))
		}))
		defer server.Close()

		_, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("too late"))
		}))
		defer server.Close()

		_, err := NewParser(50*time.Millisecond, "").Parse(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewParser(5*time.Second, "").Parse(context.Background(), "not-a-url")
		require.Error(t, err)
	})
}
