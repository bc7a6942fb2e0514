package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pulsenews/pkg/source/mocks"
)

const headlinesPayload = `{
  "status": "ok",
  "totalResults": 4,
  "articles": [
    {"source": {"id": "bbc-news", "name": "BBC News"}, "author": "BBC Staff", "title": "Markets rally",
     "description": "Stocks rose sharply.", "url": "https://bbc.example.com/markets",
     "urlToImage": "https://ichef.example.com/markets.jpg", "publishedAt": "2024-05-01T09:30:00Z", "content": "Stocks..."},
    {"source": {"id": null, "name": ""}, "author": null, "title": "No source name",
     "description": "desc", "url": "https://example.com/nosource", "urlToImage": "/relative.jpg", "publishedAt": "bad"},
    {"source": {"name": "X"}, "title": "", "url": "https://example.com/untitled"},
    {"source": {"name": "X"}, "title": "No url", "url": ""}
  ]
}`

func TestHeadlines_Fetch(t *testing.T) {
	var query map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/top-headlines", r.URL.Path)
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(headlinesPayload))
	}))
	defer server.Close()

	extractor := &mocks.ExtractorMock{
		ExtractFunc: func(ctx context.Context, url string) (string, error) {
			if strings.Contains(url, "markets") {
				return "Full markets story", nil
			}
			return "", errors.New("paywall")
		},
	}

	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	h := NewHeadlines(extractor, HeadlinesConfig{Endpoint: server.URL + "/v2", APIKey: "secret", Country: "gb",
		Category: "business", PageSize: 5, Timeout: time.Second})
	h.now = func() time.Time { return now }

	res, err := h.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"apiKey": "secret", "country": "gb", "pageSize": "5", "category": "business"}, query)

	require.Len(t, res.Articles, 2)
	assert.Equal(t, 2, res.Dropped)
	assert.Equal(t, 1, res.Fallbacks)

	first := res.Articles[0]
	assert.Equal(t, "Markets rally", first.Title)
	assert.Equal(t, "Full markets story", first.Content)
	assert.Equal(t, "BBC News", first.Source)
	assert.Equal(t, []string{"BBC Staff"}, first.Authors)
	assert.Equal(t, "https://ichef.example.com/markets.jpg", first.ImageURL)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), first.Published.UTC())

	second := res.Articles[1]
	assert.Equal(t, "desc", second.Content, "description used when extraction fails")
	assert.Equal(t, "Unknown", second.Source)
	assert.Empty(t, second.Authors)
	assert.Empty(t, second.ImageURL, "relative image discarded")
	assert.Equal(t, now, second.Published)
}

func TestHeadlines_Fetch_Errors(t *testing.T) {
	tbl := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "api error status", status: http.StatusUnauthorized,
			body:    `{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid"}`,
			wantErr: "headline api status 401: Your API key is invalid"},
		{name: "api error in body", status: http.StatusOK,
			body:    `{"status":"error","code":"rateLimited","message":"too many requests"}`,
			wantErr: "headline api error rateLimited: too many requests"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewHeadlines(nil, HeadlinesConfig{Endpoint: server.URL}).Fetch(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		_, err := NewHeadlines(nil, HeadlinesConfig{Endpoint: "http://127.0.0.1:1", Timeout: time.Second}).
			Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "request headlines")
	})
}

func TestHeadlines_Defaults(t *testing.T) {
	h := NewHeadlines(nil, HeadlinesConfig{})
	assert.Equal(t, "https://newsapi.org/v2", h.cfg.Endpoint)
	assert.Equal(t, "us", h.cfg.Country)
	assert.Equal(t, 20, h.cfg.PageSize)
	assert.Equal(t, "headlines", h.Name())
}

func TestAbsoluteImage(t *testing.T) {
	assert.Equal(t, "https://a.com/x.jpg", absoluteImage(" https://a.com/x.jpg "))
	assert.Equal(t, "http://a.com/x.jpg", absoluteImage("http://a.com/x.jpg"))
	assert.Empty(t, absoluteImage("//a.com/x.jpg"))
	assert.Empty(t, absoluteImage("/x.jpg"))
	assert.Empty(t, absoluteImage(""))
}
