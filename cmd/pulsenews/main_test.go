package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pulsenews/pkg/config"
	"github.com/umputun/pulsenews/pkg/content"
	"github.com/umputun/pulsenews/pkg/dedup"
	"github.com/umputun/pulsenews/pkg/domain"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: cfgFile})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_ServerStartStop(t *testing.T) {
	t.Setenv("DB_PATH", t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wd, err := os.Getwd()
	require.NoError(t, err)
	opts := Opts{Config: wd + "/testdata/test_config.yml", EnvFile: filepath.Join(t.TempDir(), "missing.env")}

	done := make(chan error, 1)
	go func() { done <- run(ctx, opts) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18765/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 5*time.Second, 50*time.Millisecond, "server did not start")

	resp, err := http.Get("http://127.0.0.1:18765/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get("http://127.0.0.1:18765/rss")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/rss+xml; charset=utf-8", resp.Header.Get("Content-Type"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server shutdown timeout")
	}
}

func TestMakeSources(t *testing.T) {
	cfg := &config.Config{}
	cfg.Sources.Feeds = []config.FeedConfig{
		{Name: "bbc", URL: "https://feeds.bbci.co.uk/news/rss.xml"},
		{Name: "guardian", URL: "https://www.theguardian.com/world/rss"},
	}
	extractor := content.NewHTTPExtractor(content.Config{})

	t.Run("feeds only", func(t *testing.T) {
		srcs := makeSources(cfg, extractor)
		require.Len(t, srcs, 2)
		assert.Equal(t, "bbc", srcs[0].Name())
		assert.Equal(t, "guardian", srcs[1].Name())
	})

	t.Run("with headlines", func(t *testing.T) {
		cfg.Sources.Headlines.Enabled = true
		cfg.Sources.Headlines.APIKey = "key"
		defer func() { cfg.Sources.Headlines.Enabled = false }()

		srcs := makeSources(cfg, extractor)
		require.Len(t, srcs, 3)
		assert.Equal(t, "headlines", srcs[2].Name(), "headlines go after feeds")
	})
}

func TestMakeProcessor(t *testing.T) {
	cfg := &config.Config{}
	cfg.Summary.Mode = config.SummaryExtractive

	p := makeProcessor(cfg)
	require.NotNil(t, p)

	// without llm steps the processor still produces an extractive summary
	res, err := p.Process(context.Background(), domain.RawArticle{
		Title:   "Title",
		URL:     "https://example.com/a",
		Source:  "test",
		Content: "First sentence goes here. Second sentence is next. Third one ends it.",
	})
	require.NoError(t, err)
	assert.False(t, res.Degraded)
	assert.NotEmpty(t, res.Article.Summary)
	assert.Equal(t, domain.CategoryGeneral, res.Article.Category)
}

func TestDeliveredPolicy(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, dedup.NoEviction{}, deliveredPolicy(cfg))

	cfg.Store.RetentionDays = 7
	assert.Equal(t, dedup.MaxAge(7*24*time.Hour), deliveredPolicy(cfg))
}

func TestFeedSources(t *testing.T) {
	cfg := &config.Config{}
	assert.Empty(t, feedSources(cfg))

	cfg.Sources.Feeds = []config.FeedConfig{{Name: "bbc", URL: "https://feeds.bbci.co.uk/news/rss.xml"}}
	assert.Equal(t, []domain.FeedSource{{Name: "bbc", URL: "https://feeds.bbci.co.uk/news/rss.xml"}}, feedSources(cfg))
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode", func(t *testing.T) {
		SetupLog(true)
	})

	t.Run("regular mode", func(t *testing.T) {
		SetupLog(false)
	})

	t.Run("with secrets", func(t *testing.T) {
		SetupLog(true, "secret1", "", "secret2")
	})

	t.Run("only empty secrets", func(t *testing.T) {
		SetupLog(false, "", "")
	})
}
