package processor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pulsenews/pkg/domain"
	"github.com/umputun/pulsenews/pkg/processor/mocks"
)

func testArticle() domain.RawArticle {
	return domain.RawArticle{
		Title:     "Storm hits coast",
		Content:   "A storm hit the coast. Thousands without power. Roads closed. Schools shut.",
		URL:       "https://example.com/storm",
		Source:    "World News",
		ImageURL:  "https://example.com/storm.jpg",
		Authors:   []string{"Jane Doe"},
		Published: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestProcessor_Process(t *testing.T) {
	sum := &mocks.SummarizerMock{SummarizeFunc: func(ctx context.Context, text string) (string, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok, "summarizer call is bounded")
		return "Storm leaves thousands without power.", nil
	}}
	cls := &mocks.ClassifierMock{ClassifyFunc: func(ctx context.Context, text string) (string, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok, "classifier call is bounded")
		return "Science", nil
	}}

	p := New(sum, cls, Config{})
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))
	p.now = func() time.Time { return created }

	res, err := p.Process(context.Background(), testArticle())
	require.NoError(t, err)
	assert.False(t, res.Degraded)
	assert.Empty(t, res.Notes)

	a := res.Article
	assert.Equal(t, "Storm hits coast", a.Title)
	assert.Equal(t, "Storm leaves thousands without power.", a.Summary)
	assert.Equal(t, "science", a.Category)
	assert.Equal(t, testArticle().Content, a.Content)
	assert.Equal(t, []string{"Jane Doe"}, a.Authors)
	assert.Equal(t, "World News", a.Source)
	assert.Equal(t, "https://example.com/storm.jpg", a.ImageURL)
	assert.Equal(t, testArticle().Published, a.Published)
	assert.Equal(t, URLHash("https://example.com/storm"), a.URLHash)
	assert.Equal(t, created.UTC(), a.CreatedAt)
	assert.Equal(t, time.UTC, a.CreatedAt.Location())

	require.Len(t, sum.SummarizeCalls(), 1)
	assert.Equal(t, testArticle().Content, sum.SummarizeCalls()[0].Text)
	require.Len(t, cls.ClassifyCalls(), 1)
	assert.Equal(t, "Storm hits coast\n\n"+testArticle().Content, cls.ClassifyCalls()[0].Text)
}

func TestProcessor_Fallbacks(t *testing.T) {
	okSum := &mocks.SummarizerMock{SummarizeFunc: func(context.Context, string) (string, error) { return "llm summary", nil }}
	badSum := &mocks.SummarizerMock{SummarizeFunc: func(context.Context, string) (string, error) {
		return "", errors.New("llm down")
	}}
	emptySum := &mocks.SummarizerMock{SummarizeFunc: func(context.Context, string) (string, error) { return "  ", nil }}
	okCls := &mocks.ClassifierMock{ClassifyFunc: func(context.Context, string) (string, error) { return "sports", nil }}
	badCls := &mocks.ClassifierMock{ClassifyFunc: func(context.Context, string) (string, error) {
		return "", errors.New("classifier timeout")
	}}
	extractive := "A storm hit the coast. Thousands without power. Schools shut."

	tbl := []struct {
		name         string
		sum          Summarizer
		cls          Classifier
		wantSummary  string
		wantCategory string
		wantDegraded bool
	}{
		{name: "summary failure", sum: badSum, cls: okCls, wantSummary: extractive, wantCategory: "sports", wantDegraded: true},
		{name: "empty summary", sum: emptySum, cls: okCls, wantSummary: extractive, wantCategory: "sports", wantDegraded: true},
		{name: "classifier failure", sum: okSum, cls: badCls, wantSummary: "llm summary", wantCategory: "general", wantDegraded: true},
		{name: "no summarizer", sum: nil, cls: okCls, wantSummary: extractive, wantCategory: "sports"},
		{name: "no classifier", sum: okSum, cls: nil, wantSummary: "llm summary", wantCategory: "general"},
		{name: "nothing wired", sum: nil, cls: nil, wantSummary: extractive, wantCategory: "general"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(tt.sum, tt.cls, Config{}).Process(context.Background(), testArticle())
			require.NoError(t, err)
			assert.Equal(t, tt.wantSummary, res.Article.Summary)
			assert.Equal(t, tt.wantCategory, res.Article.Category)
			assert.Equal(t, tt.wantDegraded, res.Degraded)
			if tt.wantDegraded {
				assert.NotEmpty(t, res.Notes)
			}
		})
	}
}

func TestProcessor_BothFail(t *testing.T) {
	sum := &mocks.SummarizerMock{SummarizeFunc: func(context.Context, string) (string, error) {
		return "", errors.New("llm down")
	}}
	cls := &mocks.ClassifierMock{ClassifyFunc: func(context.Context, string) (string, error) {
		return "", errors.New("llm down")
	}}

	res, err := New(sum, cls, Config{}).Process(context.Background(), testArticle())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEnrichmentFailed)
	assert.Contains(t, err.Error(), "https://example.com/storm")
	assert.Equal(t, domain.ProcessResult{}, res)
}

func TestProcessor_Truncation(t *testing.T) {
	content := strings.Repeat("ж", 1500)
	cls := &mocks.ClassifierMock{ClassifyFunc: func(context.Context, string) (string, error) { return "health", nil }}
	raw := testArticle()
	raw.Content = content

	res, err := New(nil, cls, Config{}).Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 1000, len([]rune(res.Article.Content)))
	assert.Equal(t, "Storm hits coast\n\n"+strings.Repeat("ж", 1000), cls.ClassifyCalls()[0].Text)

	res, err = New(nil, cls, Config{MaxContentLength: 10, ClassifyInputLength: 5}).Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ж", 10), res.Article.Content)
	assert.Equal(t, "Storm hits coast\n\n"+strings.Repeat("ж", 5), cls.ClassifyCalls()[1].Text)
}

func TestProcessor_ClassifierTimeout(t *testing.T) {
	cls := &mocks.ClassifierMock{ClassifyFunc: func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	st := time.Now()
	res, err := New(nil, cls, Config{ClassifyTimeout: 20 * time.Millisecond}).Process(context.Background(), testArticle())
	require.NoError(t, err)
	assert.Less(t, time.Since(st), time.Second)
	assert.True(t, res.Degraded)
	assert.Equal(t, domain.CategoryGeneral, res.Article.Category)
}

func TestURLHash(t *testing.T) {
	// md5 of the url, stable across runs
	assert.Equal(t, "c7b121d3402e7aae04de38fc642192f6", URLHash("https://example.com/storm"))
	assert.Equal(t, URLHash("https://example.com/storm"), URLHash("https://example.com/storm"))
	assert.NotEqual(t, URLHash("https://example.com/storm"), URLHash("https://example.com/Storm"))
}
