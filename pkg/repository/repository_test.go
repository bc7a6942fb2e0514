package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pulsenews/pkg/domain"
)

// backends returns a fresh instance of every store type
func backends(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	sq, err := New(ctx, Config{Type: TypeSQLite, DSN: "file:" + filepath.Join(dir, "test.db"), MaxOpenConns: 4})
	require.NoError(t, err)
	bl, err := New(ctx, Config{Type: TypeBolt, Path: filepath.Join(dir, "test.bdb")})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, sq.Close())
		assert.NoError(t, bl.Close())
	})
	return map[string]Store{"sqlite": sq, "bolt": bl}
}

var baseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func testArticle(i int, source, category string) domain.ProcessedArticle {
	u := fmt.Sprintf("https://example.com/%s/%d", source, i)
	return domain.ProcessedArticle{
		Title:     fmt.Sprintf("Article %d", i),
		Summary:   "summary",
		Content:   "content",
		Authors:   []string{"Jane Doe", "John Roe"},
		Published: baseTime.Add(-time.Hour),
		Source:    source,
		URL:       u,
		ImageURL:  "https://cdn.example.com/a.jpg",
		Category:  category,
		URLHash:   fmt.Sprintf("hash-%s-%d", source, i),
		CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
	}
}

func TestNew_UnsupportedType(t *testing.T) {
	_, err := New(context.Background(), Config{Type: "redis"})
	require.EqualError(t, err, `unsupported store type "redis"`)
}

func TestStore_InsertIfAbsent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Ping(ctx))

			a := testArticle(1, "bbc", "science")
			ok, err := s.InsertIfAbsent(ctx, a)
			require.NoError(t, err)
			assert.True(t, ok)

			dup := a
			dup.Title = "changed title"
			ok, err = s.InsertIfAbsent(ctx, dup)
			require.NoError(t, err)
			assert.False(t, ok, "same url hash is rejected")

			res, err := s.Query(ctx, domain.ArticleFilter{})
			require.NoError(t, err)
			require.Len(t, res, 1)
			got := res[0]
			assert.Equal(t, "Article 1", got.Title, "existing record untouched")
			assert.Equal(t, a.URL, got.URL)
			assert.Equal(t, a.Summary, got.Summary)
			assert.Equal(t, a.Content, got.Content)
			assert.Equal(t, []string{"Jane Doe", "John Roe"}, got.Authors)
			assert.Equal(t, a.ImageURL, got.ImageURL)
			assert.Equal(t, "science", got.Category)
			assert.True(t, a.Published.Equal(got.Published))
			assert.True(t, a.CreatedAt.Equal(got.CreatedAt))
		})
	}
}

func TestStore_InsertConcurrent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			var mu sync.Mutex
			inserted := 0
			for range 10 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					ok, err := s.InsertIfAbsent(context.Background(), testArticle(1, "race", "general"))
					assert.NoError(t, err)
					if ok {
						mu.Lock()
						inserted++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()
			assert.Equal(t, 1, inserted, "exactly one writer wins")
		})
	}
}

func TestStore_Query(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := range 6 {
				src, cat := "bbc", "science"
				if i%2 == 1 {
					src, cat = "reuters", "business"
				}
				_, err := s.InsertIfAbsent(ctx, testArticle(i, src, cat))
				require.NoError(t, err)
			}

			tbl := []struct {
				name   string
				filter domain.ArticleFilter
				want   []string // url hashes, newest first
			}{
				{name: "all", filter: domain.ArticleFilter{},
					want: []string{"hash-reuters-5", "hash-bbc-4", "hash-reuters-3", "hash-bbc-2", "hash-reuters-1", "hash-bbc-0"}},
				{name: "by source", filter: domain.ArticleFilter{Source: "bbc"},
					want: []string{"hash-bbc-4", "hash-bbc-2", "hash-bbc-0"}},
				{name: "by category", filter: domain.ArticleFilter{Category: "business"},
					want: []string{"hash-reuters-5", "hash-reuters-3", "hash-reuters-1"}},
				{name: "since", filter: domain.ArticleFilter{Since: baseTime.Add(4 * time.Minute)},
					want: []string{"hash-reuters-5", "hash-bbc-4"}},
				{name: "limit", filter: domain.ArticleFilter{Limit: 2},
					want: []string{"hash-reuters-5", "hash-bbc-4"}},
				{name: "limit and offset", filter: domain.ArticleFilter{Limit: 2, Offset: 2},
					want: []string{"hash-reuters-3", "hash-bbc-2"}},
				{name: "offset only", filter: domain.ArticleFilter{Offset: 5}, want: []string{"hash-bbc-0"}},
				{name: "offset past end", filter: domain.ArticleFilter{Offset: 10}, want: []string{}},
				{name: "no match", filter: domain.ArticleFilter{Source: "bbc", Category: "business"}, want: []string{}},
			}
			for _, tt := range tbl {
				t.Run(tt.name, func(t *testing.T) {
					res, err := s.Query(ctx, tt.filter)
					require.NoError(t, err)
					hashes := make([]string, 0, len(res))
					for _, a := range res {
						hashes = append(hashes, a.URLHash)
					}
					assert.Equal(t, tt.want, hashes)
				})
			}
		})
	}
}

func TestStore_StatsSourcesCleanup(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			st, err := s.Stats(ctx)
			require.NoError(t, err)
			assert.Zero(t, st.Total)
			assert.True(t, st.Latest.IsZero())

			srcs, err := s.Sources(ctx)
			require.NoError(t, err)
			assert.Empty(t, srcs)

			for i, src := range []string{"reuters", "bbc", "bbc", "ap"} {
				_, err := s.InsertIfAbsent(ctx, testArticle(i, src, domain.Categories[i%2]))
				require.NoError(t, err)
			}

			st, err = s.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, 4, st.Total)
			assert.Equal(t, map[string]int{"reuters": 1, "bbc": 2, "ap": 1}, st.BySource)
			assert.Equal(t, map[string]int{"technology": 2, "sports": 2}, st.ByCategory)
			assert.True(t, baseTime.Add(3*time.Minute).Equal(st.Latest), "latest %v", st.Latest)

			srcs, err = s.Sources(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"ap", "bbc", "reuters"}, srcs)

			deleted, err := s.Cleanup(ctx, baseTime.Add(2*time.Minute))
			require.NoError(t, err)
			assert.Equal(t, int64(2), deleted)

			res, err := s.Query(ctx, domain.ArticleFilter{})
			require.NoError(t, err)
			require.Len(t, res, 2)
			assert.Equal(t, "hash-ap-3", res[0].URLHash)
			assert.Equal(t, "hash-bbc-2", res[1].URLHash)

			deleted, err = s.Cleanup(ctx, baseTime.Add(-time.Hour))
			require.NoError(t, err)
			assert.Zero(t, deleted)
		})
	}
}

func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfgs := map[string]Config{
		"sqlite": {Type: TypeSQLite, DSN: "file:" + filepath.Join(dir, "reopen.db")},
		"bolt":   {Type: TypeBolt, Path: filepath.Join(dir, "reopen.bdb")},
	}
	for name, cfg := range cfgs {
		t.Run(name, func(t *testing.T) {
			s, err := New(ctx, cfg)
			require.NoError(t, err)
			_, err = s.InsertIfAbsent(ctx, testArticle(1, "bbc", "health"))
			require.NoError(t, err)
			require.NoError(t, s.Close())

			s, err = New(ctx, cfg)
			require.NoError(t, err)
			defer s.Close()
			ok, err := s.InsertIfAbsent(ctx, testArticle(1, "bbc", "health"))
			require.NoError(t, err)
			assert.False(t, ok, "records survive restart")
		})
	}
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.True(t, isLockError(fmt.Errorf("exec: %w", fmt.Errorf("database is locked (5) (SQLITE_BUSY)"))))
	assert.True(t, isLockError(fmt.Errorf("database table is locked")))
	assert.False(t, isLockError(fmt.Errorf("UNIQUE constraint failed")))
}

func TestAuthorsSQL(t *testing.T) {
	v, err := authorsSQL(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var a authorsSQL
	require.NoError(t, a.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, authorsSQL{"a", "b"}, a)
	require.NoError(t, a.Scan(nil))
	assert.Equal(t, authorsSQL{}, a)
	require.NoError(t, a.Scan(""))
	assert.Equal(t, authorsSQL{}, a)
	require.Error(t, a.Scan("not json"))
}
