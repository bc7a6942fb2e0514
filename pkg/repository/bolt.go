package repository

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/umputun/pulsenews/pkg/domain"
)

var articlesBucket = []byte("articles")

// Bolt is an article store backed by a bbolt file, articles are json values keyed by url hash
type Bolt struct {
	db *bolt.DB
}

// NewBolt opens or creates the bolt file at path
func NewBolt(path string, timeout time.Duration) (*Bolt, error) {
	if path == "" {
		path = "pulsenews.bdb"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(articlesBucket)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

// InsertIfAbsent stores the article unless one with the same url hash exists
func (b *Bolt) InsertIfAbsent(_ context.Context, article domain.ProcessedArticle) (bool, error) {
	article.CreatedAt, article.Published = utc(article.CreatedAt), utc(article.Published)
	data, err := json.Marshal(article)
	if err != nil {
		return false, fmt.Errorf("marshal article: %w", err)
	}

	inserted := false
	err = b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(articlesBucket)
		if bkt.Get([]byte(article.URLHash)) != nil {
			return nil
		}
		inserted = true
		return bkt.Put([]byte(article.URLHash), data)
	})
	if err != nil {
		return false, fmt.Errorf("insert article: %w", err)
	}
	return inserted, nil
}

// Query returns articles matching the filter, newest first
func (b *Bolt) Query(_ context.Context, filter domain.ArticleFilter) ([]domain.ProcessedArticle, error) {
	res := []domain.ProcessedArticle{}
	err := b.each(func(a domain.ProcessedArticle) {
		if matches(a, filter) {
			res = append(res, a)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	slices.SortStableFunc(res, func(x, y domain.ProcessedArticle) int {
		if c := y.CreatedAt.Compare(x.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(x.URLHash, y.URLHash)
	})
	return page(res, filter.Offset, filter.Limit), nil
}

// Stats returns counts per source and category and the time of the latest article
func (b *Bolt) Stats(_ context.Context) (domain.ArticleStats, error) {
	res := domain.ArticleStats{BySource: map[string]int{}, ByCategory: map[string]int{}}
	err := b.each(func(a domain.ProcessedArticle) {
		res.Total++
		res.BySource[a.Source]++
		res.ByCategory[a.Category]++
		if a.CreatedAt.After(res.Latest) {
			res.Latest = a.CreatedAt
		}
	})
	if err != nil {
		return domain.ArticleStats{}, fmt.Errorf("get stats: %w", err)
	}
	return res, nil
}

// Cleanup deletes articles created before olderThan
func (b *Bolt) Cleanup(_ context.Context, olderThan time.Time) (int64, error) {
	var deleted int64
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(articlesBucket)
		var keys [][]byte
		err := bkt.ForEach(func(k, v []byte) error {
			var a domain.ProcessedArticle
			if err := json.Unmarshal(v, &a); err != nil {
				return fmt.Errorf("unmarshal %s: %w", k, err)
			}
			if a.CreatedAt.Before(olderThan) {
				keys = append(keys, slices.Clone(k))
			}
			return nil
		})
		if err != nil {
			return err
		}
		// deleting inside ForEach is not allowed
		for _, k := range keys {
			if err := bkt.Delete(k); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("cleanup articles: %w", err)
	}
	return deleted, nil
}

// Sources returns distinct source names of stored articles, sorted
func (b *Bolt) Sources(_ context.Context) ([]string, error) {
	set := map[string]struct{}{}
	if err := b.each(func(a domain.ProcessedArticle) { set[a.Source] = struct{}{} }); err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}
	res := make([]string, 0, len(set))
	for s := range set {
		res = append(res, s)
	}
	slices.Sort(res)
	return res, nil
}

// Ping checks the bolt file is usable
func (b *Bolt) Ping(_ context.Context) error {
	return b.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(articlesBucket) == nil {
			return fmt.Errorf("bucket %s not found", articlesBucket)
		}
		return nil
	})
}

// Close closes the bolt file
func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) each(fn func(a domain.ProcessedArticle)) error {
	return b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(articlesBucket).ForEach(func(k, v []byte) error {
			var a domain.ProcessedArticle
			if err := json.Unmarshal(v, &a); err != nil {
				return fmt.Errorf("unmarshal %s: %w", k, err)
			}
			fn(a)
			return nil
		})
	})
}
