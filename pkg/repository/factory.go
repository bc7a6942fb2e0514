package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/umputun/pulsenews/pkg/domain"
)

// store types
const (
	TypeSQLite = "sqlite"
	TypeBolt   = "bolt"
)

// Config represents store configuration
type Config struct {
	Type            string // sqlite (default) or bolt
	DSN             string // sqlite dsn
	Path            string // bolt file
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store is the article persistence surface implemented by every backend
type Store interface {
	InsertIfAbsent(ctx context.Context, article domain.ProcessedArticle) (bool, error)
	Query(ctx context.Context, filter domain.ArticleFilter) ([]domain.ProcessedArticle, error)
	Stats(ctx context.Context) (domain.ArticleStats, error)
	Cleanup(ctx context.Context, olderThan time.Time) (int64, error)
	Sources(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// New makes a store for the configured type
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Type {
	case "", TypeSQLite:
		s, err := NewSQLite(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("make sqlite store: %w", err)
		}
		return s, nil
	case TypeBolt:
		b, err := NewBolt(cfg.Path, 0)
		if err != nil {
			return nil, fmt.Errorf("make bolt store: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported store type %q", cfg.Type)
	}
}
