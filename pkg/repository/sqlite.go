package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/umputun/pulsenews/pkg/domain"
)

//go:embed schema.sql
var schemaFS embed.FS

// SQLite is an article store backed by sqlite
type SQLite struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID        int64      `db:"id"`
	URLHash   string     `db:"url_hash"`
	URL       string     `db:"url"`
	Title     string     `db:"title"`
	Summary   string     `db:"summary"`
	Content   string     `db:"content"`
	Authors   authorsSQL `db:"authors"`
	Published time.Time  `db:"published"`
	Source    string     `db:"source"`
	ImageURL  string     `db:"image_url"`
	Category  string     `db:"category"`
	CreatedAt time.Time  `db:"created_at"`
}

// NewSQLite opens the database, applies pragmas and creates the schema
func NewSQLite(ctx context.Context, cfg Config) (*SQLite, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:pulsenews.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000", // 64MB cache
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000", // 5 second timeout for locks
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	return nil
}

// InsertIfAbsent stores the article unless one with the same url hash exists.
// Returns true if the article was inserted. Lock errors are retried with backoff.
func (s *SQLite) InsertIfAbsent(ctx context.Context, article domain.ProcessedArticle) (bool, error) {
	rec := articleSQL{
		URLHash:   article.URLHash,
		URL:       article.URL,
		Title:     article.Title,
		Summary:   article.Summary,
		Content:   article.Content,
		Authors:   authorsSQL(article.Authors),
		Published: utc(article.Published),
		Source:    article.Source,
		ImageURL:  article.ImageURL,
		Category:  article.Category,
		CreatedAt: utc(article.CreatedAt),
	}
	query := `
		INSERT INTO articles (
			url_hash, url, title, summary, content, authors,
			published, source, image_url, category, created_at
		) VALUES (
			:url_hash, :url, :title, :summary, :content, :authors,
			:published, :source, :image_url, :category, :created_at
		)
		ON CONFLICT(url_hash) DO NOTHING
	`

	inserted := false
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		res, err := s.db.NamedExecContext(ctx, query, rec)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("insert article: %w", err)}
		}
		n, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get rows affected: %w", err)}
		}
		inserted = n > 0
		return nil
	})
	if err != nil {
		var ce *criticalError
		if errors.As(err, &ce) {
			return false, ce.err
		}
		return false, fmt.Errorf("insert article: %w", err)
	}
	return inserted, nil
}

// Query returns articles matching the filter, newest first
func (s *SQLite) Query(ctx context.Context, filter domain.ArticleFilter) ([]domain.ProcessedArticle, error) {
	var where []string
	var args []any
	if filter.Source != "" {
		where = append(where, "source = ?")
		args = append(args, filter.Source)
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if !filter.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, filter.Since.UTC())
	}

	query := "SELECT * FROM articles"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1 // sqlite has no offset without limit
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, max(filter.Offset, 0))
	}

	var recs []articleSQL
	if err := s.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}

	res := make([]domain.ProcessedArticle, len(recs))
	for i, r := range recs {
		res[i] = r.toDomain()
	}
	return res, nil
}

// Stats returns counts per source and category and the time of the latest article
func (s *SQLite) Stats(ctx context.Context) (domain.ArticleStats, error) {
	res := domain.ArticleStats{BySource: map[string]int{}, ByCategory: map[string]int{}}
	if err := s.db.GetContext(ctx, &res.Total, "SELECT COUNT(*) FROM articles"); err != nil {
		return domain.ArticleStats{}, fmt.Errorf("count articles: %w", err)
	}

	type group struct {
		Name  string `db:"name"`
		Count int    `db:"cnt"`
	}
	groups := []struct {
		column string
		dest   map[string]int
	}{{"source", res.BySource}, {"category", res.ByCategory}}
	for _, g := range groups {
		var rows []group
		query := fmt.Sprintf("SELECT %s AS name, COUNT(*) AS cnt FROM articles GROUP BY %s", g.column, g.column)
		if err := s.db.SelectContext(ctx, &rows, query); err != nil {
			return domain.ArticleStats{}, fmt.Errorf("count articles by %s: %w", g.column, err)
		}
		for _, r := range rows {
			g.dest[r.Name] = r.Count
		}
	}

	// aggregates lose the column type, select the row to get a proper time
	err := s.db.GetContext(ctx, &res.Latest, "SELECT created_at FROM articles ORDER BY created_at DESC LIMIT 1")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.ArticleStats{}, fmt.Errorf("get latest article: %w", err)
	}
	return res, nil
}

// Cleanup deletes articles created before olderThan, returns the number of deleted articles
func (s *SQLite) Cleanup(ctx context.Context, olderThan time.Time) (int64, error) {
	var deleted int64
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		res, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE created_at < ?", olderThan.UTC())
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("delete articles: %w", err)}
		}
		deleted, err = res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get rows affected: %w", err)}
		}
		return nil
	})
	if err != nil {
		var ce *criticalError
		if errors.As(err, &ce) {
			return 0, ce.err
		}
		return 0, fmt.Errorf("cleanup articles: %w", err)
	}
	return deleted, nil
}

// Sources returns distinct source names of stored articles
func (s *SQLite) Sources(ctx context.Context) ([]string, error) {
	res := []string{}
	if err := s.db.SelectContext(ctx, &res, "SELECT DISTINCT source FROM articles ORDER BY source"); err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}
	return res, nil
}

// Ping verifies the database connection
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (r articleSQL) toDomain() domain.ProcessedArticle {
	authors := []string(r.Authors)
	if authors == nil {
		authors = []string{}
	}
	return domain.ProcessedArticle{
		Title:     r.Title,
		Summary:   r.Summary,
		Content:   r.Content,
		Authors:   authors,
		Published: r.Published,
		Source:    r.Source,
		URL:       r.URL,
		ImageURL:  r.ImageURL,
		Category:  r.Category,
		URLHash:   r.URLHash,
		CreatedAt: r.CreatedAt,
	}
}
