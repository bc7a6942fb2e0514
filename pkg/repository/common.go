package repository

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/umputun/pulsenews/pkg/domain"
)

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// authorsSQL is a JSON array of author names for SQL operations
type authorsSQL []string

// Value implements driver.Valuer for database storage
func (a authorsSQL) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (a *authorsSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*a = authorsSQL{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*a = authorsSQL{}
		return nil
	}
	if len(data) == 0 {
		*a = authorsSQL{}
		return nil
	}
	return json.Unmarshal(data, a)
}

// matches reports whether an article passes the filter, used by stores without a query engine
func matches(a domain.ProcessedArticle, f domain.ArticleFilter) bool {
	if f.Source != "" && a.Source != f.Source {
		return false
	}
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if !f.Since.IsZero() && a.CreatedAt.Before(f.Since) {
		return false
	}
	return true
}

// page applies offset and limit, limit <= 0 means no limit
func page(articles []domain.ProcessedArticle, offset, limit int) []domain.ProcessedArticle {
	if offset > 0 {
		if offset >= len(articles) {
			return []domain.ProcessedArticle{}
		}
		articles = articles[offset:]
	}
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
