package domain

import (
	"slices"
	"strings"
	"time"
)

// RawArticle is an article as delivered by a source adapter, before enrichment.
// Produced once per fetch and discarded at the end of the cycle.
type RawArticle struct {
	Title     string
	Content   string
	URL       string
	Source    string
	ImageURL  string
	Authors   []string
	Published time.Time
}

// ProcessedArticle is an enriched article ready for persistence
type ProcessedArticle struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Authors   []string  `json:"author"`
	Published time.Time `json:"published_date"`
	Source    string    `json:"source"`
	URL       string    `json:"url"`
	ImageURL  string    `json:"image_url,omitempty"`
	Category  string    `json:"category"`
	URLHash   string    `json:"url_hash"`
	CreatedAt time.Time `json:"created_at"`
}

// ProcessResult is the outcome of enriching a single raw article
type ProcessResult struct {
	Article  ProcessedArticle
	Degraded bool     // at least one enrichment step fell back to a default
	Notes    []string // what fell back and why
}

// ArticleFilter defines query criteria for stored articles
type ArticleFilter struct {
	Source   string
	Category string
	Since    time.Time
	Limit    int
	Offset   int
}

// ArticleStats summarizes stored articles
type ArticleStats struct {
	Total      int            `json:"total"`
	BySource   map[string]int `json:"by_source"`
	ByCategory map[string]int `json:"by_category"`
	Latest     time.Time      `json:"latest"`
}

// CategoryGeneral is the fallback category
const CategoryGeneral = "general"

// Categories is the closed set of category labels, general last
var Categories = []string{"technology", "sports", "health", "business", "entertainment", "science", CategoryGeneral}

// NormalizeCategory maps arbitrary classifier output to a known category.
// The first known label contained in the lowercased text wins, general otherwise.
func NormalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryGeneral
	}
	for _, c := range Categories {
		if s == c {
			return c
		}
	}
	for _, c := range Categories {
		if strings.Contains(s, c) {
			return c
		}
	}
	return CategoryGeneral
}

// IsCategory reports whether s is one of the known categories
func IsCategory(s string) bool {
	return slices.Contains(Categories, s)
}
