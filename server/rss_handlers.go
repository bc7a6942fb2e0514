package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/umputun/pulsenews/pkg/domain"
	"github.com/umputun/pulsenews/pkg/service"
)

const defaultRSSLimit = 50

// rssHandler serves RSS feed of latest articles.
// Supports both /rss/{category} and /rss?category=... patterns, "top" means all categories.
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if category == "" {
		category = r.URL.Query().Get("category")
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "top" {
		category = ""
	}

	q := service.ArticleQuery{ArticleFilter: domain.ArticleFilter{Category: category, Limit: defaultRSSLimit}}
	articles, _, err := s.news.Articles(r.Context(), q)
	if err != nil {
		log.Printf("[ERROR] failed to get articles for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := s.generator.GenerateRSS(articles, category)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler exports configured feeds as OPML
func (s *Server) opmlHandler(w http.ResponseWriter, r *http.Request) {
	info, err := s.news.Sources(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get sources for OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	opml, err := s.generator.GenerateOPML(info.Feeds)
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
