package domain

import "time"

// FeedSource is a configured syndication feed
type FeedSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ParsedFeed represents a parsed RSS/Atom feed
type ParsedFeed struct {
	Title       string
	Description string
	Link        string
	Entries     []FeedEntry
}

// FeedEntry is a single feed entry with the fields the feed adapter needs.
// ImageURL holds feed-native image metadata (media:thumbnail, media:content, enclosure) if any.
type FeedEntry struct {
	GUID      string
	Title     string
	Link      string
	Summary   string
	Content   string
	Authors   []string
	Published time.Time
	ImageURL  string
}
