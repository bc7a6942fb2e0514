package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Metadata collects page meta tags: og:* as og_*, twitter:* as twitter_*,
// plus description, keywords, author and publish_date (article:published_time)
func Metadata(markup string) map[string]string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return map[string]string{}
	}
	return metadataFromDocument(doc)
}

func metadataFromDocument(doc *goquery.Document) map[string]string {
	res := map[string]string{}

	doc.Find("meta").Each(func(_ int, m *goquery.Selection) {
		content := strings.TrimSpace(m.AttrOr("content", ""))
		if content == "" {
			return
		}
		prop := strings.TrimSpace(m.AttrOr("property", ""))
		name := strings.ToLower(strings.TrimSpace(m.AttrOr("name", "")))

		switch {
		case strings.HasPrefix(prop, "og:"):
			setOnce(res, "og_"+strings.TrimPrefix(prop, "og:"), content)
		case strings.HasPrefix(name, "twitter:"):
			setOnce(res, "twitter_"+strings.TrimPrefix(name, "twitter:"), content)
		case prop == "article:published_time":
			setOnce(res, "publish_date", content)
		case name == "description", name == "keywords", name == "author":
			setOnce(res, name, content)
		}
	})
	return res
}

// setOnce keeps the first value of repeated tags
func setOnce(m map[string]string, key, val string) {
	if _, ok := m[key]; !ok {
		m[key] = val
	}
}
