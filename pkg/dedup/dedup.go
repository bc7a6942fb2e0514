// Package dedup removes duplicate articles within a fetch cycle and keeps track of urls
// delivered in earlier cycles.
package dedup

import (
	"crypto/md5" //nolint:gosec // title fingerprint, not a security boundary
	"encoding/hex"
	"strings"

	"github.com/umputun/pulsenews/pkg/domain"
)

// Dedupe drops articles whose url or case-insensitive title was already seen in the same list.
// First occurrence wins and the input order is preserved.
func Dedupe(articles []domain.RawArticle) []domain.RawArticle {
	seenURLs := make(map[string]struct{}, len(articles))
	seenTitles := make(map[string]struct{}, len(articles))
	res := make([]domain.RawArticle, 0, len(articles))

	for _, a := range articles {
		if _, ok := seenURLs[a.URL]; ok {
			continue
		}
		th := TitleHash(a.Title)
		if _, ok := seenTitles[th]; ok {
			continue
		}
		seenURLs[a.URL] = struct{}{}
		seenTitles[th] = struct{}{}
		res = append(res, a)
	}
	return res
}

// TitleHash returns the hex md5 of the lowercased title
func TitleHash(title string) string {
	sum := md5.Sum([]byte(strings.ToLower(title))) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}
