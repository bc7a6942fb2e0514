// Package images picks a representative image out of an HTML document.
//
// Candidates come from <img> elements and from Open Graph / Twitter card meta tags. Element images are
// filtered out when they look like chrome (icons, logos, banners, ads), declare a size below 200px or use an
// icon/vector format. Surviving images that carry article-like markers in class, id or alt are scored and
// compete for the top spot; meta images get fixed scores that always win.
package images

import (
	"net/url"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	baseScore         = 10
	maxHeuristicScore = 89 // keeps heuristic candidates below meta images
	ogImageScore      = 100
	twitterImageScore = 90
	minDimension      = 200
)

// blockedTokens reject an image if its resolved URL contains any of them
var blockedTokens = []string{
	"icon", "logo", "avatar", "profile", "thumbnail", "banner", "header",
	"footer", "sidebar", "social", "share", "comment", "widget",
}

// blockedWords are matched only as whole words, "ads" must not reject ".../uploads/..."
var blockedWords = []string{"ad", "ads"}

// articleKeywords mark an image as likely belonging to the article body
var articleKeywords = []string{"article", "content", "main", "hero", "featured", "lead", "primary", "story", "news"}

var rejectedExt = map[string]bool{".ico": true, ".svg": true, ".gif": true}
var photoExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// Candidate is a discovered image with its relevance score
type Candidate struct {
	URL   string `json:"url"`
	Score int    `json:"score"`
}

// Result of image selection.
// Candidates are scored and de-duplicated, Images lists every image that passed filtering in document order.
type Result struct {
	Candidates []Candidate
	Images     []string
	Best       string
}

// Select parses markup and picks the best image, resolving relative references against baseURL.
// It never fails, unparsable markup yields an empty result.
func Select(markup, baseURL string) Result {
	if strings.TrimSpace(markup) == "" {
		return Result{}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Result{}
	}
	return SelectFromDocument(doc, baseURL)
}

// SelectFromDocument is Select for an already parsed document
func SelectFromDocument(doc *goquery.Document, baseURL string) (res Result) {
	defer func() {
		// malformed attributes must never break the caller
		if r := recover(); r != nil {
			res = Result{}
		}
	}()

	base, _ := url.Parse(baseURL)
	set := candidateSet{index: map[string]int{}}
	seenImages := map[string]bool{}

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := imageSource(img)
		if src == "" {
			return
		}
		resolved := Resolve(base, src)
		if resolved == "" || !acceptable(img, resolved) {
			return
		}
		if !seenImages[resolved] {
			seenImages[resolved] = true
			res.Images = append(res.Images, resolved)
		}
		if prominent(img) {
			set.add(resolved, score(img, resolved))
		}
	})

	if og := metaContent(doc, "og:image"); og != "" {
		if u := Resolve(base, og); u != "" {
			set.add(u, ogImageScore)
		}
	}
	if tw := metaContent(doc, "twitter:image"); tw != "" {
		if u := Resolve(base, tw); u != "" {
			set.add(u, twitterImageScore)
		}
	}

	res.Candidates = set.items
	res.Best = set.best()
	if res.Best == "" && len(res.Images) > 0 {
		res.Best = res.Images[0]
	}
	return res
}

// Resolve converts an image reference to an absolute URL.
// Protocol-relative references get the base scheme (https when unknown), root-relative ones are joined with the
// base origin and anything else is resolved against the base URL. Returns empty string if unresolvable.
func Resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "data:") {
		return ""
	}

	switch {
	case strings.HasPrefix(ref, "//"):
		scheme := "https"
		if base != nil && base.Scheme != "" {
			scheme = base.Scheme
		}
		return scheme + ":" + ref
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	}

	if base == nil || base.Host == "" {
		return ""
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if strings.HasPrefix(ref, "/") {
		origin := &url.URL{Scheme: base.Scheme, Host: base.Host}
		return origin.ResolveReference(refURL).String()
	}
	return base.ResolveReference(refURL).String()
}

// imageSource returns the first non-empty of src, data-src and data-lazy-src
func imageSource(img *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
		if v := strings.TrimSpace(img.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return ""
}

// acceptable applies the blocklist, the minimal size and the extension filters
func acceptable(img *goquery.Selection, resolved string) bool {
	lower := strings.ToLower(resolved)
	for _, token := range blockedTokens {
		if strings.Contains(lower, token) {
			return false
		}
	}
	for _, word := range splitWords(lower) {
		if slices.Contains(blockedWords, word) {
			return false
		}
	}

	if w, ok := dimension(img, "width"); ok && w < minDimension {
		return false
	}
	if h, ok := dimension(img, "height"); ok && h < minDimension {
		return false
	}

	return !rejectedExt[extension(resolved)]
}

// prominent reports whether an image carries an article marker in class, id or alt
func prominent(img *goquery.Selection) bool {
	class, id, alt := markers(img)
	for _, kw := range articleKeywords {
		if strings.Contains(class, kw) || strings.Contains(id, kw) || strings.Contains(alt, kw) {
			return true
		}
	}
	return false
}

func score(img *goquery.Selection, resolved string) int {
	result := baseScore

	w, wok := dimension(img, "width")
	h, hok := dimension(img, "height")
	if wok && hok {
		switch {
		case w >= 400 && h >= 300:
			result += 30
		case w >= 300 && h >= 200:
			result += 20
		case w >= 200 && h >= 150:
			result += 10
		}
	}

	class, id, alt := markers(img)
	for _, kw := range articleKeywords {
		if strings.Contains(class, kw) {
			result += 25
		}
		if strings.Contains(id, kw) {
			result += 20
		}
		if strings.Contains(alt, kw) {
			result += 15
		}
	}

	if photoExt[extension(resolved)] {
		result += 5
	}
	return min(result, maxHeuristicScore)
}

func markers(img *goquery.Selection) (class, id, alt string) {
	return strings.ToLower(img.AttrOr("class", "")), strings.ToLower(img.AttrOr("id", "")),
		strings.ToLower(img.AttrOr("alt", ""))
}

// dimension parses a declared width/height attribute, "640px" counts as 640
func dimension(img *goquery.Selection, attr string) (int, bool) {
	v, ok := img.Attr(attr)
	if !ok {
		return 0, false
	}
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// extension returns the lowercased extension of the URL path, query and fragment ignored
func extension(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	return strings.ToLower(path.Ext(p))
}

// splitWords breaks a URL into alphanumeric runs
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

func metaContent(doc *goquery.Document, name string) string {
	sel := doc.Find(`meta[property="` + name + `"]`).First()
	if sel.Length() == 0 {
		sel = doc.Find(`meta[name="` + name + `"]`).First()
	}
	return strings.TrimSpace(sel.AttrOr("content", ""))
}

// candidateSet keeps candidates unique by URL in first-seen order, retaining the highest score
type candidateSet struct {
	items []Candidate
	index map[string]int
}

func (s *candidateSet) add(u string, sc int) {
	if i, ok := s.index[u]; ok {
		s.items[i].Score = max(s.items[i].Score, sc)
		return
	}
	s.index[u] = len(s.items)
	s.items = append(s.items, Candidate{URL: u, Score: sc})
}

// best returns the highest scored URL, the earliest wins a tie
func (s *candidateSet) best() string {
	bestIdx := -1
	for i, c := range s.items {
		if bestIdx == -1 || c.Score > s.items[bestIdx].Score {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return ""
	}
	return s.items[bestIdx].URL
}
