package content

import (
	"hash/fnv"
	"net/http"
)

const pageAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"

var pageLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,es;q=0.8",
	"en-US,en;q=0.9,fr;q=0.8",
	"en-US,en;q=0.9,de;q=0.8",
}

// setPageHeaders makes a page request look like a top-level browser navigation.
// Accept-Language is picked per host so repeated requests to one site stay consistent.
// Accept-Encoding is left to the transport so responses are transparently decompressed.
func setPageHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", pageAccept)
	req.Header.Set("Accept-Language", hostLanguage(req.URL.Hostname()))
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
}

func hostLanguage(host string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(host))
	return pageLanguages[h.Sum32()%uint32(len(pageLanguages))]
}
