package service

import "strings"

var imageIndicators = []string{
	".jpg", ".jpeg", ".png", ".webp", ".gif", ".bmp",
	"images.", "img.", "photo.", "media.", "cdn.",
	"amazonaws.com", "cloudinary.com", "imgix.net",
}

// IsValidImageURL reports whether u looks like a usable article image url
func IsValidImageURL(u string) bool {
	u = strings.TrimSpace(u)
	lower := strings.ToLower(u)
	if u == "" || lower == "null" || lower == "none" || strings.Contains(lower, "placeholder") || len(u) < 10 {
		return false
	}
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	for _, ind := range imageIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}
