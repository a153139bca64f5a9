package models

import (
	"regexp"
	"strings"
)

var (
	// slugStrip removes everything that is not a word character, whitespace or hyphen.
	slugStrip = regexp.MustCompile(`[^\w\s-]`)
	// slugCollapse folds runs of whitespace, underscores and hyphens into one separator.
	slugCollapse = regexp.MustCompile(`[\s_-]+`)
)

// Slugify derives a URL-safe slug from a title: lower-case, stripped of
// punctuation, with single hyphens as separators and none at either end.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
