package parser

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// collapse folds runs of whitespace into single spaces and trims the ends.
func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// normalize lowercases and tidies the raw body, then strips an optional
// leading explicit type tag. A tag is the first whitespace-delimited token
// matching one of the seven type names, compared case-insensitively.
func normalize(body string) (text string, tag ActivityType, hasTag bool) {
	text = collapse(strings.ToLower(body))
	if text == "" {
		return "", "", false
	}

	first, rest, _ := strings.Cut(text, " ")
	if t, ok := tagByName[first]; ok {
		return strings.TrimSpace(rest), t, true
	}
	return text, "", false
}
