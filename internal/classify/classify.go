// Package classify holds the URL predicates that gate the summarization
// pipeline. They are pure string checks with no network access.
package classify

import (
	"regexp"
	"strings"
)

// videoFragments are matched as raw substrings against the whole URL, not
// against a parsed hostname. A query parameter containing one of these will
// match too; that is the documented behavior.
var videoFragments = []string{
	"youtube.com",
	"youtu.be",
	"vimeo.com",
	"dailymotion.com",
	"twitch.tv",
}

var urlPattern = regexp.MustCompile(`^https?://\S+$`)

// IsVideoURL reports whether the URL points at a known video platform.
func IsVideoURL(rawURL string) bool {
	for _, fragment := range videoFragments {
		if strings.Contains(rawURL, fragment) {
			return true
		}
	}
	return false
}

// IsPDFURL reports whether the URL ends with ".pdf".
func IsPDFURL(rawURL string) bool {
	return strings.HasSuffix(rawURL, ".pdf")
}

// IsValidURL reports whether the URL is an http(s) URL with no whitespace.
func IsValidURL(rawURL string) bool {
	return urlPattern.MatchString(rawURL)
}
