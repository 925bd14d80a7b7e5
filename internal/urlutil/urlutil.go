package urlutil

import (
	"net/url"
	"strings"
)

// Normalize canonicalizes a feed URL for deduplication: trims whitespace
// and drops the fragment. Unparseable input is returned trimmed so callers
// can still store what the document said.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		if idx := strings.Index(trimmed, "#"); idx >= 0 {
			return trimmed[:idx]
		}
		return trimmed
	}
	parsed.Fragment = ""
	return parsed.String()
}

// IsHTTP reports whether the URL uses an http or https scheme, the only
// schemes the refresher will fetch.
func IsHTTP(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}
