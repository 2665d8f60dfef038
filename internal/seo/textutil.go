package seo

import (
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// DefaultDescriptionLimit is the character budget for derived descriptions.
	DefaultDescriptionLimit = 160

	truncationEllipsis = "…"
)

var stripPolicy = bluemonday.StrictPolicy()

// AbsoluteURL resolves raw against base and returns an absolute URL. Absolute
// inputs pass through unchanged, so applying it twice is a no-op. Empty or
// unparsable inputs yield the empty string.
func AbsoluteURL(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	baseURL, err := url.Parse(strings.TrimSpace(base))
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return baseURL.ResolveReference(ref).String()
}

// dateLayouts are the formats accepted by SafeISODate, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// SafeISODate coerces a date-ish string to ISO-8601 (RFC 3339, UTC). Values
// that fail to parse yield the empty string; this never panics or errors so
// malformed store data simply drops the corresponding tag.
func SafeISODate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return ""
}

// ISODate formats a store timestamp as ISO-8601, or "" for the zero value.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// StripAndTruncate removes HTML tags, collapses whitespace, and truncates the
// remainder to limit runes with a trailing ellipsis. Text already within the
// limit is returned unchanged apart from tag stripping, so the function is
// idempotent on its own output.
func StripAndTruncate(markup string, limit int) string {
	if limit <= 0 {
		limit = DefaultDescriptionLimit
	}
	text := html.UnescapeString(stripPolicy.Sanitize(markup))
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	trimmed := strings.TrimRight(string(runes[:limit-1]), " ")
	return trimmed + truncationEllipsis
}

// UniqueKeywords removes duplicates case-insensitively while preserving the
// order of first occurrence. Blank entries are dropped.
func UniqueKeywords(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	result := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, keyword := range keywords {
		trimmed := strings.TrimSpace(keyword)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// firstNonEmpty returns the first argument that is non-blank after trimming.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
