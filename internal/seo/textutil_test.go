package seo

import (
	"strings"
	"testing"
)

func TestAbsoluteURL(t *testing.T) {
	base := "https://example.com"

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "bare path", raw: "cover.jpg", want: "https://example.com/cover.jpg"},
		{name: "rooted path", raw: "/images/cover.jpg", want: "https://example.com/images/cover.jpg"},
		{name: "already absolute", raw: "https://cdn.example.com/a.jpg", want: "https://cdn.example.com/a.jpg"},
		{name: "http absolute", raw: "http://cdn.example.com/a.jpg", want: "http://cdn.example.com/a.jpg"},
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: "   ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AbsoluteURL(tc.raw, base)
			if got != tc.want {
				t.Fatalf("AbsoluteURL(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestAbsoluteURLIdempotent(t *testing.T) {
	base := "https://example.com"
	for _, raw := range []string{"cover.jpg", "/a/b.png", "https://cdn.example.com/x.jpg", ""} {
		once := AbsoluteURL(raw, base)
		twice := AbsoluteURL(once, base)
		if once != twice {
			t.Fatalf("AbsoluteURL not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestSafeISODate(t *testing.T) {
	if got := SafeISODate("not-a-date"); got != "" {
		t.Fatalf("expected empty result for invalid date, got %q", got)
	}
	if got := SafeISODate(""); got != "" {
		t.Fatalf("expected empty result for empty input, got %q", got)
	}
	if got := SafeISODate("2024-01-01"); got != "2024-01-01T00:00:00Z" {
		t.Fatalf("unexpected ISO date: %q", got)
	}
	if got := SafeISODate("2024-05-01T12:30:00+02:00"); got != "2024-05-01T10:30:00Z" {
		t.Fatalf("expected UTC normalisation, got %q", got)
	}
}

func TestStripAndTruncate(t *testing.T) {
	short := StripAndTruncate("<p>Hello <b>world</b></p>", 160)
	if short != "Hello world" {
		t.Fatalf("expected stripped text, got %q", short)
	}

	long := strings.Repeat("word ", 100)
	truncated := StripAndTruncate(long, 160)
	if len([]rune(truncated)) > 160 {
		t.Fatalf("truncated text exceeds limit: %d runes", len([]rune(truncated)))
	}
	if !strings.HasSuffix(truncated, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", truncated)
	}

	// Re-truncating already truncated text must not grow it.
	again := StripAndTruncate(truncated, 160)
	if again != truncated {
		t.Fatalf("truncation not idempotent: %q != %q", again, truncated)
	}
}

func TestStripAndTruncateUnescapesEntities(t *testing.T) {
	got := StripAndTruncate("<p>Drum &amp; Bass</p>", 160)
	if got != "Drum & Bass" {
		t.Fatalf("expected entities unescaped, got %q", got)
	}
}

func TestUniqueKeywords(t *testing.T) {
	got := UniqueKeywords([]string{"House", "house", "Techno"})
	if len(got) != 2 || got[0] != "House" || got[1] != "Techno" {
		t.Fatalf("unexpected keywords: %v", got)
	}

	if got := UniqueKeywords([]string{"", "  "}); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}

	got = UniqueKeywords([]string{" trim me ", "TRIM ME", "other"})
	if len(got) != 2 || got[0] != "trim me" {
		t.Fatalf("expected trimmed first occurrence to win, got %v", got)
	}
}
