package seo

import "strings"

// RouteKind identifies the content category a URL path resolves to.
type RouteKind string

const (
	// RouteHome is the site root.
	RouteHome RouteKind = "home"
	// RoutePost is a news article detail page.
	RoutePost RouteKind = "post"
	// RouteRelease is a catalogue release detail page.
	RouteRelease RouteKind = "release"
	// RouteEvent is an event detail page.
	RouteEvent RouteKind = "event"
	// RouteArtist is an artist profile page.
	RouteArtist RouteKind = "artist"
	// RouteStatic is one of the fixed legal pages.
	RouteStatic RouteKind = "static"
	// RouteSection is any other top-level section of the site.
	RouteSection RouteKind = "section"
)

// Route is the classification of a request path. Detail routes carry the slug
// of the record they address; section and static routes carry the section slug.
type Route struct {
	Kind RouteKind
	Slug string
}

var legalPageSlugs = map[string]struct{}{
	"terms":   {},
	"privacy": {},
	"cookies": {},
}

var detailSections = map[string]RouteKind{
	"news":     RoutePost,
	"releases": RouteRelease,
	"events":   RouteEvent,
	"artists":  RouteArtist,
}

// ParseRoute classifies a URL path into exactly one Route. It is pure and
// total: every input maps to a variant, queries and fragments are ignored,
// and only the first two path segments participate in classification.
func ParseRoute(pathname string) Route {
	if i := strings.IndexAny(pathname, "?#"); i >= 0 {
		pathname = pathname[:i]
	}

	var segments []string
	for _, segment := range strings.Split(pathname, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	if len(segments) == 0 {
		return Route{Kind: RouteHome}
	}

	first := segments[0]
	if _, ok := legalPageSlugs[first]; ok {
		return Route{Kind: RouteStatic, Slug: first}
	}
	if kind, ok := detailSections[first]; ok && len(segments) > 1 {
		return Route{Kind: kind, Slug: segments[1]}
	}
	return Route{Kind: RouteSection, Slug: first}
}
