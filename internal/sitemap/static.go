package sitemap

import "strings"

// staticSection is one hardcoded top-level page in the pages sitemap.
type staticSection struct {
	Path       string
	ChangeFreq string
	Priority   string
}

// staticSections lists the fixed top-level pages of the site, ordered by
// crawl priority. Editor-managed static pages extend this list at the
// handler layer; the three legal slugs live here and are excluded there.
var staticSections = []staticSection{
	{Path: "/", ChangeFreq: "daily", Priority: "1.0"},
	{Path: "/news", ChangeFreq: "daily", Priority: "0.9"},
	{Path: "/releases", ChangeFreq: "weekly", Priority: "0.9"},
	{Path: "/artists", ChangeFreq: "weekly", Priority: "0.8"},
	{Path: "/events", ChangeFreq: "weekly", Priority: "0.8"},
	{Path: "/radio", ChangeFreq: "weekly", Priority: "0.7"},
	{Path: "/about", ChangeFreq: "monthly", Priority: "0.5"},
	{Path: "/contact", ChangeFreq: "monthly", Priority: "0.5"},
	{Path: "/demos", ChangeFreq: "monthly", Priority: "0.5"},
	{Path: "/terms", ChangeFreq: "yearly", Priority: "0.3"},
	{Path: "/privacy", ChangeFreq: "yearly", Priority: "0.3"},
	{Path: "/cookies", ChangeFreq: "yearly", Priority: "0.3"},
}

// legalSlugs are static-page slugs already covered by the fixed section list.
var legalSlugs = map[string]struct{}{
	"terms":   {},
	"privacy": {},
	"cookies": {},
}

// IsLegalSlug reports whether slug belongs to the fixed legal page set.
func IsLegalSlug(slug string) bool {
	_, ok := legalSlugs[strings.TrimSpace(slug)]
	return ok
}

// StaticEntries returns the hardcoded pages-sitemap entries rooted at baseURL.
func StaticEntries(baseURL string) []Entry {
	base := strings.TrimRight(baseURL, "/")
	entries := make([]Entry, 0, len(staticSections))
	for _, section := range staticSections {
		loc := base + section.Path
		if section.Path == "/" {
			loc = base + "/"
		}
		entries = append(entries, Entry{
			Loc:        loc,
			ChangeFreq: section.ChangeFreq,
			Priority:   section.Priority,
		})
	}
	return entries
}
