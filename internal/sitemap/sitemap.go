// Package sitemap renders robots.txt, XML urlset, and sitemapindex documents
// for the marketing site. All serializers are pure string builders: entries
// in, escaped XML out, no I/O.
package sitemap

import (
	"strconv"
	"strings"
	"time"

	"github.com/grouptherapyeg/site-api/internal/seo"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

	urlsetNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	imageNamespace  = "http://www.google.com/schemas/sitemap-image/1.1"
	videoNamespace  = "http://www.google.com/schemas/sitemap-video/1.1"
)

// Image is a Google image sitemap extension entry.
type Image struct {
	Loc     string
	Title   string
	Caption string
}

// Video is a Google video sitemap extension entry.
type Video struct {
	ThumbnailLoc    string
	Title           string
	Description     string
	ContentLoc      string
	PlayerLoc       string
	DurationSec     int
	PublicationDate string
}

// Entry is one <url> element in a urlset document.
type Entry struct {
	Loc        string
	LastMod    string
	ChangeFreq string
	Priority   string
	Images     []Image
	Videos     []Video
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"'", "&#39;",
)

func escape(value string) string {
	return xmlEscaper.Replace(value)
}

// URLSet renders a <urlset> document. The image and video extension
// namespaces are declared only when at least one entry uses the extension.
func URLSet(entries []Entry) string {
	hasImages, hasVideos := false, false
	for _, entry := range entries {
		if len(entry.Images) > 0 {
			hasImages = true
		}
		if len(entry.Videos) > 0 {
			hasVideos = true
		}
	}

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString("\n<urlset xmlns=\"")
	b.WriteString(urlsetNamespace)
	b.WriteString(`"`)
	if hasImages {
		b.WriteString(" xmlns:image=\"")
		b.WriteString(imageNamespace)
		b.WriteString(`"`)
	}
	if hasVideos {
		b.WriteString(" xmlns:video=\"")
		b.WriteString(videoNamespace)
		b.WriteString(`"`)
	}
	b.WriteString(">\n")

	for _, entry := range entries {
		writeEntry(&b, entry)
	}

	b.WriteString("</urlset>\n")
	return b.String()
}

func writeEntry(b *strings.Builder, entry Entry) {
	loc := strings.TrimSpace(entry.Loc)
	if loc == "" {
		return
	}
	b.WriteString("  <url>\n")
	writeTag(b, "    ", "loc", loc)
	if lastmod := seo.SafeISODate(entry.LastMod); lastmod != "" {
		writeTag(b, "    ", "lastmod", lastmod)
	}
	if entry.ChangeFreq != "" {
		writeTag(b, "    ", "changefreq", entry.ChangeFreq)
	}
	if entry.Priority != "" {
		writeTag(b, "    ", "priority", entry.Priority)
	}
	for _, image := range entry.Images {
		writeImage(b, image)
	}
	for _, video := range entry.Videos {
		writeVideo(b, video)
	}
	b.WriteString("  </url>\n")
}

func writeImage(b *strings.Builder, image Image) {
	if strings.TrimSpace(image.Loc) == "" {
		return
	}
	b.WriteString("    <image:image>\n")
	writeTag(b, "      ", "image:loc", image.Loc)
	if image.Title != "" {
		writeTag(b, "      ", "image:title", image.Title)
	}
	if image.Caption != "" {
		writeTag(b, "      ", "image:caption", image.Caption)
	}
	b.WriteString("    </image:image>\n")
}

func writeVideo(b *strings.Builder, video Video) {
	if strings.TrimSpace(video.ThumbnailLoc) == "" || strings.TrimSpace(video.Title) == "" {
		return
	}
	b.WriteString("    <video:video>\n")
	writeTag(b, "      ", "video:thumbnail_loc", video.ThumbnailLoc)
	writeTag(b, "      ", "video:title", video.Title)
	writeTag(b, "      ", "video:description", video.Description)
	if video.ContentLoc != "" {
		writeTag(b, "      ", "video:content_loc", video.ContentLoc)
	}
	if video.PlayerLoc != "" {
		writeTag(b, "      ", "video:player_loc", video.PlayerLoc)
	}
	if video.DurationSec > 0 {
		writeTag(b, "      ", "video:duration", strconv.Itoa(video.DurationSec))
	}
	if published := seo.SafeISODate(video.PublicationDate); published != "" {
		writeTag(b, "      ", "video:publication_date", published)
	}
	b.WriteString("    </video:video>\n")
}

func writeTag(b *strings.Builder, indent, name, value string) {
	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(escape(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">\n")
}

// childSitemaps is the fixed set of per-type sitemaps the index links.
var childSitemaps = []string{
	"sitemap-pages.xml",
	"sitemap-posts.xml",
	"sitemap-releases.xml",
	"sitemap-events.xml",
	"sitemap-artists.xml",
	"sitemap-videos.xml",
}

// Index renders the <sitemapindex> document listing the fixed child sitemaps.
// Each child is stamped with now; content freshness is not inspected.
func Index(baseURL string, now time.Time) string {
	stamp := now.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString("\n<sitemapindex xmlns=\"")
	b.WriteString(urlsetNamespace)
	b.WriteString("\">\n")
	for _, child := range childSitemaps {
		b.WriteString("  <sitemap>\n")
		writeTag(&b, "    ", "loc", strings.TrimRight(baseURL, "/")+"/"+child)
		writeTag(&b, "    ", "lastmod", stamp)
		b.WriteString("  </sitemap>\n")
	}
	b.WriteString("</sitemapindex>\n")
	return b.String()
}
