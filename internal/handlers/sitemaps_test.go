package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/temoto/robotstxt"

	domain "github.com/grouptherapyeg/site-api/internal/domain"
)

func serveCrawler(t *testing.T, h *CrawlerHandlers, target, host string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(WithCrawlerHandlers(h))
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Host = host
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRobotsHandler(t *testing.T) {
	h := NewCrawlerHandlers(WithCrawlerContentService(&stubContentService{}))

	rr := serveCrawler(t, h, "/robots.txt", "grouptherapyeg.com")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if got, want := rr.Header().Get("Content-Type"), "text/plain; charset=utf-8"; got != want {
		t.Fatalf("expected content type %q, got %q", want, got)
	}
	if got, want := rr.Header().Get("Cache-Control"), "public, max-age=0, s-maxage=3600"; got != want {
		t.Fatalf("expected cache control %q, got %q", want, got)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "Sitemap: https://www.grouptherapyeg.com/sitemap.xml") {
		t.Fatalf("expected canonical sitemap pointer, got %q", body)
	}

	data, err := robotstxt.FromString(body)
	if err != nil {
		t.Fatalf("robots body failed to parse: %v", err)
	}
	agent := data.FindGroup("Googlebot")
	if !agent.Test("/news/some-post") {
		t.Fatalf("expected /news crawlable")
	}
	if agent.Test("/admin/posts") {
		t.Fatalf("expected /admin excluded from crawling")
	}
}

func TestSitemapIndexHandler(t *testing.T) {
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	h := NewCrawlerHandlers(
		WithCrawlerContentService(&stubContentService{}),
		WithCrawlerClock(func() time.Time { return now }),
	)

	rr := serveCrawler(t, h, "/sitemap.xml", "www.grouptherapyeg.com")

	body := rr.Body.String()
	for _, child := range []string{"sitemap-pages.xml", "sitemap-posts.xml", "sitemap-releases.xml", "sitemap-events.xml", "sitemap-artists.xml", "sitemap-videos.xml"} {
		if !strings.Contains(body, "https://www.grouptherapyeg.com/"+child) {
			t.Fatalf("expected index to list %s, got %q", child, body)
		}
	}
	if !strings.Contains(body, "<lastmod>2025-05-01T00:00:00Z</lastmod>") {
		t.Fatalf("expected index stamped with clock, got %q", body)
	}
}

func TestSitemapPagesHandler(t *testing.T) {
	svc := &stubContentService{
		staticPages: []domain.StaticPage{
			{Slug: "label-history", UpdatedAt: time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)},
			{Slug: "privacy"},
		},
	}
	h := NewCrawlerHandlers(WithCrawlerContentService(svc))

	rr := serveCrawler(t, h, "/sitemap-pages.xml", "www.grouptherapyeg.com")
	body := rr.Body.String()

	if !strings.Contains(body, "<loc>https://www.grouptherapyeg.com/</loc>") {
		t.Fatalf("expected root entry, got %q", body)
	}
	if !strings.Contains(body, "<loc>https://www.grouptherapyeg.com/label-history</loc>") {
		t.Fatalf("expected editor page entry, got %q", body)
	}
	if !strings.Contains(body, "<lastmod>2025-04-02T00:00:00Z</lastmod>") {
		t.Fatalf("expected editor page lastmod, got %q", body)
	}
	if got := strings.Count(body, "/privacy</loc>"); got != 1 {
		t.Fatalf("expected legal slug listed once via fixed sections, got %d", got)
	}
}

func TestSitemapArtistsImageExtension(t *testing.T) {
	svc := &stubContentService{
		artists: []domain.Artist{{
			Slug:     "dj-nova",
			Name:     "DJ Nova",
			ImageURL: "https://cdn.grouptherapyeg.com/a.jpg",
		}},
	}
	h := NewCrawlerHandlers(WithCrawlerContentService(svc))

	rr := serveCrawler(t, h, "/sitemap-artists.xml", "www.grouptherapyeg.com")
	body := rr.Body.String()

	if !strings.Contains(body, `xmlns:image="http://www.google.com/schemas/sitemap-image/1.1"`) {
		t.Fatalf("expected image namespace declared, got %q", body)
	}
	if !strings.Contains(body, "<image:loc>https://cdn.grouptherapyeg.com/a.jpg</image:loc>") {
		t.Fatalf("expected image loc element, got %q", body)
	}
	if !strings.Contains(body, "<image:title>DJ Nova</image:title>") {
		t.Fatalf("expected image title element, got %q", body)
	}
}

func TestSitemapPostsRelativeCoverAbsolutized(t *testing.T) {
	svc := &stubContentService{
		posts: []domain.Post{{
			Slug:        "launch-party",
			Title:       "Launch Party",
			CoverURL:    "/images/launch.jpg",
			PublishedAt: time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC),
		}},
	}
	h := NewCrawlerHandlers(WithCrawlerContentService(svc))

	rr := serveCrawler(t, h, "/sitemap-posts.xml", "www.grouptherapyeg.com")
	body := rr.Body.String()

	if !strings.Contains(body, "<loc>https://www.grouptherapyeg.com/news/launch-party</loc>") {
		t.Fatalf("expected post loc, got %q", body)
	}
	if !strings.Contains(body, "<image:loc>https://www.grouptherapyeg.com/images/launch.jpg</image:loc>") {
		t.Fatalf("expected cover absolutized against base, got %q", body)
	}
	if !strings.Contains(body, "<lastmod>2025-03-01T10:00:00Z</lastmod>") {
		t.Fatalf("expected publish date lastmod, got %q", body)
	}
}

func TestSitemapVideosHandler(t *testing.T) {
	svc := &stubContentService{
		radioShows: []domain.RadioShow{{
			Slug:         "therapy-sessions-014",
			Title:        "Therapy Sessions 014",
			Description:  "Guest mix.",
			ThumbnailURL: "https://cdn.grouptherapyeg.com/014.jpg",
			VideoURL:     "https://cdn.grouptherapyeg.com/014.mp4",
			DurationSec:  3600,
			PublishedAt:  time.Date(2025, time.February, 14, 20, 0, 0, 0, time.UTC),
		}},
	}
	h := NewCrawlerHandlers(WithCrawlerContentService(svc))

	rr := serveCrawler(t, h, "/sitemap-videos.xml", "www.grouptherapyeg.com")
	body := rr.Body.String()

	if !strings.Contains(body, `xmlns:video="http://www.google.com/schemas/sitemap-video/1.1"`) {
		t.Fatalf("expected video namespace declared, got %q", body)
	}
	if !strings.Contains(body, "<video:content_loc>https://cdn.grouptherapyeg.com/014.mp4</video:content_loc>") {
		t.Fatalf("expected video content loc, got %q", body)
	}
	if !strings.Contains(body, "<video:duration>3600</video:duration>") {
		t.Fatalf("expected video duration, got %q", body)
	}
}

func TestSitemapDegradesToEmptyURLSet(t *testing.T) {
	svc := &stubContentService{listErr: errors.New("store down")}
	h := NewCrawlerHandlers(WithCrawlerContentService(svc))

	rr := serveCrawler(t, h, "/sitemap-releases.xml", "www.grouptherapyeg.com")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected degraded 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<urlset") || strings.Contains(body, "<url>") {
		t.Fatalf("expected empty urlset, got %q", body)
	}
}
