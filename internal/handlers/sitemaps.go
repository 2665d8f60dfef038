package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/grouptherapyeg/site-api/internal/platform/requestctx"
	"github.com/grouptherapyeg/site-api/internal/seo"
	"github.com/grouptherapyeg/site-api/internal/services"
	"github.com/grouptherapyeg/site-api/internal/sitemap"
)

// CrawlerHandlers serves robots.txt and the sitemap documents.
type CrawlerHandlers struct {
	content services.ContentService
	clock   func() time.Time
}

// CrawlerOption customises construction of CrawlerHandlers.
type CrawlerOption func(*CrawlerHandlers)

// WithCrawlerContentService injects the content service dependency.
func WithCrawlerContentService(svc services.ContentService) CrawlerOption {
	return func(h *CrawlerHandlers) {
		h.content = svc
	}
}

// WithCrawlerClock overrides the clock used to stamp the sitemap index.
func WithCrawlerClock(clock func() time.Time) CrawlerOption {
	return func(h *CrawlerHandlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// NewCrawlerHandlers constructs the crawler-facing handlers.
func NewCrawlerHandlers(opts ...CrawlerOption) *CrawlerHandlers {
	h := &CrawlerHandlers{clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Routes registers the crawler endpoints at the router root.
func (h *CrawlerHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/robots.txt", h.robots)
	r.Get("/sitemap.xml", h.sitemapIndex)
	r.Get("/sitemap-pages.xml", h.sitemapPages)
	r.Get("/sitemap-posts.xml", h.sitemapPosts)
	r.Get("/sitemap-releases.xml", h.sitemapReleases)
	r.Get("/sitemap-events.xml", h.sitemapEvents)
	r.Get("/sitemap-artists.xml", h.sitemapArtists)
	r.Get("/sitemap-videos.xml", h.sitemapVideos)
}

func (h *CrawlerHandlers) robots(w http.ResponseWriter, r *http.Request) {
	writeCrawlerDoc(w, "text/plain; charset=utf-8", sitemap.Robots(requestBaseURL(r)))
}

func (h *CrawlerHandlers) sitemapIndex(w http.ResponseWriter, r *http.Request) {
	writeCrawlerDoc(w, "application/xml; charset=utf-8", sitemap.Index(requestBaseURL(r), h.clock()))
}

func (h *CrawlerHandlers) sitemapPages(w http.ResponseWriter, r *http.Request) {
	base := requestBaseURL(r)
	entries := sitemap.StaticEntries(base)

	if h.content != nil {
		pages, err := h.content.PublishedStaticPages(r.Context())
		if err != nil {
			logSitemapDegrade(r, "pages", err)
		}
		for _, page := range pages {
			if sitemap.IsLegalSlug(page.Slug) {
				continue
			}
			entries = append(entries, sitemap.Entry{
				Loc:        base + "/" + page.Slug,
				LastMod:    seo.ISODate(page.UpdatedAt),
				ChangeFreq: "monthly",
				Priority:   "0.5",
			})
		}
	}

	writeCrawlerDoc(w, "application/xml; charset=utf-8", sitemap.URLSet(entries))
}

func (h *CrawlerHandlers) sitemapPosts(w http.ResponseWriter, r *http.Request) {
	base := requestBaseURL(r)
	var entries []sitemap.Entry

	if h.content != nil {
		posts, err := h.content.PublishedPosts(r.Context())
		if err != nil {
			logSitemapDegrade(r, "posts", err)
		}
		for _, post := range posts {
			entry := sitemap.Entry{
				Loc:        base + "/news/" + post.Slug,
				LastMod:    seo.ISODate(post.PublishedAt),
				ChangeFreq: "weekly",
				Priority:   "0.7",
			}
			if post.CoverURL != "" {
				entry.Images = []sitemap.Image{{
					Loc:   seo.AbsoluteURL(post.CoverURL, base),
					Title: post.Title,
				}}
			}
			entries = append(entries, entry)
		}
	}

	writeCrawlerDoc(w, "application/xml; charset=utf-8", sitemap.URLSet(entries))
}

func (h *CrawlerHandlers) sitemapReleases(w http.ResponseWriter, r *http.Request) {
	base := requestBaseURL(r)
	var entries []sitemap.Entry

	if h.content != nil {
		releases, err := h.content.PublishedReleases(r.Context())
		if err != nil {
			logSitemapDegrade(r, "releases", err)
		}
		for _, release := range releases {
			entry := sitemap.Entry{
				Loc:        base + "/releases/" + release.Slug,
				LastMod:    seo.ISODate(release.ReleaseDate),
				ChangeFreq: "monthly",
				Priority:   "0.8",
			}
			if release.CoverURL != "" {
				entry.Images = []sitemap.Image{{
					Loc:   seo.AbsoluteURL(release.CoverURL, base),
					Title: release.Title,
				}}
			}
			entries = append(entries, entry)
		}
	}

	writeCrawlerDoc(w, "application/xml; charset=utf-8", sitemap.URLSet(entries))
}

func (h *CrawlerHandlers) sitemapEvents(w http.ResponseWriter, r *http.Request) {
	base := requestBaseURL(r)
	var entries []sitemap.Entry

	if h.content != nil {
		events, err := h.content.PublishedEvents(r.Context())
		if err != nil {
			logSitemapDegrade(r, "events", err)
		}
		for _, event := range events {
			entry := sitemap.Entry{
				Loc:        base + "/events/" + event.Slug,
				LastMod:    seo.ISODate(event.StartAt),
				ChangeFreq: "weekly",
				Priority:   "0.7",
			}
			if event.ImageURL != "" {
				entry.Images = []sitemap.Image{{
					Loc:   seo.AbsoluteURL(event.ImageURL, base),
					Title: event.Title,
				}}
			}
			entries = append(entries, entry)
		}
	}

	writeCrawlerDoc(w, "application/xml; charset=utf-8", sitemap.URLSet(entries))
}

func (h *CrawlerHandlers) sitemapArtists(w http.ResponseWriter, r *http.Request) {
	base := requestBaseURL(r)
	var entries []sitemap.Entry

	if h.content != nil {
		artists, err := h.content.PublishedArtists(r.Context())
		if err != nil {
			logSitemapDegrade(r, "artists", err)
		}
		for _, artist := range artists {
			entry := sitemap.Entry{
				Loc:        base + "/artists/" + artist.Slug,
				LastMod:    seo.ISODate(artist.UpdatedAt),
				ChangeFreq: "monthly",
				Priority:   "0.6",
			}
			if artist.ImageURL != "" {
				entry.Images = []sitemap.Image{{
					Loc:   seo.AbsoluteURL(artist.ImageURL, base),
					Title: artist.Name,
				}}
			}
			entries = append(entries, entry)
		}
	}

	writeCrawlerDoc(w, "application/xml; charset=utf-8", sitemap.URLSet(entries))
}

func (h *CrawlerHandlers) sitemapVideos(w http.ResponseWriter, r *http.Request) {
	base := requestBaseURL(r)
	var entries []sitemap.Entry

	if h.content != nil {
		shows, err := h.content.PublishedRadioShows(r.Context())
		if err != nil {
			logSitemapDegrade(r, "videos", err)
		}
		for _, show := range shows {
			entry := sitemap.Entry{
				Loc:        base + "/radio/" + show.Slug,
				LastMod:    seo.ISODate(show.PublishedAt),
				ChangeFreq: "monthly",
				Priority:   "0.6",
			}
			if show.ThumbnailURL != "" {
				entry.Videos = []sitemap.Video{{
					ThumbnailLoc:    seo.AbsoluteURL(show.ThumbnailURL, base),
					Title:           show.Title,
					Description:     show.Description,
					ContentLoc:      seo.AbsoluteURL(show.VideoURL, base),
					DurationSec:     show.DurationSec,
					PublicationDate: seo.ISODate(show.PublishedAt),
				}}
			}
			entries = append(entries, entry)
		}
	}

	writeCrawlerDoc(w, "application/xml; charset=utf-8", sitemap.URLSet(entries))
}

// writeCrawlerDoc writes a crawler-facing document. Crawler endpoints always
// answer 200; a degraded document beats an error page in search consoles.
func writeCrawlerDoc(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", crawlerCacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func logSitemapDegrade(r *http.Request, name string, err error) {
	requestctx.Logger(r.Context()).Warn("sitemap listing failed",
		zap.String("sitemap", name),
		zap.Error(err))
}
