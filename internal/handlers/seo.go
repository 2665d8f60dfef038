package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/grouptherapyeg/site-api/internal/platform/requestctx"
	"github.com/grouptherapyeg/site-api/internal/seo"
	"github.com/grouptherapyeg/site-api/internal/services"
)

const (
	seoCacheControl     = "public, max-age=0, s-maxage=60"
	crawlerCacheControl = "public, max-age=0, s-maxage=3600"
	degradedHeader      = "X-SEO-Degraded"
)

// SEOHandlers exposes the page metadata endpoint consumed by the site's
// server-rendered head.
type SEOHandlers struct {
	content     services.ContentService
	environment string
}

// SEOOption customises construction of SEOHandlers.
type SEOOption func(*SEOHandlers)

// WithSEOContentService injects the content service dependency.
func WithSEOContentService(svc services.ContentService) SEOOption {
	return func(h *SEOHandlers) {
		h.content = svc
	}
}

// WithSEOEnvironment sets the deployment environment name. Outside prod the
// endpoint flags degraded responses with a diagnostic header.
func WithSEOEnvironment(env string) SEOOption {
	return func(h *SEOHandlers) {
		h.environment = strings.TrimSpace(env)
	}
}

// NewSEOHandlers constructs the metadata endpoint handlers.
func NewSEOHandlers(opts ...SEOOption) *SEOHandlers {
	h := &SEOHandlers{environment: "prod"}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Get computes the metadata set for the page named by the path query
// parameter. The response is always 200: store failures degrade to default
// metadata rather than breaking the page render.
func (h *SEOHandlers) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := requestctx.Logger(ctx)

	pathname := r.URL.Query().Get("path")
	if strings.TrimSpace(pathname) == "" {
		pathname = "/"
	}

	baseURL := requestBaseURL(r)
	route := seo.ParseRoute(pathname)

	degraded := false

	var settings *seo.Settings
	var content *seo.Content
	if h.content != nil {
		var err error
		settings, err = h.content.LatestSettings(ctx)
		if err != nil {
			degraded = true
			logger.Warn("seo settings lookup failed", zap.String("path", pathname), zap.Error(err))
		}

		content, err = h.content.ResolveRouteContent(ctx, route)
		if err != nil {
			degraded = true
			logger.Warn("seo content lookup failed",
				zap.String("path", pathname),
				zap.String("route", string(route.Kind)),
				zap.Error(err))
		}
	}

	computed := seo.Compute(seo.Input{
		Pathname: pathname,
		BaseURL:  baseURL,
		Settings: settings,
		Content:  content,
	})

	w.Header().Set("Cache-Control", seoCacheControl)
	if degraded && h.environment != "prod" {
		w.Header().Set(degradedHeader, "1")
	}
	writeJSON(w, http.StatusOK, computed)
}
