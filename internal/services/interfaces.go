// Package services implements the application layer between HTTP handlers
// and the repositories.
package services

import (
	"context"

	domain "github.com/grouptherapyeg/site-api/internal/domain"
	"github.com/grouptherapyeg/site-api/internal/seo"
)

// ContentService exposes the read side consumed by the SEO and sitemap
// handlers and by the build-time baker.
type ContentService interface {
	// ResolveRouteContent fetches the single published record matching a
	// classified route. Routes without a content type, and detail routes
	// whose record is absent or unpublished, yield (nil, nil).
	ResolveRouteContent(ctx context.Context, route seo.Route) (*seo.Content, error)
	// LatestSettings fetches and normalizes the most recent SEO settings
	// row. A missing row yields (nil, nil).
	LatestSettings(ctx context.Context) (*seo.Settings, error)

	PublishedPosts(ctx context.Context) ([]domain.Post, error)
	PublishedReleases(ctx context.Context) ([]domain.Release, error)
	PublishedEvents(ctx context.Context) ([]domain.Event, error)
	PublishedArtists(ctx context.Context) ([]domain.Artist, error)
	PublishedStaticPages(ctx context.Context) ([]domain.StaticPage, error)
	PublishedRadioShows(ctx context.Context) ([]domain.RadioShow, error)
}

// AdminContentService exposes the write side consumed by the admin dashboard.
type AdminContentService interface {
	SavePost(ctx context.Context, post domain.Post) (domain.Post, error)
	DeletePost(ctx context.Context, id string) error
	SaveRelease(ctx context.Context, release domain.Release) (domain.Release, error)
	DeleteRelease(ctx context.Context, id string) error
	SaveEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	SaveArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error)
	DeleteArtist(ctx context.Context, id string) error
	SaveStaticPage(ctx context.Context, page domain.StaticPage) (domain.StaticPage, error)
	DeleteStaticPage(ctx context.Context, id string) error
	SaveRadioShow(ctx context.Context, show domain.RadioShow) (domain.RadioShow, error)
	DeleteRadioShow(ctx context.Context, id string) error
	SaveSettings(ctx context.Context, row map[string]any) (map[string]any, error)
}
