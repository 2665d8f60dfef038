// Package repositories declares the persistence interfaces consumed by
// services and handlers. Implementations live in subpackages (Firestore in
// production, stubs in tests).
package repositories

import (
	"context"
	"errors"

	domain "github.com/grouptherapyeg/site-api/internal/domain"
)

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// IsNotFound reports whether err represents a missing record.
func IsNotFound(err error) bool {
	var repoErr RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.IsNotFound()
	}
	return false
}

// PostRepository persists news articles.
type PostRepository interface {
	// GetPublishedBySlug returns the single published post carrying slug.
	// Returns a RepositoryError with IsNotFound when absent or unpublished.
	GetPublishedBySlug(ctx context.Context, slug string) (domain.Post, error)
	// ListPublished returns all published posts ordered by publish date, newest first.
	ListPublished(ctx context.Context) ([]domain.Post, error)
	Upsert(ctx context.Context, post domain.Post) (domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// ReleaseRepository persists catalogue releases.
type ReleaseRepository interface {
	GetPublishedBySlug(ctx context.Context, slug string) (domain.Release, error)
	// ListPublished returns all published releases ordered by release date, newest first.
	ListPublished(ctx context.Context) ([]domain.Release, error)
	Upsert(ctx context.Context, release domain.Release) (domain.Release, error)
	Delete(ctx context.Context, id string) error
}

// EventRepository persists events.
type EventRepository interface {
	GetPublishedBySlug(ctx context.Context, slug string) (domain.Event, error)
	// ListPublished returns all published events ordered by start date, newest first.
	ListPublished(ctx context.Context) ([]domain.Event, error)
	Upsert(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id string) error
}

// ArtistRepository persists artist profiles.
type ArtistRepository interface {
	GetPublishedBySlug(ctx context.Context, slug string) (domain.Artist, error)
	// ListPublished returns all published artists ordered by name ascending.
	ListPublished(ctx context.Context) ([]domain.Artist, error)
	Upsert(ctx context.Context, artist domain.Artist) (domain.Artist, error)
	Delete(ctx context.Context, id string) error
}

// StaticPageRepository persists editor-managed standalone pages.
type StaticPageRepository interface {
	GetPublishedBySlug(ctx context.Context, slug string) (domain.StaticPage, error)
	// ListPublished returns all published pages ordered by slug ascending.
	ListPublished(ctx context.Context) ([]domain.StaticPage, error)
	Upsert(ctx context.Context, page domain.StaticPage) (domain.StaticPage, error)
	Delete(ctx context.Context, id string) error
}

// RadioShowRepository persists radio/video episodes.
type RadioShowRepository interface {
	GetPublishedBySlug(ctx context.Context, slug string) (domain.RadioShow, error)
	// ListPublished returns all published shows ordered by publish date, newest first.
	ListPublished(ctx context.Context) ([]domain.RadioShow, error)
	Upsert(ctx context.Context, show domain.RadioShow) (domain.RadioShow, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository persists the administrator-managed SEO settings rows.
// Rows stay loosely typed end to end: the admin writes arbitrary keys and the
// SEO normalizer decides what it recognises.
type SettingsRepository interface {
	// Latest returns the most recently updated settings row, raw.
	Latest(ctx context.Context) (map[string]any, error)
	Upsert(ctx context.Context, id string, row map[string]any) (map[string]any, error)
}
