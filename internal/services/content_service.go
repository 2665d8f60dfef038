package services

import (
	"context"
	"errors"

	domain "github.com/grouptherapyeg/site-api/internal/domain"
	"github.com/grouptherapyeg/site-api/internal/repositories"
	"github.com/grouptherapyeg/site-api/internal/seo"
)

// ContentServiceDeps groups constructor parameters for the content service.
type ContentServiceDeps struct {
	Posts       repositories.PostRepository
	Releases    repositories.ReleaseRepository
	Events      repositories.EventRepository
	Artists     repositories.ArtistRepository
	StaticPages repositories.StaticPageRepository
	RadioShows  repositories.RadioShowRepository
	Settings    repositories.SettingsRepository
}

type contentService struct {
	deps ContentServiceDeps
}

// ErrContentRepositoriesMissing signals that a required repository dependency is absent.
var ErrContentRepositoriesMissing = errors.New("content service: repositories are not configured")

// NewContentService constructs the content service with the supplied dependencies.
func NewContentService(deps ContentServiceDeps) (ContentService, error) {
	if deps.Posts == nil || deps.Releases == nil || deps.Events == nil ||
		deps.Artists == nil || deps.StaticPages == nil || deps.RadioShows == nil ||
		deps.Settings == nil {
		return nil, ErrContentRepositoriesMissing
	}
	return &contentService{deps: deps}, nil
}

func (s *contentService) ResolveRouteContent(ctx context.Context, route seo.Route) (*seo.Content, error) {
	switch route.Kind {
	case seo.RoutePost:
		post, err := s.deps.Posts.GetPublishedBySlug(ctx, route.Slug)
		if err != nil {
			return nil, absorbNotFound(err)
		}
		return &seo.Content{Post: postContent(post)}, nil
	case seo.RouteRelease:
		release, err := s.deps.Releases.GetPublishedBySlug(ctx, route.Slug)
		if err != nil {
			return nil, absorbNotFound(err)
		}
		return &seo.Content{Release: releaseContent(release)}, nil
	case seo.RouteEvent:
		event, err := s.deps.Events.GetPublishedBySlug(ctx, route.Slug)
		if err != nil {
			return nil, absorbNotFound(err)
		}
		return &seo.Content{Event: eventContent(event)}, nil
	case seo.RouteArtist:
		artist, err := s.deps.Artists.GetPublishedBySlug(ctx, route.Slug)
		if err != nil {
			return nil, absorbNotFound(err)
		}
		return &seo.Content{Artist: artistContent(artist)}, nil
	case seo.RouteStatic, seo.RouteSection:
		page, err := s.deps.StaticPages.GetPublishedBySlug(ctx, route.Slug)
		if err != nil {
			return nil, absorbNotFound(err)
		}
		return &seo.Content{StaticPage: staticPageContent(page)}, nil
	default:
		return nil, nil
	}
}

func (s *contentService) LatestSettings(ctx context.Context) (*seo.Settings, error) {
	row, err := s.deps.Settings.Latest(ctx)
	if err != nil {
		return nil, absorbNotFound(err)
	}
	return seo.NormalizeSettings(row), nil
}

func (s *contentService) PublishedPosts(ctx context.Context) ([]domain.Post, error) {
	return s.deps.Posts.ListPublished(ctx)
}

func (s *contentService) PublishedReleases(ctx context.Context) ([]domain.Release, error) {
	return s.deps.Releases.ListPublished(ctx)
}

func (s *contentService) PublishedEvents(ctx context.Context) ([]domain.Event, error) {
	return s.deps.Events.ListPublished(ctx)
}

func (s *contentService) PublishedArtists(ctx context.Context) ([]domain.Artist, error) {
	return s.deps.Artists.ListPublished(ctx)
}

func (s *contentService) PublishedStaticPages(ctx context.Context) ([]domain.StaticPage, error) {
	return s.deps.StaticPages.ListPublished(ctx)
}

func (s *contentService) PublishedRadioShows(ctx context.Context) ([]domain.RadioShow, error) {
	return s.deps.RadioShows.ListPublished(ctx)
}

// absorbNotFound maps not-found repository errors to a nil result: an absent
// record means fallback metadata, not a failure.
func absorbNotFound(err error) error {
	if repositories.IsNotFound(err) {
		return nil
	}
	return err
}

func postContent(post domain.Post) *seo.PostContent {
	return &seo.PostContent{
		Title:           post.Title,
		MetaTitle:       post.MetaTitle,
		MetaDescription: post.MetaDescription,
		Excerpt:         post.Excerpt,
		BodyHTML:        post.BodyHTML,
		CoverURL:        post.CoverURL,
		OGImageURL:      post.OGImageURL,
		Category:        post.Category,
		Tags:            post.Tags,
		AuthorName:      post.AuthorName,
		PublishedAt:     seo.ISODate(post.PublishedAt),
		CreatedAt:       seo.ISODate(post.CreatedAt),
	}
}

func releaseContent(release domain.Release) *seo.ReleaseContent {
	return &seo.ReleaseContent{
		Title:       release.Title,
		ArtistName:  release.ArtistName,
		Type:        release.Type,
		Genres:      release.Genres,
		CoverURL:    release.CoverURL,
		ReleaseDate: seo.ISODate(release.ReleaseDate),
		CreatedAt:   seo.ISODate(release.CreatedAt),
	}
}

func eventContent(event domain.Event) *seo.EventContent {
	return &seo.EventContent{
		Title:       event.Title,
		Description: event.Description,
		VenueName:   event.VenueName,
		City:        event.City,
		Country:     event.Country,
		ImageURL:    event.ImageURL,
		StartAt:     seo.ISODate(event.StartAt),
		EndAt:       seo.ISODate(event.EndAt),
		CreatedAt:   seo.ISODate(event.CreatedAt),
	}
}

func artistContent(artist domain.Artist) *seo.ArtistContent {
	return &seo.ArtistContent{
		Name:      artist.Name,
		BioHTML:   artist.BioHTML,
		ImageURL:  artist.ImageURL,
		CreatedAt: seo.ISODate(artist.CreatedAt),
	}
}

func staticPageContent(page domain.StaticPage) *seo.StaticPageContent {
	return &seo.StaticPageContent{
		Title:           page.Title,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		BodyHTML:        page.BodyHTML,
		UpdatedAt:       seo.ISODate(page.UpdatedAt),
		CreatedAt:       seo.ISODate(page.CreatedAt),
	}
}
