package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"
	"golang.org/x/text/unicode/norm"

	domain "github.com/grouptherapyeg/site-api/internal/domain"
	"github.com/grouptherapyeg/site-api/internal/platform/textutil"
	"github.com/grouptherapyeg/site-api/internal/repositories"
)

var bodyHTMLPolicy = bluemonday.UGCPolicy()

// AdminContentServiceDeps groups constructor parameters for the admin service.
type AdminContentServiceDeps struct {
	Posts       repositories.PostRepository
	Releases    repositories.ReleaseRepository
	Events      repositories.EventRepository
	Artists     repositories.ArtistRepository
	StaticPages repositories.StaticPageRepository
	RadioShows  repositories.RadioShowRepository
	Settings    repositories.SettingsRepository
	Clock       func() time.Time
	NewID       func() string
}

type adminContentService struct {
	deps  AdminContentServiceDeps
	clock func() time.Time
	newID func() string
}

var (
	// ErrAdminRepositoriesMissing signals that a required repository dependency is absent.
	ErrAdminRepositoriesMissing = errors.New("admin service: repositories are not configured")
	// ErrSlugMissing signals that neither a slug nor a title was provided.
	ErrSlugMissing = errors.New("admin service: a slug or title is required")
	// ErrIDMissing signals a delete without a document ID.
	ErrIDMissing = errors.New("admin service: id is required")
	// ErrSettingsRowMissing signals a settings save without a row.
	ErrSettingsRowMissing = errors.New("admin service: settings row is required")
)

// NewAdminContentService constructs the admin service with the supplied dependencies.
func NewAdminContentService(deps AdminContentServiceDeps) (AdminContentService, error) {
	if deps.Posts == nil || deps.Releases == nil || deps.Events == nil ||
		deps.Artists == nil || deps.StaticPages == nil || deps.RadioShows == nil ||
		deps.Settings == nil {
		return nil, ErrAdminRepositoriesMissing
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := deps.NewID
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}
	return &adminContentService{
		deps:  deps,
		clock: func() time.Time { return clock().UTC() },
		newID: newID,
	}, nil
}

func (s *adminContentService) SavePost(ctx context.Context, post domain.Post) (domain.Post, error) {
	post.ID = strings.TrimSpace(post.ID)
	post.Title = strings.TrimSpace(post.Title)
	post.MetaTitle = strings.TrimSpace(post.MetaTitle)
	post.MetaDescription = strings.TrimSpace(post.MetaDescription)
	post.Excerpt = strings.TrimSpace(post.Excerpt)
	post.Category = strings.TrimSpace(post.Category)
	post.AuthorName = strings.TrimSpace(post.AuthorName)
	post.BodyHTML = bodyHTMLPolicy.Sanitize(post.BodyHTML)
	post.Tags = textutil.NormalizeStringList(post.Tags)

	slug, err := s.resolveSlug(post.Slug, post.Title)
	if err != nil {
		return domain.Post{}, err
	}
	post.Slug = slug
	if post.ID == "" {
		post.ID = s.newID()
	}

	now := s.clock()
	post.CreatedAt = ensureCreated(post.CreatedAt, now)
	post.UpdatedAt = now
	if post.Published && post.PublishedAt.IsZero() {
		post.PublishedAt = now
	}
	return s.deps.Posts.Upsert(ctx, post)
}

func (s *adminContentService) DeletePost(ctx context.Context, id string) error {
	return deleteByID(ctx, id, s.deps.Posts.Delete)
}

func (s *adminContentService) SaveRelease(ctx context.Context, release domain.Release) (domain.Release, error) {
	release.ID = strings.TrimSpace(release.ID)
	release.Title = strings.TrimSpace(release.Title)
	release.ArtistName = strings.TrimSpace(release.ArtistName)
	release.Type = strings.ToLower(strings.TrimSpace(release.Type))
	release.Genres = textutil.NormalizeStringList(release.Genres)

	slug, err := s.resolveSlug(release.Slug, release.Title)
	if err != nil {
		return domain.Release{}, err
	}
	release.Slug = slug
	if release.ID == "" {
		release.ID = s.newID()
	}

	now := s.clock()
	release.CreatedAt = ensureCreated(release.CreatedAt, now)
	release.UpdatedAt = now
	return s.deps.Releases.Upsert(ctx, release)
}

func (s *adminContentService) DeleteRelease(ctx context.Context, id string) error {
	return deleteByID(ctx, id, s.deps.Releases.Delete)
}

func (s *adminContentService) SaveEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	event.ID = strings.TrimSpace(event.ID)
	event.Title = strings.TrimSpace(event.Title)
	event.Description = strings.TrimSpace(event.Description)
	event.VenueName = strings.TrimSpace(event.VenueName)
	event.City = strings.TrimSpace(event.City)
	event.Country = strings.TrimSpace(event.Country)

	slug, err := s.resolveSlug(event.Slug, event.Title)
	if err != nil {
		return domain.Event{}, err
	}
	event.Slug = slug
	if event.ID == "" {
		event.ID = s.newID()
	}

	now := s.clock()
	event.CreatedAt = ensureCreated(event.CreatedAt, now)
	event.UpdatedAt = now
	return s.deps.Events.Upsert(ctx, event)
}

func (s *adminContentService) DeleteEvent(ctx context.Context, id string) error {
	return deleteByID(ctx, id, s.deps.Events.Delete)
}

func (s *adminContentService) SaveArtist(ctx context.Context, artist domain.Artist) (domain.Artist, error) {
	artist.ID = strings.TrimSpace(artist.ID)
	artist.Name = strings.TrimSpace(artist.Name)
	artist.BioHTML = bodyHTMLPolicy.Sanitize(artist.BioHTML)

	slug, err := s.resolveSlug(artist.Slug, artist.Name)
	if err != nil {
		return domain.Artist{}, err
	}
	artist.Slug = slug
	if artist.ID == "" {
		artist.ID = s.newID()
	}

	now := s.clock()
	artist.CreatedAt = ensureCreated(artist.CreatedAt, now)
	artist.UpdatedAt = now
	return s.deps.Artists.Upsert(ctx, artist)
}

func (s *adminContentService) DeleteArtist(ctx context.Context, id string) error {
	return deleteByID(ctx, id, s.deps.Artists.Delete)
}

func (s *adminContentService) SaveStaticPage(ctx context.Context, page domain.StaticPage) (domain.StaticPage, error) {
	page.ID = strings.TrimSpace(page.ID)
	page.Title = strings.TrimSpace(page.Title)
	page.MetaTitle = strings.TrimSpace(page.MetaTitle)
	page.MetaDescription = strings.TrimSpace(page.MetaDescription)
	page.BodyHTML = bodyHTMLPolicy.Sanitize(page.BodyHTML)

	slug, err := s.resolveSlug(page.Slug, page.Title)
	if err != nil {
		return domain.StaticPage{}, err
	}
	page.Slug = slug
	if page.ID == "" {
		page.ID = s.newID()
	}

	now := s.clock()
	page.CreatedAt = ensureCreated(page.CreatedAt, now)
	page.UpdatedAt = now
	return s.deps.StaticPages.Upsert(ctx, page)
}

func (s *adminContentService) DeleteStaticPage(ctx context.Context, id string) error {
	return deleteByID(ctx, id, s.deps.StaticPages.Delete)
}

func (s *adminContentService) SaveRadioShow(ctx context.Context, show domain.RadioShow) (domain.RadioShow, error) {
	show.ID = strings.TrimSpace(show.ID)
	show.Title = strings.TrimSpace(show.Title)
	show.Description = strings.TrimSpace(show.Description)
	show.ThumbnailURL = strings.TrimSpace(show.ThumbnailURL)
	show.VideoURL = strings.TrimSpace(show.VideoURL)

	slug, err := s.resolveSlug(show.Slug, show.Title)
	if err != nil {
		return domain.RadioShow{}, err
	}
	show.Slug = slug
	if show.ID == "" {
		show.ID = s.newID()
	}

	now := s.clock()
	show.CreatedAt = ensureCreated(show.CreatedAt, now)
	show.UpdatedAt = now
	if show.Published && show.PublishedAt.IsZero() {
		show.PublishedAt = now
	}
	return s.deps.RadioShows.Upsert(ctx, show)
}

func (s *adminContentService) DeleteRadioShow(ctx context.Context, id string) error {
	return deleteByID(ctx, id, s.deps.RadioShows.Delete)
}

const settingsRowID = "default"

func (s *adminContentService) SaveSettings(ctx context.Context, row map[string]any) (map[string]any, error) {
	if row == nil {
		return nil, ErrSettingsRowMissing
	}
	return s.deps.Settings.Upsert(ctx, settingsRowID, row)
}

func (s *adminContentService) resolveSlug(slug, title string) (string, error) {
	result := Slugify(slug)
	if result == "" {
		result = Slugify(title)
	}
	if result == "" {
		return "", ErrSlugMissing
	}
	return result, nil
}

func deleteByID(ctx context.Context, id string, del func(context.Context, string) error) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrIDMissing
	}
	return del(ctx, id)
}

func ensureCreated(createdAt, now time.Time) time.Time {
	if createdAt.IsZero() {
		return now
	}
	return createdAt.UTC()
}

// Slugify folds a display title into a URL slug: lowercase ASCII letters and
// digits with single dashes. Accented characters decompose to their base
// letter before folding.
func Slugify(value string) string {
	decomposed := norm.NFKD.String(strings.ToLower(strings.TrimSpace(value)))
	var b strings.Builder
	pendingDash := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// Combining marks are dropped after decomposition.
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	return b.String()
}
