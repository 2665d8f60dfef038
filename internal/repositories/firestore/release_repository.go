package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	domain "github.com/grouptherapyeg/site-api/internal/domain"
	pfirestore "github.com/grouptherapyeg/site-api/internal/platform/firestore"
)

const releaseCollection = "releases"

type releaseDocument struct {
	Slug        string    `firestore:"slug"`
	Title       string    `firestore:"title"`
	ArtistName  string    `firestore:"artist_name"`
	Type        string    `firestore:"type"`
	Genres      []string  `firestore:"genres"`
	CoverURL    string    `firestore:"cover_url"`
	ReleaseDate time.Time `firestore:"release_date"`
	Published   bool      `firestore:"published"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

// ReleaseRepository persists catalogue releases.
type ReleaseRepository struct {
	base *pfirestore.BaseRepository[releaseDocument]
}

// NewReleaseRepository constructs a Firestore-backed release repository.
func NewReleaseRepository(provider *pfirestore.Provider) (*ReleaseRepository, error) {
	if provider == nil {
		return nil, errors.New("release repository requires firestore provider")
	}
	return &ReleaseRepository{base: pfirestore.NewBaseRepository[releaseDocument](provider, releaseCollection, nil, nil)}, nil
}

// GetPublishedBySlug returns the single published release carrying slug.
func (r *ReleaseRepository) GetPublishedBySlug(ctx context.Context, slug string) (domain.Release, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Release{}, notFound("releases.get", errors.New("slug is required"))
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("slug", "==", slug).Where("published", "==", true).Limit(1)
	})
	if err != nil {
		return domain.Release{}, err
	}
	if len(docs) == 0 {
		return domain.Release{}, notFound("releases.get", fmt.Errorf("release %q not found", slug))
	}
	return releaseFromDocument(docs[0]), nil
}

// ListPublished returns all published releases, newest release date first.
func (r *ReleaseRepository) ListPublished(ctx context.Context) ([]domain.Release, error) {
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("published", "==", true).OrderBy("release_date", firestore.Desc)
	})
	if err != nil {
		return nil, err
	}
	releases := make([]domain.Release, 0, len(docs))
	for _, doc := range docs {
		releases = append(releases, releaseFromDocument(doc))
	}
	return releases, nil
}

// Upsert writes the release under its ID.
func (r *ReleaseRepository) Upsert(ctx context.Context, release domain.Release) (domain.Release, error) {
	if strings.TrimSpace(release.ID) == "" {
		return domain.Release{}, errors.New("releases.upsert: id is required")
	}
	result, err := r.base.Set(ctx, release.ID, documentFromRelease(release))
	if err != nil {
		return domain.Release{}, err
	}
	release.UpdatedAt = result.UpdateTime
	return release, nil
}

// Delete removes the release by ID.
func (r *ReleaseRepository) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("releases.delete: id is required")
	}
	return r.base.Delete(ctx, id)
}

func releaseFromDocument(doc pfirestore.Document[releaseDocument]) domain.Release {
	data := doc.Data
	return domain.Release{
		ID:          doc.ID,
		Slug:        data.Slug,
		Title:       data.Title,
		ArtistName:  data.ArtistName,
		Type:        data.Type,
		Genres:      data.Genres,
		CoverURL:    data.CoverURL,
		ReleaseDate: data.ReleaseDate,
		Published:   data.Published,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func documentFromRelease(release domain.Release) releaseDocument {
	return releaseDocument{
		Slug:        release.Slug,
		Title:       release.Title,
		ArtistName:  release.ArtistName,
		Type:        release.Type,
		Genres:      release.Genres,
		CoverURL:    release.CoverURL,
		ReleaseDate: release.ReleaseDate,
		Published:   release.Published,
		CreatedAt:   release.CreatedAt,
		UpdatedAt:   release.UpdatedAt,
	}
}
