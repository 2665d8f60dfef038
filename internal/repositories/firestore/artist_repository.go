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

const artistCollection = "artists"

type artistDocument struct {
	Slug      string    `firestore:"slug"`
	Name      string    `firestore:"name"`
	BioHTML   string    `firestore:"bio"`
	ImageURL  string    `firestore:"image_url"`
	Published bool      `firestore:"published"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// ArtistRepository persists artist profiles.
type ArtistRepository struct {
	base *pfirestore.BaseRepository[artistDocument]
}

// NewArtistRepository constructs a Firestore-backed artist repository.
func NewArtistRepository(provider *pfirestore.Provider) (*ArtistRepository, error) {
	if provider == nil {
		return nil, errors.New("artist repository requires firestore provider")
	}
	return &ArtistRepository{base: pfirestore.NewBaseRepository[artistDocument](provider, artistCollection, nil, nil)}, nil
}

// GetPublishedBySlug returns the single published artist carrying slug.
func (r *ArtistRepository) GetPublishedBySlug(ctx context.Context, slug string) (domain.Artist, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Artist{}, notFound("artists.get", errors.New("slug is required"))
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("slug", "==", slug).Where("published", "==", true).Limit(1)
	})
	if err != nil {
		return domain.Artist{}, err
	}
	if len(docs) == 0 {
		return domain.Artist{}, notFound("artists.get", fmt.Errorf("artist %q not found", slug))
	}
	return artistFromDocument(docs[0]), nil
}

// ListPublished returns all published artists ordered by name.
func (r *ArtistRepository) ListPublished(ctx context.Context) ([]domain.Artist, error) {
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("published", "==", true).OrderBy("name", firestore.Asc)
	})
	if err != nil {
		return nil, err
	}
	artists := make([]domain.Artist, 0, len(docs))
	for _, doc := range docs {
		artists = append(artists, artistFromDocument(doc))
	}
	return artists, nil
}

// Upsert writes the artist under its ID.
func (r *ArtistRepository) Upsert(ctx context.Context, artist domain.Artist) (domain.Artist, error) {
	if strings.TrimSpace(artist.ID) == "" {
		return domain.Artist{}, errors.New("artists.upsert: id is required")
	}
	result, err := r.base.Set(ctx, artist.ID, documentFromArtist(artist))
	if err != nil {
		return domain.Artist{}, err
	}
	artist.UpdatedAt = result.UpdateTime
	return artist, nil
}

// Delete removes the artist by ID.
func (r *ArtistRepository) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("artists.delete: id is required")
	}
	return r.base.Delete(ctx, id)
}

func artistFromDocument(doc pfirestore.Document[artistDocument]) domain.Artist {
	data := doc.Data
	return domain.Artist{
		ID:        doc.ID,
		Slug:      data.Slug,
		Name:      data.Name,
		BioHTML:   data.BioHTML,
		ImageURL:  data.ImageURL,
		Published: data.Published,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func documentFromArtist(artist domain.Artist) artistDocument {
	return artistDocument{
		Slug:      artist.Slug,
		Name:      artist.Name,
		BioHTML:   artist.BioHTML,
		ImageURL:  artist.ImageURL,
		Published: artist.Published,
		CreatedAt: artist.CreatedAt,
		UpdatedAt: artist.UpdatedAt,
	}
}
