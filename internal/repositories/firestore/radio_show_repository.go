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

const radioShowCollection = "radio_shows"

type radioShowDocument struct {
	Slug         string    `firestore:"slug"`
	Title        string    `firestore:"title"`
	Description  string    `firestore:"description"`
	ThumbnailURL string    `firestore:"thumbnail_url"`
	VideoURL     string    `firestore:"video_url"`
	DurationSec  int       `firestore:"duration_sec"`
	Published    bool      `firestore:"published"`
	PublishedAt  time.Time `firestore:"published_at"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

// RadioShowRepository persists radio/video episodes.
type RadioShowRepository struct {
	base *pfirestore.BaseRepository[radioShowDocument]
}

// NewRadioShowRepository constructs a Firestore-backed radio show repository.
func NewRadioShowRepository(provider *pfirestore.Provider) (*RadioShowRepository, error) {
	if provider == nil {
		return nil, errors.New("radio show repository requires firestore provider")
	}
	return &RadioShowRepository{base: pfirestore.NewBaseRepository[radioShowDocument](provider, radioShowCollection, nil, nil)}, nil
}

// GetPublishedBySlug returns the single published show carrying slug.
func (r *RadioShowRepository) GetPublishedBySlug(ctx context.Context, slug string) (domain.RadioShow, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.RadioShow{}, notFound("radio_shows.get", errors.New("slug is required"))
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("slug", "==", slug).Where("published", "==", true).Limit(1)
	})
	if err != nil {
		return domain.RadioShow{}, err
	}
	if len(docs) == 0 {
		return domain.RadioShow{}, notFound("radio_shows.get", fmt.Errorf("show %q not found", slug))
	}
	return radioShowFromDocument(docs[0]), nil
}

// ListPublished returns all published shows, newest first.
func (r *RadioShowRepository) ListPublished(ctx context.Context) ([]domain.RadioShow, error) {
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("published", "==", true).OrderBy("published_at", firestore.Desc)
	})
	if err != nil {
		return nil, err
	}
	shows := make([]domain.RadioShow, 0, len(docs))
	for _, doc := range docs {
		shows = append(shows, radioShowFromDocument(doc))
	}
	return shows, nil
}

// Upsert writes the show under its ID.
func (r *RadioShowRepository) Upsert(ctx context.Context, show domain.RadioShow) (domain.RadioShow, error) {
	if strings.TrimSpace(show.ID) == "" {
		return domain.RadioShow{}, errors.New("radio_shows.upsert: id is required")
	}
	result, err := r.base.Set(ctx, show.ID, documentFromRadioShow(show))
	if err != nil {
		return domain.RadioShow{}, err
	}
	show.UpdatedAt = result.UpdateTime
	return show, nil
}

// Delete removes the show by ID.
func (r *RadioShowRepository) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("radio_shows.delete: id is required")
	}
	return r.base.Delete(ctx, id)
}

func radioShowFromDocument(doc pfirestore.Document[radioShowDocument]) domain.RadioShow {
	data := doc.Data
	return domain.RadioShow{
		ID:           doc.ID,
		Slug:         data.Slug,
		Title:        data.Title,
		Description:  data.Description,
		ThumbnailURL: data.ThumbnailURL,
		VideoURL:     data.VideoURL,
		DurationSec:  data.DurationSec,
		Published:    data.Published,
		PublishedAt:  data.PublishedAt,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func documentFromRadioShow(show domain.RadioShow) radioShowDocument {
	return radioShowDocument{
		Slug:         show.Slug,
		Title:        show.Title,
		Description:  show.Description,
		ThumbnailURL: show.ThumbnailURL,
		VideoURL:     show.VideoURL,
		DurationSec:  show.DurationSec,
		Published:    show.Published,
		PublishedAt:  show.PublishedAt,
		CreatedAt:    show.CreatedAt,
		UpdatedAt:    show.UpdatedAt,
	}
}
