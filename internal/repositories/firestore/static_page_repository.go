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

const staticPageCollection = "static_pages"

type staticPageDocument struct {
	Slug            string    `firestore:"slug"`
	Title           string    `firestore:"title"`
	MetaTitle       string    `firestore:"meta_title"`
	MetaDescription string    `firestore:"meta_description"`
	BodyHTML        string    `firestore:"content"`
	Published       bool      `firestore:"published"`
	CreatedAt       time.Time `firestore:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

// StaticPageRepository persists editor-managed standalone pages.
type StaticPageRepository struct {
	base *pfirestore.BaseRepository[staticPageDocument]
}

// NewStaticPageRepository constructs a Firestore-backed static page repository.
func NewStaticPageRepository(provider *pfirestore.Provider) (*StaticPageRepository, error) {
	if provider == nil {
		return nil, errors.New("static page repository requires firestore provider")
	}
	return &StaticPageRepository{base: pfirestore.NewBaseRepository[staticPageDocument](provider, staticPageCollection, nil, nil)}, nil
}

// GetPublishedBySlug returns the single published page carrying slug.
func (r *StaticPageRepository) GetPublishedBySlug(ctx context.Context, slug string) (domain.StaticPage, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.StaticPage{}, notFound("static_pages.get", errors.New("slug is required"))
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("slug", "==", slug).Where("published", "==", true).Limit(1)
	})
	if err != nil {
		return domain.StaticPage{}, err
	}
	if len(docs) == 0 {
		return domain.StaticPage{}, notFound("static_pages.get", fmt.Errorf("page %q not found", slug))
	}
	return staticPageFromDocument(docs[0]), nil
}

// ListPublished returns all published pages ordered by slug.
func (r *StaticPageRepository) ListPublished(ctx context.Context) ([]domain.StaticPage, error) {
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("published", "==", true).OrderBy("slug", firestore.Asc)
	})
	if err != nil {
		return nil, err
	}
	pages := make([]domain.StaticPage, 0, len(docs))
	for _, doc := range docs {
		pages = append(pages, staticPageFromDocument(doc))
	}
	return pages, nil
}

// Upsert writes the page under its ID.
func (r *StaticPageRepository) Upsert(ctx context.Context, page domain.StaticPage) (domain.StaticPage, error) {
	if strings.TrimSpace(page.ID) == "" {
		return domain.StaticPage{}, errors.New("static_pages.upsert: id is required")
	}
	result, err := r.base.Set(ctx, page.ID, documentFromStaticPage(page))
	if err != nil {
		return domain.StaticPage{}, err
	}
	page.UpdatedAt = result.UpdateTime
	return page, nil
}

// Delete removes the page by ID.
func (r *StaticPageRepository) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("static_pages.delete: id is required")
	}
	return r.base.Delete(ctx, id)
}

func staticPageFromDocument(doc pfirestore.Document[staticPageDocument]) domain.StaticPage {
	data := doc.Data
	return domain.StaticPage{
		ID:              doc.ID,
		Slug:            data.Slug,
		Title:           data.Title,
		MetaTitle:       data.MetaTitle,
		MetaDescription: data.MetaDescription,
		BodyHTML:        data.BodyHTML,
		Published:       data.Published,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func documentFromStaticPage(page domain.StaticPage) staticPageDocument {
	return staticPageDocument{
		Slug:            page.Slug,
		Title:           page.Title,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		BodyHTML:        page.BodyHTML,
		Published:       page.Published,
		CreatedAt:       page.CreatedAt,
		UpdatedAt:       page.UpdatedAt,
	}
}
