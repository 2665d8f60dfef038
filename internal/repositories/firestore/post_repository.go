// Package firestore provides Firestore-backed implementations of the content
// repositories. Collection fields use snake_case to match what the admin
// dashboard writes.
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

const postCollection = "posts"

type postDocument struct {
	Slug            string    `firestore:"slug"`
	Title           string    `firestore:"title"`
	MetaTitle       string    `firestore:"meta_title"`
	MetaDescription string    `firestore:"meta_description"`
	Excerpt         string    `firestore:"excerpt"`
	BodyHTML        string    `firestore:"content"`
	CoverURL        string    `firestore:"cover_url"`
	OGImageURL      string    `firestore:"og_image_url"`
	Category        string    `firestore:"category"`
	Tags            []string  `firestore:"tags"`
	AuthorName      string    `firestore:"author_name"`
	Published       bool      `firestore:"published"`
	PublishedAt     time.Time `firestore:"published_at"`
	CreatedAt       time.Time `firestore:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

// PostRepository persists news articles in the posts collection.
type PostRepository struct {
	base *pfirestore.BaseRepository[postDocument]
}

// NewPostRepository constructs a Firestore-backed post repository.
func NewPostRepository(provider *pfirestore.Provider) (*PostRepository, error) {
	if provider == nil {
		return nil, errors.New("post repository requires firestore provider")
	}
	return &PostRepository{base: pfirestore.NewBaseRepository[postDocument](provider, postCollection, nil, nil)}, nil
}

// GetPublishedBySlug returns the single published post carrying slug.
func (r *PostRepository) GetPublishedBySlug(ctx context.Context, slug string) (domain.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Post{}, notFound("posts.get", errors.New("slug is required"))
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("slug", "==", slug).Where("published", "==", true).Limit(1)
	})
	if err != nil {
		return domain.Post{}, err
	}
	if len(docs) == 0 {
		return domain.Post{}, notFound("posts.get", fmt.Errorf("post %q not found", slug))
	}
	return postFromDocument(docs[0]), nil
}

// ListPublished returns all published posts, newest first.
func (r *PostRepository) ListPublished(ctx context.Context) ([]domain.Post, error) {
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("published", "==", true).OrderBy("published_at", firestore.Desc)
	})
	if err != nil {
		return nil, err
	}
	posts := make([]domain.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, postFromDocument(doc))
	}
	return posts, nil
}

// Upsert writes the post under its ID.
func (r *PostRepository) Upsert(ctx context.Context, post domain.Post) (domain.Post, error) {
	if strings.TrimSpace(post.ID) == "" {
		return domain.Post{}, errors.New("posts.upsert: id is required")
	}
	result, err := r.base.Set(ctx, post.ID, documentFromPost(post))
	if err != nil {
		return domain.Post{}, err
	}
	post.UpdatedAt = result.UpdateTime
	return post, nil
}

// Delete removes the post by ID.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("posts.delete: id is required")
	}
	return r.base.Delete(ctx, id)
}

func postFromDocument(doc pfirestore.Document[postDocument]) domain.Post {
	data := doc.Data
	return domain.Post{
		ID:              doc.ID,
		Slug:            data.Slug,
		Title:           data.Title,
		MetaTitle:       data.MetaTitle,
		MetaDescription: data.MetaDescription,
		Excerpt:         data.Excerpt,
		BodyHTML:        data.BodyHTML,
		CoverURL:        data.CoverURL,
		OGImageURL:      data.OGImageURL,
		Category:        data.Category,
		Tags:            data.Tags,
		AuthorName:      data.AuthorName,
		Published:       data.Published,
		PublishedAt:     data.PublishedAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func documentFromPost(post domain.Post) postDocument {
	return postDocument{
		Slug:            post.Slug,
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
		Published:       post.Published,
		PublishedAt:     post.PublishedAt,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	}
}
