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

const eventCollection = "events"

type eventDocument struct {
	Slug        string    `firestore:"slug"`
	Title       string    `firestore:"title"`
	Description string    `firestore:"description"`
	VenueName   string    `firestore:"venue_name"`
	City        string    `firestore:"city"`
	Country     string    `firestore:"country"`
	ImageURL    string    `firestore:"image_url"`
	StartAt     time.Time `firestore:"start_date"`
	EndAt       time.Time `firestore:"end_date"`
	Published   bool      `firestore:"published"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

// EventRepository persists events.
type EventRepository struct {
	base *pfirestore.BaseRepository[eventDocument]
}

// NewEventRepository constructs a Firestore-backed event repository.
func NewEventRepository(provider *pfirestore.Provider) (*EventRepository, error) {
	if provider == nil {
		return nil, errors.New("event repository requires firestore provider")
	}
	return &EventRepository{base: pfirestore.NewBaseRepository[eventDocument](provider, eventCollection, nil, nil)}, nil
}

// GetPublishedBySlug returns the single published event carrying slug.
func (r *EventRepository) GetPublishedBySlug(ctx context.Context, slug string) (domain.Event, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Event{}, notFound("events.get", errors.New("slug is required"))
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("slug", "==", slug).Where("published", "==", true).Limit(1)
	})
	if err != nil {
		return domain.Event{}, err
	}
	if len(docs) == 0 {
		return domain.Event{}, notFound("events.get", fmt.Errorf("event %q not found", slug))
	}
	return eventFromDocument(docs[0]), nil
}

// ListPublished returns all published events, newest start date first.
func (r *EventRepository) ListPublished(ctx context.Context) ([]domain.Event, error) {
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("published", "==", true).OrderBy("start_date", firestore.Desc)
	})
	if err != nil {
		return nil, err
	}
	events := make([]domain.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, eventFromDocument(doc))
	}
	return events, nil
}

// Upsert writes the event under its ID.
func (r *EventRepository) Upsert(ctx context.Context, event domain.Event) (domain.Event, error) {
	if strings.TrimSpace(event.ID) == "" {
		return domain.Event{}, errors.New("events.upsert: id is required")
	}
	result, err := r.base.Set(ctx, event.ID, documentFromEvent(event))
	if err != nil {
		return domain.Event{}, err
	}
	event.UpdatedAt = result.UpdateTime
	return event, nil
}

// Delete removes the event by ID.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("events.delete: id is required")
	}
	return r.base.Delete(ctx, id)
}

func eventFromDocument(doc pfirestore.Document[eventDocument]) domain.Event {
	data := doc.Data
	return domain.Event{
		ID:          doc.ID,
		Slug:        data.Slug,
		Title:       data.Title,
		Description: data.Description,
		VenueName:   data.VenueName,
		City:        data.City,
		Country:     data.Country,
		ImageURL:    data.ImageURL,
		StartAt:     data.StartAt,
		EndAt:       data.EndAt,
		Published:   data.Published,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func documentFromEvent(event domain.Event) eventDocument {
	return eventDocument{
		Slug:        event.Slug,
		Title:       event.Title,
		Description: event.Description,
		VenueName:   event.VenueName,
		City:        event.City,
		Country:     event.Country,
		ImageURL:    event.ImageURL,
		StartAt:     event.StartAt,
		EndAt:       event.EndAt,
		Published:   event.Published,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
}
