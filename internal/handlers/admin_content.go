package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	domain "github.com/grouptherapyeg/site-api/internal/domain"
	"github.com/grouptherapyeg/site-api/internal/seo"
	"github.com/grouptherapyeg/site-api/internal/platform/httpx"
	"github.com/grouptherapyeg/site-api/internal/repositories"
	"github.com/grouptherapyeg/site-api/internal/services"
)

const maxAdminRequestBody = 512 * 1024

// AdminContentHandlers exposes the content CRUD endpoints behind the admin
// dashboard.
type AdminContentHandlers struct {
	admin   services.AdminContentService
	limiter rateLimiter
}

// AdminOption customises construction of AdminContentHandlers.
type AdminOption func(*AdminContentHandlers)

// WithAdminService injects the admin content service dependency.
func WithAdminService(svc services.AdminContentService) AdminOption {
	return func(h *AdminContentHandlers) {
		h.admin = svc
	}
}

// WithAdminWriteLimit throttles write requests per client IP.
func WithAdminWriteLimit(limit int, window time.Duration) AdminOption {
	return func(h *AdminContentHandlers) {
		h.limiter = newSimpleRateLimiter(limit, window, nil)
	}
}

// NewAdminContentHandlers constructs the admin CRUD handlers.
func NewAdminContentHandlers(opts ...AdminOption) *AdminContentHandlers {
	h := &AdminContentHandlers{}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Routes registers admin content endpoints.
func (h *AdminContentHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/posts", h.savePost)
	r.Put("/posts/{id}", h.savePost)
	r.Delete("/posts/{id}", h.delete(func(s services.AdminContentService) deleteFunc { return s.DeletePost }))
	r.Post("/releases", h.saveRelease)
	r.Put("/releases/{id}", h.saveRelease)
	r.Delete("/releases/{id}", h.delete(func(s services.AdminContentService) deleteFunc { return s.DeleteRelease }))
	r.Post("/events", h.saveEvent)
	r.Put("/events/{id}", h.saveEvent)
	r.Delete("/events/{id}", h.delete(func(s services.AdminContentService) deleteFunc { return s.DeleteEvent }))
	r.Post("/artists", h.saveArtist)
	r.Put("/artists/{id}", h.saveArtist)
	r.Delete("/artists/{id}", h.delete(func(s services.AdminContentService) deleteFunc { return s.DeleteArtist }))
	r.Post("/pages", h.saveStaticPage)
	r.Put("/pages/{id}", h.saveStaticPage)
	r.Delete("/pages/{id}", h.delete(func(s services.AdminContentService) deleteFunc { return s.DeleteStaticPage }))
	r.Post("/radio-shows", h.saveRadioShow)
	r.Put("/radio-shows/{id}", h.saveRadioShow)
	r.Delete("/radio-shows/{id}", h.delete(func(s services.AdminContentService) deleteFunc { return s.DeleteRadioShow }))
	r.Put("/settings", h.saveSettings)
}

type deleteFunc func(ctx context.Context, id string) error

type adminPostResponse struct {
	ID              string   `json:"id"`
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	Excerpt         string   `json:"excerpt,omitempty"`
	BodyHTML        string   `json:"bodyHtml,omitempty"`
	CoverURL        string   `json:"coverUrl,omitempty"`
	OGImageURL      string   `json:"ogImageUrl,omitempty"`
	Category        string   `json:"category,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	AuthorName      string   `json:"authorName,omitempty"`
	Published       bool     `json:"published"`
	PublishedAt     string   `json:"publishedAt,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

func newAdminPostResponse(post domain.Post) adminPostResponse {
	return adminPostResponse{
		ID:              post.ID,
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
		PublishedAt:     seo.ISODate(post.PublishedAt),
		CreatedAt:       seo.ISODate(post.CreatedAt),
		UpdatedAt:       seo.ISODate(post.UpdatedAt),
	}
}

type adminPostRequest struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Excerpt         string   `json:"excerpt"`
	BodyHTML        string   `json:"bodyHtml"`
	CoverURL        string   `json:"coverUrl"`
	OGImageURL      string   `json:"ogImageUrl"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	AuthorName      string   `json:"authorName"`
	Published       bool     `json:"published"`
	PublishedAt     string   `json:"publishedAt"`
}

func (h *AdminContentHandlers) savePost(w http.ResponseWriter, r *http.Request) {
	if !h.writeAllowed(w, r) {
		return
	}
	var payload adminPostRequest
	if err := decodeAdminRequest(r, &payload); err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	publishedAt, err := parseAdminTime(payload.PublishedAt)
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	saved, err := h.admin.SavePost(r.Context(), domain.Post{
		ID:              chi.URLParam(r, "id"),
		Slug:            payload.Slug,
		Title:           payload.Title,
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
		Excerpt:         payload.Excerpt,
		BodyHTML:        payload.BodyHTML,
		CoverURL:        payload.CoverURL,
		OGImageURL:      payload.OGImageURL,
		Category:        payload.Category,
		Tags:            payload.Tags,
		AuthorName:      payload.AuthorName,
		Published:       payload.Published,
		PublishedAt:     publishedAt,
	})
	if err != nil {
		writeAdminError(w, r, err)
		return
	}
	writeJSON(w, savedStatus(r), newAdminPostResponse(saved))
}


type adminReleaseResponse struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	ArtistName  string   `json:"artistName,omitempty"`
	Type        string   `json:"type,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	CoverURL    string   `json:"coverUrl,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	Published   bool     `json:"published"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

func newAdminReleaseResponse(release domain.Release) adminReleaseResponse {
	return adminReleaseResponse{
		ID:          release.ID,
		Slug:        release.Slug,
		Title:       release.Title,
		ArtistName:  release.ArtistName,
		Type:        release.Type,
		Genres:      release.Genres,
		CoverURL:    release.CoverURL,
		ReleaseDate: seo.ISODate(release.ReleaseDate),
		Published:   release.Published,
		CreatedAt:   seo.ISODate(release.CreatedAt),
		UpdatedAt:   seo.ISODate(release.UpdatedAt),
	}
}

type adminEventResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	VenueName   string `json:"venueName,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	StartAt     string `json:"startAt,omitempty"`
	EndAt       string `json:"endAt,omitempty"`
	Published   bool   `json:"published"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

func newAdminEventResponse(event domain.Event) adminEventResponse {
	return adminEventResponse{
		ID:          event.ID,
		Slug:        event.Slug,
		Title:       event.Title,
		Description: event.Description,
		VenueName:   event.VenueName,
		City:        event.City,
		Country:     event.Country,
		ImageURL:    event.ImageURL,
		StartAt:     seo.ISODate(event.StartAt),
		EndAt:       seo.ISODate(event.EndAt),
		Published:   event.Published,
		CreatedAt:   seo.ISODate(event.CreatedAt),
		UpdatedAt:   seo.ISODate(event.UpdatedAt),
	}
}

type adminArtistResponse struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	BioHTML   string `json:"bioHtml,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Published bool   `json:"published"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func newAdminArtistResponse(artist domain.Artist) adminArtistResponse {
	return adminArtistResponse{
		ID:        artist.ID,
		Slug:      artist.Slug,
		Name:      artist.Name,
		BioHTML:   artist.BioHTML,
		ImageURL:  artist.ImageURL,
		Published: artist.Published,
		CreatedAt: seo.ISODate(artist.CreatedAt),
		UpdatedAt: seo.ISODate(artist.UpdatedAt),
	}
}

type adminStaticPageResponse struct {
	ID              string `json:"id"`
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	BodyHTML        string `json:"bodyHtml,omitempty"`
	Published       bool   `json:"published"`
	CreatedAt       string `json:"createdAt,omitempty"`
	UpdatedAt       string `json:"updatedAt,omitempty"`
}

func newAdminStaticPageResponse(page domain.StaticPage) adminStaticPageResponse {
	return adminStaticPageResponse{
		ID:              page.ID,
		Slug:            page.Slug,
		Title:           page.Title,
		MetaTitle:       page.MetaTitle,
		MetaDescription: page.MetaDescription,
		BodyHTML:        page.BodyHTML,
		Published:       page.Published,
		CreatedAt:       seo.ISODate(page.CreatedAt),
		UpdatedAt:       seo.ISODate(page.UpdatedAt),
	}
}

type adminRadioShowResponse struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	VideoURL     string `json:"videoUrl,omitempty"`
	DurationSec  int    `json:"durationSec,omitempty"`
	Published    bool   `json:"published"`
	PublishedAt  string `json:"publishedAt,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

func newAdminRadioShowResponse(show domain.RadioShow) adminRadioShowResponse {
	return adminRadioShowResponse{
		ID:           show.ID,
		Slug:         show.Slug,
		Title:        show.Title,
		Description:  show.Description,
		ThumbnailURL: show.ThumbnailURL,
		VideoURL:     show.VideoURL,
		DurationSec:  show.DurationSec,
		Published:    show.Published,
		PublishedAt:  seo.ISODate(show.PublishedAt),
		CreatedAt:    seo.ISODate(show.CreatedAt),
		UpdatedAt:    seo.ISODate(show.UpdatedAt),
	}
}

type adminReleaseRequest struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	ArtistName  string   `json:"artistName"`
	Type        string   `json:"type"`
	Genres      []string `json:"genres"`
	CoverURL    string   `json:"coverUrl"`
	ReleaseDate string   `json:"releaseDate"`
	Published   bool     `json:"published"`
}

func (h *AdminContentHandlers) saveRelease(w http.ResponseWriter, r *http.Request) {
	if !h.writeAllowed(w, r) {
		return
	}
	var payload adminReleaseRequest
	if err := decodeAdminRequest(r, &payload); err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	releaseDate, err := parseAdminTime(payload.ReleaseDate)
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	saved, err := h.admin.SaveRelease(r.Context(), domain.Release{
		ID:          chi.URLParam(r, "id"),
		Slug:        payload.Slug,
		Title:       payload.Title,
		ArtistName:  payload.ArtistName,
		Type:        payload.Type,
		Genres:      payload.Genres,
		CoverURL:    payload.CoverURL,
		ReleaseDate: releaseDate,
		Published:   payload.Published,
	})
	if err != nil {
		writeAdminError(w, r, err)
		return
	}
	writeJSON(w, savedStatus(r), newAdminReleaseResponse(saved))
}

type adminEventRequest struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VenueName   string `json:"venueName"`
	City        string `json:"city"`
	Country     string `json:"country"`
	ImageURL    string `json:"imageUrl"`
	StartAt     string `json:"startAt"`
	EndAt       string `json:"endAt"`
	Published   bool   `json:"published"`
}

func (h *AdminContentHandlers) saveEvent(w http.ResponseWriter, r *http.Request) {
	if !h.writeAllowed(w, r) {
		return
	}
	var payload adminEventRequest
	if err := decodeAdminRequest(r, &payload); err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	startAt, err := parseAdminTime(payload.StartAt)
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	endAt, err := parseAdminTime(payload.EndAt)
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	saved, err := h.admin.SaveEvent(r.Context(), domain.Event{
		ID:          chi.URLParam(r, "id"),
		Slug:        payload.Slug,
		Title:       payload.Title,
		Description: payload.Description,
		VenueName:   payload.VenueName,
		City:        payload.City,
		Country:     payload.Country,
		ImageURL:    payload.ImageURL,
		StartAt:     startAt,
		EndAt:       endAt,
		Published:   payload.Published,
	})
	if err != nil {
		writeAdminError(w, r, err)
		return
	}
	writeJSON(w, savedStatus(r), newAdminEventResponse(saved))
}

type adminArtistRequest struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	BioHTML   string `json:"bioHtml"`
	ImageURL  string `json:"imageUrl"`
	Published bool   `json:"published"`
}

func (h *AdminContentHandlers) saveArtist(w http.ResponseWriter, r *http.Request) {
	if !h.writeAllowed(w, r) {
		return
	}
	var payload adminArtistRequest
	if err := decodeAdminRequest(r, &payload); err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	saved, err := h.admin.SaveArtist(r.Context(), domain.Artist{
		ID:        chi.URLParam(r, "id"),
		Slug:      payload.Slug,
		Name:      payload.Name,
		BioHTML:   payload.BioHTML,
		ImageURL:  payload.ImageURL,
		Published: payload.Published,
	})
	if err != nil {
		writeAdminError(w, r, err)
		return
	}
	writeJSON(w, savedStatus(r), newAdminArtistResponse(saved))
}

type adminStaticPageRequest struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	BodyHTML        string `json:"bodyHtml"`
	Published       bool   `json:"published"`
}

func (h *AdminContentHandlers) saveStaticPage(w http.ResponseWriter, r *http.Request) {
	if !h.writeAllowed(w, r) {
		return
	}
	var payload adminStaticPageRequest
	if err := decodeAdminRequest(r, &payload); err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	saved, err := h.admin.SaveStaticPage(r.Context(), domain.StaticPage{
		ID:              chi.URLParam(r, "id"),
		Slug:            payload.Slug,
		Title:           payload.Title,
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
		BodyHTML:        payload.BodyHTML,
		Published:       payload.Published,
	})
	if err != nil {
		writeAdminError(w, r, err)
		return
	}
	writeJSON(w, savedStatus(r), newAdminStaticPageResponse(saved))
}

type adminRadioShowRequest struct {
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
	VideoURL     string `json:"videoUrl"`
	DurationSec  int    `json:"durationSec"`
	Published    bool   `json:"published"`
	PublishedAt  string `json:"publishedAt"`
}

func (h *AdminContentHandlers) saveRadioShow(w http.ResponseWriter, r *http.Request) {
	if !h.writeAllowed(w, r) {
		return
	}
	var payload adminRadioShowRequest
	if err := decodeAdminRequest(r, &payload); err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	publishedAt, err := parseAdminTime(payload.PublishedAt)
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	saved, err := h.admin.SaveRadioShow(r.Context(), domain.RadioShow{
		ID:           chi.URLParam(r, "id"),
		Slug:         payload.Slug,
		Title:        payload.Title,
		Description:  payload.Description,
		ThumbnailURL: payload.ThumbnailURL,
		VideoURL:     payload.VideoURL,
		DurationSec:  payload.DurationSec,
		Published:    payload.Published,
		PublishedAt:  publishedAt,
	})
	if err != nil {
		writeAdminError(w, r, err)
		return
	}
	writeJSON(w, savedStatus(r), newAdminRadioShowResponse(saved))
}

func (h *AdminContentHandlers) saveSettings(w http.ResponseWriter, r *http.Request) {
	if !h.writeAllowed(w, r) {
		return
	}
	var payload map[string]any
	if err := decodeAdminRequest(r, &payload); err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	saved, err := h.admin.SaveSettings(r.Context(), payload)
	if err != nil {
		writeAdminError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *AdminContentHandlers) delete(pick func(services.AdminContentService) deleteFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.writeAllowed(w, r) {
			return
		}
		if err := pick(h.admin)(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeAdminError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// writeAllowed checks the service is wired and the client is within the
// write rate limit.
func (h *AdminContentHandlers) writeAllowed(w http.ResponseWriter, r *http.Request) bool {
	ctx := r.Context()
	if h.admin == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "admin service unavailable", http.StatusServiceUnavailable))
		return false
	}
	if h.limiter != nil && !h.limiter.Allow(clientKey(r)) {
		httpx.WriteError(ctx, w, httpx.NewError("rate_limited", "too many requests", http.StatusTooManyRequests))
		return false
	}
	return true
}

// clientKey keys the rate limiter by client IP. RealIP middleware has
// already rewritten RemoteAddr from the forwarding headers.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func decodeAdminRequest(r *http.Request, target any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxAdminRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

var adminTimeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

func parseAdminTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range adminTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

func savedStatus(r *http.Request) int {
	if r.Method == http.MethodPost {
		return http.StatusCreated
	}
	return http.StatusOK
}

func writeAdminError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, services.ErrSlugMissing),
		errors.Is(err, services.ErrIDMissing),
		errors.Is(err, services.ErrSettingsRowMissing):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case repositories.IsNotFound(err):
		httpx.WriteError(ctx, w, httpx.NewError("not_found", "document not found", http.StatusNotFound))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "failed to persist document", http.StatusInternalServerError))
	}
}
