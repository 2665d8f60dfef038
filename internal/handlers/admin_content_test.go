package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/grouptherapyeg/site-api/internal/services"
)

func newAdminRouter(h *AdminContentHandlers) chi.Router {
	return NewRouter(WithAdminRoutes(h.Routes))
}

func TestAdminCreatePost(t *testing.T) {
	svc := &stubAdminService{}
	h := NewAdminContentHandlers(WithAdminService(svc))
	router := newAdminRouter(h)

	body := `{"title":"Launch Party","bodyHtml":"<p>hi</p>","published":true,"publishedAt":"2025-03-01T10:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/posts", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if svc.savedPost.Title != "Launch Party" {
		t.Fatalf("expected title forwarded to service, got %q", svc.savedPost.Title)
	}
	want := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	if !svc.savedPost.PublishedAt.Equal(want) {
		t.Fatalf("expected publishedAt parsed, got %v", svc.savedPost.PublishedAt)
	}

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["title"] != "Launch Party" {
		t.Fatalf("expected camelCase response payload, got %v", resp)
	}
}

func TestAdminUpdateReleaseCarriesID(t *testing.T) {
	svc := &stubAdminService{}
	h := NewAdminContentHandlers(WithAdminService(svc))
	router := newAdminRouter(h)

	body := `{"title":"Neon Dreams","artistName":"DJ Nova","type":"ep","releaseDate":"2025-06-20"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/releases/rel_001", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if svc.savedRelease.ID != "rel_001" {
		t.Fatalf("expected path id forwarded, got %q", svc.savedRelease.ID)
	}
	if svc.savedRelease.ReleaseDate.IsZero() {
		t.Fatalf("expected date-only release date parsed")
	}
}

func TestAdminRejectsMalformedRequests(t *testing.T) {
	svc := &stubAdminService{}
	h := NewAdminContentHandlers(WithAdminService(svc))
	router := newAdminRouter(h)

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"title":`},
		{"unknown field", `{"title":"x","bogus":true}`},
		{"bad timestamp", `{"title":"x","publishedAt":"not-a-date"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/posts", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rr.Code)
			}
			var payload map[string]any
			if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
				t.Fatalf("failed to parse error envelope: %v", err)
			}
			if payload["error"] != "invalid_request" {
				t.Fatalf("expected invalid_request code, got %v", payload["error"])
			}
		})
	}
}

func TestAdminSlugValidationMapsToBadRequest(t *testing.T) {
	svc := &stubAdminService{saveErr: services.ErrSlugMissing}
	h := NewAdminContentHandlers(WithAdminService(svc))
	router := newAdminRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/artists", strings.NewReader(`{"bioHtml":"<p>x</p>"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestAdminDelete(t *testing.T) {
	svc := &stubAdminService{}
	h := NewAdminContentHandlers(WithAdminService(svc))
	router := newAdminRouter(h)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/events/evt_001", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if svc.deletedID != "evt_001" {
		t.Fatalf("expected id forwarded to service, got %q", svc.deletedID)
	}
}

func TestAdminSaveSettings(t *testing.T) {
	svc := &stubAdminService{}
	h := NewAdminContentHandlers(WithAdminService(svc))
	router := newAdminRouter(h)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/settings", strings.NewReader(`{"defaultTitle":"GroupTherapy Records"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if svc.savedSettings["defaultTitle"] != "GroupTherapy Records" {
		t.Fatalf("expected settings row forwarded, got %v", svc.savedSettings)
	}
}

func TestAdminWriteRateLimit(t *testing.T) {
	svc := &stubAdminService{}
	h := NewAdminContentHandlers(
		WithAdminService(svc),
		WithAdminWriteLimit(2, time.Minute),
	)
	router := newAdminRouter(h)

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/posts", strings.NewReader(`{"title":"x"}`))
		req.RemoteAddr = "203.0.113.9:41000"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		last = rr.Code
	}

	if last != http.StatusTooManyRequests {
		t.Fatalf("expected third write throttled with 429, got %d", last)
	}
}

func TestAdminMissingServiceUnavailable(t *testing.T) {
	h := NewAdminContentHandlers()
	router := newAdminRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/posts", strings.NewReader(`{"title":"x"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}
}
