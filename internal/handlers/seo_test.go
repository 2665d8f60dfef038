package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grouptherapyeg/site-api/internal/seo"
)

func decodeComputed(t *testing.T, rr *httptest.ResponseRecorder) seo.Computed {
	t.Helper()
	var computed seo.Computed
	if err := json.Unmarshal(rr.Body.Bytes(), &computed); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return computed
}

func TestSEOHandlerDefaultsToRoot(t *testing.T) {
	svc := &stubContentService{}
	h := NewSEOHandlers(WithSEOContentService(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/seo", nil)
	req.Host = "www.grouptherapyeg.com"
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if got, want := rr.Header().Get("Cache-Control"), "public, max-age=0, s-maxage=60"; got != want {
		t.Fatalf("expected cache control %q, got %q", want, got)
	}

	computed := decodeComputed(t, rr)
	if computed.Route.Kind != seo.RouteHome {
		t.Fatalf("expected home route, got %q", computed.Route.Kind)
	}
	if got, want := computed.Canonical, "https://www.grouptherapyeg.com/"; got != want {
		t.Fatalf("expected canonical %q, got %q", want, got)
	}
}

func TestSEOHandlerUsesForwardedHost(t *testing.T) {
	svc := &stubContentService{}
	h := NewSEOHandlers(WithSEOContentService(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/seo?path=/news/launch-party", nil)
	req.Host = "internal-lb:8080"
	req.Header.Set("X-Forwarded-Host", "grouptherapyeg.com")
	req.Header.Set("X-Forwarded-Proto", "https")
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	computed := decodeComputed(t, rr)
	if got, want := computed.Canonical, "https://www.grouptherapyeg.com/news/launch-party"; got != want {
		t.Fatalf("expected apex folded into canonical %q, got %q", want, got)
	}
	if svc.route.Kind != seo.RoutePost || svc.route.Slug != "launch-party" {
		t.Fatalf("expected post route lookup, got %+v", svc.route)
	}
}

func TestSEOHandlerContentDrivesMetadata(t *testing.T) {
	svc := &stubContentService{
		settings: &seo.Settings{DefaultTitle: "GroupTherapy Records"},
		content: &seo.Content{Post: &seo.PostContent{
			Title:       "Launch Party Recap",
			Excerpt:     "Photos and sets from the night.",
			PublishedAt: "2025-03-01T10:00:00Z",
		}},
	}
	h := NewSEOHandlers(WithSEOContentService(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/seo?path=/news/launch-party-recap", nil)
	req.Host = "www.grouptherapyeg.com"
	rr := httptest.NewRecorder()

	h.Get(rr, req)

	computed := decodeComputed(t, rr)
	if got, want := computed.Title, "Launch Party Recap | GroupTherapy Records"; got != want {
		t.Fatalf("expected title %q, got %q", want, got)
	}
	if got, want := computed.OGType, "article"; got != want {
		t.Fatalf("expected og type %q, got %q", want, got)
	}
}

func TestSEOHandlerDegradesOnStoreFailure(t *testing.T) {
	svc := &stubContentService{
		settingsErr: errors.New("store down"),
		contentErr:  errors.New("store down"),
	}

	t.Run("prod stays silent", func(t *testing.T) {
		h := NewSEOHandlers(WithSEOContentService(svc), WithSEOEnvironment("prod"))
		req := httptest.NewRequest(http.MethodGet, "/api/seo?path=/releases/lost-album", nil)
		req.Host = "www.grouptherapyeg.com"
		rr := httptest.NewRecorder()

		h.Get(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected degraded 200, got %d", rr.Code)
		}
		if rr.Header().Get("X-SEO-Degraded") != "" {
			t.Fatalf("expected no degraded header in prod")
		}
		computed := decodeComputed(t, rr)
		if computed.Title == "" || computed.Robots == "" {
			t.Fatalf("expected fallback metadata, got %+v", computed)
		}
	})

	t.Run("staging flags degradation", func(t *testing.T) {
		h := NewSEOHandlers(WithSEOContentService(svc), WithSEOEnvironment("staging"))
		req := httptest.NewRequest(http.MethodGet, "/api/seo?path=/releases/lost-album", nil)
		req.Host = "www.grouptherapyeg.com"
		rr := httptest.NewRecorder()

		h.Get(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected degraded 200, got %d", rr.Code)
		}
		if rr.Header().Get("X-SEO-Degraded") != "1" {
			t.Fatalf("expected degraded header outside prod")
		}
	})
}

func TestRequestProtoInference(t *testing.T) {
	cases := []struct {
		host  string
		proto string
		want  string
	}{
		{"localhost:3000", "", "http"},
		{"127.0.0.1", "", "http"},
		{"www.grouptherapyeg.com", "", "https"},
		{"www.grouptherapyeg.com", "http", "http"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = tc.host
		if tc.proto != "" {
			req.Header.Set("X-Forwarded-Proto", tc.proto)
		}
		if got := requestProto(req, requestHost(req)); got != tc.want {
			t.Fatalf("requestProto(host=%q, fwd=%q) = %q, want %q", tc.host, tc.proto, got, tc.want)
		}
	}
}
