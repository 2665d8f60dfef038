package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	domain "github.com/grouptherapyeg/site-api/internal/domain"
)

func (s contentStubs) adminDeps(clock func() time.Time, newID func() string) AdminContentServiceDeps {
	return AdminContentServiceDeps{
		Posts:       s.posts,
		Releases:    s.releases,
		Events:      s.events,
		Artists:     s.artists,
		StaticPages: s.staticPages,
		RadioShows:  s.radioShows,
		Settings:    s.settings,
		Clock:       clock,
		NewID:       newID,
	}
}

func TestNewAdminContentServiceRequiresRepositories(t *testing.T) {
	if _, err := NewAdminContentService(AdminContentServiceDeps{}); !errors.Is(err, ErrAdminRepositoriesMissing) {
		t.Fatalf("expected ErrAdminRepositoriesMissing, got %v", err)
	}
}

func TestSavePost(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	stubs := newContentStubs()
	svc, err := NewAdminContentService(stubs.adminDeps(
		func() time.Time { return now },
		func() string { return "01JXTESTID" },
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved, err := svc.SavePost(context.Background(), domain.Post{
		Title:     "  Summer Compilation Out Now  ",
		BodyHTML:  `<p>Stream it.</p><script>alert(1)</script>`,
		Tags:      []string{" House ", "house", ""},
		Published: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := saved.ID, "01JXTESTID"; got != want {
		t.Fatalf("expected minted id %q, got %q", want, got)
	}
	if got, want := saved.Slug, "summer-compilation-out-now"; got != want {
		t.Fatalf("expected derived slug %q, got %q", want, got)
	}
	if got, want := saved.Title, "Summer Compilation Out Now"; got != want {
		t.Fatalf("expected trimmed title %q, got %q", want, got)
	}
	if strings.Contains(saved.BodyHTML, "<script") {
		t.Fatalf("expected script tags stripped from body, got %q", saved.BodyHTML)
	}
	if !strings.Contains(saved.BodyHTML, "<p>Stream it.</p>") {
		t.Fatalf("expected paragraph preserved in body, got %q", saved.BodyHTML)
	}
	if !reflect.DeepEqual(saved.Tags, []string{"House"}) {
		t.Fatalf("expected deduped tags [House], got %#v", saved.Tags)
	}
	if saved.CreatedAt != now || saved.UpdatedAt != now {
		t.Fatalf("expected timestamps stamped with clock, got created=%v updated=%v", saved.CreatedAt, saved.UpdatedAt)
	}
	if saved.PublishedAt != now {
		t.Fatalf("expected publishedAt stamped on first publish, got %v", saved.PublishedAt)
	}
	if stubs.posts.upsertInput.ID != "01JXTESTID" {
		t.Fatalf("expected upsert to receive minted id, got %q", stubs.posts.upsertInput.ID)
	}
}

func TestSavePostKeepsExistingIdentity(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	created := time.Date(2024, time.January, 2, 8, 30, 0, 0, time.UTC)
	publishedAt := time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC)
	stubs := newContentStubs()
	svc, err := NewAdminContentService(stubs.adminDeps(func() time.Time { return now }, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved, err := svc.SavePost(context.Background(), domain.Post{
		ID:          "existing",
		Slug:        "Custom Slug!",
		Title:       "Ignored For Slug",
		Published:   true,
		PublishedAt: publishedAt,
		CreatedAt:   created,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := saved.ID, "existing"; got != want {
		t.Fatalf("expected existing id kept, got %q", got)
	}
	if got, want := saved.Slug, "custom-slug"; got != want {
		t.Fatalf("expected provided slug folded to %q, got %q", want, got)
	}
	if saved.CreatedAt != created {
		t.Fatalf("expected createdAt preserved, got %v", saved.CreatedAt)
	}
	if saved.PublishedAt != publishedAt {
		t.Fatalf("expected publishedAt preserved, got %v", saved.PublishedAt)
	}
	if saved.UpdatedAt != now {
		t.Fatalf("expected updatedAt restamped, got %v", saved.UpdatedAt)
	}
}

func TestSavePostRequiresSlugOrTitle(t *testing.T) {
	stubs := newContentStubs()
	svc, err := NewAdminContentService(stubs.adminDeps(nil, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.SavePost(context.Background(), domain.Post{BodyHTML: "<p>no title</p>"}); err == nil {
		t.Fatalf("expected error when both slug and title are empty")
	}
}

func TestSaveRelease(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	stubs := newContentStubs()
	svc, err := NewAdminContentService(stubs.adminDeps(func() time.Time { return now }, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved, err := svc.SaveRelease(context.Background(), domain.Release{
		ID:         "rel_001",
		Title:      "Néon Dreams",
		ArtistName: " DJ Nova ",
		Type:       " EP ",
		Genres:     []string{"House", "house", " Techno "},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := saved.Slug, "neon-dreams"; got != want {
		t.Fatalf("expected accent-folded slug %q, got %q", want, got)
	}
	if got, want := saved.Type, "ep"; got != want {
		t.Fatalf("expected lowercased type %q, got %q", want, got)
	}
	if got, want := saved.ArtistName, "DJ Nova"; got != want {
		t.Fatalf("expected trimmed artist %q, got %q", want, got)
	}
	if !reflect.DeepEqual(saved.Genres, []string{"House", "Techno"}) {
		t.Fatalf("expected deduped genres, got %#v", saved.Genres)
	}
	if saved.UpdatedAt != now {
		t.Fatalf("expected updatedAt stamped, got %v", saved.UpdatedAt)
	}
}

func TestSaveArtistSanitizesBio(t *testing.T) {
	stubs := newContentStubs()
	svc, err := NewAdminContentService(stubs.adminDeps(nil, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved, err := svc.SaveArtist(context.Background(), domain.Artist{
		Name:    "DJ Nova",
		BioHTML: `<p onclick="x()">Cairo based.</p><iframe src="//evil"></iframe>`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(saved.BioHTML, "onclick") || strings.Contains(saved.BioHTML, "iframe") {
		t.Fatalf("expected handlers and iframes stripped, got %q", saved.BioHTML)
	}
	if !strings.Contains(saved.BioHTML, "Cairo based.") {
		t.Fatalf("expected text content preserved, got %q", saved.BioHTML)
	}
	if got, want := saved.Slug, "dj-nova"; got != want {
		t.Fatalf("expected slug %q, got %q", want, got)
	}
}

func TestSaveRadioShowStampsPublishedAt(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	stubs := newContentStubs()
	svc, err := NewAdminContentService(stubs.adminDeps(func() time.Time { return now }, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved, err := svc.SaveRadioShow(context.Background(), domain.RadioShow{
		Title:     "Therapy Sessions 014",
		VideoURL:  " https://cdn.example.com/014.mp4 ",
		Published: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved.PublishedAt != now {
		t.Fatalf("expected publishedAt stamped, got %v", saved.PublishedAt)
	}
	if got, want := saved.VideoURL, "https://cdn.example.com/014.mp4"; got != want {
		t.Fatalf("expected trimmed video url %q, got %q", want, got)
	}
	if got, want := saved.Slug, "therapy-sessions-014"; got != want {
		t.Fatalf("expected slug %q, got %q", want, got)
	}
}

func TestDeleteRequiresID(t *testing.T) {
	stubs := newContentStubs()
	svc, err := NewAdminContentService(stubs.adminDeps(nil, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeletePost(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for blank id")
	}
	if err := svc.DeleteEvent(context.Background(), "evt_001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stubs.events.deletedID != "evt_001" {
		t.Fatalf("expected delete forwarded to repository, got %q", stubs.events.deletedID)
	}
}

func TestSaveSettings(t *testing.T) {
	stubs := newContentStubs()
	svc, err := NewAdminContentService(stubs.adminDeps(nil, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := map[string]any{"defaultTitle": "GroupTherapy Records"}
	saved, err := svc.SaveSettings(context.Background(), row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stubs.settings.upsertID != settingsRowID {
		t.Fatalf("expected settings row id %q, got %q", settingsRowID, stubs.settings.upsertID)
	}
	if saved["defaultTitle"] != "GroupTherapy Records" {
		t.Fatalf("expected row passed through, got %#v", saved)
	}

	if _, err := svc.SaveSettings(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil settings row")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Néon Dreams", "neon-dreams"},
		{"  Hello,   World!  ", "hello-world"},
		{"Crème Brûlée 2025", "creme-brulee-2025"},
		{"--already--slugged--", "already-slugged"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
