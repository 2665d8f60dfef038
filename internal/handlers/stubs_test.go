package handlers

import (
	"context"

	domain "github.com/grouptherapyeg/site-api/internal/domain"
	"github.com/grouptherapyeg/site-api/internal/seo"
)

type stubContentService struct {
	settings    *seo.Settings
	settingsErr error
	content     *seo.Content
	contentErr  error
	route       seo.Route

	posts       []domain.Post
	releases    []domain.Release
	events      []domain.Event
	artists     []domain.Artist
	staticPages []domain.StaticPage
	radioShows  []domain.RadioShow
	listErr     error
}

func (s *stubContentService) ResolveRouteContent(_ context.Context, route seo.Route) (*seo.Content, error) {
	s.route = route
	return s.content, s.contentErr
}

func (s *stubContentService) LatestSettings(context.Context) (*seo.Settings, error) {
	return s.settings, s.settingsErr
}

func (s *stubContentService) PublishedPosts(context.Context) ([]domain.Post, error) {
	return s.posts, s.listErr
}

func (s *stubContentService) PublishedReleases(context.Context) ([]domain.Release, error) {
	return s.releases, s.listErr
}

func (s *stubContentService) PublishedEvents(context.Context) ([]domain.Event, error) {
	return s.events, s.listErr
}

func (s *stubContentService) PublishedArtists(context.Context) ([]domain.Artist, error) {
	return s.artists, s.listErr
}

func (s *stubContentService) PublishedStaticPages(context.Context) ([]domain.StaticPage, error) {
	return s.staticPages, s.listErr
}

func (s *stubContentService) PublishedRadioShows(context.Context) ([]domain.RadioShow, error) {
	return s.radioShows, s.listErr
}

type stubAdminService struct {
	savedPost       domain.Post
	savedRelease    domain.Release
	savedEvent      domain.Event
	savedArtist     domain.Artist
	savedPage       domain.StaticPage
	savedShow       domain.RadioShow
	savedSettings   map[string]any
	deletedID       string
	saveErr         error
	deleteErr       error
	settingsSaveErr error
}

func (s *stubAdminService) SavePost(_ context.Context, post domain.Post) (domain.Post, error) {
	s.savedPost = post
	return post, s.saveErr
}

func (s *stubAdminService) DeletePost(_ context.Context, id string) error {
	s.deletedID = id
	return s.deleteErr
}

func (s *stubAdminService) SaveRelease(_ context.Context, release domain.Release) (domain.Release, error) {
	s.savedRelease = release
	return release, s.saveErr
}

func (s *stubAdminService) DeleteRelease(_ context.Context, id string) error {
	s.deletedID = id
	return s.deleteErr
}

func (s *stubAdminService) SaveEvent(_ context.Context, event domain.Event) (domain.Event, error) {
	s.savedEvent = event
	return event, s.saveErr
}

func (s *stubAdminService) DeleteEvent(_ context.Context, id string) error {
	s.deletedID = id
	return s.deleteErr
}

func (s *stubAdminService) SaveArtist(_ context.Context, artist domain.Artist) (domain.Artist, error) {
	s.savedArtist = artist
	return artist, s.saveErr
}

func (s *stubAdminService) DeleteArtist(_ context.Context, id string) error {
	s.deletedID = id
	return s.deleteErr
}

func (s *stubAdminService) SaveStaticPage(_ context.Context, page domain.StaticPage) (domain.StaticPage, error) {
	s.savedPage = page
	return page, s.saveErr
}

func (s *stubAdminService) DeleteStaticPage(_ context.Context, id string) error {
	s.deletedID = id
	return s.deleteErr
}

func (s *stubAdminService) SaveRadioShow(_ context.Context, show domain.RadioShow) (domain.RadioShow, error) {
	s.savedShow = show
	return show, s.saveErr
}

func (s *stubAdminService) DeleteRadioShow(_ context.Context, id string) error {
	s.deletedID = id
	return s.deleteErr
}

func (s *stubAdminService) SaveSettings(_ context.Context, row map[string]any) (map[string]any, error) {
	s.savedSettings = row
	if s.settingsSaveErr != nil {
		return nil, s.settingsSaveErr
	}
	return row, nil
}
