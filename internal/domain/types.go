package domain

import (
	"time"
)

// SortOrder indicates ascending or descending ordering for list queries.
type SortOrder string

const (
	// SortAsc sorts results in ascending order.
	SortAsc SortOrder = "asc"
	// SortDesc sorts results in descending order.
	SortDesc SortOrder = "desc"
)

// Post is a news/blog article published on the marketing site.
type Post struct {
	ID              string
	Slug            string
	Title           string
	MetaTitle       string
	MetaDescription string
	Excerpt         string
	BodyHTML        string
	CoverURL        string
	OGImageURL      string
	Category        string
	Tags            []string
	AuthorName      string
	Published       bool
	PublishedAt     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Release is a catalogue entry (single, EP, album, compilation).
type Release struct {
	ID          string
	Slug        string
	Title       string
	ArtistName  string
	Type        string
	Genres      []string
	CoverURL    string
	ReleaseDate time.Time
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Event is a label night, showcase, or festival appearance.
type Event struct {
	ID          string
	Slug        string
	Title       string
	Description string
	VenueName   string
	City        string
	Country     string
	ImageURL    string
	StartAt     time.Time
	EndAt       time.Time
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Artist is a roster member profile.
type Artist struct {
	ID        string
	Slug      string
	Name      string
	BioHTML   string
	ImageURL  string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StaticPage is an editor-managed standalone page (terms, privacy, about copy).
type StaticPage struct {
	ID              string
	Slug            string
	Title           string
	MetaTitle       string
	MetaDescription string
	BodyHTML        string
	Published       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RadioShow is a published radio/video episode; it feeds the video sitemap.
type RadioShow struct {
	ID           string
	Slug         string
	Title        string
	Description  string
	ThumbnailURL string
	VideoURL     string
	DurationSec  int
	Published    bool
	PublishedAt  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
