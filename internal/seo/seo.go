package seo

import (
	"strings"
)

// Brand fallbacks applied when the settings record does not override them.
const (
	DefaultSiteName    = "GroupTherapy Records"
	defaultTitle       = "GroupTherapy Records | Independent Electronic Music Label"
	defaultDescription = "GroupTherapy Records is an independent electronic music label releasing house, techno and melodic electronica, home to a roster of resident artists, label nights and a weekly radio show."

	// RobotsIndex is the permissive robots directive for indexable pages.
	RobotsIndex = "index, follow, max-image-preview:large, max-snippet:-1, max-video-preview:-1"
	// RobotsNoindex is the restrictive robots directive.
	RobotsNoindex = "noindex, nofollow"

	defaultOGImagePath = "/og-image.jpg"
	ogTypeWebsite      = "website"
)

var defaultKeywords = []string{
	"GroupTherapy Records",
	"electronic music",
	"record label",
	"house music",
	"techno",
	"melodic house",
	"new music releases",
	"underground electronic",
}

// SectionMeta is a hardcoded title/description pair for a known site section.
type SectionMeta struct {
	Title       string
	Description string
}

var sectionDefaults = map[string]SectionMeta{
	"news": {
		Title:       "News | GroupTherapy Records",
		Description: "Label news, release announcements, interviews and stories from the GroupTherapy Records family.",
	},
	"releases": {
		Title:       "Releases | GroupTherapy Records",
		Description: "Browse the full GroupTherapy Records catalogue of singles, EPs, albums and compilations.",
	},
	"events": {
		Title:       "Events | GroupTherapy Records",
		Description: "Upcoming GroupTherapy Records label nights, showcases and festival appearances.",
	},
	"artists": {
		Title:       "Artists | GroupTherapy Records",
		Description: "Meet the GroupTherapy Records roster of resident artists, DJs and producers.",
	},
	"radio": {
		Title:       "Radio | GroupTherapy Records",
		Description: "Stream episodes of the GroupTherapy Records radio show, mixed by our residents and guests.",
	},
	"awards": {
		Title:       "Awards | GroupTherapy Records",
		Description: "Awards and recognition earned by GroupTherapy Records and its artists.",
	},
	"careers": {
		Title:       "Careers | GroupTherapy Records",
		Description: "Open roles and opportunities to join the GroupTherapy Records team.",
	},
	"about": {
		Title:       "About | GroupTherapy Records",
		Description: "The story behind GroupTherapy Records, an independent electronic music label.",
	},
	"contact": {
		Title:       "Contact | GroupTherapy Records",
		Description: "Get in touch with GroupTherapy Records for demos, bookings and press.",
	},
	"demos": {
		Title:       "Demo Submissions | GroupTherapy Records",
		Description: "Send your demos to GroupTherapy Records. We listen to everything.",
	},
}

// SectionDefault returns the hardcoded metadata for a known section slug.
func SectionDefault(slug string) (SectionMeta, bool) {
	meta, ok := sectionDefaults[slug]
	return meta, ok
}

// PostContent carries the display fields of a fetched news article.
type PostContent struct {
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
	PublishedAt     string
	CreatedAt       string
}

// ReleaseContent carries the display fields of a fetched release.
type ReleaseContent struct {
	Title       string
	ArtistName  string
	Type        string
	Genres      []string
	CoverURL    string
	ReleaseDate string
	CreatedAt   string
}

// EventContent carries the display fields of a fetched event.
type EventContent struct {
	Title       string
	Description string
	VenueName   string
	City        string
	Country     string
	ImageURL    string
	StartAt     string
	EndAt       string
	CreatedAt   string
}

// ArtistContent carries the display fields of a fetched artist profile.
type ArtistContent struct {
	Name      string
	BioHTML   string
	ImageURL  string
	CreatedAt string
}

// StaticPageContent carries the display fields of a fetched static page.
type StaticPageContent struct {
	Title           string
	MetaTitle       string
	MetaDescription string
	BodyHTML        string
	UpdatedAt       string
	CreatedAt       string
}

// Content holds at most one fetched record matching the classified route.
// The engine performs no I/O; the caller fetches the record (if any) first.
type Content struct {
	Post       *PostContent
	Release    *ReleaseContent
	Event      *EventContent
	Artist     *ArtistContent
	StaticPage *StaticPageContent
}

// MetaTagAttr selects the HTML attribute a meta tag is keyed by.
type MetaTagAttr string

const (
	// MetaName keys the tag by the name attribute.
	MetaName MetaTagAttr = "name"
	// MetaProperty keys the tag by the property attribute (Open Graph).
	MetaProperty MetaTagAttr = "property"
	// MetaItemprop keys the tag by the itemprop attribute (microdata).
	MetaItemprop MetaTagAttr = "itemprop"
)

// MetaTag is one extra meta element to emit alongside the fixed set.
type MetaTag struct {
	Attr  MetaTagAttr `json:"attr"`
	Key   string      `json:"key"`
	Value string      `json:"value"`
}

// Input is the full argument set for Compute. BaseURL must be absolute with
// no trailing slash; Settings and Content are optional.
type Input struct {
	Pathname          string
	BaseURL           string
	CanonicalOverride string
	Noindex           bool
	Settings          *Settings
	Content           *Content
}

// Computed is the complete metadata set for one page.
type Computed struct {
	Route          Route          `json:"route"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Keywords       []string       `json:"keywords"`
	Canonical      string         `json:"canonical"`
	Robots         string         `json:"robots"`
	OGType         string         `json:"ogType"`
	SiteName       string         `json:"siteName"`
	OGImage        string         `json:"ogImage"`
	OGLogo         string         `json:"ogLogo"`
	TwitterImage   string         `json:"twitterImage"`
	TwitterHandle  string         `json:"twitterHandle,omitempty"`
	ExtraMeta      []MetaTag      `json:"extraMeta,omitempty"`
	StructuredData map[string]any `json:"structuredData,omitempty"`
	HeadScripts    string         `json:"headScripts,omitempty"`
	BodyScripts    string         `json:"bodyScripts,omitempty"`
}

// Compute derives the full SEO metadata set for one request. It is pure:
// the same input always yields the same output and no I/O occurs.
func Compute(in Input) Computed {
	route := ParseRoute(in.Pathname)
	settings := in.Settings

	siteName := resolveSiteName(settings)
	title := defaultTitle
	description := defaultDescription
	baseKeywords := defaultKeywords
	var twitterHandle string
	var headScripts, bodyScripts string
	if settings != nil {
		title = firstNonEmpty(settings.DefaultTitle, title)
		description = firstNonEmpty(settings.DefaultDescription, description)
		if len(settings.DefaultKeywords) > 0 {
			baseKeywords = settings.DefaultKeywords
		}
		twitterHandle = settings.TwitterHandle
		headScripts = settings.HeadScripts
		bodyScripts = settings.BodyScripts
	}

	canonical := in.CanonicalOverride
	if canonical == "" {
		canonical = in.BaseURL + in.Pathname
	}
	robots := RobotsIndex
	if in.Noindex {
		robots = RobotsNoindex
	}

	branch := deriveRouteBranch(route, in.Content, routeBranchInput{
		siteName:     siteName,
		fallbackDesc: description,
		baseKeywords: baseKeywords,
	})

	if branch.title != "" {
		title = branch.title
	}
	if branch.description != "" {
		description = branch.description
	}

	keywords := branch.keywords
	if len(keywords) == 0 {
		keywords = UniqueKeywords(baseKeywords)
	}

	ogType := branch.ogType
	if ogType == "" {
		ogType = ogTypeWebsite
	}

	var settingsOGImage, settingsTwitterImage string
	if settings != nil {
		settingsOGImage = settings.OGImage
		settingsTwitterImage = settings.TwitterImage
	}
	ogImage := AbsoluteURL(firstNonEmpty(branch.image, settingsOGImage, defaultOGImagePath), in.BaseURL)
	twitterImage := AbsoluteURL(firstNonEmpty(branch.image, settingsTwitterImage, settingsOGImage, defaultOGImagePath), in.BaseURL)
	ogLogo := AbsoluteURL(resolveLogo(settings, in.BaseURL), in.BaseURL)

	computed := Computed{
		Route:         route,
		Title:         title,
		Description:   description,
		Keywords:      keywords,
		Canonical:     canonical,
		Robots:        robots,
		OGType:        ogType,
		SiteName:      siteName,
		OGImage:       ogImage,
		OGLogo:        ogLogo,
		TwitterImage:  twitterImage,
		TwitterHandle: twitterHandle,
		ExtraMeta:     branch.extraMeta,
		HeadScripts:   headScripts,
		BodyScripts:   bodyScripts,
	}
	computed.StructuredData = buildStructuredData(structuredDataInput{
		route:       route,
		baseURL:     in.BaseURL,
		canonical:   canonical,
		title:       title,
		description: description,
		settings:    settings,
		content:     in.Content,
		computed:    branch,
	})
	return computed
}

func resolveSiteName(settings *Settings) string {
	if settings != nil {
		if name := schemaString(settings.OrganizationSchema, "name"); name != "" {
			return name
		}
		if name := schemaString(settings.WebsiteSchema, "name"); name != "" {
			return name
		}
	}
	return DefaultSiteName
}

func resolveLogo(settings *Settings, baseURL string) string {
	if settings != nil {
		if logo := schemaString(settings.OrganizationSchema, "logo"); logo != "" {
			return logo
		}
		if logo := schemaString(settings.WebsiteSchema, "logo"); logo != "" {
			return logo
		}
	}
	return baseURL + "/favicon.png"
}

// schemaString reads a string field from a free-form schema seed; non-string
// values are ignored rather than coerced.
func schemaString(schema map[string]any, key string) string {
	if schema == nil {
		return ""
	}
	value, ok := schema[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

type routeBranchInput struct {
	siteName     string
	fallbackDesc string
	baseKeywords []string
}

// routeBranch is the per-route slice of the computation: everything that
// depends on which content type (if any) matched the classified route.
type routeBranch struct {
	title       string
	description string
	keywords    []string
	image       string
	ogType      string
	extraMeta   []MetaTag
	// itemTitle is the human title used for the breadcrumb leaf entry.
	itemTitle string
}

func deriveRouteBranch(route Route, content *Content, in routeBranchInput) routeBranch {
	switch {
	case route.Kind == RoutePost && content != nil && content.Post != nil:
		return postBranch(content.Post, in)
	case route.Kind == RouteRelease && content != nil && content.Release != nil:
		return releaseBranch(content.Release, in)
	case route.Kind == RouteEvent && content != nil && content.Event != nil:
		return eventBranch(content.Event, in)
	case route.Kind == RouteArtist && content != nil && content.Artist != nil:
		return artistBranch(content.Artist, in)
	case (route.Kind == RouteStatic || route.Kind == RouteSection) && content != nil && content.StaticPage != nil:
		return staticPageBranch(route, content.StaticPage, in)
	case route.Kind == RouteSection:
		return sectionBranch(route, in)
	default:
		return routeBranch{}
	}
}

func postBranch(post *PostContent, in routeBranchInput) routeBranch {
	heading := firstNonEmpty(post.MetaTitle, post.Title)
	branch := routeBranch{
		ogType:    "article",
		image:     firstNonEmpty(post.OGImageURL, post.CoverURL),
		itemTitle: firstNonEmpty(post.Title, post.MetaTitle),
	}
	if heading != "" {
		branch.title = heading + " | " + in.siteName
	}
	branch.description = firstNonEmpty(
		post.MetaDescription,
		post.Excerpt,
		StripAndTruncate(post.BodyHTML, DefaultDescriptionLimit),
		in.fallbackDesc,
	)

	keywords := append([]string{}, in.baseKeywords...)
	keywords = append(keywords, in.siteName, post.Category)
	keywords = append(keywords, post.Tags...)
	keywords = append(keywords, post.AuthorName, heading)
	branch.keywords = UniqueKeywords(keywords)

	if published := SafeISODate(firstNonEmpty(post.PublishedAt, post.CreatedAt)); published != "" {
		branch.extraMeta = append(branch.extraMeta,
			MetaTag{Attr: MetaProperty, Key: "article:published_time", Value: published},
			MetaTag{Attr: MetaProperty, Key: "og:updated_time", Value: published},
		)
	}
	if author := strings.TrimSpace(post.AuthorName); author != "" {
		branch.extraMeta = append(branch.extraMeta,
			MetaTag{Attr: MetaProperty, Key: "article:author", Value: author})
	}
	return branch
}

func releaseBranch(release *ReleaseContent, in routeBranchInput) routeBranch {
	branch := routeBranch{
		ogType:    "music.album",
		image:     release.CoverURL,
		itemTitle: release.Title,
	}
	if title := strings.TrimSpace(release.Title); title != "" {
		branch.title = title + " | " + in.siteName
	}
	branch.description = firstNonEmpty(releaseDescription(release, in.siteName), in.fallbackDesc)

	keywords := append([]string{}, in.baseKeywords...)
	keywords = append(keywords, in.siteName, release.ArtistName, release.Title, release.Type)
	keywords = append(keywords, release.Genres...)
	branch.keywords = UniqueKeywords(keywords)

	if released := SafeISODate(firstNonEmpty(release.ReleaseDate, release.CreatedAt)); released != "" {
		branch.extraMeta = append(branch.extraMeta,
			MetaTag{Attr: MetaProperty, Key: "music:release_date", Value: released},
			MetaTag{Attr: MetaProperty, Key: "og:updated_time", Value: released},
		)
	}
	return branch
}

func releaseDescription(release *ReleaseContent, siteName string) string {
	var parts []string
	if artist := strings.TrimSpace(release.ArtistName); artist != "" {
		parts = append(parts, "by "+artist)
	}
	if kind := strings.TrimSpace(release.Type); kind != "" {
		parts = append(parts, strings.ToUpper(kind))
	}
	if released := SafeISODate(release.ReleaseDate); released != "" {
		parts = append(parts, "released "+released[:10])
	}
	if len(parts) == 0 {
		return ""
	}
	title := strings.TrimSpace(release.Title)
	if title == "" {
		title = "New release"
	}
	text := title + " " + strings.Join(parts, ", ") + " on " + siteName + "."
	return StripAndTruncate(text, DefaultDescriptionLimit)
}

func eventBranch(event *EventContent, in routeBranchInput) routeBranch {
	branch := routeBranch{
		ogType:    "event",
		image:     event.ImageURL,
		itemTitle: event.Title,
	}
	if title := strings.TrimSpace(event.Title); title != "" {
		branch.title = title + " | " + in.siteName
	}
	branch.description = firstNonEmpty(event.Description, eventDescription(event, in.siteName), in.fallbackDesc)

	keywords := append([]string{}, in.baseKeywords...)
	keywords = append(keywords, in.siteName, event.Title, event.VenueName, event.City, event.Country, "events")
	branch.keywords = UniqueKeywords(keywords)

	if start := SafeISODate(event.StartAt); start != "" {
		branch.extraMeta = append(branch.extraMeta,
			MetaTag{Attr: MetaProperty, Key: "event:start_time", Value: start},
			MetaTag{Attr: MetaProperty, Key: "og:updated_time", Value: start},
		)
	}
	if end := SafeISODate(event.EndAt); end != "" {
		branch.extraMeta = append(branch.extraMeta,
			MetaTag{Attr: MetaProperty, Key: "event:end_time", Value: end})
	}
	return branch
}

func eventDescription(event *EventContent, siteName string) string {
	var parts []string
	if city := strings.TrimSpace(event.City); city != "" {
		parts = append(parts, city)
	}
	if country := strings.TrimSpace(event.Country); country != "" {
		parts = append(parts, country)
	}
	if start := SafeISODate(event.StartAt); start != "" {
		parts = append(parts, start[:10])
	}
	if len(parts) == 0 {
		return ""
	}
	title := strings.TrimSpace(event.Title)
	if title == "" {
		title = "Event"
	}
	return StripAndTruncate(title+" — "+strings.Join(parts, ", ")+". Presented by "+siteName+".", DefaultDescriptionLimit)
}

func artistBranch(artist *ArtistContent, in routeBranchInput) routeBranch {
	branch := routeBranch{
		ogType:    "profile",
		image:     artist.ImageURL,
		itemTitle: artist.Name,
	}
	if name := strings.TrimSpace(artist.Name); name != "" {
		branch.title = name + " | " + in.siteName
	}
	branch.description = firstNonEmpty(StripAndTruncate(artist.BioHTML, DefaultDescriptionLimit), in.fallbackDesc)

	keywords := append([]string{}, in.baseKeywords...)
	keywords = append(keywords, in.siteName, artist.Name, "artists")
	branch.keywords = UniqueKeywords(keywords)

	if created := SafeISODate(artist.CreatedAt); created != "" {
		branch.extraMeta = append(branch.extraMeta,
			MetaTag{Attr: MetaProperty, Key: "og:updated_time", Value: created})
	}
	return branch
}

func staticPageBranch(route Route, page *StaticPageContent, in routeBranchInput) routeBranch {
	branch := routeBranch{itemTitle: firstNonEmpty(page.Title, page.MetaTitle)}

	sectionMeta, hasSection := SectionDefault(route.Slug)
	switch {
	case strings.TrimSpace(page.MetaTitle) != "":
		branch.title = strings.TrimSpace(page.MetaTitle)
	case strings.TrimSpace(page.Title) != "":
		branch.title = strings.TrimSpace(page.Title) + " | " + in.siteName
	case hasSection:
		branch.title = sectionMeta.Title
	}

	sectionDescription := ""
	if hasSection {
		sectionDescription = sectionMeta.Description
	}
	branch.description = firstNonEmpty(
		page.MetaDescription,
		StripAndTruncate(page.BodyHTML, DefaultDescriptionLimit),
		sectionDescription,
		in.fallbackDesc,
	)

	keywords := append([]string{}, in.baseKeywords...)
	keywords = append(keywords, in.siteName, route.Slug, page.Title)
	branch.keywords = UniqueKeywords(keywords)

	if updated := SafeISODate(firstNonEmpty(page.UpdatedAt, page.CreatedAt)); updated != "" {
		branch.extraMeta = append(branch.extraMeta,
			MetaTag{Attr: MetaProperty, Key: "og:updated_time", Value: updated})
	}
	return branch
}

func sectionBranch(route Route, in routeBranchInput) routeBranch {
	var branch routeBranch
	if meta, ok := SectionDefault(route.Slug); ok {
		branch.title = meta.Title
		branch.description = meta.Description
	}
	keywords := append([]string{}, in.baseKeywords...)
	keywords = append(keywords, in.siteName, route.Slug)
	branch.keywords = UniqueKeywords(keywords)
	return branch
}
