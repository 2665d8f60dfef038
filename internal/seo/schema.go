package seo

import (
	"strings"
)

const schemaContext = "https://schema.org"

type structuredDataInput struct {
	route       Route
	baseURL     string
	canonical   string
	title       string
	description string
	settings    *Settings
	content     *Content
	computed    routeBranch
}

// buildStructuredData assembles the JSON-LD graph in fixed order:
// Organization, WebSite, MusicGroup, WebPage, BreadcrumbList (non-home only),
// then the content-specific node. Nil nodes are dropped, never replaced with
// placeholders.
func buildStructuredData(in structuredDataInput) map[string]any {
	orgID := in.baseURL + "/#organization"
	websiteID := in.baseURL + "/#website"
	musicGroupID := in.baseURL + "/#musicgroup"

	var orgSeed, websiteSeed, musicGroupSeed map[string]any
	if in.settings != nil {
		orgSeed = in.settings.OrganizationSchema
		websiteSeed = in.settings.WebsiteSchema
		musicGroupSeed = in.settings.MusicGroupSchema
	}

	organization := seedNode(orgSeed, "Organization", orgID, in.baseURL)
	website := seedNode(websiteSeed, "WebSite", websiteID, in.baseURL)
	musicGroup := seedNode(musicGroupSeed, "MusicGroup", musicGroupID, in.baseURL)

	contentNode := contentSchemaNode(in, orgID)

	webPage := map[string]any{
		"@type":       webPageType(in.route),
		"@id":         in.canonical + "#webpage",
		"url":         in.canonical,
		"name":        in.title,
		"description": in.description,
		"isPartOf":    map[string]any{"@id": websiteID},
		"publisher":   map[string]any{"@id": orgID},
	}

	var breadcrumb map[string]any
	if in.route.Kind != RouteHome {
		breadcrumb = breadcrumbNode(in)
		if breadcrumb != nil {
			webPage["breadcrumb"] = map[string]any{"@id": breadcrumb["@id"]}
		}
	}
	if contentNode != nil {
		webPage["mainEntity"] = map[string]any{"@id": contentNode["@id"]}
	}

	graph := make([]map[string]any, 0, 6)
	for _, node := range []map[string]any{organization, website, musicGroup, webPage, breadcrumb, contentNode} {
		if node != nil {
			graph = append(graph, node)
		}
	}

	return map[string]any{
		"@context": schemaContext,
		"@graph":   graph,
	}
}

// seedNode prepares an Organization/WebSite/MusicGroup node from the
// administrator-supplied seed, or from a minimal default when none exists.
// The seed passes through untouched apart from the anchored @id, a url
// default, string logo/image absolutization, and removal of any nested
// @context (the wrapping document already carries one).
func seedNode(seed map[string]any, schemaType, id, baseURL string) map[string]any {
	node := make(map[string]any, len(seed)+3)
	if len(seed) > 0 {
		for key, value := range seed {
			if key == "@context" {
				continue
			}
			node[key] = value
		}
	} else {
		node["@type"] = schemaType
		node["name"] = DefaultSiteName
	}
	if _, ok := node["@type"]; !ok {
		node["@type"] = schemaType
	}
	node["@id"] = id
	if s, ok := node["url"].(string); !ok || strings.TrimSpace(s) == "" {
		node["url"] = baseURL
	}
	for _, key := range []string{"logo", "image"} {
		if s, ok := node[key].(string); ok && strings.TrimSpace(s) != "" {
			node[key] = AbsoluteURL(s, baseURL)
		}
	}
	return node
}

var sectionPageTypes = map[string]string{
	"about":    "AboutPage",
	"contact":  "ContactPage",
	"news":     "CollectionPage",
	"releases": "CollectionPage",
	"events":   "CollectionPage",
	"artists":  "CollectionPage",
	"radio":    "CollectionPage",
	"awards":   "CollectionPage",
	"careers":  "CollectionPage",
}

func webPageType(route Route) string {
	if route.Kind == RouteSection {
		if pageType, ok := sectionPageTypes[route.Slug]; ok {
			return pageType
		}
	}
	return "WebPage"
}

// categoryIndexes maps detail route kinds to their listing page.
var categoryIndexes = map[RouteKind]struct {
	Name string
	Path string
}{
	RoutePost:    {Name: "News", Path: "/news"},
	RouteRelease: {Name: "Releases", Path: "/releases"},
	RouteEvent:   {Name: "Events", Path: "/events"},
	RouteArtist:  {Name: "Artists", Path: "/artists"},
}

func breadcrumbNode(in structuredDataInput) map[string]any {
	items := []map[string]any{breadcrumbItem(1, "Home", in.baseURL)}

	switch in.route.Kind {
	case RouteSection, RouteStatic:
		items = append(items, breadcrumbItem(2, humanizeSlug(in.route.Slug), in.baseURL+"/"+in.route.Slug))
	case RoutePost, RouteRelease, RouteEvent, RouteArtist:
		index := categoryIndexes[in.route.Kind]
		items = append(items, breadcrumbItem(2, index.Name, in.baseURL+index.Path))
		if title := strings.TrimSpace(in.computed.itemTitle); title != "" {
			items = append(items, breadcrumbItem(3, title, in.canonical))
		}
	}

	return map[string]any{
		"@type":           "BreadcrumbList",
		"@id":             in.canonical + "#breadcrumb",
		"itemListElement": items,
	}
}

func breadcrumbItem(position int, name, item string) map[string]any {
	return map[string]any{
		"@type":    "ListItem",
		"position": position,
		"name":     name,
		"item":     item,
	}
}

func humanizeSlug(slug string) string {
	words := strings.Split(strings.TrimSpace(slug), "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// contentSchemaNode builds the content-specific node for detail routes.
// Static pages and sections emit none.
func contentSchemaNode(in structuredDataInput, orgID string) map[string]any {
	if in.content == nil {
		return nil
	}
	switch {
	case in.route.Kind == RoutePost && in.content.Post != nil:
		return blogPostingNode(in, in.content.Post, orgID)
	case in.route.Kind == RouteRelease && in.content.Release != nil:
		return musicAlbumNode(in, in.content.Release)
	case in.route.Kind == RouteEvent && in.content.Event != nil:
		return eventNode(in, in.content.Event, orgID)
	case in.route.Kind == RouteArtist && in.content.Artist != nil:
		return personNode(in, in.content.Artist)
	default:
		return nil
	}
}

func blogPostingNode(in structuredDataInput, post *PostContent, orgID string) map[string]any {
	node := map[string]any{
		"@type":            "BlogPosting",
		"@id":              in.canonical + "#blogposting",
		"headline":         firstNonEmpty(post.Title, post.MetaTitle),
		"description":      in.description,
		"mainEntityOfPage": in.canonical,
		"publisher":        map[string]any{"@id": orgID},
	}
	if image := firstNonEmpty(post.OGImageURL, post.CoverURL); image != "" {
		node["image"] = AbsoluteURL(image, in.baseURL)
	}
	if published := SafeISODate(firstNonEmpty(post.PublishedAt, post.CreatedAt)); published != "" {
		node["datePublished"] = published
		node["dateModified"] = published
	}
	if author := strings.TrimSpace(post.AuthorName); author != "" {
		node["author"] = map[string]any{"@type": "Person", "name": author}
	}
	if len(post.Tags) > 0 {
		node["keywords"] = strings.Join(UniqueKeywords(post.Tags), ", ")
	}
	return node
}

func musicAlbumNode(in structuredDataInput, release *ReleaseContent) map[string]any {
	node := map[string]any{
		"@type": "MusicAlbum",
		"@id":   in.canonical + "#musicalbum",
		"name":  release.Title,
		"url":   in.canonical,
	}
	if artist := strings.TrimSpace(release.ArtistName); artist != "" {
		node["byArtist"] = map[string]any{"@type": "MusicGroup", "name": artist}
	}
	if cover := strings.TrimSpace(release.CoverURL); cover != "" {
		node["image"] = AbsoluteURL(cover, in.baseURL)
	}
	if released := SafeISODate(release.ReleaseDate); released != "" {
		node["datePublished"] = released
	}
	if kind := strings.TrimSpace(release.Type); kind != "" {
		node["albumProductionType"] = "https://schema.org/StudioAlbum"
		node["albumReleaseType"] = albumReleaseType(kind)
	}
	if len(release.Genres) > 0 {
		node["genre"] = UniqueKeywords(release.Genres)
	}
	return node
}

func albumReleaseType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "single":
		return "https://schema.org/SingleRelease"
	case "ep":
		return "https://schema.org/EPRelease"
	default:
		return "https://schema.org/AlbumRelease"
	}
}

func eventNode(in structuredDataInput, event *EventContent, orgID string) map[string]any {
	node := map[string]any{
		"@type":       "Event",
		"@id":         in.canonical + "#event",
		"name":        event.Title,
		"description": in.description,
		"url":         in.canonical,
		"organizer":   map[string]any{"@id": orgID},
	}
	if image := strings.TrimSpace(event.ImageURL); image != "" {
		node["image"] = AbsoluteURL(image, in.baseURL)
	}
	if start := SafeISODate(event.StartAt); start != "" {
		node["startDate"] = start
	}
	if end := SafeISODate(event.EndAt); end != "" {
		node["endDate"] = end
	}
	if location := eventLocation(event); location != nil {
		node["location"] = location
	}
	return node
}

func eventLocation(event *EventContent) map[string]any {
	venue := strings.TrimSpace(event.VenueName)
	city := strings.TrimSpace(event.City)
	country := strings.TrimSpace(event.Country)
	if venue == "" && city == "" && country == "" {
		return nil
	}
	location := map[string]any{"@type": "Place"}
	if venue != "" {
		location["name"] = venue
	}
	address := map[string]any{"@type": "PostalAddress"}
	if city != "" {
		address["addressLocality"] = city
	}
	if country != "" {
		address["addressCountry"] = country
	}
	if len(address) > 1 {
		location["address"] = address
	}
	return location
}

func personNode(in structuredDataInput, artist *ArtistContent) map[string]any {
	node := map[string]any{
		"@type": "Person",
		"@id":   in.canonical + "#person",
		"name":  artist.Name,
		"url":   in.canonical,
	}
	if bio := StripAndTruncate(artist.BioHTML, DefaultDescriptionLimit); bio != "" {
		node["description"] = bio
	}
	if image := strings.TrimSpace(artist.ImageURL); image != "" {
		node["image"] = AbsoluteURL(image, in.baseURL)
	}
	return node
}
