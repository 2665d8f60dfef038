package seo

import "strings"

// Settings is the normalized shape of an administrator-managed SEO settings
// record. Every field is optional; the compute step falls back to brand
// defaults wherever a field is absent. The schema seeds are free-form
// schema.org fragments and are deliberately left as open maps: only the
// handful of fields the engine reads (name, url, logo, image) are ever
// inspected, everything else passes through to the emitted JSON-LD verbatim.
type Settings struct {
	DefaultTitle       string
	DefaultDescription string
	DefaultKeywords    []string
	OGImage            string
	TwitterImage       string
	TwitterHandle      string
	OrganizationSchema map[string]any
	WebsiteSchema      map[string]any
	MusicGroupSchema   map[string]any
	HeadScripts        string
	BodyScripts        string
}

// NormalizeSettings converts a loosely-typed settings row into Settings.
// Source keys may be camelCase or snake_case; camelCase wins when both are
// present. Malformed values degrade to absent fields, never to an error.
// A nil or non-map input yields nil.
func NormalizeSettings(input any) *Settings {
	raw, ok := input.(map[string]any)
	if !ok || raw == nil {
		return nil
	}
	return &Settings{
		DefaultTitle:       settingString(raw, "defaultTitle", "default_title"),
		DefaultDescription: settingString(raw, "defaultDescription", "default_description"),
		DefaultKeywords:    settingStringSlice(raw, "defaultKeywords", "default_keywords"),
		OGImage:            settingString(raw, "ogImage", "og_image"),
		TwitterImage:       settingString(raw, "twitterImage", "twitter_image"),
		TwitterHandle:      settingString(raw, "twitterHandle", "twitter_handle"),
		OrganizationSchema: settingMap(raw, "organizationSchema", "organization_schema"),
		WebsiteSchema:      settingMap(raw, "websiteSchema", "website_schema"),
		MusicGroupSchema:   settingMap(raw, "musicGroupSchema", "music_group_schema"),
		HeadScripts:        settingRawString(raw, "headScripts", "head_scripts"),
		BodyScripts:        settingRawString(raw, "bodyScripts", "body_scripts"),
	}
}

func settingValue(raw map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if value, ok := raw[key]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func settingString(raw map[string]any, keys ...string) string {
	value, ok := settingValue(raw, keys...)
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// settingRawString keeps the value verbatim (scripts must not be trimmed of
// meaningful whitespace), accepting only values that are exactly strings.
func settingRawString(raw map[string]any, keys ...string) string {
	value, ok := settingValue(raw, keys...)
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return s
}

func settingStringSlice(raw map[string]any, keys ...string) []string {
	value, ok := settingValue(raw, keys...)
	if !ok {
		return nil
	}
	var items []any
	switch typed := value.(type) {
	case []any:
		items = typed
	case []string:
		items = make([]any, 0, len(typed))
		for _, s := range typed {
			items = append(items, s)
		}
	default:
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func settingMap(raw map[string]any, keys ...string) map[string]any {
	value, ok := settingValue(raw, keys...)
	if !ok {
		return nil
	}
	m, ok := value.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	return m
}
