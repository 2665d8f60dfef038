// Package bake injects computed page metadata into a built index.html. It
// runs once per deploy, after the static site build and before upload: the
// root page then carries its full head even when the metadata endpoint is
// cold or unreachable.
package bake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/grouptherapyeg/site-api/internal/seo"
	"github.com/grouptherapyeg/site-api/internal/services"
)

// minBakedSize rejects obviously truncated output before it replaces the
// built page.
const minBakedSize = 200

// ErrMalformedDocument signals that the built page is missing one of the
// html, head, or body elements and was left untouched.
var ErrMalformedDocument = errors.New("bake: document is missing html, head, or body")

// Baker rewrites a built index.html with computed metadata.
type Baker struct {
	content   services.ContentService
	logger    *zap.Logger
	clock     func() time.Time
	baseURL   string
	cachePath string
}

// Option customises construction of a Baker.
type Option func(*Baker)

// WithContentService injects the content service used to fetch settings.
func WithContentService(svc services.ContentService) Option {
	return func(b *Baker) {
		b.content = svc
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Baker) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp the settings cache.
func WithClock(clock func() time.Time) Option {
	return func(b *Baker) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// WithBaseURL sets the canonical base URL baked into the page.
func WithBaseURL(baseURL string) Option {
	return func(b *Baker) {
		b.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

// WithSettingsCache sets the path of the JSON settings cache used when the
// store is unreachable at build time.
func WithSettingsCache(path string) Option {
	return func(b *Baker) {
		b.cachePath = path
	}
}

// New constructs a Baker.
func New(opts ...Option) *Baker {
	b := &Baker{
		logger:  zap.NewNop(),
		clock:   time.Now,
		baseURL: "https://www.grouptherapyeg.com",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

type settingsCache struct {
	CachedAt time.Time     `json:"cachedAt"`
	Settings *seo.Settings `json:"settings"`
}

// loadSettings fetches the latest settings, falling back to the on-disk
// cache when the store is unreachable. A successful fetch refreshes the
// cache for the next degraded build.
func (b *Baker) loadSettings(ctx context.Context) *seo.Settings {
	if b.content != nil {
		settings, err := b.content.LatestSettings(ctx)
		if err == nil {
			b.storeCache(settings)
			return settings
		}
		b.logger.Warn("settings fetch failed, trying cache", zap.Error(err))
	}
	return b.loadCache()
}

func (b *Baker) storeCache(settings *seo.Settings) {
	if b.cachePath == "" || settings == nil {
		return
	}
	payload, err := json.MarshalIndent(settingsCache{CachedAt: b.clock().UTC(), Settings: settings}, "", "  ")
	if err != nil {
		b.logger.Warn("settings cache encode failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(b.cachePath, payload, 0o644); err != nil {
		b.logger.Warn("settings cache write failed", zap.String("path", b.cachePath), zap.Error(err))
	}
}

func (b *Baker) loadCache() *seo.Settings {
	if b.cachePath == "" {
		return nil
	}
	payload, err := os.ReadFile(b.cachePath)
	if err != nil {
		b.logger.Warn("settings cache unavailable", zap.String("path", b.cachePath), zap.Error(err))
		return nil
	}
	var cache settingsCache
	if err := json.Unmarshal(payload, &cache); err != nil {
		b.logger.Warn("settings cache corrupt", zap.String("path", b.cachePath), zap.Error(err))
		return nil
	}
	b.logger.Info("using cached settings", zap.Time("cachedAt", cache.CachedAt))
	return cache.Settings
}

// Bake rewrites the page at htmlPath with the computed root metadata. The
// file is left byte-identical when the document fails its structural guard
// or when the rewritten output fails the size check.
func (b *Baker) Bake(ctx context.Context, htmlPath string) error {
	settings := b.loadSettings(ctx)
	computed := seo.Compute(seo.Input{
		Pathname: "/",
		BaseURL:  b.baseURL,
		Settings: settings,
	})

	original, err := os.ReadFile(htmlPath)
	if err != nil {
		return fmt.Errorf("read built page: %w", err)
	}

	baked, err := injectMetadata(string(original), computed)
	if err != nil {
		b.logger.Warn("built page left untouched", zap.String("path", htmlPath), zap.Error(err))
		return err
	}
	if len(baked) < minBakedSize {
		b.logger.Warn("baked output suspiciously small, built page left untouched",
			zap.String("path", htmlPath),
			zap.Int("size", len(baked)))
		return fmt.Errorf("bake: output %d bytes, below %d byte floor", len(baked), minBakedSize)
	}

	if err := os.WriteFile(htmlPath, []byte(baked), 0o644); err != nil {
		return fmt.Errorf("write baked page: %w", err)
	}
	b.logger.Info("baked page metadata",
		zap.String("path", htmlPath),
		zap.String("title", computed.Title),
		zap.Int("size", len(baked)))
	return nil
}

// staleSelectors matches head elements the baker owns. They are removed
// before injection so repeated bakes stay idempotent.
var staleSelectors = []string{
	"head title",
	`head meta[name="description"]`,
	`head meta[name="keywords"]`,
	`head meta[name="robots"]`,
	`head meta[name="author"]`,
	`head link[rel="canonical"]`,
	`head meta[property^="og:"]`,
	`head meta[name^="twitter:"]`,
	`head meta[property^="article:"]`,
	`head meta[property^="music:"]`,
	`head meta[property^="event:"]`,
	`head meta[itemprop]`,
	`script[type="application/ld+json"]`,
	`[data-baked="head"]`,
	`[data-baked="body"]`,
}

func injectMetadata(markup string, computed seo.Computed) (string, error) {
	// The HTML parser synthesizes html, head, and body when they are
	// absent, so the structural guard runs against the raw markup.
	if !strings.Contains(markup, "<html") || !strings.Contains(markup, "<head") || !strings.Contains(markup, "<body") {
		return "", ErrMalformedDocument
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parse built page: %w", err)
	}

	head := doc.Find("head")
	body := doc.Find("body")

	for _, selector := range staleSelectors {
		doc.Find(selector).Remove()
	}

	// The baked block carries no separator text nodes: stripping it on the
	// next run restores the exact pre-injection tree, so repeated bakes are
	// byte-identical.
	head.AppendHtml(renderHeadBlock(computed))
	if computed.BodyScripts != "" {
		body.AppendHtml(`<div data-baked="body">` + computed.BodyScripts + `</div>`)
	}

	rendered, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("render baked page: %w", err)
	}
	return rendered, nil
}

func renderHeadBlock(computed seo.Computed) string {
	var b strings.Builder

	writeElement := func(markup string) {
		b.WriteString(markup)
	}

	writeElement("<title>" + escapeText(computed.Title) + "</title>")
	writeElement(metaName("description", computed.Description))
	if len(computed.Keywords) > 0 {
		writeElement(metaName("keywords", strings.Join(computed.Keywords, ", ")))
	}
	writeElement(metaName("robots", computed.Robots))
	writeElement(`<link rel="canonical" href="` + escapeAttr(computed.Canonical) + `"/>`)

	writeElement(metaProperty("og:type", computed.OGType))
	writeElement(metaProperty("og:site_name", computed.SiteName))
	writeElement(metaProperty("og:title", computed.Title))
	writeElement(metaProperty("og:description", computed.Description))
	writeElement(metaProperty("og:url", computed.Canonical))
	writeElement(metaProperty("og:image", computed.OGImage))
	if computed.OGLogo != "" {
		writeElement(metaProperty("og:logo", computed.OGLogo))
	}

	writeElement(metaName("twitter:card", "summary_large_image"))
	writeElement(metaName("twitter:title", computed.Title))
	writeElement(metaName("twitter:description", computed.Description))
	writeElement(metaName("twitter:image", computed.TwitterImage))
	if computed.TwitterHandle != "" {
		writeElement(metaName("twitter:site", computed.TwitterHandle))
	}

	for _, tag := range computed.ExtraMeta {
		writeElement(`<meta ` + string(tag.Attr) + `="` + escapeAttr(tag.Key) + `" content="` + escapeAttr(tag.Value) + `"/>`)
	}

	if len(computed.StructuredData) > 0 {
		if payload, err := json.Marshal(computed.StructuredData); err == nil {
			writeElement(`<script type="application/ld+json" data-baked="head">` + string(payload) + `</script>`)
		}
	}
	if computed.HeadScripts != "" {
		writeElement(`<div data-baked="head">` + computed.HeadScripts + `</div>`)
	}

	return b.String()
}

func metaName(name, content string) string {
	return `<meta name="` + escapeAttr(name) + `" content="` + escapeAttr(content) + `"/>`
}

func metaProperty(property, content string) string {
	return `<meta property="` + escapeAttr(property) + `" content="` + escapeAttr(content) + `"/>`
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
)

func escapeAttr(value string) string {
	return attrEscaper.Replace(value)
}

func escapeText(value string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(value)
}
