package sitemap

import (
	"net"
	"strings"
)

const (
	apexHost      = "grouptherapyeg.com"
	canonicalHost = "www.grouptherapyeg.com"
)

// CanonicalBase rewrites a request host/proto pair into the canonical base
// URL for crawler-facing documents: the apex domain redirects to www, and
// https is forced everywhere except local development hosts.
func CanonicalBase(host, proto string) string {
	host = strings.TrimSpace(host)
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}

	if hostname == apexHost {
		host = canonicalHost
		hostname = canonicalHost
	}

	if hostname != "localhost" && hostname != "127.0.0.1" {
		proto = "https"
	}
	if proto == "" {
		proto = "http"
	}
	return proto + "://" + host
}

// Robots renders the robots.txt body. The admin area is excluded from
// crawling; everything else is allowed, with a pointer at the sitemap index.
func Robots(baseURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + strings.TrimRight(baseURL, "/") + "/sitemap.xml\n")
	return b.String()
}
