package handlers

import (
	"net"
	"net/http"
	"strings"

	"github.com/grouptherapyeg/site-api/internal/sitemap"
)

// requestHost returns the externally visible host for a request. Behind the
// CDN the original host arrives in X-Forwarded-Host.
func requestHost(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-Host")); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			forwarded = strings.TrimSpace(forwarded[:i])
		}
		return forwarded
	}
	return r.Host
}

// requestProto returns the externally visible scheme. X-Forwarded-Proto wins;
// without it local hosts are assumed plain http and everything else https.
func requestProto(r *http.Request, host string) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			forwarded = strings.TrimSpace(forwarded[:i])
		}
		return forwarded
	}
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}
	if hostname == "localhost" || hostname == "127.0.0.1" {
		return "http"
	}
	return "https"
}

// requestBaseURL resolves the canonical base URL for crawler-facing documents
// from the request's host and scheme.
func requestBaseURL(r *http.Request) string {
	host := requestHost(r)
	return sitemap.CanonicalBase(host, requestProto(r, host))
}
