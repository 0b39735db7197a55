package http

import (
	"net"
	"net/http"
	"strings"

	"hit-analytics/internal/classifiers"
)

const (
	headerRequestID    = "x-request-id"
	headerForwardedFor = "x-forwarded-for"
	headerSecFetchDest = "sec-fetch-dest"
	headerSecPurpose   = "sec-purpose"
	headerPurpose      = "purpose"
	headerMoz          = "x-moz"
)

const paramSite = "site"

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

// remoteAddr resolves the client address. When the request came through
// proxies, X-Forwarded-For is scanned right to left for the last hop that is
// not a private or local address; without one the socket address is used.
// The socket port is stripped: it changes per connection and must never reach
// the fingerprint.
func remoteAddr(r *http.Request) string {
	hops := strings.Split(r.Header.Get(headerForwardedFor), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop != "" && !classifiers.IsPrivateAddr(hop) {
			return hop
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// isPrerender detects speculative loads: browsers announce prefetch and
// prerender fetches through a small zoo of headers.
func isPrerender(r *http.Request) bool {
	if r.Header.Get(headerMoz) == "prerender" {
		return true
	}
	for _, h := range []string{headerPurpose, headerSecPurpose} {
		v := strings.ToLower(r.Header.Get(h))
		if strings.Contains(v, "prefetch") || strings.Contains(v, "prerender") || strings.Contains(v, "preview") {
			return true
		}
	}
	return false
}

func isFramed(r *http.Request) bool {
	return r.Header.Get(headerSecFetchDest) == "iframe"
}
