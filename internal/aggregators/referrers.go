package aggregators

import (
	"net/url"
	"strings"
)

// DirectReferrer is the category for hits without a referrer.
const DirectReferrer = "Direct"

// Hosts that are really the same property under different names.
var hostAlias = map[string]string{
	"en.m.wikipedia.org": "en.wikipedia.org",
	"m.facebook.com":     "www.facebook.com",
	"l.facebook.com":     "www.facebook.com",
	"lm.facebook.com":    "www.facebook.com",
	"old.reddit.com":     "www.reddit.com",
	"np.reddit.com":      "www.reddit.com",
}

// Hosts grouped under a display name, mostly aggregator frontends.
var hostGroups = map[string]string{
	"news.ycombinator.com": "Hacker News",
	"hn.algolia.com":       "Hacker News",
	"hckrnews.com":         "Hacker News",
	"mail.google.com":      "Email",
	"mail.yahoo.com":       "Email",
	"com.google.android.googlequicksearchbox": "Google",
	"t.co": "Twitter",
}

// NormalizeReferrer maps a raw referrer string to its aggregation category:
// "Direct" when empty, a grouped name for known hosts, the bare hostname for
// other URLs, and the string itself for non-URL referrers (named campaigns).
func NormalizeReferrer(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return DirectReferrer
	}

	candidate := ref
	if !strings.Contains(candidate, "://") {
		candidate = "//" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		// Not a URL; campaign-style referrers pass through as-is.
		return ref
	}

	host := strings.ToLower(u.Hostname())
	if alias, ok := hostAlias[host]; ok {
		host = alias
	}
	// All country TLDs collapse into one Google category.
	if host == "google.com" || host == "www.google.com" || strings.HasPrefix(host, "www.google.") {
		return "Google"
	}
	if group, ok := hostGroups[host]; ok {
		return group
	}
	return host
}
