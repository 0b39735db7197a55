package beacons

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hit-analytics/internal/models"
)

// Per-field byte budgets. Enforced before any normalization or hashing so
// abuse traffic is rejected at the cheapest possible point.
const (
	maxSiteIDLen   = 64
	maxPathLen     = 2048
	maxTitleLen    = 1024
	maxReferrerLen = 2048
)

// Beacon query parameters, matching the tracking snippet's wire format.
// q carries the page's query string when the snippet could not include it
// in p.
const (
	paramPath     = "p"
	paramReferrer = "r"
	paramTitle    = "t"
	paramEvent    = "e"
	paramScreen   = "s"
	paramQuery    = "q"
)

// SiteDefaults are site-configured fallbacks for optional beacon fields.
type SiteDefaults struct {
	Referrer string
	Title    string
}

// Derived are caller-derived fallbacks, the lowest rung of the precedence
// chain (explicit param > site default > derived).
type Derived struct {
	Referrer string // from the Referer header
}

// Parser turns raw beacon parameters into a normalized RawHit. It is a pure
// transformation: no side effects, no I/O.
//
//go:generate mockgen -source=parser.go -destination=./mocks/parser_mock.go -package=mocks
type Parser interface {
	Parse(siteID string, params url.Values, derived Derived, defaults SiteDefaults, now time.Time) (*models.RawHit, error)
}

type parser struct{}

func NewParser() Parser {
	return &parser{}
}

func (p *parser) Parse(siteID string, params url.Values, derived Derived, defaults SiteDefaults, now time.Time) (*models.RawHit, error) {
	siteID = strings.TrimSpace(siteID)
	if siteID == "" {
		return nil, errInvalidSite("site is required", nil)
	}
	if len(siteID) > maxSiteIDLen {
		return nil, errPayloadTooLarge("site", maxSiteIDLen)
	}
	if strings.ContainsAny(siteID, "/\x00") {
		return nil, errInvalidSite(fmt.Sprintf("invalid site identifier: %q", siteID), nil)
	}

	isEvent, _ := strconv.ParseBool(params.Get(paramEvent))

	path := params.Get(paramPath)
	query := params.Get(paramQuery)
	if len(path)+len(query) > maxPathLen {
		return nil, errPayloadTooLarge("path", maxPathLen)
	}
	path = strings.ReplaceAll(strings.TrimSpace(path), "\x00", "")
	if isEvent {
		// Event names are used verbatim and must be present.
		if path == "" {
			return nil, errMissingPath()
		}
	} else {
		query = strings.ReplaceAll(strings.TrimSpace(query), "\x00", "")
		path = normalizePath(path, query)
	}

	referrer := resolve(params.Get(paramReferrer), defaults.Referrer, derived.Referrer)
	if len(referrer) > maxReferrerLen {
		return nil, errPayloadTooLarge("referrer", maxReferrerLen)
	}

	title := resolve(params.Get(paramTitle), defaults.Title, "")
	if len(title) > maxTitleLen {
		return nil, errPayloadTooLarge("title", maxTitleLen)
	}

	screen, err := parseScreen(params.Get(paramScreen))
	if err != nil {
		return nil, err
	}

	return &models.RawHit{
		SiteID:    siteID,
		Path:      path,
		Referrer:  referrer,
		Title:     title,
		Timestamp: now.UTC().Truncate(time.Second),
		IsEvent:   isEvent,
		Screen:    screen,
	}, nil
}

// resolve applies the field precedence chain: explicit beacon parameter,
// then the site-configured default, then the caller-derived default.
func resolve(explicit, configured, derived string) string {
	if explicit != "" {
		return explicit
	}
	if configured != "" {
		return configured
	}
	return derived
}

// normalizePath collapses a full URL to path+query, anchors the result at
// "/" and strips trailing slashes. An empty path becomes "/". A separately
// sent query string is merged back, unless the path already carries one.
func normalizePath(path, query string) string {
	if u, err := url.Parse(path); err == nil && u.Host != "" {
		path = u.RequestURI()
	}
	path = "/" + strings.Trim(path, "/")
	if query != "" && !strings.Contains(path, "?") {
		path += "?" + strings.TrimPrefix(query, "?")
	}
	return path
}

// parseScreen parses "width,height" or "width,height,scale".
func parseScreen(s string) (*models.Screen, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, errInvalidScreen(s)
	}

	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || width < 0 {
		return nil, errInvalidScreen(s)
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || height < 0 {
		return nil, errInvalidScreen(s)
	}

	scale := 1.0
	if len(parts) == 3 {
		scale, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || scale < 0 {
			return nil, errInvalidScreen(s)
		}
	}

	return &models.Screen{Width: width, Height: height, Scale: scale}, nil
}
