package models

import "time"

// Screen is the reported screen size of the visitor's device.
type Screen struct {
	Width  int
	Height int
	Scale  float64
}

// RawHit is a single normalized pageview or event beacon. It is created per
// inbound request and consumed within the request's lifetime; it is never
// persisted as-is.
type RawHit struct {
	SiteID    string
	Path      string // normalized path, or event name when IsEvent is set
	Referrer  string
	Title     string
	Timestamp time.Time // second precision
	IsEvent   bool
	Screen    *Screen
}

// RequestMeta carries transport-level request metadata used only for
// classification and fingerprinting. Its fields must never travel past the
// session identifier into aggregation or storage.
type RequestMeta struct {
	RemoteAddr string
	UserAgent  string
	Prerender  bool // prefetch/prerender hint from headers or client
	InFrame    bool // request originated inside a foreign frame
}
