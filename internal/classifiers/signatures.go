package classifiers

import (
	"regexp"
	"strings"

	"github.com/mileusna/useragent"
)

// Automation markers that generic UA parsing misses. Lowercase; matched as
// substrings against the lowercased user agent.
var headlessMarkers = []string{
	"headlesschrome",
	"phantomjs",
	"slimerjs",
	"puppeteer",
	"playwright",
	"webdriver",
	"selenium",
	"electron",
}

// signatureSet is the precompiled bot signature matcher. Compiling happens
// once at startup so the per-request check is substring scans plus already
// compiled regexps.
type signatureSet struct {
	substrings []string
	patterns   []*regexp.Regexp
}

func newSignatureSet(substrings, patterns []string) (*signatureSet, error) {
	s := &signatureSet{
		substrings: make([]string, 0, len(substrings)),
		patterns:   make([]*regexp.Regexp, 0, len(patterns)),
	}
	for _, sub := range substrings {
		sub = strings.ToLower(strings.TrimSpace(sub))
		if sub != "" {
			s.substrings = append(s.substrings, sub)
		}
	}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		s.patterns = append(s.patterns, re)
	}
	return s, nil
}

func (s *signatureSet) Match(ua string) bool {
	if parsed := useragent.Parse(ua); parsed.Bot {
		return true
	}

	lower := strings.ToLower(ua)
	for _, marker := range headlessMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	for _, sub := range s.substrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	for _, re := range s.patterns {
		if re.MatchString(ua) {
			return true
		}
	}
	return false
}
