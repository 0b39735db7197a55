package aggregators_test

import (
	"testing"

	"hit-analytics/internal/aggregators"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeReferrer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		referrer string
		expected string
	}{
		{
			name:     "empty is direct",
			referrer: "",
			expected: "Direct",
		},
		{
			name:     "whitespace is direct",
			referrer: "   ",
			expected: "Direct",
		},
		{
			name:     "bare hostname",
			referrer: "blog.example.org",
			expected: "blog.example.org",
		},
		{
			name:     "url collapses to hostname",
			referrer: "https://blog.example.org/posts/42?ref=rss",
			expected: "blog.example.org",
		},
		{
			name:     "hostname lowercased",
			referrer: "https://Blog.Example.ORG/posts",
			expected: "blog.example.org",
		},
		{
			name:     "hacker news group",
			referrer: "https://news.ycombinator.com/item?id=1",
			expected: "Hacker News",
		},
		{
			name:     "hn mirror grouped too",
			referrer: "hn.algolia.com",
			expected: "Hacker News",
		},
		{
			name:     "google com",
			referrer: "https://www.google.com/",
			expected: "Google",
		},
		{
			name:     "google country tld",
			referrer: "https://www.google.co.uk/search?q=analytics",
			expected: "Google",
		},
		{
			name:     "google without www",
			referrer: "google.com",
			expected: "Google",
		},
		{
			name:     "mobile wikipedia aliased",
			referrer: "https://en.m.wikipedia.org/wiki/Web_analytics",
			expected: "en.wikipedia.org",
		},
		{
			name:     "old reddit aliased",
			referrer: "https://old.reddit.com/r/golang",
			expected: "www.reddit.com",
		},
		{
			name:     "twitter shortener",
			referrer: "https://t.co/AbCd",
			expected: "Twitter",
		},
		{
			name:     "campaign name passes through",
			referrer: "spring newsletter",
			expected: "spring newsletter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, aggregators.NormalizeReferrer(tt.referrer))
		})
	}
}
