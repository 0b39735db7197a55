package models

import (
	"fmt"
	"time"
)

// Granularity is the time resolution of read-API results. Hour is the native
// storage resolution; day rolls hourly rows up additively.
type Granularity string

const (
	GranularityHour Granularity = "hour"
	GranularityDay  Granularity = "day"
)

// NewGranularityFromString parses a granularity, defaulting empty to hour.
func NewGranularityFromString(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityHour, "":
		return GranularityHour, nil
	case GranularityDay:
		return GranularityDay, nil
	default:
		return "", fmt.Errorf("invalid granularity: %q", s)
	}
}

func (g Granularity) Duration() time.Duration {
	switch g {
	case GranularityHour:
		return time.Hour
	case GranularityDay:
		return 24 * time.Hour
	default:
		panic(fmt.Sprintf("invalid Granularity: %q", g))
	}
}

// BucketStart truncates t to the start of its bucket in UTC.
func (g Granularity) BucketStart(t time.Time) time.Time {
	return t.UTC().Truncate(g.Duration())
}
