package models

import (
	"fmt"
	"math"
	"time"
)

// OtherReferrer is the fold-in category for referrers beyond the per-row
// top-N budget.
const OtherReferrer = "other"

// CounterKey identifies one unit of aggregation: a site's path (or event
// name) within a single hour bucket.
type CounterKey struct {
	SiteID     string    `json:"siteId"`
	Path       string    `json:"path"`
	IsEvent    bool      `json:"isEvent"`
	HourBucket time.Time `json:"hourBucket"` // UTC, truncated to the hour
}

// NewCounterKey builds the key for a hit timestamp, truncating to the
// containing hour in UTC.
func NewCounterKey(siteID, path string, isEvent bool, ts time.Time) CounterKey {
	return CounterKey{
		SiteID:     siteID,
		Path:       path,
		IsEvent:    isEvent,
		HourBucket: ts.UTC().Truncate(time.Hour),
	}
}

// BucketEnd returns the first instant after the key's hour bucket.
func (k CounterKey) BucketEnd() time.Time {
	return k.HourBucket.Add(time.Hour)
}

// Encode returns a stable byte encoding of the key, used for shard selection
// and as the durable storage key suffix. Paths may contain any byte except
// NUL, which the beacon parser strips.
func (k CounterKey) Encode() string {
	kind := "p"
	if k.IsEvent {
		kind = "e"
	}
	return fmt.Sprintf("%s\x00%s\x00%s\x00%s",
		k.SiteID, k.HourBucket.UTC().Format(time.RFC3339), kind, k.Path)
}

// CounterRow is the mutable aggregate for one CounterKey. All counters are
// unsigned and saturate instead of wrapping.
type CounterRow struct {
	Hits              uint64            `json:"hits"`
	UniqueVisitors    uint64            `json:"uniqueVisitors"`
	ReferrerBreakdown map[string]uint64 `json:"referrerBreakdown"`
}

// NewCounterRow returns an empty row ready for accumulation.
func NewCounterRow() *CounterRow {
	return &CounterRow{ReferrerBreakdown: make(map[string]uint64)}
}

// Merge adds delta into r field by field, merging the referrer breakdown by
// category. Merge is the additive half of the upsert-add storage contract.
func (r *CounterRow) Merge(delta *CounterRow) {
	r.Hits = SatAdd(r.Hits, delta.Hits)
	r.UniqueVisitors = SatAdd(r.UniqueVisitors, delta.UniqueVisitors)
	if r.ReferrerBreakdown == nil {
		r.ReferrerBreakdown = make(map[string]uint64, len(delta.ReferrerBreakdown))
	}
	for category, n := range delta.ReferrerBreakdown {
		r.ReferrerBreakdown[category] = SatAdd(r.ReferrerBreakdown[category], n)
	}
}

// SatAdd adds two unsigned counters, saturating at the maximum instead of
// wrapping around.
func SatAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// KeyedCounter pairs a key with its row, used for flush snapshots and
// storage scan results.
type KeyedCounter struct {
	Key CounterKey  `json:"key"`
	Row *CounterRow `json:"row"`
}
