package stores

import (
	"context"
	"testing"
	"time"

	"hit-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) CounterStore {
	t.Helper()

	store, err := NewBadgerCounterStore(Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func hourAt(h int) time.Time {
	return time.Date(2026, 3, 14, h, 0, 0, 0, time.UTC)
}

func TestUpsertAdd_CreatesThenMerges(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	key := models.CounterKey{SiteID: "site-1", Path: "/about", HourBucket: hourAt(18)}

	err := store.UpsertAdd(ctx, key, &models.CounterRow{
		Hits:              5,
		UniqueVisitors:    3,
		ReferrerBreakdown: map[string]uint64{"Google": 4, "Direct": 1},
	})
	require.NoError(t, err)

	// Second flush for the same key must add, not overwrite.
	err = store.UpsertAdd(ctx, key, &models.CounterRow{
		Hits:              2,
		UniqueVisitors:    1,
		ReferrerBreakdown: map[string]uint64{"Google": 1, "Hacker News": 1},
	})
	require.NoError(t, err)

	rows, err := store.Scan(ctx, "site-1", hourAt(0), hourAt(23))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, key, rows[0].Key)
	assert.Equal(t, uint64(7), rows[0].Row.Hits)
	assert.Equal(t, uint64(4), rows[0].Row.UniqueVisitors)
	assert.Equal(t, map[string]uint64{
		"Google":      5,
		"Direct":      1,
		"Hacker News": 1,
	}, rows[0].Row.ReferrerBreakdown)
}

func TestUpsertAdd_SplitFlushEqualsSingleFlush(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	key := models.CounterKey{SiteID: "site-1", Path: "/", HourBucket: hourAt(9)}

	split := newTestStore(t)
	require.NoError(t, split.UpsertAdd(ctx, key, &models.CounterRow{Hits: 3, UniqueVisitors: 2}))
	require.NoError(t, split.UpsertAdd(ctx, key, &models.CounterRow{Hits: 4, UniqueVisitors: 1}))

	single := newTestStore(t)
	require.NoError(t, single.UpsertAdd(ctx, key, &models.CounterRow{Hits: 7, UniqueVisitors: 3}))

	splitRows, err := split.Scan(ctx, "site-1", hourAt(0), hourAt(23))
	require.NoError(t, err)
	singleRows, err := single.Scan(ctx, "site-1", hourAt(0), hourAt(23))
	require.NoError(t, err)

	assert.Equal(t, singleRows, splitRows)
}

func TestScan_FiltersBySiteAndTimeRange(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	for _, k := range []models.CounterKey{
		{SiteID: "site-1", Path: "/a", HourBucket: hourAt(8)},
		{SiteID: "site-1", Path: "/b", HourBucket: hourAt(12)},
		{SiteID: "site-1", Path: "/c", HourBucket: hourAt(20)},
		{SiteID: "site-2", Path: "/a", HourBucket: hourAt(12)},
	} {
		require.NoError(t, store.UpsertAdd(ctx, k, &models.CounterRow{Hits: 1}))
	}

	rows, err := store.Scan(ctx, "site-1", hourAt(10), hourAt(20))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "/b", rows[0].Key.Path)

	// End of range is exclusive.
	rows, err = store.Scan(ctx, "site-1", hourAt(8), hourAt(20))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestScan_DistinguishesEventsFromPages(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	hour := hourAt(10)

	page := models.CounterKey{SiteID: "site-1", Path: "signup", IsEvent: false, HourBucket: hour}
	event := models.CounterKey{SiteID: "site-1", Path: "signup", IsEvent: true, HourBucket: hour}

	require.NoError(t, store.UpsertAdd(ctx, page, &models.CounterRow{Hits: 1}))
	require.NoError(t, store.UpsertAdd(ctx, event, &models.CounterRow{Hits: 2}))

	rows, err := store.Scan(ctx, "site-1", hourAt(0), hourAt(23))
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestScan_PathsWithSlashesRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()
	key := models.CounterKey{SiteID: "site-1", Path: "/docs/api/v2?tab=auth", HourBucket: hourAt(10)}

	require.NoError(t, store.UpsertAdd(ctx, key, &models.CounterRow{Hits: 1}))

	rows, err := store.Scan(ctx, "site-1", hourAt(0), hourAt(23))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, key.Path, rows[0].Key.Path)
}

func TestUpsertAdd_CancelledContext(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.UpsertAdd(ctx, models.CounterKey{SiteID: "site-1", Path: "/", HourBucket: hourAt(1)}, &models.CounterRow{Hits: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
