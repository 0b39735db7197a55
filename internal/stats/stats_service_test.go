package stats_test

import (
	"context"
	"testing"
	"time"

	"hit-analytics/internal/models"
	"hit-analytics/internal/shared/svcerrors"
	"hit-analytics/internal/stats"
	storemocks "hit-analytics/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	statsFrom = time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	statsTo   = time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)
)

func keyedRow(path string, isEvent bool, hour time.Time, hits, uniques uint64, refs map[string]uint64) models.KeyedCounter {
	return models.KeyedCounter{
		Key: models.CounterKey{SiteID: "site1", Path: path, IsEvent: isEvent, HourBucket: hour},
		Row: &models.CounterRow{Hits: hits, UniqueVisitors: uniques, ReferrerBreakdown: refs},
	}
}

func TestQuery_ErrValidationFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name  string
		query stats.Query
	}{
		{
			name:  "missing site",
			query: stats.Query{From: statsFrom, To: statsTo, Granularity: models.GranularityHour},
		},
		{
			name:  "start after end",
			query: stats.Query{SiteID: "site1", From: statsTo, To: statsFrom, Granularity: models.GranularityHour},
		},
		{
			name:  "start equals end",
			query: stats.Query{SiteID: "site1", From: statsFrom, To: statsFrom, Granularity: models.GranularityHour},
		},
		{
			name:  "unknown granularity",
			query: stats.Query{SiteID: "site1", From: statsFrom, To: statsTo, Granularity: "week"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The store must not be touched on invalid queries.
			store := storemocks.NewMockCounterStore(ctrl)
			service := stats.NewStatsService(store)

			buckets, err := service.Query(context.Background(), tt.query)

			require.Error(t, err, "expected error")
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, "STA_1000", svcErr.Code)
			assert.Equal(t, "invalid_argument", svcErr.Category)
			assert.Nil(t, buckets)
		})
	}
}

func TestQuery_ErrCounterStoreFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storemocks.NewMockCounterStore(ctrl)
	store.EXPECT().
		Scan(gomock.Any(), "site1", statsFrom, statsTo).
		Return(nil, assert.AnError)

	service := stats.NewStatsService(store)

	buckets, err := service.Query(context.Background(), stats.Query{
		SiteID: "site1", From: statsFrom, To: statsTo, Granularity: models.GranularityHour,
	})

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "STA_9000", svcErr.Code)
	assert.Equal(t, "internal", svcErr.Category)
	assert.Nil(t, buckets)
}

func TestQuery_HourGranularityAndSortOrder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h10 := statsFrom.Add(10 * time.Hour)
	h11 := statsFrom.Add(11 * time.Hour)

	store := storemocks.NewMockCounterStore(ctrl)
	store.EXPECT().
		Scan(gomock.Any(), "site1", statsFrom, statsTo).
		Return([]models.KeyedCounter{
			keyedRow("/pricing", false, h11, 3, 2, map[string]uint64{"Direct": 3}),
			keyedRow("/", false, h10, 5, 4, map[string]uint64{"Google": 5}),
			keyedRow("/pricing", false, h10, 9, 6, map[string]uint64{"Direct": 9}),
		}, nil)

	service := stats.NewStatsService(store)

	buckets, err := service.Query(context.Background(), stats.Query{
		SiteID: "site1", From: statsFrom, To: statsTo, Granularity: models.GranularityHour,
	})

	require.NoError(t, err, "unexpected error")
	require.Len(t, buckets, 3)

	// Buckets ascend in time; within one bucket hits descend.
	assert.Equal(t, "/pricing", buckets[0].Path)
	assert.Equal(t, h10, buckets[0].BucketStart)
	assert.Equal(t, uint64(9), buckets[0].Hits)
	assert.Equal(t, "/", buckets[1].Path)
	assert.Equal(t, h10, buckets[1].BucketStart)
	assert.Equal(t, "/pricing", buckets[2].Path)
	assert.Equal(t, h11, buckets[2].BucketStart)
}

func TestQuery_DayGranularityRollsUp(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storemocks.NewMockCounterStore(ctrl)
	store.EXPECT().
		Scan(gomock.Any(), "site1", statsFrom, statsTo).
		Return([]models.KeyedCounter{
			keyedRow("/", false, statsFrom.Add(10*time.Hour), 5, 4, map[string]uint64{"Google": 3, "Direct": 2}),
			keyedRow("/", false, statsFrom.Add(11*time.Hour), 7, 2, map[string]uint64{"Google": 7}),
		}, nil)

	service := stats.NewStatsService(store)

	buckets, err := service.Query(context.Background(), stats.Query{
		SiteID: "site1", From: statsFrom, To: statsTo, Granularity: models.GranularityDay,
	})

	require.NoError(t, err, "unexpected error")
	require.Len(t, buckets, 1)

	assert.Equal(t, statsFrom, buckets[0].BucketStart)
	assert.Equal(t, uint64(12), buckets[0].Hits)
	// Day uniques sum hourly uniques: an upper bound, not a distinct count.
	assert.Equal(t, uint64(6), buckets[0].UniqueVisitors)
	assert.Equal(t, map[string]uint64{"Google": 10, "Direct": 2}, buckets[0].ReferrerBreakdown)
}

func TestQuery_PathFilter(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hour := statsFrom.Add(10 * time.Hour)

	store := storemocks.NewMockCounterStore(ctrl)
	store.EXPECT().
		Scan(gomock.Any(), "site1", statsFrom, statsTo).
		Return([]models.KeyedCounter{
			keyedRow("/", false, hour, 5, 4, nil),
			keyedRow("/pricing", false, hour, 3, 2, nil),
			keyedRow("signup-clicked", true, hour, 2, 2, nil),
		}, nil)

	service := stats.NewStatsService(store)

	buckets, err := service.Query(context.Background(), stats.Query{
		SiteID: "site1", PathFilter: "/pricing", From: statsFrom, To: statsTo, Granularity: models.GranularityHour,
	})

	require.NoError(t, err, "unexpected error")
	require.Len(t, buckets, 1)
	assert.Equal(t, "/pricing", buckets[0].Path)
	assert.False(t, buckets[0].IsEvent)
}

func TestQuery_EventsKeepTheirIdentity(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hour := statsFrom.Add(10 * time.Hour)

	// Same name as page and as event must stay two buckets.
	store := storemocks.NewMockCounterStore(ctrl)
	store.EXPECT().
		Scan(gomock.Any(), "site1", statsFrom, statsTo).
		Return([]models.KeyedCounter{
			keyedRow("/signup", false, hour, 5, 4, nil),
			keyedRow("/signup", true, hour, 2, 2, nil),
		}, nil)

	service := stats.NewStatsService(store)

	buckets, err := service.Query(context.Background(), stats.Query{
		SiteID: "site1", From: statsFrom, To: statsTo, Granularity: models.GranularityHour,
	})

	require.NoError(t, err, "unexpected error")
	require.Len(t, buckets, 2)
	assert.NotEqual(t, buckets[0].IsEvent, buckets[1].IsEvent)
}
