package stats

import (
	"context"
	"sort"
	"time"

	"hit-analytics/internal/models"
	"hit-analytics/internal/shared/loggers"
	"hit-analytics/internal/stores"
)

// StatBucket is one aggregated row of the read API.
type StatBucket struct {
	Path              string            `json:"path"`
	IsEvent           bool              `json:"isEvent"`
	BucketStart       time.Time         `json:"bucketStart"`
	Hits              uint64            `json:"hits"`
	UniqueVisitors    uint64            `json:"uniqueVisitors"`
	ReferrerBreakdown map[string]uint64 `json:"referrerBreakdown"`
}

// Query describes a read-API request.
type Query struct {
	SiteID      string
	PathFilter  string // exact path/event-name match; empty matches all
	From, To    time.Time
	Granularity models.Granularity
}

// StatsService serves aggregated statistics from durable storage only; open
// in-memory buckets are never exposed. Day-granularity unique-visitor counts
// sum hourly uniques and are therefore an upper bound: the same fingerprint
// seen in two hours counts twice.
//
//go:generate mockgen -source=stats_service.go -destination=./mocks/stats_service_mock.go -package=mocks
type StatsService interface {
	Query(ctx context.Context, q Query) ([]StatBucket, error)
}

type statsService struct {
	store stores.CounterStore
}

func NewStatsService(store stores.CounterStore) StatsService {
	return &statsService{store: store}
}

func (s *statsService) Query(ctx context.Context, q Query) ([]StatBucket, error) {
	if err := s.validate(q); err != nil {
		return nil, err
	}

	logger := loggers.Ctx(ctx)
	logger.Debug().
		Str(loggers.FieldSiteID, q.SiteID).
		Str(loggers.FieldPath, q.PathFilter).
		Msg("querying counter rows")

	rows, err := s.store.Scan(ctx, q.SiteID, q.From, q.To)
	if err != nil {
		return nil, errInternalCounterStoreFailed(err)
	}

	type rollupKey struct {
		path    string
		isEvent bool
		bucket  time.Time
	}
	rollup := make(map[rollupKey]*StatBucket)

	for _, row := range rows {
		if q.PathFilter != "" && row.Key.Path != q.PathFilter {
			continue
		}

		key := rollupKey{
			path:    row.Key.Path,
			isEvent: row.Key.IsEvent,
			bucket:  q.Granularity.BucketStart(row.Key.HourBucket),
		}
		bucket, ok := rollup[key]
		if !ok {
			bucket = &StatBucket{
				Path:              key.path,
				IsEvent:           key.isEvent,
				BucketStart:       key.bucket,
				ReferrerBreakdown: make(map[string]uint64),
			}
			rollup[key] = bucket
		}

		bucket.Hits = models.SatAdd(bucket.Hits, row.Row.Hits)
		bucket.UniqueVisitors = models.SatAdd(bucket.UniqueVisitors, row.Row.UniqueVisitors)
		for category, n := range row.Row.ReferrerBreakdown {
			bucket.ReferrerBreakdown[category] = models.SatAdd(bucket.ReferrerBreakdown[category], n)
		}
	}

	result := make([]StatBucket, 0, len(rollup))
	for _, bucket := range rollup {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].BucketStart.Equal(result[j].BucketStart) {
			return result[i].BucketStart.Before(result[j].BucketStart)
		}
		if result[i].Hits != result[j].Hits {
			return result[i].Hits > result[j].Hits
		}
		return result[i].Path < result[j].Path
	})
	return result, nil
}

func (s *statsService) validate(q Query) error {
	if q.SiteID == "" {
		return errValidationFailed("site is required", nil)
	}
	if !q.From.Before(q.To) {
		return errValidationFailed("start must be before end", nil)
	}
	switch q.Granularity {
	case models.GranularityHour, models.GranularityDay:
	default:
		return errValidationFailed("granularity must be hour or day", nil)
	}
	return nil
}
