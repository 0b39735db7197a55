package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hit-analytics/internal/models"
	"hit-analytics/internal/shared/svcerrors"
	"hit-analytics/internal/stats"
	statsmocks "hit-analytics/internal/stats/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStatsHandler_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statsService := statsmocks.NewMockStatsService(ctrl)

	bucketStart := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	var gotQuery stats.Query
	statsService.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		Do(func(_ any, q stats.Query) {
			gotQuery = q
		}).
		Return([]stats.StatBucket{
			{
				Path:              "/pricing",
				BucketStart:       bucketStart,
				Hits:              40,
				UniqueVisitors:    12,
				ReferrerBreakdown: map[string]uint64{"Google": 30, "Direct": 10},
			},
		}, nil)

	handler := errorHandlingAdapter(NewStatsHandler(statsService))

	req := httptest.NewRequest(http.MethodGet,
		"/stats?site=site1&path=%2Fpricing&start=2026-02-03T00:00:00Z&end=2026-02-04T00:00:00Z&granularity=hour", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response StatsResponse
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "site1", response.SiteID)
	assert.Equal(t, "hour", response.Granularity)
	require.Len(t, response.Buckets, 1)
	assert.Equal(t, "/pricing", response.Buckets[0].Path)
	assert.Equal(t, uint64(40), response.Buckets[0].Hits)
	assert.Equal(t, uint64(12), response.Buckets[0].UniqueVisitors)

	assert.Equal(t, "site1", gotQuery.SiteID)
	assert.Equal(t, "/pricing", gotQuery.PathFilter)
	assert.Equal(t, models.GranularityHour, gotQuery.Granularity)
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), gotQuery.From)
	assert.Equal(t, time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC), gotQuery.To)
}

func TestStatsHandler_GranularityDefaultsToHour(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statsService := statsmocks.NewMockStatsService(ctrl)

	var gotQuery stats.Query
	statsService.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		Do(func(_ any, q stats.Query) {
			gotQuery = q
		}).
		Return(nil, nil)

	handler := errorHandlingAdapter(NewStatsHandler(statsService))

	req := httptest.NewRequest(http.MethodGet,
		"/stats?site=site1&start=2026-02-03T00:00:00Z&end=2026-02-04T00:00:00Z", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, models.GranularityHour, gotQuery.Granularity)
}

func TestStatsHandler_ErrInvalidQueryParam(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name  string
		query string
	}{
		{
			name:  "missing start",
			query: "site=site1&end=2026-02-04T00:00:00Z",
		},
		{
			name:  "garbage end",
			query: "site=site1&start=2026-02-03T00:00:00Z&end=tomorrow",
		},
		{
			name:  "unknown granularity",
			query: "site=site1&start=2026-02-03T00:00:00Z&end=2026-02-04T00:00:00Z&granularity=week",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Query must never be reached with an unparsed time range.
			statsService := statsmocks.NewMockStatsService(ctrl)
			handler := errorHandlingAdapter(NewStatsHandler(statsService))

			req := httptest.NewRequest(http.MethodGet, "/stats?"+tt.query, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var errorResponse ErrorResponse
			err := json.Unmarshal(rr.Body.Bytes(), &errorResponse)
			require.NoError(t, err)
			assert.Equal(t, "HTP_1000", errorResponse.ErrorCode)
		})
	}
}

func TestStatsHandler_ServiceErrorPropagates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statsService := statsmocks.NewMockStatsService(ctrl)
	statsService.EXPECT().
		Query(gomock.Any(), gomock.Any()).
		Return(nil, svcerrors.NewInvalidArgumentError("STA_1000", "site is required", nil))

	handler := errorHandlingAdapter(NewStatsHandler(statsService))

	req := httptest.NewRequest(http.MethodGet,
		"/stats?start=2026-02-03T00:00:00Z&end=2026-02-04T00:00:00Z", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var errorResponse ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &errorResponse)
	require.NoError(t, err)
	assert.Equal(t, "STA_1000", errorResponse.ErrorCode)
	assert.Equal(t, "invalid_argument", errorResponse.ErrorCategory)
}
