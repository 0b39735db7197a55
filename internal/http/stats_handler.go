package http

import (
	"encoding/json"
	"net/http"
	"time"

	"hit-analytics/internal/models"
	"hit-analytics/internal/stats"
)

// StatsResponse represents the read-API response body.
type StatsResponse struct {
	SiteID      string             `json:"siteId"`
	Granularity string             `json:"granularity"`
	Buckets     []stats.StatBucket `json:"buckets"`
}

type statsHandler struct {
	statsService stats.StatsService
}

func NewStatsHandler(statsService stats.StatsService) AppHttpHandler {
	return &statsHandler{
		statsService: statsService,
	}
}

// Handle processes GET /stats requests.
func (h *statsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	params := r.URL.Query()

	from, err := time.Parse(time.RFC3339, params.Get("start"))
	if err != nil {
		return errInvalidQueryParam("start", err)
	}
	to, err := time.Parse(time.RFC3339, params.Get("end"))
	if err != nil {
		return errInvalidQueryParam("end", err)
	}
	granularity, err := models.NewGranularityFromString(params.Get("granularity"))
	if err != nil {
		return errInvalidQueryParam("granularity", err)
	}

	query := stats.Query{
		SiteID:      params.Get(paramSite),
		PathFilter:  params.Get("path"),
		From:        from,
		To:          to,
		Granularity: granularity,
	}

	buckets, err := h.statsService.Query(r.Context(), query)
	if err != nil {
		return err
	}

	response := StatsResponse{
		SiteID:      query.SiteID,
		Granularity: string(granularity),
		Buckets:     buckets,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(response)
}
