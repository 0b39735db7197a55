package http

import (
	"net/http"

	"hit-analytics/internal/beacons"
	"hit-analytics/internal/shared/loggers"
	"hit-analytics/internal/shared/metrics"
	"hit-analytics/internal/stats"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(beaconService beacons.BeaconService, statsService stats.StatsService, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	countHandler := NewCountHandler(beaconService)
	statsHandler := NewStatsHandler(statsService)

	// Routes
	router.Get("/count", errorHandlingAdapter(countHandler))
	router.Post("/count", errorHandlingAdapter(countHandler))
	router.Get("/stats", errorHandlingAdapter(statsHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
