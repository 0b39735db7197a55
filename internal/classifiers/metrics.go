package classifiers

import (
	"hit-analytics/internal/shared/metrics"
)

var (
	metricClassifiedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubClassifier,
			Name:      "hits_classified_total",
		},
		[]string{"disposition"},
	)
)
