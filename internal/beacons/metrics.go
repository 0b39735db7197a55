package beacons

import (
	"hit-analytics/internal/shared/metrics"
)

var (
	metricHitsRecordedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubBeacon,
			Name:      "hits_recorded_total",
		},
		[]string{"disposition", metrics.FieldErrorCode},
	)
)
