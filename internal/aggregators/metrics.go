package aggregators

import (
	"hit-analytics/internal/shared/metrics"
)

const (
	outcomeFlushed  = "flushed"
	outcomeRequeued = "requeued"
	outcomeDropped  = "dropped"
)

var (
	metricHitsIngestedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "hits_ingested_total",
		},
	)

	// metricFlushSnapshotsTotal tracks the fate of every drained snapshot.
	// "dropped" is the alerting signal: it means the retry budget ran out
	// and counter data was lost.
	metricFlushSnapshotsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "flush_snapshots_total",
		},
		[]string{"outcome"},
	)

	metricInvariantViolationsTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "invariant_violations_total",
		},
	)

	metricOpenRows = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "open_rows",
		},
	)
)
