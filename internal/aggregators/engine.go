package aggregators

import (
	"context"
	"sync"
	"time"

	"hit-analytics/internal/models"
	"hit-analytics/internal/shared/loggers"
	"hit-analytics/internal/stores"

	"github.com/cenkalti/backoff/v4"
	"github.com/cespare/xxhash/v2"
)

// Config holds aggregation policy constants.
type Config struct {
	// GraceWindow keeps a bucket in memory past its end so late hits still
	// land in the open row instead of forcing an extra durable merge.
	GraceWindow time.Duration

	// ShardCount is the number of independently locked counter-map shards.
	ShardCount int

	// TopReferrers caps distinct referrer categories per row; overflow
	// folds into models.OtherReferrer.
	TopReferrers int

	// MaxUniqueTracked caps the per-row seen-set. Past it new fingerprints
	// are not tracked and uniques undercount, which is the accepted
	// trade-off for bounded memory.
	MaxUniqueTracked int

	// FlushMaxAttempts is the flush-cycle budget per snapshot before it is
	// dropped instead of requeued.
	FlushMaxAttempts int
}

// FlushResult reports what one flush cycle did with eligible snapshots.
type FlushResult struct {
	Flushed  int
	Requeued int
	Dropped  int
}

// Engine folds accepted hits into in-memory hourly counters and flushes
// closed buckets to durable storage. Ingest never performs I/O; Flush is the
// only path that touches the store.
//
//go:generate mockgen -source=engine.go -destination=./mocks/engine_mock.go -package=mocks
type Engine interface {
	// Ingest merges one accepted hit. Safe for many concurrent callers;
	// updates to a single row are linearized, different rows proceed in
	// parallel.
	Ingest(hit *models.RawHit, fp models.Fingerprint)

	// Flush snapshots and removes every row whose bucket end plus grace
	// window is at or before cutoff, then upserts the snapshots
	// additively. Failed snapshots are requeued for the next cycle until
	// the attempt budget runs out.
	Flush(ctx context.Context, cutoff time.Time) FlushResult
}

type shard struct {
	mu   sync.Mutex
	rows map[models.CounterKey]*openRow
}

// openRow is a CounterRow still accumulating, plus the seen-set that backs
// uniqueness counting. The seen-set never leaves memory.
type openRow struct {
	counter *models.CounterRow
	seen    map[models.Fingerprint]struct{}
}

type snapshot struct {
	key      models.CounterKey
	row      *models.CounterRow
	attempts int
}

type engine struct {
	cfg    Config
	store  stores.CounterStore
	logger loggers.Logger
	shards []*shard

	pendingMu sync.Mutex
	pending   []snapshot

	// newBackOff builds the per-upsert retry policy; replaced in tests.
	newBackOff func() backoff.BackOff
}

func NewEngine(cfg Config, store stores.CounterStore, logger loggers.Logger) Engine {
	shards := make([]*shard, cfg.ShardCount)
	for i := range shards {
		shards[i] = &shard{rows: make(map[models.CounterKey]*openRow)}
	}
	return &engine{
		cfg:    cfg,
		store:  store,
		logger: logger,
		shards: shards,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxElapsedTime = 3 * time.Second
			return b
		},
	}
}

func (e *engine) Ingest(hit *models.RawHit, fp models.Fingerprint) {
	key := models.NewCounterKey(hit.SiteID, hit.Path, hit.IsEvent, hit.Timestamp)
	category := NormalizeReferrer(hit.Referrer)

	sh := e.shardFor(key)
	sh.mu.Lock()
	row, ok := sh.rows[key]
	if !ok {
		row = &openRow{
			counter: models.NewCounterRow(),
			seen:    make(map[models.Fingerprint]struct{}),
		}
		sh.rows[key] = row
		metricOpenRows.Inc()
	}

	row.counter.Hits = models.SatAdd(row.counter.Hits, 1)
	if _, seen := row.seen[fp]; !seen && len(row.seen) < e.cfg.MaxUniqueTracked {
		row.seen[fp] = struct{}{}
		row.counter.UniqueVisitors = models.SatAdd(row.counter.UniqueVisitors, 1)
	}
	e.foldReferrer(row.counter, category)

	if row.counter.UniqueVisitors > row.counter.Hits {
		// Unreachable by construction; clamp the row rather than let a
		// corrupt aggregate reach storage.
		e.logger.Error().
			Str(loggers.FieldSiteID, key.SiteID).
			Str(loggers.FieldPath, key.Path).
			Time(loggers.FieldHourBucket, key.HourBucket).
			Uint64("hits", row.counter.Hits).
			Uint64("unique_visitors", row.counter.UniqueVisitors).
			Msg("counter invariant violated: unique_visitors > hits")
		row.counter.UniqueVisitors = row.counter.Hits
		metricInvariantViolationsTotal.Inc()
	}
	sh.mu.Unlock()

	metricHitsIngestedTotal.Inc()
}

// foldReferrer increments the hit's referrer category, folding categories
// beyond the top-N slot budget into "other". "other" does not use a slot.
func (e *engine) foldReferrer(counter *models.CounterRow, category string) {
	breakdown := counter.ReferrerBreakdown
	if _, ok := breakdown[category]; ok {
		breakdown[category] = models.SatAdd(breakdown[category], 1)
		return
	}

	slots := len(breakdown)
	if _, ok := breakdown[models.OtherReferrer]; ok {
		slots--
	}
	if category != models.OtherReferrer && slots < e.cfg.TopReferrers {
		breakdown[category] = 1
		return
	}
	breakdown[models.OtherReferrer] = models.SatAdd(breakdown[models.OtherReferrer], 1)
}

func (e *engine) Flush(ctx context.Context, cutoff time.Time) FlushResult {
	drained := e.drain(cutoff)

	e.pendingMu.Lock()
	queue := append(e.pending, drained...)
	e.pending = nil
	e.pendingMu.Unlock()

	var result FlushResult
	var requeue []snapshot
	for _, snap := range queue {
		err := e.upsertWithRetry(ctx, snap)
		if err == nil {
			result.Flushed++
			metricFlushSnapshotsTotal.WithLabelValues(outcomeFlushed).Inc()
			continue
		}

		snap.attempts++
		if snap.attempts >= e.cfg.FlushMaxAttempts {
			result.Dropped++
			metricFlushSnapshotsTotal.WithLabelValues(outcomeDropped).Inc()
			e.logger.Error().
				Err(err).
				Str(loggers.FieldSiteID, snap.key.SiteID).
				Str(loggers.FieldPath, snap.key.Path).
				Time(loggers.FieldHourBucket, snap.key.HourBucket).
				Uint64("hits", snap.row.Hits).
				Msg("dropping counter snapshot after exhausting flush attempts")
			continue
		}

		result.Requeued++
		metricFlushSnapshotsTotal.WithLabelValues(outcomeRequeued).Inc()
		e.logger.Warn().
			Err(err).
			Str(loggers.FieldSiteID, snap.key.SiteID).
			Int("attempts", snap.attempts).
			Msg("counter snapshot flush failed, requeued")
		requeue = append(requeue, snap)
	}

	if len(requeue) > 0 {
		e.pendingMu.Lock()
		e.pending = append(requeue, e.pending...)
		e.pendingMu.Unlock()
	}
	return result
}

// drain atomically snapshots-and-removes every closed row. Each shard lock
// is held only while that shard is scanned, so concurrent Ingest calls on
// other shards are unaffected.
func (e *engine) drain(cutoff time.Time) []snapshot {
	var drained []snapshot
	for _, sh := range e.shards {
		sh.mu.Lock()
		for key, row := range sh.rows {
			if key.BucketEnd().Add(e.cfg.GraceWindow).After(cutoff) {
				continue
			}
			drained = append(drained, snapshot{key: key, row: row.counter})
			delete(sh.rows, key)
			metricOpenRows.Dec()
		}
		sh.mu.Unlock()
	}
	return drained
}

func (e *engine) upsertWithRetry(ctx context.Context, snap snapshot) error {
	op := func() error {
		return e.store.UpsertAdd(ctx, snap.key, snap.row)
	}
	return backoff.Retry(op, backoff.WithContext(e.newBackOff(), ctx))
}

func (e *engine) shardFor(key models.CounterKey) *shard {
	sum := xxhash.Sum64String(key.Encode())
	return e.shards[sum%uint64(len(e.shards))]
}
