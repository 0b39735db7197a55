package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hit-analytics/internal/models"

	"github.com/dgraph-io/badger/v4"
)

const counterKeyPrefix = "c"

// ErrCorruptRow is returned when a durable row fails to decode; the row is
// reported, not silently skipped.
var ErrCorruptRow = errors.New("corrupt counter row")

// CounterStore is the durable side of the aggregation pipeline. UpsertAdd
// has additive-merge semantics: flushing the same key twice accumulates, it
// never overwrites. The caller owns at-most-once-effectively delivery of a
// given snapshot; the store only guarantees the arithmetic merge.
//
//go:generate mockgen -source=counter_store.go -destination=./mocks/counter_store_mock.go -package=mocks
type CounterStore interface {
	UpsertAdd(ctx context.Context, key models.CounterKey, delta *models.CounterRow) error
	Scan(ctx context.Context, siteID string, from, to time.Time) ([]models.KeyedCounter, error)
	Close() error
}

// Config holds counter storage configuration.
type Config struct {
	DataDir  string
	InMemory bool
}

type badgerCounterStore struct {
	db *badger.DB
}

// NewBadgerCounterStore opens a BadgerDB-backed counter store. InMemory mode
// is for tests.
func NewBadgerCounterStore(cfg Config) (CounterStore, error) {
	opts := badger.DefaultOptions(cfg.DataDir).WithLogger(nil)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open counter store: %w", err)
	}
	return &badgerCounterStore{db: db}, nil
}

func (s *badgerCounterStore) UpsertAdd(ctx context.Context, key models.CounterKey, delta *models.CounterRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	storageKey := encodeStorageKey(key)

	// Badger detects write conflicts at commit; with the single-flusher
	// design they should not happen, but retry a few times anyway.
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		err = s.db.Update(func(txn *badger.Txn) error {
			return upsertAddTxn(txn, storageKey, delta)
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("failed to upsert counter row: %w", err)
	}
	return nil
}

func upsertAddTxn(txn *badger.Txn, storageKey []byte, delta *models.CounterRow) error {
	merged := models.NewCounterRow()

	item, err := txn.Get(storageKey)
	switch {
	case err == nil:
		err = item.Value(func(val []byte) error {
			return json.Unmarshal(val, merged)
		})
		if err != nil {
			return fmt.Errorf("%w: %s", ErrCorruptRow, err)
		}
	case errors.Is(err, badger.ErrKeyNotFound):
		// First flush for this key.
	default:
		return err
	}

	merged.Merge(delta)

	encoded, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return txn.Set(storageKey, encoded)
}

// Scan returns every durable row for the site whose hour bucket lies in
// [from, to), in key order.
func (s *badgerCounterStore) Scan(ctx context.Context, siteID string, from, to time.Time) ([]models.KeyedCounter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(counterKeyPrefix + "/" + siteID + "/")
	var rows []models.KeyedCounter

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 64})
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key, err := decodeStorageKey(item.Key())
			if err != nil {
				return err
			}
			if key.HourBucket.Before(from) || !key.HourBucket.Before(to) {
				continue
			}

			row := models.NewCounterRow()
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, row)
			})
			if err != nil {
				return fmt.Errorf("%w: %s", ErrCorruptRow, err)
			}
			rows = append(rows, models.KeyedCounter{Key: key, Row: row})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan counter rows: %w", err)
	}
	return rows, nil
}

func (s *badgerCounterStore) Close() error {
	return s.db.Close()
}

// encodeStorageKey lays keys out as c/<site>/<hour>/<p|e>/<path> so that one
// site's time range is a single prefix scan. Site IDs are validated upstream
// to contain no separator.
func encodeStorageKey(key models.CounterKey) []byte {
	kind := "p"
	if key.IsEvent {
		kind = "e"
	}
	return []byte(strings.Join([]string{
		counterKeyPrefix,
		key.SiteID,
		key.HourBucket.UTC().Format(time.RFC3339),
		kind,
		key.Path,
	}, "/"))
}

func decodeStorageKey(storageKey []byte) (models.CounterKey, error) {
	parts := strings.SplitN(string(storageKey), "/", 5)
	if len(parts) != 5 || parts[0] != counterKeyPrefix {
		return models.CounterKey{}, fmt.Errorf("malformed storage key: %q", storageKey)
	}
	hour, err := time.Parse(time.RFC3339, parts[2])
	if err != nil {
		return models.CounterKey{}, fmt.Errorf("malformed storage key %q: %w", storageKey, err)
	}
	return models.CounterKey{
		SiteID:     parts[1],
		HourBucket: hour.UTC(),
		IsEvent:    parts[3] == "e",
		Path:       parts[4],
	}, nil
}
