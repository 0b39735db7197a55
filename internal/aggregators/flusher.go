package aggregators

import (
	"context"
	"sync"
	"time"

	"hit-analytics/internal/shared/loggers"
)

// Flusher drives periodic engine flushes from a single background goroutine,
// keeping all storage I/O off the request-handling path.
//
//go:generate mockgen -source=flusher.go -destination=./mocks/flusher_mock.go -package=mocks
type Flusher interface {
	Start(ctx context.Context)
	Stop()
}

type flusher struct {
	engine   Engine
	interval time.Duration
	logger   loggers.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}

	now func() time.Time
}

func NewFlusher(engine Engine, interval time.Duration, logger loggers.Logger) Flusher {
	return &flusher{
		engine:   engine,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}
}

func (f *flusher) Start(ctx context.Context) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.run(ctx)
	}()
}

// Stop waits for the flush loop to finish, then drains every remaining open
// row so shutdown loses nothing that storage would accept.
func (f *flusher) Stop() {
	f.stopOnce.Do(func() { close(f.stopCh) })
	f.wg.Wait()

	cutoff := f.now().Add(f.interval + 2*time.Hour)
	result := f.engine.Flush(context.Background(), cutoff)
	f.logger.Info().
		Int("flushed", result.Flushed).
		Int("requeued", result.Requeued).
		Int("dropped", result.Dropped).
		Msg("final counter flush on shutdown")
}

func (f *flusher) run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-f.stopCh:
			return
		case <-ticker.C:
			result := f.engine.Flush(ctx, f.now())
			if result.Flushed > 0 || result.Requeued > 0 || result.Dropped > 0 {
				f.logger.Debug().
					Int("flushed", result.Flushed).
					Int("requeued", result.Requeued).
					Int("dropped", result.Dropped).
					Msg("periodic counter flush")
			}
		}
	}
}
