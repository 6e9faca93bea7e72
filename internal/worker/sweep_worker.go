package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/refcatalog-service/internal/events"
	"github.com/spec-kit/refcatalog-service/internal/observability"
	"github.com/spec-kit/refcatalog-service/internal/repository"
)

// SweepWorker periodically deletes expired token records. Expired tokens
// are already unusable (the expiry claim and the store liveness check both
// reject them); the sweep only reclaims rows, so failures are logged and
// the next tick retries.
type SweepWorker struct {
	tokens     repository.TokenRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	interval   time.Duration
}

// NewSweepWorker builds the worker.
func NewSweepWorker(
	tokens repository.TokenRepository,
	dispatcher events.Dispatcher,
	metrics *observability.Metrics,
	logger *zap.Logger,
	interval time.Duration,
) *SweepWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SweepWorker{
		tokens:     tokens,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		interval:   interval,
	}
}

// Run sweeps once immediately, then on every tick until ctx is done.
func (w *SweepWorker) Run(ctx context.Context) {
	w.SweepOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.SweepOnce(ctx)
		}
	}
}

// SweepOnce deletes currently expired token records.
func (w *SweepWorker) SweepOnce(ctx context.Context) {
	removed, err := w.tokens.SweepExpired(ctx)
	if err != nil {
		w.logger.Warn("token sweep failed", zap.Error(err))
		return
	}
	if removed == 0 {
		return
	}

	w.metrics.RecordSweep(removed)
	w.logger.Info("expired tokens swept", zap.Int64("removed", removed))

	if w.dispatcher != nil {
		_ = w.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTokensSwept,
			Timestamp: time.Now(),
			Payload:   events.SweepPayload{Removed: removed},
		})
	}
}
