package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/refcatalog-service/internal/domain"
	"github.com/spec-kit/refcatalog-service/internal/events"
	"github.com/spec-kit/refcatalog-service/internal/observability"
)

// fakeTokenRepo holds token records in memory.
type fakeTokenRepo struct {
	mu       sync.Mutex
	records  map[string]*domain.AuthToken
	sweepErr error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{records: map[string]*domain.AuthToken{}}
}

func (f *fakeTokenRepo) Persist(_ context.Context, token *domain.AuthToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *token
	f.records[token.Token] = &copied
	return nil
}

func (f *fakeTokenRepo) IsLiveAndStored(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[token]
	return ok && rec.Live(time.Now()), nil
}

func (f *fakeTokenRepo) Touch(context.Context, string) error { return nil }

func (f *fakeTokenRepo) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, token)
	return nil
}

func (f *fakeTokenRepo) SweepExpired(_ context.Context) (int64, error) {
	if f.sweepErr != nil {
		return 0, f.sweepErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	now := time.Now()
	for key, rec := range f.records {
		if !rec.Live(now) {
			delete(f.records, key)
			removed++
		}
	}
	return removed, nil
}

func seedToken(repo *fakeTokenRepo, token string, expiresAt time.Time) {
	_ = repo.Persist(context.Background(), &domain.AuthToken{
		UserID:    1,
		Token:     token,
		TokenType: domain.TokenTypeAccess,
		ExpiresAt: expiresAt,
	})
}

func TestSweepWorker_SweepOnceRemovesOnlyExpired(t *testing.T) {
	repo := newFakeTokenRepo()
	seedToken(repo, "expired-1", time.Now().Add(-time.Hour))
	seedToken(repo, "expired-2", time.Now().Add(-time.Minute))
	seedToken(repo, "live", time.Now().Add(time.Hour))

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var mu sync.Mutex
	var received []events.Event
	dispatcher.Subscribe(events.EventTokensSwept, func(_ context.Context, event events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, event)
		return nil
	})

	w := NewSweepWorker(repo, dispatcher, metrics, zap.NewNop(), time.Minute)
	w.SweepOnce(context.Background())

	assert.Len(t, repo.records, 1)
	assert.Contains(t, repo.records, "live")

	_, _, swept := metrics.AuthCounters()
	assert.Equal(t, int64(2), swept)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	payload, ok := received[0].Payload.(events.SweepPayload)
	require.True(t, ok)
	assert.Equal(t, int64(2), payload.Removed)
}

func TestSweepWorker_SweepOnceNothingExpired(t *testing.T) {
	repo := newFakeTokenRepo()
	seedToken(repo, "live", time.Now().Add(time.Hour))

	metrics := observability.NewMetrics()
	w := NewSweepWorker(repo, nil, metrics, zap.NewNop(), time.Minute)
	w.SweepOnce(context.Background())

	assert.Len(t, repo.records, 1)
	_, _, swept := metrics.AuthCounters()
	assert.Zero(t, swept)
}

func TestSweepWorker_SweepFailureIsSwallowed(t *testing.T) {
	repo := newFakeTokenRepo()
	repo.sweepErr = errors.New("db down")
	seedToken(repo, "expired", time.Now().Add(-time.Hour))

	w := NewSweepWorker(repo, nil, observability.NewMetrics(), zap.NewNop(), time.Minute)

	assert.NotPanics(t, func() {
		w.SweepOnce(context.Background())
	})
}

func TestSweepWorker_RunStopsOnContextCancel(t *testing.T) {
	repo := newFakeTokenRepo()
	w := NewSweepWorker(repo, nil, observability.NewMetrics(), zap.NewNop(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
