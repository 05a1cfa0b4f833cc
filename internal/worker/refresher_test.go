package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront/internal/delivery/events"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

const testDebounce = 20 * time.Millisecond

type countingReloader struct {
	calls    atomic.Int32
	failures int32
	block    chan struct{}
}

func (r *countingReloader) Reload(ctx context.Context) error {
	n := r.calls.Add(1)
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if n <= r.failures {
		return errors.New("feed unavailable")
	}
	return nil
}

func TestCatalogRefresher_HandleEvent(t *testing.T) {
	reloader := &countingReloader{}
	w := NewCatalogRefresher(reloader, testDebounce, logger.Nop())

	data, err := json.Marshal(events.CatalogEvent{
		EventType: events.CatalogChanged,
		Source:    "catalogctl",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, w.HandleEvent(data))
	assert.True(t, w.IsPending())

	assert.Eventually(t, func() bool { return reloader.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, w.IsPending())
}

func TestCatalogRefresher_HandleEvent_InvalidJSON(t *testing.T) {
	w := NewCatalogRefresher(&countingReloader{}, testDebounce, logger.Nop())

	err := w.HandleEvent([]byte(`{invalid json}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
	assert.False(t, w.IsPending())
}

func TestCatalogRefresher_DebouncesBursts(t *testing.T) {
	reloader := &countingReloader{}
	w := NewCatalogRefresher(reloader, testDebounce, logger.Nop())

	for i := 0; i < 5; i++ {
		w.Trigger("file")
		time.Sleep(testDebounce / 4)
	}

	assert.Eventually(t, func() bool { return reloader.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * testDebounce)
	assert.Equal(t, int32(1), reloader.calls.Load())
}

func TestCatalogRefresher_RetriesWithBackoff(t *testing.T) {
	reloader := &countingReloader{failures: 2}
	w := NewCatalogRefresher(reloader, testDebounce, logger.Nop())

	w.Trigger("file")

	assert.Eventually(t, func() bool { return reloader.calls.Load() == 3 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, w.Shutdown(context.Background()))
}

func TestCatalogRefresher_GivesUpAfterMaxRetries(t *testing.T) {
	reloader := &countingReloader{failures: 100}
	w := NewCatalogRefresher(reloader, testDebounce, logger.Nop())

	w.Trigger("file")

	assert.Eventually(t, func() bool { return reloader.calls.Load() == maxRetries }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(2 * initialBackoff)
	assert.Equal(t, int32(maxRetries), reloader.calls.Load())
}

func TestCatalogRefresher_ShutdownCancelsPending(t *testing.T) {
	reloader := &countingReloader{}
	w := NewCatalogRefresher(reloader, time.Hour, logger.Nop())

	w.Trigger("file")
	assert.True(t, w.IsPending())

	err := w.Shutdown(context.Background())

	assert.NoError(t, err)
	assert.False(t, w.IsPending())
	assert.Equal(t, int32(0), reloader.calls.Load())

	w.Trigger("file")
	assert.False(t, w.IsPending())
}

func TestCatalogRefresher_ShutdownWaitsForRunningRefresh(t *testing.T) {
	reloader := &countingReloader{block: make(chan struct{})}
	w := NewCatalogRefresher(reloader, testDebounce, logger.Nop())

	w.Trigger("nats")
	require.Eventually(t, func() bool { return reloader.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, w.Shutdown(ctx))
}
