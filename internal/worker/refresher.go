package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Pesokrava/storefront/internal/delivery/events"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

const (
	// Retry configuration
	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond

	reloadTimeout = 10 * time.Second
)

// Reloader rebuilds the catalog snapshot from its source
type Reloader interface {
	Reload(ctx context.Context) error
}

// CatalogRefresher coalesces catalog change signals and reloads the catalog
// once per quiet period
type CatalogRefresher struct {
	reloader Reloader
	debounce time.Duration
	logger   *logger.Logger

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	sources    []string
	shutdownCh chan struct{}
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewCatalogRefresher creates a new catalog refresher
func NewCatalogRefresher(reloader Reloader, debounce time.Duration, log *logger.Logger) *CatalogRefresher {
	ctx, cancel := context.WithCancel(context.Background())

	return &CatalogRefresher{
		reloader:   reloader,
		debounce:   debounce,
		logger:     log,
		shutdownCh: make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// HandleEvent processes a catalog event from NATS. The event is acked once a
// reload is scheduled; reload failures are retried here, not redelivered.
func (w *CatalogRefresher) HandleEvent(data []byte) error {
	var event events.CatalogEvent
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.Error("Failed to unmarshal catalog event", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	w.logger.WithFields(map[string]any{
		"type":      event.EventType,
		"source":    event.Source,
		"timestamp": event.Timestamp,
	}).Info("Received catalog event")

	source := event.Source
	if source == "" {
		source = "nats"
	}
	w.Trigger(source)

	return nil
}

// Trigger schedules a reload. Signals arriving within the debounce window
// restart it, so a burst results in a single reload.
func (w *CatalogRefresher) Trigger(source string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdownCh:
		w.logger.Info("Refresher shutting down, ignoring catalog signal")
		return
	default:
	}

	w.sources = append(w.sources, source)

	if w.timer != nil && w.timer.Stop() {
		w.logger.Debug("Debouncing: resetting catalog refresh timer")
	} else {
		w.wg.Add(1)
	}

	w.generation++
	generation := w.generation
	w.timer = time.AfterFunc(w.debounce, func() {
		w.refresh(generation)
	})
}

// refresh reloads the catalog with retry and exponential backoff
func (w *CatalogRefresher) refresh(generation uint64) {
	defer w.wg.Done()

	w.mu.Lock()
	sources := w.sources
	if w.generation == generation {
		w.sources = nil
		w.timer = nil
	}
	w.mu.Unlock()

	w.logger.WithFields(map[string]any{
		"signals": len(sources),
	}).Info("Refreshing catalog")

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			w.logger.WithFields(map[string]any{
				"attempt":    attempt + 1,
				"backoff_ms": backoff.Milliseconds(),
			}).Warn("Retrying catalog refresh")

			select {
			case <-time.After(backoff):
			case <-w.ctx.Done():
				w.logger.Info("Refresher context cancelled, aborting retry")
				return
			}

			backoff *= 2
		}

		ctx, cancel := context.WithTimeout(w.ctx, reloadTimeout)
		err := w.reloader.Reload(ctx)
		cancel()

		if err == nil {
			return
		}

		lastErr = err
		w.logger.WithFields(map[string]any{
			"attempt": attempt + 1,
		}).Error("Failed to refresh catalog", err)
	}

	w.logger.WithFields(map[string]any{
		"max_retries": maxRetries,
	}).Error("Catalog refresh failed after all retries", lastErr)
}

// IsPending reports whether a refresh is scheduled but not yet started
func (w *CatalogRefresher) IsPending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timer != nil
}

// Shutdown cancels a scheduled refresh and waits for a running one to finish
func (w *CatalogRefresher) Shutdown(ctx context.Context) error {
	w.logger.Info("Shutting down catalog refresher...")

	w.mu.Lock()
	close(w.shutdownCh)
	if w.timer != nil && w.timer.Stop() {
		w.wg.Done()
		w.logger.Info("Cancelled pending catalog refresh")
	}
	w.timer = nil
	w.sources = nil
	w.mu.Unlock()

	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("Catalog refresher stopped")
		return nil
	case <-ctx.Done():
		w.logger.Warn("Shutdown timeout reached, forcing exit")
		return ctx.Err()
	}
}
