package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

const (
	// CartStream keeps cart events for the notifier and downstream consumers
	CartStream = "CART"

	// CartSubject carries cart line changes
	CartSubject = "cart.events"

	// CatalogStream fans catalog change notifications out to every API instance
	CatalogStream = "CATALOG"

	// CatalogSubject carries catalog change notifications
	CatalogSubject = "catalog.events"

	// RefresherConsumerPrefix names the per-instance consumers that reload
	// the catalog. Each API instance owns one.
	RefresherConsumerPrefix = "catalog-refresher"

	// RefresherInactiveThreshold is how long the server keeps the consumer of
	// an instance that stopped fetching
	RefresherInactiveThreshold = 5 * time.Minute

	// MaxDeliveryAttempts bounds redeliveries of a catalog event that was
	// never acked. Reload failures are retried by the refresher itself, and a
	// dropped event is harmless since the next one reloads the whole feed.
	MaxDeliveryAttempts = 3

	// AckWait is how long to wait for acknowledgment before redelivery
	AckWait = 30 * time.Second
)

// CatalogChanged is the event type published when the feed changes
const CatalogChanged = "catalog.changed"

// CatalogEvent notifies consumers that the catalog feed changed
type CatalogEvent struct {
	EventType string    `json:"event_type"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// StreamManager is the subset of nats.JetStreamContext used to provision
// streams and consumers
type StreamManager interface {
	StreamInfo(stream string, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	AddStream(cfg *nats.StreamConfig, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	ConsumerInfo(stream, name string, opts ...nats.JSOpt) (*nats.ConsumerInfo, error)
	AddConsumer(stream string, cfg *nats.ConsumerConfig, opts ...nats.JSOpt) (*nats.ConsumerInfo, error)
	DeleteConsumer(stream, consumer string, opts ...nats.JSOpt) error
}

// StreamConfig provisions the JetStream streams and consumers of the service
type StreamConfig struct {
	js     StreamManager
	logger *logger.Logger
}

// NewStreamConfig creates a new stream configuration helper
func NewStreamConfig(js StreamManager, log *logger.Logger) *StreamConfig {
	return &StreamConfig{
		js:     js,
		logger: log,
	}
}

// RefresherConsumerName returns the consumer name of one API instance
func RefresherConsumerName(instance uuid.UUID) string {
	return fmt.Sprintf("%s-%s", RefresherConsumerPrefix, instance)
}

func cartStreamConfig() *nats.StreamConfig {
	return &nats.StreamConfig{
		Name:        CartStream,
		Subjects:    []string{CartSubject},
		Retention:   nats.LimitsPolicy,
		Storage:     nats.FileStorage,
		Replicas:    1,
		MaxAge:      24 * time.Hour,
		Discard:     nats.DiscardOld,
		Description: "Cart line changes",
	}
}

func catalogStreamConfig() *nats.StreamConfig {
	return &nats.StreamConfig{
		Name:        CatalogStream,
		Subjects:    []string{CatalogSubject},
		Retention:   nats.LimitsPolicy,
		Storage:     nats.FileStorage,
		Replicas:    1,
		MaxAge:      time.Hour,
		Discard:     nats.DiscardOld,
		Description: "Catalog feed change notifications",
	}
}

// EnsureStreams creates the cart and catalog streams when missing
func (s *StreamConfig) EnsureStreams() error {
	for _, cfg := range []*nats.StreamConfig{cartStreamConfig(), catalogStreamConfig()} {
		if err := s.ensureStream(cfg); err != nil {
			return err
		}
	}
	return nil
}

func (s *StreamConfig) ensureStream(cfg *nats.StreamConfig) error {
	stream, err := s.js.StreamInfo(cfg.Name)

	if errors.Is(err, nats.ErrStreamNotFound) {
		s.logger.WithFields(map[string]any{
			"stream":   cfg.Name,
			"subjects": cfg.Subjects,
		}).Info("Creating JetStream stream")

		if _, err := s.js.AddStream(cfg); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", cfg.Name, err)
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get stream info for %s: %w", cfg.Name, err)
	}

	// retention cannot be changed on an existing stream
	if stream.Config.Retention != cfg.Retention {
		return fmt.Errorf("stream %s exists with %s retention, want %s: delete it to recreate",
			cfg.Name, stream.Config.Retention, cfg.Retention)
	}

	s.logger.WithFields(map[string]any{
		"stream":   stream.Config.Name,
		"messages": stream.State.Msgs,
		"bytes":    stream.State.Bytes,
	}).Info("JetStream stream already exists")

	return nil
}

// EnsureRefresherConsumer creates the catalog consumer of one API instance.
// It only sees events published after it was created, since the instance
// loads the catalog on startup.
func (s *StreamConfig) EnsureRefresherConsumer(name string) error {
	consumerInfo, err := s.js.ConsumerInfo(CatalogStream, name)

	if errors.Is(err, nats.ErrConsumerNotFound) {
		s.logger.WithFields(map[string]any{
			"stream":   CatalogStream,
			"consumer": name,
		}).Info("Creating JetStream consumer")

		_, err = s.js.AddConsumer(CatalogStream, refresherConsumerConfig(name))
		if err != nil {
			return fmt.Errorf("failed to create consumer %s: %w", name, err)
		}
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}

	s.logger.WithFields(map[string]any{
		"consumer":    consumerInfo.Name,
		"pending":     consumerInfo.NumPending,
		"redelivered": consumerInfo.NumRedelivered,
		"ack_pending": consumerInfo.NumAckPending,
	}).Info("JetStream consumer already exists")

	return nil
}

// RemoveRefresherConsumer deletes the catalog consumer of an instance that is
// shutting down. A consumer already gone is not an error.
func (s *StreamConfig) RemoveRefresherConsumer(name string) error {
	err := s.js.DeleteConsumer(CatalogStream, name)
	if err != nil && !errors.Is(err, nats.ErrConsumerNotFound) {
		return fmt.Errorf("failed to delete consumer %s: %w", name, err)
	}
	return nil
}

func refresherConsumerConfig(name string) *nats.ConsumerConfig {
	return &nats.ConsumerConfig{
		Durable:           name,
		DeliverPolicy:     nats.DeliverNewPolicy,
		AckPolicy:         nats.AckExplicitPolicy,
		AckWait:           AckWait,
		MaxDeliver:        MaxDeliveryAttempts,
		FilterSubject:     CatalogSubject,
		InactiveThreshold: RefresherInactiveThreshold,
		Description:       "Reloads this instance's catalog snapshot on feed changes",
	}
}
