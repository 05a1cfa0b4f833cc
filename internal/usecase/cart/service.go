package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Pesokrava/storefront/internal/cart"
	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
	"github.com/Pesokrava/storefront/internal/pkg/validator"
)

// EventsSubject is the subject cart events are published on
const EventsSubject = "cart.events"

// Cart event types
const (
	EventItemAdded       = "cart.item_added"
	EventQuantityUpdated = "cart.quantity_updated"
	EventItemRemoved     = "cart.item_removed"
	EventCleared         = "cart.cleared"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// ProductLookup resolves catalog products by id
type ProductLookup interface {
	GetByID(id string) (domain.Product, error)
}

// CartEvent represents a change to the lines of a cart
type CartEvent struct {
	EventType  string          `json:"event_type"`
	Timestamp  time.Time       `json:"timestamp"`
	SessionID  uuid.UUID       `json:"session_id"`
	Item       *domain.LineKey `json:"item,omitempty"`
	Quantity   int             `json:"quantity,omitempty"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Service dispatches shopper commands to the cart of a session and returns
// the refreshed cart after each one
type Service struct {
	sessions  *Registry
	products  ProductLookup
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new cart service. publisher may be nil.
func NewService(sessions *Registry, products ProductLookup, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		sessions:  sessions,
		products:  products,
		publisher: publisher,
		logger:    log,
	}
}

// CreateSession starts a new session with an empty cart
func (s *Service) CreateSession() (uuid.UUID, cart.Snapshot) {
	id, store := s.sessions.Create()

	s.logger.WithFields(map[string]interface{}{
		"session_id": id,
	}).Info("Cart session created")

	return id, store.Snapshot()
}

// Get returns the current cart of a session
func (s *Service) Get(sessionID uuid.UUID) (cart.Snapshot, error) {
	store, err := s.store(sessionID)
	if err != nil {
		return cart.Snapshot{}, err
	}
	return store.Snapshot(), nil
}

// AddItem adds one unit of a product variant to the cart
func (s *Service) AddItem(ctx context.Context, sessionID uuid.UUID, key domain.LineKey) (cart.Snapshot, error) {
	if err := validator.Struct(key); err != nil {
		s.logger.Debugf("Invalid cart item: %v", err)
		return cart.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	store, err := s.store(sessionID)
	if err != nil {
		return cart.Snapshot{}, err
	}

	product, err := s.products.GetByID(key.ProductID)
	if err != nil {
		return cart.Snapshot{}, err
	}

	if !product.HasSize(key.Size) || !product.HasColor(key.Color) {
		return cart.Snapshot{}, fmt.Errorf("%w: %s is not offered in %s/%s", domain.ErrInvalidInput, product.ID, key.Size, key.Color)
	}
	if !product.InStock() {
		return cart.Snapshot{}, fmt.Errorf("%s: %w", product.ID, domain.ErrOutOfStock)
	}

	snap, _ := store.Apply(cart.Add(product, key.Size, key.Color))
	line, _ := snap.Line(key)

	s.logger.WithFields(map[string]interface{}{
		"session_id": sessionID,
		"item":       key.String(),
		"quantity":   line.Quantity,
	}).Info("Item added to cart")

	s.publishEvent(ctx, EventItemAdded, sessionID, &key, line.Quantity, snap)

	return snap, nil
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
// Unknown lines are left alone.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID uuid.UUID, key domain.LineKey, quantity int) (cart.Snapshot, error) {
	if err := validator.Struct(key); err != nil {
		return cart.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	store, err := s.store(sessionID)
	if err != nil {
		return cart.Snapshot{}, err
	}

	snap, changed := store.Apply(cart.SetQuantity(key, quantity))
	if !changed {
		s.logger.Debugf("Quantity update ignored, %s is not in cart %s", key, sessionID)
		return snap, nil
	}

	s.logger.WithFields(map[string]interface{}{
		"session_id": sessionID,
		"item":       key.String(),
		"quantity":   quantity,
	}).Info("Cart quantity updated")

	eventType := EventQuantityUpdated
	if quantity <= 0 {
		eventType = EventItemRemoved
	}
	s.publishEvent(ctx, eventType, sessionID, &key, max(quantity, 0), snap)

	return snap, nil
}

// RemoveItem deletes a line from the cart
func (s *Service) RemoveItem(ctx context.Context, sessionID uuid.UUID, key domain.LineKey) (cart.Snapshot, error) {
	if err := validator.Struct(key); err != nil {
		return cart.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	store, err := s.store(sessionID)
	if err != nil {
		return cart.Snapshot{}, err
	}

	snap, changed := store.Apply(cart.Remove(key))
	if !changed {
		s.logger.Debugf("Remove ignored, %s is not in cart %s", key, sessionID)
		return snap, nil
	}

	s.logger.WithFields(map[string]interface{}{
		"session_id": sessionID,
		"item":       key.String(),
	}).Info("Item removed from cart")

	s.publishEvent(ctx, EventItemRemoved, sessionID, &key, 0, snap)

	return snap, nil
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, sessionID uuid.UUID) (cart.Snapshot, error) {
	store, err := s.store(sessionID)
	if err != nil {
		return cart.Snapshot{}, err
	}

	snap, changed := store.Apply(cart.Clear())
	if !changed {
		return snap, nil
	}

	s.logger.WithFields(map[string]interface{}{
		"session_id": sessionID,
	}).Info("Cart cleared")

	s.publishEvent(ctx, EventCleared, sessionID, nil, 0, snap)

	return snap, nil
}

// Open shows the cart panel
func (s *Service) Open(sessionID uuid.UUID) (cart.Snapshot, error) {
	store, err := s.store(sessionID)
	if err != nil {
		return cart.Snapshot{}, err
	}

	snap, _ := store.Apply(cart.SetOpen(true))
	return snap, nil
}

// Close hides the cart panel
func (s *Service) Close(sessionID uuid.UUID) (cart.Snapshot, error) {
	store, err := s.store(sessionID)
	if err != nil {
		return cart.Snapshot{}, err
	}

	snap, _ := store.Apply(cart.SetOpen(false))
	return snap, nil
}

// ToggleSelection flips whether a line is selected
func (s *Service) ToggleSelection(sessionID uuid.UUID, key domain.LineKey) (cart.Snapshot, error) {
	if err := validator.Struct(key); err != nil {
		return cart.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	store, err := s.store(sessionID)
	if err != nil {
		return cart.Snapshot{}, err
	}

	snap, _ := store.Apply(cart.Toggle(key))
	return snap, nil
}

func (s *Service) store(sessionID uuid.UUID) (*cart.Store, error) {
	store, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.logger.Debugf("Cart session not found: %s", sessionID)
		}
		return nil, err
	}
	return store, nil
}

// publishEvent publishes a cart event (non-blocking)
func (s *Service) publishEvent(ctx context.Context, eventType string, sessionID uuid.UUID, key *domain.LineKey, quantity int, snap cart.Snapshot) {
	if s.publisher == nil {
		return
	}

	event := CartEvent{
		EventType:  eventType,
		Timestamp:  time.Now(),
		SessionID:  sessionID,
		Item:       key,
		Quantity:   quantity,
		TotalItems: snap.TotalItems,
		TotalPrice: snap.TotalPrice,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for session %s", sessionID)
		return
	}

	go func() {
		if err := s.publisher.Publish(context.WithoutCancel(ctx), EventsSubject, data); err != nil {
			s.logger.Errorf(err, "Failed to publish event for session %s", sessionID)
		}
	}()
}
