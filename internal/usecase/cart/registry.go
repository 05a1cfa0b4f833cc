package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/storefront/internal/cart"
	"github.com/Pesokrava/storefront/internal/domain"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

type session struct {
	store    *cart.Store
	lastSeen time.Time
}

// Registry holds one cart store per shopper session in memory. Sessions idle
// for longer than the TTL are dropped; a TTL <= 0 keeps them forever.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	ttl      time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

// NewRegistry creates an empty session registry
func NewRegistry(ttl time.Duration, log *logger.Logger) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*session),
		ttl:      ttl,
		now:      time.Now,
		logger:   log,
	}
}

// Create starts a new session with an empty cart
func (r *Registry) Create() (uuid.UUID, *cart.Store) {
	id := uuid.New()
	store := cart.New()

	r.mu.Lock()
	r.sessions[id] = &session{store: store, lastSeen: r.now()}
	r.mu.Unlock()

	return id, store
}

// Get returns the cart of a live session and marks it as seen
func (r *Registry) Get(id uuid.UUID) (*cart.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	now := r.now()
	if r.expired(s, now) {
		delete(r.sessions, id)
		return nil, domain.ErrSessionNotFound
	}

	s.lastSeen = now
	return s.store, nil
}

// Len returns the number of tracked sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops expired sessions and returns how many were removed
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on every interval tick until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := r.Sweep(); removed > 0 {
				r.logger.WithFields(map[string]interface{}{
					"removed":   removed,
					"remaining": r.Len(),
				}).Info("Swept idle cart sessions")
			}
		}
	}
}

func (r *Registry) expired(s *session, now time.Time) bool {
	return r.ttl > 0 && now.Sub(s.lastSeen) > r.ttl
}
