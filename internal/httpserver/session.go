package httpserver

import (
	"context"
	"log"
	"sync"

	"bakery-storefront/internal/cartsession"
)

const (
	cartCookieName   = "bakery_cart_id"
	cartCookieMaxAge = 30 * 24 * 60 * 60 // seconds; the platform expires carts on its own schedule

	// maxSessions bounds the in-process manager cache. Managers are a cache,
	// not a store: an evicted session is rebuilt from its cookie through the
	// resume path on its next request.
	maxSessions = 10000
)

// sessionRegistry maps live cart identifiers to their session managers so
// that requests of one shopper session share one manager and its mutation
// serialization.
type sessionRegistry struct {
	client cartsession.Client
	logger *log.Logger

	mu       sync.Mutex
	managers map[string]*cartsession.Manager
}

func newSessionRegistry(client cartsession.Client, logger *log.Logger) *sessionRegistry {
	return &sessionRegistry{
		client:   client,
		logger:   logger,
		managers: make(map[string]*cartsession.Manager),
	}
}

// manager returns the session manager for the cart id restored from the
// request cookie. An empty id is a brand-new session; an id this process has
// not seen (restart, eviction, expired cart) goes through the resume path,
// which falls back to creating a fresh cart.
func (r *sessionRegistry) manager(ctx context.Context, id string) *cartsession.Manager {
	if id != "" {
		r.mu.Lock()
		m, ok := r.managers[id]
		r.mu.Unlock()
		if ok {
			return m
		}
	}

	m := cartsession.New(r.client, cartsession.NewMemoryStore(id), r.logger)
	m.Resume(ctx)
	r.track(m)
	return m
}

// track registers a manager under its cart id once it has one. A manager
// whose creation failed stays unregistered; the next request retries.
func (r *sessionRegistry) track(m *cartsession.Manager) {
	id := m.CartID()
	if id == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.managers) >= maxSessions {
		for k := range r.managers {
			delete(r.managers, k)
			if len(r.managers) < maxSessions {
				break
			}
		}
	}
	r.managers[id] = m
}

// lookup returns a cached manager without resuming anything.
func (r *sessionRegistry) lookup(id string) (*cartsession.Manager, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.managers[id]
	return m, ok
}

// drop forgets a session after checkout hand-off.
func (r *sessionRegistry) drop(id string) {
	if id == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.managers, id)
}
