package cartsession

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"bakery-storefront/internal/shopify"
)

// Client is the slice of the storefront client the session manager consumes.
type Client interface {
	CreateCart(ctx context.Context) (*shopify.Cart, error)
	Cart(ctx context.Context, cartID string) (*shopify.Cart, error)
	AddCartLine(ctx context.Context, cartID, variantID string, quantity int) (*shopify.Cart, error)
	RemoveCartLine(ctx context.Context, cartID, lineID string) (*shopify.Cart, error)
}

// Manager owns the single active cart of one shopper session. All mutations
// go through it and are serialized, so the stored snapshot always reflects
// the last confirmed server response rather than whichever of two racing
// responses arrived later.
type Manager struct {
	client Client
	store  Store
	logger *log.Logger

	// mutationMu is the single-flight queue for the one cart this manager
	// owns: at most one mutation is in flight at a time.
	mutationMu sync.Mutex
	createGrp  singleflight.Group

	stateMu   sync.RWMutex
	cart      *shopify.Cart
	loading   bool
	observers []func(*shopify.Cart)
}

// New builds a Manager. The store decides what "this session" means: seed it
// with a persisted identifier to resume, leave it empty to start fresh.
func New(client Client, store Store, logger *log.Logger) *Manager {
	return &Manager{client: client, store: store, logger: logger}
}

// Subscribe registers an observer called with the replacement snapshot after
// every cart change, and with nil after a checkout hand-off.
func (m *Manager) Subscribe(fn func(*shopify.Cart)) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.observers = append(m.observers, fn)
}

// Resume restores the session at start: fetch the persisted cart if there is
// one, fall back to creating a new cart when the identifier no longer
// resolves, and degrade silently (no cart, logged) when creation fails. A
// later AddLine retries creation.
func (m *Manager) Resume(ctx context.Context) {
	if id, ok := m.store.Load(); ok {
		m.setLoading(true)
		cart, err := m.client.Cart(ctx, id)
		m.setLoading(false)
		if err == nil {
			m.replaceCart(cart)
			return
		}
		if errors.Is(err, shopify.ErrCartNotFound) {
			m.logger.Printf("cart %s expired, creating a new one", id)
		} else {
			m.logger.Printf("resume cart %s: %v; creating a new one", id, err)
		}
	}
	if _, err := m.ensureCart(ctx); err != nil {
		m.logger.Printf("create cart: %v", err)
	}
}

// AddLine adds quantity units of a variant, creating the cart first if the
// session does not have one yet. Errors from creation or the mutation
// propagate to the caller for user-facing retry messaging.
func (m *Manager) AddLine(ctx context.Context, variantID string, quantity int) (*shopify.Cart, error) {
	if strings.TrimSpace(variantID) == "" {
		return nil, errors.New("variant id required")
	}
	if quantity < 1 {
		return nil, errors.New("quantity must be positive")
	}

	cart, err := m.ensureCart(ctx)
	if err != nil {
		return nil, err
	}

	m.mutationMu.Lock()
	defer m.mutationMu.Unlock()
	m.setLoading(true)
	defer m.setLoading(false)

	updated, err := m.client.AddCartLine(ctx, cart.ID, variantID, quantity)
	if err != nil {
		return nil, err
	}
	m.replaceCart(updated)
	return updated, nil
}

// RemoveLine removes the whole line in one request; quantities are never
// decremented. Removing an identifier absent from the current snapshot is a
// no-op that returns the snapshot unchanged.
func (m *Manager) RemoveLine(ctx context.Context, lineID string) (*shopify.Cart, error) {
	current := m.Cart()
	if current == nil {
		return nil, nil
	}
	if _, ok := current.Line(lineID); !ok {
		return current, nil
	}

	m.mutationMu.Lock()
	defer m.mutationMu.Unlock()

	// Re-check under the lock: a concurrent removal may have won.
	current = m.Cart()
	if current == nil {
		return nil, nil
	}
	if _, ok := current.Line(lineID); !ok {
		return current, nil
	}

	m.setLoading(true)
	defer m.setLoading(false)

	updated, err := m.client.RemoveCartLine(ctx, current.ID, lineID)
	if err != nil {
		return nil, err
	}
	m.replaceCart(updated)
	return updated, nil
}

// CompleteCheckout discards the local reference after a successful checkout
// hand-off. The remote cart is the platform's to expire; the next session
// starts from scratch.
func (m *Manager) CompleteCheckout() {
	m.store.Clear()
	m.replaceCart(nil)
}

// Cart returns the current snapshot, nil when the session has no cart.
func (m *Manager) Cart() *shopify.Cart {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.cart
}

// CartID returns the persisted cart identifier, empty when none exists.
func (m *Manager) CartID() string {
	id, _ := m.store.Load()
	return id
}

// ItemCount is the sum of quantities across the current cart's lines, zero
// without a cart. Recomputed from the snapshot on every call.
func (m *Manager) ItemCount() int {
	if cart := m.Cart(); cart != nil {
		return cart.ItemCount()
	}
	return 0
}

// Loading reports whether a network call is in flight for this session.
func (m *Manager) Loading() bool {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.loading
}

// ensureCart returns the session cart, creating one remotely if needed.
// Concurrent callers collapse onto a single creation request.
func (m *Manager) ensureCart(ctx context.Context) (*shopify.Cart, error) {
	if cart := m.Cart(); cart != nil {
		return cart, nil
	}
	v, err, _ := m.createGrp.Do("create", func() (any, error) {
		if cart := m.Cart(); cart != nil {
			return cart, nil
		}
		m.setLoading(true)
		defer m.setLoading(false)

		cart, err := m.client.CreateCart(ctx)
		if err != nil {
			return nil, err
		}
		m.store.Save(cart.ID)
		m.replaceCart(cart)
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*shopify.Cart), nil
}

func (m *Manager) replaceCart(cart *shopify.Cart) {
	m.stateMu.Lock()
	m.cart = cart
	observers := make([]func(*shopify.Cart), len(m.observers))
	copy(observers, m.observers)
	m.stateMu.Unlock()

	for _, fn := range observers {
		fn(cart)
	}
}

func (m *Manager) setLoading(v bool) {
	m.stateMu.Lock()
	m.loading = v
	m.stateMu.Unlock()
}
