package cartsession

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"bakery-storefront/internal/shopify"
)

type stubClient struct {
	mu sync.Mutex

	createCart  *shopify.Cart
	createErr   error
	createCalls int
	createDelay time.Duration

	fetchCart  *shopify.Cart
	fetchErr   error
	fetchCalls int

	addCart        *shopify.Cart
	addErr         error
	addCalls       int
	lastAddCartID  string
	lastAddVariant string
	lastAddQty     int

	removeCart       *shopify.Cart
	removeErr        error
	removeCalls      int
	lastRemoveLineID string
}

func (s *stubClient) CreateCart(_ context.Context) (*shopify.Cart, error) {
	s.mu.Lock()
	s.createCalls++
	delay := s.createDelay
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return s.createCart, s.createErr
}

func (s *stubClient) Cart(_ context.Context, _ string) (*shopify.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchCalls++
	return s.fetchCart, s.fetchErr
}

func (s *stubClient) AddCartLine(_ context.Context, cartID, variantID string, quantity int) (*shopify.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addCalls++
	s.lastAddCartID = cartID
	s.lastAddVariant = variantID
	s.lastAddQty = quantity
	return s.addCart, s.addErr
}

func (s *stubClient) RemoveCartLine(_ context.Context, cartID, lineID string) (*shopify.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeCalls++
	s.lastRemoveLineID = lineID
	return s.removeCart, s.removeErr
}

func (s *stubClient) calls() (create, fetch, add, remove int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createCalls, s.fetchCalls, s.addCalls, s.removeCalls
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func emptyCart(id string) *shopify.Cart {
	return &shopify.Cart{ID: id, CheckoutURL: "https://checkout/" + id}
}

func cartWithLine(id, lineID string, qty int) *shopify.Cart {
	return &shopify.Cart{
		ID:          id,
		CheckoutURL: "https://checkout/" + id,
		Lines: []shopify.CartLine{
			{ID: lineID, Quantity: qty, Merchandise: shopify.Merchandise{VariantID: "v1", Title: "Default", ProductTitle: "Baguette"}},
		},
	}
}

func TestResumeWithoutPersistedIDCreatesCart(t *testing.T) {
	client := &stubClient{createCart: emptyCart("cart-1")}
	store := NewMemoryStore("")
	m := New(client, store, testLogger())

	m.Resume(context.Background())

	if m.Cart() == nil || m.Cart().ID != "cart-1" {
		t.Fatalf("unexpected cart: %+v", m.Cart())
	}
	if id, ok := store.Load(); !ok || id != "cart-1" {
		t.Fatalf("expected persisted id cart-1, got %q", id)
	}
	create, fetch, _, _ := client.calls()
	if create != 1 || fetch != 0 {
		t.Fatalf("unexpected calls: create=%d fetch=%d", create, fetch)
	}
}

func TestResumeWithPersistedIDFetchesCart(t *testing.T) {
	client := &stubClient{fetchCart: cartWithLine("cart-1", "line-1", 2)}
	store := NewMemoryStore("cart-1")
	m := New(client, store, testLogger())

	m.Resume(context.Background())

	if m.ItemCount() != 2 {
		t.Fatalf("expected item count 2, got %d", m.ItemCount())
	}
	create, fetch, _, _ := client.calls()
	if create != 0 || fetch != 1 {
		t.Fatalf("unexpected calls: create=%d fetch=%d", create, fetch)
	}
}

func TestResumeExpiredCartFallsBackToCreate(t *testing.T) {
	client := &stubClient{
		fetchErr:   shopify.ErrCartNotFound,
		createCart: emptyCart("cart-2"),
	}
	store := NewMemoryStore("cart-1")
	m := New(client, store, testLogger())

	m.Resume(context.Background())

	if m.Cart() == nil || m.Cart().ID != "cart-2" {
		t.Fatalf("expected fresh cart, got %+v", m.Cart())
	}
	if id, _ := store.Load(); id != "cart-2" {
		t.Fatalf("expected persisted id replaced, got %q", id)
	}
	if m.ItemCount() != 0 {
		t.Fatalf("expected empty cart, got %d items", m.ItemCount())
	}
}

func TestResumeCreateFailureDegradesSilently(t *testing.T) {
	client := &stubClient{createErr: errors.New("platform down")}
	m := New(client, NewMemoryStore(""), testLogger())

	m.Resume(context.Background())

	if m.Cart() != nil {
		t.Fatalf("expected no cart, got %+v", m.Cart())
	}
	if m.ItemCount() != 0 {
		t.Fatalf("expected zero count, got %d", m.ItemCount())
	}
	if m.Loading() {
		t.Fatal("loading flag left set after failure")
	}
}

func TestAddLineCreatesCartLazily(t *testing.T) {
	client := &stubClient{
		createCart: emptyCart("cart-1"),
		addCart:    cartWithLine("cart-1", "line-1", 2),
	}
	store := NewMemoryStore("")
	m := New(client, store, testLogger())

	cart, err := m.AddLine(context.Background(), "gid://shopify/ProductVariant/11", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ItemCount() != 2 {
		t.Fatalf("expected item count 2, got %d", cart.ItemCount())
	}
	if client.lastAddCartID != "cart-1" || client.lastAddVariant != "gid://shopify/ProductVariant/11" || client.lastAddQty != 2 {
		t.Fatalf("add not called as expected: %+v", client)
	}
	if id, _ := store.Load(); id != "cart-1" {
		t.Fatalf("expected persisted id cart-1, got %q", id)
	}
}

func TestAddLineValidation(t *testing.T) {
	m := New(&stubClient{}, NewMemoryStore(""), testLogger())

	if _, err := m.AddLine(context.Background(), "  ", 1); err == nil || err.Error() != "variant id required" {
		t.Fatalf("expected variant validation error, got %v", err)
	}
	if _, err := m.AddLine(context.Background(), "v1", 0); err == nil || err.Error() != "quantity must be positive" {
		t.Fatalf("expected quantity validation error, got %v", err)
	}
}

func TestAddLinePropagatesCreationFailure(t *testing.T) {
	client := &stubClient{createErr: errors.New("platform down")}
	m := New(client, NewMemoryStore(""), testLogger())

	if _, err := m.AddLine(context.Background(), "v1", 1); err == nil || err.Error() != "platform down" {
		t.Fatalf("expected creation error, got %v", err)
	}
}

func TestAddLineRetriesCreationAfterFailedResume(t *testing.T) {
	client := &stubClient{createErr: errors.New("platform down")}
	m := New(client, NewMemoryStore(""), testLogger())
	m.Resume(context.Background())

	client.mu.Lock()
	client.createErr = nil
	client.createCart = emptyCart("cart-1")
	client.addCart = cartWithLine("cart-1", "line-1", 1)
	client.mu.Unlock()

	cart, err := m.AddLine(context.Background(), "v1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ID != "cart-1" {
		t.Fatalf("unexpected cart: %+v", cart)
	}
}

func TestConcurrentAddLinesCreateOneCart(t *testing.T) {
	client := &stubClient{
		createCart:  emptyCart("cart-1"),
		addCart:     cartWithLine("cart-1", "line-1", 1),
		createDelay: 20 * time.Millisecond,
	}
	m := New(client, NewMemoryStore(""), testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.AddLine(context.Background(), "v1", 1); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	create, _, add, _ := client.calls()
	if create != 1 {
		t.Fatalf("expected a single cart creation, got %d", create)
	}
	if add != 4 {
		t.Fatalf("expected 4 add calls, got %d", add)
	}
}

func TestRemoveLineRemovesWholeLine(t *testing.T) {
	client := &stubClient{
		fetchCart:  cartWithLine("cart-1", "line-1", 3),
		removeCart: emptyCart("cart-1"),
	}
	m := New(client, NewMemoryStore("cart-1"), testLogger())
	m.Resume(context.Background())

	before := m.ItemCount()
	cart, err := m.RemoveLine(context.Background(), "line-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.lastRemoveLineID != "line-1" {
		t.Fatalf("unexpected line id: %s", client.lastRemoveLineID)
	}
	if cart.ItemCount() != before-3 {
		t.Fatalf("expected count reduced by 3, got %d", cart.ItemCount())
	}
}

func TestRemoveLineRepeatIsNoOp(t *testing.T) {
	client := &stubClient{
		fetchCart:  cartWithLine("cart-1", "line-1", 3),
		removeCart: emptyCart("cart-1"),
	}
	m := New(client, NewMemoryStore("cart-1"), testLogger())
	m.Resume(context.Background())

	if _, err := m.RemoveLine(context.Background(), "line-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := m.RemoveLine(context.Background(), "line-1")
	if err != nil {
		t.Fatalf("repeat removal errored: %v", err)
	}
	if cart == nil || cart.ID != "cart-1" {
		t.Fatalf("expected current snapshot back, got %+v", cart)
	}
	_, _, _, remove := client.calls()
	if remove != 1 {
		t.Fatalf("expected a single remove call, got %d", remove)
	}
}

func TestRemoveLineWithoutCartIsNoOp(t *testing.T) {
	client := &stubClient{}
	m := New(client, NewMemoryStore(""), testLogger())

	cart, err := m.RemoveLine(context.Background(), "line-1")
	if err != nil || cart != nil {
		t.Fatalf("expected silent no-op, got cart=%+v err=%v", cart, err)
	}
	if _, _, _, remove := client.calls(); remove != 0 {
		t.Fatalf("expected no remove call, got %d", remove)
	}
}

func TestCompleteCheckoutClearsSession(t *testing.T) {
	client := &stubClient{fetchCart: cartWithLine("cart-1", "line-1", 2)}
	store := NewMemoryStore("cart-1")
	m := New(client, store, testLogger())
	m.Resume(context.Background())

	var notified []*shopify.Cart
	m.Subscribe(func(c *shopify.Cart) {
		notified = append(notified, c)
	})

	m.CompleteCheckout()

	if m.Cart() != nil || m.ItemCount() != 0 {
		t.Fatalf("expected cleared session, got %+v", m.Cart())
	}
	if id, ok := store.Load(); ok {
		t.Fatalf("expected cleared store, got %q", id)
	}
	if len(notified) != 1 || notified[0] != nil {
		t.Fatalf("expected one nil notification, got %+v", notified)
	}
}

func TestSubscribeObservesReplacementSnapshots(t *testing.T) {
	client := &stubClient{
		createCart: emptyCart("cart-1"),
		addCart:    cartWithLine("cart-1", "line-1", 2),
	}
	m := New(client, NewMemoryStore(""), testLogger())

	var counts []int
	m.Subscribe(func(c *shopify.Cart) {
		if c == nil {
			counts = append(counts, 0)
			return
		}
		counts = append(counts, c.ItemCount())
	})

	if _, err := m.AddLine(context.Background(), "v1", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Creation publishes the empty cart, the mutation the updated one.
	if len(counts) != 2 || counts[0] != 0 || counts[1] != 2 {
		t.Fatalf("unexpected notifications: %v", counts)
	}
}
