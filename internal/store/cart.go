package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/matthieukhl/shopfront/internal/services"
	"github.com/matthieukhl/shopfront/internal/types"
)

// ErrCartUnavailable marks cart mutations attempted while the store is not
// initialized (staff account, signed out, or on the login route).
var ErrCartUnavailable = errors.New("cart unavailable")

// CartStore caches the shopper's active cart. The server owns items and
// totals; every mutator swaps the whole snapshot with the server response,
// and a failed mutation falls back to a full refresh so the snapshot never
// keeps optimistic state. Mutations land in call-completion order.
type CartStore struct {
	notifier
	svc *services.CartService

	mu     sync.RWMutex
	cart   *types.Cart
	active bool
}

// NewCartStore wires a cart store on the cart service.
func NewCartStore(svc *services.CartService) *CartStore {
	return &CartStore{svc: svc}
}

// Snapshot returns the cached cart, nil when empty or uninitialized.
func (s *CartStore) Snapshot() *types.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

// Initialized reports whether the gate last allowed loading.
func (s *CartStore) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *CartStore) setCart(c *types.Cart) {
	s.mu.Lock()
	s.cart = c
	s.mu.Unlock()
	s.notify()
}

// Reset drops the snapshot and closes the gate.
func (s *CartStore) Reset() {
	s.mu.Lock()
	s.cart = nil
	s.active = false
	s.mu.Unlock()
	s.notify()
}

// Sync applies the initialization gate: the store loads only for a ready,
// authenticated shopper with a token, off the login route. Anything else
// resets to empty, which keeps staff accounts and logged-out visitors from
// ever fetching cart data.
func (s *CartStore) Sync(ctx context.Context, auth AuthSnapshot, route string) error {
	onLogin := strings.HasPrefix(route, "/login")
	shopper := auth.Session != nil && auth.Session.Role == types.RoleShopper
	hasToken := auth.Session != nil && auth.Session.Token != ""
	if onLogin || !hasToken || !shopper {
		s.Reset()
		return nil
	}
	s.mu.Lock()
	s.active = true
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Refresh pulls the active cart. On failure the snapshot drops to nil and
// the error is returned for the caller to display.
func (s *CartStore) Refresh(ctx context.Context) error {
	cart, err := s.svc.GetActive(ctx)
	if err != nil {
		s.setCart(nil)
		return err
	}
	s.setCart(cart)
	return nil
}

// mutate runs one cart mutation: the server's cart replaces the snapshot
// on success; on failure the store re-fetches so the snapshot converges on
// server state, and the original error is surfaced to the caller.
func (s *CartStore) mutate(ctx context.Context, call func() (*types.Cart, error)) error {
	if !s.Initialized() {
		return ErrCartUnavailable
	}
	cart, err := call()
	if err != nil {
		_ = s.Refresh(ctx)
		return err
	}
	s.setCart(cart)
	return nil
}

// AddItem adds quantity units of a product to the cart.
func (s *CartStore) AddItem(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	return s.mutate(ctx, func() (*types.Cart, error) {
		return s.svc.AddItem(ctx, productID, quantity)
	})
}

// UpdateItem sets the quantity of an existing line.
func (s *CartStore) UpdateItem(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	return s.mutate(ctx, func() (*types.Cart, error) {
		return s.svc.UpdateItem(ctx, productID, quantity)
	})
}

// RemoveItem deletes a line from the cart.
func (s *CartStore) RemoveItem(ctx context.Context, productID string) error {
	return s.mutate(ctx, func() (*types.Cart, error) {
		return s.svc.RemoveItem(ctx, productID)
	})
}

// Checkout submits the delivery address and payment method. The address is
// validated before any network call leaves the process.
func (s *CartStore) Checkout(ctx context.Context, address string, method types.PaymentMethod) error {
	if strings.TrimSpace(address) == "" {
		return errors.New("delivery address required")
	}
	return s.mutate(ctx, func() (*types.Cart, error) {
		return s.svc.Checkout(ctx, address, method)
	})
}

// Clear empties the active cart and refreshes the snapshot.
func (s *CartStore) Clear(ctx context.Context) error {
	if !s.Initialized() {
		return ErrCartUnavailable
	}
	if err := s.svc.Clear(ctx); err != nil {
		_ = s.Refresh(ctx)
		return err
	}
	return s.Refresh(ctx)
}
