package services

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/matthieukhl/shopfront/internal/api"
	"github.com/matthieukhl/shopfront/internal/types"
)

// CartService maps the /api/Cart endpoints. The server is authoritative
// for items and totals; every mutating call returns the updated cart and
// the caller replaces its cached copy wholesale.
type CartService struct {
	gw    *api.Gateway
	token api.TokenFunc
}

// NewCartService builds a cart service on the shared gateway.
func NewCartService(gw *api.Gateway, token api.TokenFunc) *CartService {
	return &CartService{gw: gw, token: token}
}

// ready mirrors the web client's token()/onLoginPage() guards: cart calls
// are skipped entirely while signed out or mid-auth rather than sent with
// a missing or stale token.
func (s *CartService) ready() bool {
	return !s.gw.InAuthFlow() && s.token() != ""
}

// GetActive fetches the shopper's active cart, or nil when signed out.
func (s *CartService) GetActive(ctx context.Context) (*types.Cart, error) {
	if !s.ready() {
		return nil, nil
	}
	var cart types.Cart
	if err := s.gw.Get(ctx, "/api/Cart/active", &cart); err != nil {
		return nil, fmt.Errorf("failed to fetch active cart: %w", err)
	}
	if cart.ID == "" {
		return nil, nil
	}
	return &cart, nil
}

// MineOptions filters the cart history listing.
type MineOptions struct {
	// OnlyOrders drops carts still in the Active state.
	OnlyOrders bool
	From       time.Time
	To         time.Time
}

// GetAllMine fetches the caller's cart history, filtered per opts and
// sorted newest first.
func (s *CartService) GetAllMine(ctx context.Context, opts MineOptions) ([]types.Cart, error) {
	if !s.ready() {
		return nil, nil
	}
	var list []types.Cart
	if err := s.gw.Get(ctx, "/api/Cart/my-carts", &list); err != nil {
		return nil, fmt.Errorf("failed to fetch cart history: %w", err)
	}

	filtered := list[:0]
	for _, c := range list {
		if opts.OnlyOrders && (c.Status == "" || c.Status == types.CartStatusActive) {
			continue
		}
		if !opts.From.IsZero() && c.CreatedAt.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && c.CreatedAt.After(opts.To) {
			continue
		}
		filtered = append(filtered, c)
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

// AddItem adds quantity units of a product and returns the updated cart.
func (s *CartService) AddItem(ctx context.Context, productID string, quantity int) (*types.Cart, error) {
	if !s.ready() {
		return nil, api.ErrNotAuthenticated
	}
	body := map[string]any{"productId": productID, "quantity": quantity}
	var cart types.Cart
	if err := s.gw.Post(ctx, "/api/Cart/add-item", body, &cart); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	return &cart, nil
}

// UpdateItem sets the quantity of an existing line and returns the
// updated cart.
func (s *CartService) UpdateItem(ctx context.Context, productID string, quantity int) (*types.Cart, error) {
	if !s.ready() {
		return nil, api.ErrNotAuthenticated
	}
	body := map[string]any{"productId": productID, "quantity": quantity}
	var cart types.Cart
	if err := s.gw.Put(ctx, "/api/Cart/update-item", body, &cart); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return &cart, nil
}

// RemoveItem deletes a line and returns the updated cart.
func (s *CartService) RemoveItem(ctx context.Context, productID string) (*types.Cart, error) {
	if !s.ready() {
		return nil, api.ErrNotAuthenticated
	}
	var cart types.Cart
	path := "/api/Cart/remove-item/" + url.PathEscape(productID)
	if err := s.gw.Delete(ctx, path, nil, &cart); err != nil {
		return nil, fmt.Errorf("failed to remove item: %w", err)
	}
	return &cart, nil
}

// Checkout submits the address and payment method for the active cart and
// returns the checked-out (or cleared) cart.
func (s *CartService) Checkout(ctx context.Context, address string, method types.PaymentMethod) (*types.Cart, error) {
	if !s.ready() {
		return nil, api.ErrNotAuthenticated
	}
	body := map[string]any{"address": address, "paymentMethod": int(method)}
	var cart types.Cart
	if err := s.gw.Post(ctx, "/api/Cart/checkout", body, &cart); err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}
	return &cart, nil
}

// Clear empties the active cart.
func (s *CartService) Clear(ctx context.Context) error {
	if !s.ready() {
		return api.ErrNotAuthenticated
	}
	if err := s.gw.Post(ctx, "/api/Cart/clear", map[string]any{}, nil); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
