package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/matthieukhl/shopfront/internal/api"
	"github.com/matthieukhl/shopfront/internal/types"
)

// OrderService maps the /api/Order endpoints.
type OrderService struct {
	gw *api.Gateway
}

// NewOrderService builds an order service on the shared gateway.
func NewOrderService(gw *api.Gateway) *OrderService {
	return &OrderService{gw: gw}
}

// GetMine lists the caller's placed orders.
func (s *OrderService) GetMine(ctx context.Context) ([]types.Order, error) {
	var list []types.Order
	if err := s.gw.Get(ctx, "/api/Order/my-orders", &list); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return list, nil
}

// GetByID fetches one order.
func (s *OrderService) GetByID(ctx context.Context, id string) (types.Order, error) {
	if id == "" {
		return types.Order{}, errors.New("order id required")
	}
	var order types.Order
	if err := s.gw.Get(ctx, "/api/Order/"+url.PathEscape(id), &order); err != nil {
		return types.Order{}, fmt.Errorf("failed to fetch order: %w", err)
	}
	return order, nil
}
