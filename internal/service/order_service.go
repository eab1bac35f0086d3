package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-admin-service/internal/auth"
	"github.com/spec-kit/shop-admin-service/internal/cache"
	"github.com/spec-kit/shop-admin-service/internal/domain"
	"github.com/spec-kit/shop-admin-service/internal/repository"
	apperrors "github.com/spec-kit/shop-admin-service/pkg/util"
)

// OrderService exposes read-only access to orders. Orders are created by the
// shop front; this service never mutates them.
type OrderService struct {
	orders   repository.OrderRepository
	listings ListingCache
}

// NewOrderService constructs the service.
func NewOrderService(orders repository.OrderRepository, listings ListingCache) *OrderService {
	return &OrderService{orders: orders, listings: listings}
}

// ListOrders returns all orders with customer email and item counts,
// newest first. ADMIN and above.
func (s *OrderService) ListOrders(ctx context.Context, actor auth.Context) ([]domain.Order, error) {
	if !auth.Allow(actor.Role, auth.ActionViewOrders) {
		return nil, apperrors.NewUnauthorized("viewing orders is not permitted")
	}

	var cached []domain.Order
	if s.listings != nil && s.listings.Get(ctx, cache.KeyOrders, &cached) {
		return cached, nil
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if s.listings != nil {
		s.listings.Set(ctx, cache.KeyOrders, orders)
	}
	return orders, nil
}

// GetOrder fetches one order with its items.
func (s *OrderService) GetOrder(ctx context.Context, actor auth.Context, id string) (*domain.Order, error) {
	if !auth.Allow(actor.Role, auth.ActionViewOrders) {
		return nil, apperrors.NewUnauthorized("viewing orders is not permitted")
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return order, nil
}
