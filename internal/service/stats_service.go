package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/shop-admin-service/internal/auth"
	"github.com/spec-kit/shop-admin-service/internal/cache"
	"github.com/spec-kit/shop-admin-service/internal/repository"
	apperrors "github.com/spec-kit/shop-admin-service/pkg/util"
)

// Stats is the dashboard overview: counts plus revenue across
// non-cancelled orders.
type Stats struct {
	Products   int64           `json:"products"`
	Categories int64           `json:"categories"`
	Orders     int64           `json:"orders"`
	Users      int64           `json:"users"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// StatsService aggregates dashboard numbers.
type StatsService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	orders     repository.OrderRepository
	users      repository.UserRepository
	listings   ListingCache
}

// StatsDependencies bundles repositories for the stats service.
type StatsDependencies struct {
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	OrderRepo    repository.OrderRepository
	UserRepo     repository.UserRepository
	Listings     ListingCache
}

// NewStatsService constructs the service.
func NewStatsService(deps StatsDependencies) *StatsService {
	return &StatsService{
		products:   deps.ProductRepo,
		categories: deps.CategoryRepo,
		orders:     deps.OrderRepo,
		users:      deps.UserRepo,
		listings:   deps.Listings,
	}
}

// Overview returns the dashboard stats, cached. ADMIN and above.
func (s *StatsService) Overview(ctx context.Context, actor auth.Context) (*Stats, error) {
	if !auth.Allow(actor.Role, auth.ActionViewOrders) {
		return nil, apperrors.NewUnauthorized("viewing the dashboard is not permitted")
	}

	var cached Stats
	if s.listings != nil && s.listings.Get(ctx, cache.KeyStats, &cached) {
		return &cached, nil
	}

	stats := &Stats{}
	var err error
	if stats.Products, err = s.products.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if stats.Categories, err = s.categories.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if stats.Orders, err = s.orders.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if stats.Users, err = s.users.Count(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}
	if stats.Revenue, err = s.orders.Revenue(ctx); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.listings != nil {
		s.listings.Set(ctx, cache.KeyStats, stats)
	}
	return stats, nil
}
