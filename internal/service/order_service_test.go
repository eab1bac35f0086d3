package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-admin-service/internal/auth"
	"github.com/spec-kit/shop-admin-service/internal/domain"
)

func demoOrders() []domain.Order {
	return []domain.Order{
		{
			ID:        "order-1",
			UserID:    "user-1",
			UserEmail: "u@x.com",
			Status:    domain.OrderStatusDelivered,
			Total:     decimal.NewFromFloat(49.90),
			ItemCount: 2,
			CreatedAt: time.Now(),
		},
		{
			ID:        "order-2",
			UserID:    "user-1",
			UserEmail: "u@x.com",
			Status:    domain.OrderStatusCancelled,
			Total:     decimal.NewFromFloat(10.00),
			ItemCount: 1,
			CreatedAt: time.Now(),
		},
	}
}

func TestListOrdersAdminOnly(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{orders: demoOrders()}, &fakeCache{})

	orders, err := svc.ListOrders(context.Background(), asAdmin)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = svc.ListOrders(context.Background(), asUser)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestGetOrder(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{orders: demoOrders()}, &fakeCache{})

	order, err := svc.GetOrder(context.Background(), asAdmin, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", order.UserEmail)

	_, err = svc.GetOrder(context.Background(), asAdmin, "missing")
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))

	_, err = svc.GetOrder(context.Background(), asUser, "order-1")
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestStatsOverview(t *testing.T) {
	products := newFakeProductRepo()
	require.NoError(t, products.Create(context.Background(), &domain.Product{Name: "p"}))

	users := newFakeUserRepo()
	require.NoError(t, users.Create(context.Background(), &domain.User{Email: "u@x.com", Role: domain.RoleUser}))

	svc := NewStatsService(StatsDependencies{
		ProductRepo:  products,
		CategoryRepo: newFakeCategoryRepo("Electronics", "Books"),
		OrderRepo:    &fakeOrderRepo{orders: demoOrders()},
		UserRepo:     users,
		Listings:     &fakeCache{},
	})

	stats, err := svc.Overview(context.Background(), asAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Products)
	assert.Equal(t, int64(2), stats.Categories)
	assert.Equal(t, int64(2), stats.Orders)
	assert.Equal(t, int64(1), stats.Users)
	// Cancelled orders do not count toward revenue.
	assert.True(t, stats.Revenue.Equal(decimal.NewFromFloat(49.90)), "got %s", stats.Revenue)

	_, err = svc.Overview(context.Background(), asUser)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))

	_, err = svc.Overview(context.Background(), auth.Context{UserID: "s", Role: domain.RoleSuperAdmin})
	assert.NoError(t, err)
}
