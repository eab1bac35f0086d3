package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/shop-admin-service/internal/domain"
)

// OrderRepository provides read access to orders. Orders enter the store
// through the shop front, not through this service.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Count(ctx context.Context) (int64, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
        SELECT o.id, o.user_id, u.email, o.status, o.total, o.created_at
        FROM orders o JOIN users u ON u.id = o.user_id
        WHERE o.id=$1`

	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.UserEmail,
		&order.Status,
		&order.Total,
		&order.CreatedAt,
	); err != nil {
		return nil, err
	}

	const itemsQuery = `
        SELECT id, order_id, product_id, name, price, quantity
        FROM order_items WHERE order_id=$1`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Price,
			&item.Quantity,
		); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	order.ItemCount = len(order.Items)
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	const query = `
        SELECT o.id, o.user_id, u.email, o.status, o.total, o.created_at,
               (SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id) AS item_count
        FROM orders o JOIN users u ON u.id = o.user_id
        ORDER BY o.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.UserEmail,
			&order.Status,
			&order.Total,
			&order.CreatedAt,
			&order.ItemCount,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

// Revenue sums order totals, excluding cancelled orders.
func (r *orderRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	const query = `
        SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> 'CANCELLED'`

	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, query).Scan(&total)
	return total, err
}
