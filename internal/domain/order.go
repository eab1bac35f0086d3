package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is a customer order. Orders are read-only in this service.
type Order struct {
	ID        string
	UserID    string
	UserEmail string
	Status    OrderStatus
	Total     decimal.Decimal
	ItemCount int
	Items     []OrderItem
	CreatedAt time.Time
}

// OrderItem snapshots a product line at order time. Items are owned by
// their order: created together, deleted together.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}
