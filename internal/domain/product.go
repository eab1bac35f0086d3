package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price is always decimal, never float.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  string
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category groups products. Categories are seeded and read-only at runtime.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
