package service

import "context"

// ListingCache is the read-through cache contract services depend on.
// Satisfied by cache.ListingCache; tests substitute fakes.
type ListingCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
	Invalidate(ctx context.Context, keys ...string)
}
