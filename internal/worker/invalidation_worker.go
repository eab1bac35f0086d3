package worker

import (
	"context"

	"github.com/spec-kit/shop-admin-service/internal/cache"
	"github.com/spec-kit/shop-admin-service/internal/events"
)

// StartCacheInvalidator subscribes listing-cache invalidation to the domain
// events each mutator publishes. Product mutations also drop the stats view,
// as do user mutations.
func StartCacheInvalidator(dispatcher events.Dispatcher, listings *cache.ListingCache) {
	if dispatcher == nil || listings == nil {
		return
	}

	invalidate := func(keys ...string) events.EventHandler {
		return func(ctx context.Context, _ events.Event) error {
			listings.Invalidate(ctx, keys...)
			return nil
		}
	}

	for _, eventType := range []events.EventType{
		events.EventProductCreated,
		events.EventProductUpdated,
		events.EventProductDeleted,
	} {
		dispatcher.Subscribe(eventType, invalidate(cache.KeyProducts, cache.KeyStats))
	}

	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventUserInvited,
		events.EventUserDeleted,
	} {
		dispatcher.Subscribe(eventType, invalidate(cache.KeyUsers, cache.KeyStats))
	}
}
