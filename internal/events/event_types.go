package events

import (
	"time"

	"github.com/spec-kit/shop-admin-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProductCreated EventType = "product_created"
	EventProductUpdated EventType = "product_updated"
	EventProductDeleted EventType = "product_deleted"
	EventUserRegistered EventType = "user_registered"
	EventUserInvited    EventType = "user_invited"
	EventUserDeleted    EventType = "user_deleted"
)

// Actor records who triggered an event. Anonymous flows (registration)
// leave UserID empty.
type Actor struct {
	UserID string      `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services after a successful
// mutation. Cache invalidation hangs off these.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ResourceID string    `json:"resource_id"`
	Actor      Actor     `json:"actor"`
	Timestamp  time.Time `json:"timestamp"`
}
