package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/shop-admin-service/pkg/util"
)

const contextKey = "auth_context"

// Middleware validates bearer tokens and attaches the caller's Context.
// The token is self-contained: no user row is read per request, so a role
// change applies only at the next login.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthenticated("invalid or expired token")
	}

	c.Locals(contextKey, Context{UserID: claims.Subject, Role: claims.Role})
	return c.Next()
}

// FromFiber retrieves the authenticated caller's context.
func FromFiber(c *fiber.Ctx) (Context, bool) {
	val := c.Locals(contextKey)
	if val == nil {
		return Context{}, false
	}
	actor, ok := val.(Context)
	return actor, ok
}

// RequireAction gates a route on the central policy. Services re-check the
// same policy so authorization does not depend on route wiring alone.
func RequireAction(action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := FromFiber(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		if !Allow(actor.Role, action) {
			return apperrors.NewUnauthorized("insufficient role")
		}
		return c.Next()
	}
}
