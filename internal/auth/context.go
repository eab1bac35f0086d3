package auth

import "github.com/spec-kit/shop-admin-service/internal/domain"

// Context identifies the authenticated caller. It is built once per request
// from the session token and threaded explicitly into every service call.
//
// The role here is the role at token issuance time. A role change made after
// login does not take effect until the account logs in again; there is no
// server-side session state to revoke.
type Context struct {
	UserID string
	Role   domain.Role
}
