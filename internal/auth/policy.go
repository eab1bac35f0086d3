package auth

import "github.com/spec-kit/shop-admin-service/internal/domain"

// Action enumerates every gated operation in the system.
type Action string

const (
	ActionViewProducts  Action = "view_products"
	ActionCreateProduct Action = "create_product"
	ActionUpdateProduct Action = "update_product"
	ActionDeleteProduct Action = "delete_product"
	ActionViewOrders    Action = "view_orders"
	ActionViewAdmins    Action = "view_admins"
	ActionInviteAdmin   Action = "invite_admin"
	ActionDeleteUser    Action = "delete_user"

	// ActionDeleteSelf is the delete-user action aimed at the caller's own
	// account. Denied for every role, including SUPER_ADMIN.
	ActionDeleteSelf Action = "delete_self"
)

// Allow is the single authorization decision point. Every mutator consults it;
// no call site compares role strings directly.
func Allow(role domain.Role, action Action) bool {
	switch action {
	case ActionViewProducts:
		return role == domain.RoleUser || role.IsAdmin()
	case ActionCreateProduct, ActionUpdateProduct, ActionDeleteProduct, ActionViewOrders:
		return role.IsAdmin()
	case ActionViewAdmins, ActionInviteAdmin, ActionDeleteUser:
		return role == domain.RoleSuperAdmin
	case ActionDeleteSelf:
		return false
	}
	return false
}

// Portal names a login entry point. The portal never grants anything; it only
// shapes the denial message when the stored role does not belong there.
type Portal string

const (
	PortalAdmin Portal = "ADMIN"
	PortalUser  Portal = "USER"
)

// AllowPortal reports whether an account with the given role may log in
// through the given entry point.
func AllowPortal(role domain.Role, portal Portal) bool {
	switch portal {
	case PortalAdmin:
		return role.IsAdmin()
	case PortalUser:
		return role == domain.RoleUser
	}
	return false
}
