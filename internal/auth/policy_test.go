package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/shop-admin-service/internal/domain"
)

func TestAllowMatchesPolicyTable(t *testing.T) {
	tests := []struct {
		action Action
		user   bool
		admin  bool
		super  bool
	}{
		{ActionViewProducts, true, true, true},
		{ActionCreateProduct, false, true, true},
		{ActionUpdateProduct, false, true, true},
		{ActionDeleteProduct, false, true, true},
		{ActionViewOrders, false, true, true},
		{ActionViewAdmins, false, false, true},
		{ActionInviteAdmin, false, false, true},
		{ActionDeleteUser, false, false, true},
		{ActionDeleteSelf, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.user, Allow(domain.RoleUser, tt.action), "USER")
			assert.Equal(t, tt.admin, Allow(domain.RoleAdmin, tt.action), "ADMIN")
			assert.Equal(t, tt.super, Allow(domain.RoleSuperAdmin, tt.action), "SUPER_ADMIN")
		})
	}
}

func TestAllowUnknownActionDenied(t *testing.T) {
	assert.False(t, Allow(domain.RoleSuperAdmin, Action("reboot_store")))
}

func TestAllowUnknownRoleDenied(t *testing.T) {
	for _, action := range []Action{ActionViewProducts, ActionCreateProduct, ActionViewAdmins} {
		assert.False(t, Allow(domain.Role("ROOT"), action))
	}
}

func TestAllowPortal(t *testing.T) {
	tests := []struct {
		role   domain.Role
		portal Portal
		want   bool
	}{
		{domain.RoleUser, PortalUser, true},
		{domain.RoleUser, PortalAdmin, false},
		{domain.RoleAdmin, PortalAdmin, true},
		{domain.RoleAdmin, PortalUser, false},
		{domain.RoleSuperAdmin, PortalAdmin, true},
		{domain.RoleSuperAdmin, PortalUser, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AllowPortal(tt.role, tt.portal),
			"role %s portal %s", tt.role, tt.portal)
	}
}
