package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/shop-admin-service/internal/auth"
	"github.com/spec-kit/shop-admin-service/internal/domain"
	"github.com/spec-kit/shop-admin-service/internal/events"
	apperrors "github.com/spec-kit/shop-admin-service/pkg/util"
)

func newTestAdminService(users *fakeUserRepo, dispatcher events.Dispatcher) *AdminService {
	return NewAdminService(testConfig(), AdminDependencies{UserRepo: users, Dispatcher: dispatcher})
}

func seedUser(t *testing.T, users *fakeUserRepo, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestInviteAdminScenario(t *testing.T) {
	users := newFakeUserRepo()
	dispatcher := &capturingDispatcher{}
	admins := newTestAdminService(users, dispatcher)
	authSvc := newTestAuthService(users, nil)

	super := seedUser(t, users, "admin@demo.com", "admin123", domain.RoleSuperAdmin)
	actor := auth.Context{UserID: super.ID, Role: super.Role}

	invited, err := admins.InviteAdmin(context.Background(), actor, InviteInput{
		Email:    "new.admin@co.com",
		Password: "secret1",
		Role:     "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, invited.Role)

	// Stored hash is verifiable and not the plaintext.
	stored, err := users.GetByEmail(context.Background(), "new.admin@co.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "secret1"))

	// The invitee can log in via the admin entry point and the session
	// carries the ADMIN role.
	_, token, _, err := authSvc.Login(context.Background(), "new.admin@co.com", "secret1", auth.PortalAdmin)
	require.NoError(t, err)
	claims, err := authSvc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventUserInvited, published[0].Type)
}

func TestInviteAdminDeniedForLowerRoles(t *testing.T) {
	users := newFakeUserRepo()
	admins := newTestAdminService(users, nil)

	for _, role := range []domain.Role{domain.RoleUser, domain.RoleAdmin} {
		_, err := admins.InviteAdmin(context.Background(), auth.Context{UserID: "x", Role: role}, InviteInput{
			Email:    "new.admin@co.com",
			Password: "secret1",
			Role:     "ADMIN",
		})
		assert.Equal(t, "UNAUTHORIZED", domainCode(t, err), "role %s", role)
	}

	_, err := users.GetByEmail(context.Background(), "new.admin@co.com")
	assert.Error(t, err, "denied invitation must not create a row")
}

func TestInviteAdminRejectsUserRole(t *testing.T) {
	users := newFakeUserRepo()
	admins := newTestAdminService(users, nil)
	super := seedUser(t, users, "admin@demo.com", "admin123", domain.RoleSuperAdmin)

	_, err := admins.InviteAdmin(context.Background(), auth.Context{UserID: super.ID, Role: super.Role}, InviteInput{
		Email:    "new.admin@co.com",
		Password: "secret1",
		Role:     "USER",
	})
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Details, "role")
}

func TestInviteAdminDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	admins := newTestAdminService(users, nil)
	super := seedUser(t, users, "admin@demo.com", "admin123", domain.RoleSuperAdmin)

	_, err := admins.InviteAdmin(context.Background(), auth.Context{UserID: super.ID, Role: super.Role}, InviteInput{
		Email:    "admin@demo.com",
		Password: "secret1",
		Role:     "ADMIN",
	})
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestDeleteUser(t *testing.T) {
	users := newFakeUserRepo()
	dispatcher := &capturingDispatcher{}
	admins := newTestAdminService(users, dispatcher)
	super := seedUser(t, users, "admin@demo.com", "admin123", domain.RoleSuperAdmin)
	target := seedUser(t, users, "victim@x.com", "secret1", domain.RoleUser)

	actor := auth.Context{UserID: super.ID, Role: super.Role}
	require.NoError(t, admins.DeleteUser(context.Background(), actor, target.ID))

	_, err := users.GetByID(context.Background(), target.ID)
	assert.Error(t, err)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventUserDeleted, published[0].Type)
}

func TestDeleteUserSelfDeniedEvenForSuperAdmin(t *testing.T) {
	users := newFakeUserRepo()
	admins := newTestAdminService(users, nil)
	super := seedUser(t, users, "admin@demo.com", "admin123", domain.RoleSuperAdmin)

	err := admins.DeleteUser(context.Background(), auth.Context{UserID: super.ID, Role: super.Role}, super.ID)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))

	_, getErr := users.GetByID(context.Background(), super.ID)
	assert.NoError(t, getErr, "the account must survive")
}

func TestDeleteUserDeniedForLowerRoles(t *testing.T) {
	users := newFakeUserRepo()
	admins := newTestAdminService(users, nil)
	target := seedUser(t, users, "victim@x.com", "secret1", domain.RoleUser)

	for _, role := range []domain.Role{domain.RoleUser, domain.RoleAdmin} {
		err := admins.DeleteUser(context.Background(), auth.Context{UserID: "actor", Role: role}, target.ID)
		assert.Equal(t, "UNAUTHORIZED", domainCode(t, err), "role %s", role)
	}
}

func TestDeleteMissingUserNotFound(t *testing.T) {
	users := newFakeUserRepo()
	admins := newTestAdminService(users, nil)
	super := seedUser(t, users, "admin@demo.com", "admin123", domain.RoleSuperAdmin)

	err := admins.DeleteUser(context.Background(), auth.Context{UserID: super.ID, Role: super.Role}, "missing-id")
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestListUsersSuperAdminOnly(t *testing.T) {
	users := newFakeUserRepo()
	admins := newTestAdminService(users, nil)
	seedUser(t, users, "admin@demo.com", "admin123", domain.RoleSuperAdmin)

	summaries, err := admins.ListUsers(context.Background(), auth.Context{UserID: "s", Role: domain.RoleSuperAdmin})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "admin@demo.com", summaries[0].Email)

	for _, role := range []domain.Role{domain.RoleUser, domain.RoleAdmin} {
		_, err := admins.ListUsers(context.Background(), auth.Context{UserID: "a", Role: role})
		assert.Equal(t, "UNAUTHORIZED", domainCode(t, err), "role %s", role)
	}
}
