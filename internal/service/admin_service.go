package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-admin-service/internal/auth"
	"github.com/spec-kit/shop-admin-service/internal/cache"
	"github.com/spec-kit/shop-admin-service/internal/config"
	"github.com/spec-kit/shop-admin-service/internal/domain"
	"github.com/spec-kit/shop-admin-service/internal/events"
	"github.com/spec-kit/shop-admin-service/internal/repository"
	apperrors "github.com/spec-kit/shop-admin-service/pkg/util"
)

// AdminService manages accounts: listing, admin invitation, deletion.
type AdminService struct {
	users      repository.UserRepository
	listings   ListingCache
	dispatcher events.Dispatcher
	bcryptCost int
}

// AdminDependencies bundles requirements for the admin service.
type AdminDependencies struct {
	UserRepo   repository.UserRepository
	Listings   ListingCache
	Dispatcher events.Dispatcher
}

// InviteInput describes the admin invitation form fields.
type InviteInput struct {
	Email    string
	Password string
	Role     string
}

// UserSummary is the listing view of an account. Password hashes never
// leave the service layer.
type UserSummary struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewAdminService constructs the service.
func NewAdminService(cfg config.Config, deps AdminDependencies) *AdminService {
	return &AdminService{
		users:      deps.UserRepo,
		listings:   deps.Listings,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// ListUsers returns all accounts, newest first. SUPER_ADMIN only.
func (s *AdminService) ListUsers(ctx context.Context, actor auth.Context) ([]UserSummary, error) {
	if !auth.Allow(actor.Role, auth.ActionViewAdmins) {
		return nil, apperrors.NewUnauthorized("only super admins can view accounts")
	}

	var cached []UserSummary
	if s.listings != nil && s.listings.Get(ctx, cache.KeyUsers, &cached) {
		return cached, nil
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, UserSummary{
			ID:        user.ID,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}
	if s.listings != nil {
		s.listings.Set(ctx, cache.KeyUsers, summaries)
	}
	return summaries, nil
}

// InviteAdmin creates an ADMIN or SUPER_ADMIN account. SUPER_ADMIN only.
func (s *AdminService) InviteAdmin(ctx context.Context, actor auth.Context, input InviteInput) (*domain.User, error) {
	if !auth.Allow(actor.Role, auth.ActionInviteAdmin) {
		return nil, apperrors.NewUnauthorized("only super admins can invite admins")
	}

	details := validateCredentials(input.Email, input.Password)
	role, ok := domain.ParseRole(input.Role)
	if !ok || !role.IsAdmin() {
		details["role"] = "role must be ADMIN or SUPER_ADMIN"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid invitation input", details)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("an account with this email already exists", map[string]any{"email": input.Email})
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventUserInvited, user.ID, actor)
	return user, nil
}

// DeleteUser removes an account. SUPER_ADMIN only, and never the caller's
// own account: self-deletion is denied for every role.
func (s *AdminService) DeleteUser(ctx context.Context, actor auth.Context, targetID string) error {
	action := auth.ActionDeleteUser
	if targetID == actor.UserID {
		action = auth.ActionDeleteSelf
	}
	if !auth.Allow(actor.Role, action) {
		if action == auth.ActionDeleteSelf {
			return apperrors.NewUnauthorized("you cannot delete your own account")
		}
		return apperrors.NewUnauthorized("only super admins can delete users")
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"id": targetID})
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventUserDeleted, targetID, actor)
	return nil
}

func (s *AdminService) publish(ctx context.Context, eventType events.EventType, resourceID string, actor auth.Context) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		Actor:      events.Actor{UserID: actor.UserID, Role: actor.Role},
		Timestamp:  time.Now(),
	})
}
