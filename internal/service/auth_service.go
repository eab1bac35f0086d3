package service

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-admin-service/internal/auth"
	"github.com/spec-kit/shop-admin-service/internal/config"
	"github.com/spec-kit/shop-admin-service/internal/domain"
	"github.com/spec-kit/shop-admin-service/internal/events"
	"github.com/spec-kit/shop-admin-service/internal/repository"
	apperrors "github.com/spec-kit/shop-admin-service/pkg/util"
)

const minPasswordLength = 6

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. The role is always USER: self-serve
// registration can never mint an administrator, whatever the request says.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if details := validateCredentials(email, password); len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid registration input", details)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("an account with this email already exists", map[string]any{"email": email})
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, auth.Context{})
	return user, nil
}

// Login verifies credentials and issues a session token. The portal only
// shapes the denial message for accounts on the wrong entry point; the
// stored role decides everything.
func (s *AuthService) Login(ctx context.Context, email, password string, portal auth.Portal) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	if !auth.AllowPortal(user.Role, portal) {
		if portal == auth.PortalAdmin {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("access denied: this is a standard user account, please use the user login")
		}
		return nil, "", time.Time{}, apperrors.NewUnauthorized("access denied: this is an admin account, please use the admin login")
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// Logout no-ops server-side: sessions are stateless client-held tokens that
// expire on their own. The endpoint exists so clients have a uniform flow.
func (s *AuthService) Logout(_ context.Context, _ auth.Context) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, resourceID string, actor auth.Context) {
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

// validateCredentials checks the shared email/password rules and returns a
// field -> message map, empty when valid.
func validateCredentials(email, password string) map[string]any {
	details := map[string]any{}
	if email == "" {
		details["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		details["email"] = "invalid email address"
	}
	if len(password) < minPasswordLength {
		details["password"] = "password must be at least 6 characters"
	}
	return details
}
