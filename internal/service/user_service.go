package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/service/auth"
	"github.com/taskboard/taskboard/internal/store"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string

	// RequestedRole is honored only when the acting principal is an
	// administrator; otherwise the new account is a plain user.
	RequestedRole string
}

// UserService provides registration and authentication operations.
type UserService interface {
	// Register creates a new user account. The actor is the principal of
	// the request, or nil for anonymous registration. Requesting the ADMIN
	// role is honored only for an already-authenticated admin actor; any
	// other request silently produces a USER account.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(ctx context.Context, actor *auth.Principal, input RegisterInput) (*domain.User, error)

	// Authenticate verifies an email/password pair.
	// Returns ErrInvalidCredentials on unknown email or wrong password,
	// without distinguishing the two.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetByEmail retrieves a user profile by email.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// EnsureFirstAdmin seeds the configured administrator account when the
	// store holds no admin yet. A no-op when seeding is not configured or
	// an admin already exists.
	EnsureFirstAdmin(ctx context.Context, cfg config.FirstAdminConfig) error
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	userStore        store.UserStore
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// Ensure userServiceImpl implements UserService interface
var _ UserService = (*userServiceImpl)(nil)

// NewUserService creates a new UserService.
// If logger is nil, the default logger is used.
func NewUserService(
	userStore store.UserStore,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if passwordVerifier == nil {
		return nil, fmt.Errorf("passwordVerifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore:        userStore,
		passwordVerifier: passwordVerifier,
		logger:           logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register
func (s *userServiceImpl) Register(
	ctx context.Context,
	actor *auth.Principal,
	input RegisterInput,
) (*domain.User, error) {
	role := domain.RoleUser
	if input.RequestedRole == string(domain.RoleAdmin) {
		if actor != nil && actor.IsAdmin() {
			role = domain.RoleAdmin
		} else {
			// Self-registration as admin is not an error; the request is
			// downgraded to a plain user account.
			s.logger.Warn("admin role requested without admin privileges, registering as user",
				"email", input.Email)
		}
	}

	user, err := domain.NewUser(input.FirstName, input.LastName, input.Email, input.Password, role)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Warn("registration with duplicate email", "email", input.Email)
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Authenticate implements UserService.Authenticate
func (s *userServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Warn("authentication attempt for unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user for authentication: %w", err)
	}

	if err := s.passwordVerifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Warn("authentication failed: password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user authenticated", "user_id", user.ID)
	return user, nil
}

// GetByEmail implements UserService.GetByEmail
func (s *userServiceImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userStore.GetByEmail(ctx, email)
}

// EnsureFirstAdmin implements UserService.EnsureFirstAdmin
func (s *userServiceImpl) EnsureFirstAdmin(ctx context.Context, cfg config.FirstAdminConfig) error {
	if !cfg.Enabled() {
		s.logger.Debug("first-admin seeding not configured, skipping")
		return nil
	}

	count, err := s.userStore.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin, err := domain.NewUser(cfg.FirstName, cfg.LastName, cfg.Email, cfg.Password, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("invalid first-admin configuration: %w", err)
	}

	if err := s.userStore.Create(ctx, admin); err != nil {
		// A concurrent instance may have seeded the admin already.
		if errors.Is(err, store.ErrEmailExists) {
			return nil
		}
		return fmt.Errorf("failed to create first admin: %w", err)
	}

	s.logger.Info("first administrator created", "email", cfg.Email)
	return nil
}
