package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/mocks"
	"github.com/taskboard/taskboard/internal/service/auth"
	"github.com/taskboard/taskboard/internal/store"
)

func newUserService(t *testing.T, userStore *mocks.MockUserStore, verifier *mocks.MockPasswordVerifier) UserService {
	t.Helper()
	svc, err := NewUserService(userStore, verifier, nil)
	require.NoError(t, err)
	return svc
}

func TestUserService_Register_RoleAssignment(t *testing.T) {
	t.Parallel()

	admin := auth.Principal{Email: "admin@example.com", Role: domain.RoleAdmin}
	user := auth.Principal{Email: "user@example.com", Role: domain.RoleUser}

	tests := []struct {
		name          string
		actor         *auth.Principal
		requestedRole string
		wantRole      domain.Role
	}{
		{
			name:          "anonymous registration gets user role",
			actor:         nil,
			requestedRole: "",
			wantRole:      domain.RoleUser,
		},
		{
			name:          "anonymous admin request is downgraded",
			actor:         nil,
			requestedRole: "ADMIN",
			wantRole:      domain.RoleUser,
		},
		{
			name:          "non-admin actor requesting admin is downgraded",
			actor:         &user,
			requestedRole: "ADMIN",
			wantRole:      domain.RoleUser,
		},
		{
			name:          "admin actor may grant admin",
			actor:         &admin,
			requestedRole: "ADMIN",
			wantRole:      domain.RoleAdmin,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			userStore := &mocks.MockUserStore{}
			svc := newUserService(t, userStore, &mocks.MockPasswordVerifier{})

			created, err := svc.Register(context.Background(), tc.actor, RegisterInput{
				FirstName:     "New",
				LastName:      "Person",
				Email:         "new@example.com",
				Password:      "secret1",
				RequestedRole: tc.requestedRole,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantRole, created.Role)
			assert.Equal(t, 1, userStore.CreateCalls)
		})
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	userStore := &mocks.MockUserStore{
		CreateFn: func(ctx context.Context, user *domain.User) error {
			return store.ErrEmailExists
		},
	}
	svc := newUserService(t, userStore, &mocks.MockPasswordVerifier{})

	_, err := svc.Register(context.Background(), nil, RegisterInput{
		FirstName: "New",
		LastName:  "Person",
		Email:     "taken@example.com",
		Password:  "secret1",
	})
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()

	known, err := domain.NewUser("Alice", "Smith", "alice@example.com", "secret1", domain.RoleUser)
	require.NoError(t, err)
	known.HashedPassword = "hashed"
	known.Password = ""

	tests := []struct {
		name       string
		email      string
		compareErr error
		wantErr    error
	}{
		{name: "valid credentials", email: "alice@example.com"},
		{
			name:    "unknown email",
			email:   "nobody@example.com",
			wantErr: ErrInvalidCredentials,
		},
		{
			name:       "wrong password",
			email:      "alice@example.com",
			compareErr: errors.New("mismatch"),
			wantErr:    ErrInvalidCredentials,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			userStore := &mocks.MockUserStore{
				GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
					if email == known.Email {
						return known, nil
					}
					return nil, store.ErrUserNotFound
				},
			}
			verifier := &mocks.MockPasswordVerifier{Err: tc.compareErr}
			svc := newUserService(t, userStore, verifier)

			user, err := svc.Authenticate(context.Background(), tc.email, "secret1")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, known.Email, user.Email)
		})
	}
}

func TestUserService_EnsureFirstAdmin(t *testing.T) {
	t.Parallel()

	cfg := config.FirstAdminConfig{
		FirstName: "Root",
		LastName:  "Admin",
		Email:     "root@example.com",
		Password:  "admin123",
	}

	t.Run("creates admin when none exists", func(t *testing.T) {
		var createdRole domain.Role
		userStore := &mocks.MockUserStore{
			CountByRoleFn: func(ctx context.Context, role domain.Role) (int, error) {
				return 0, nil
			},
			CreateFn: func(ctx context.Context, user *domain.User) error {
				createdRole = user.Role
				return nil
			},
		}
		svc := newUserService(t, userStore, &mocks.MockPasswordVerifier{})

		require.NoError(t, svc.EnsureFirstAdmin(context.Background(), cfg))
		assert.Equal(t, domain.RoleAdmin, createdRole)
	})

	t.Run("no-op when an admin already exists", func(t *testing.T) {
		userStore := &mocks.MockUserStore{
			CountByRoleFn: func(ctx context.Context, role domain.Role) (int, error) {
				return 1, nil
			},
		}
		svc := newUserService(t, userStore, &mocks.MockPasswordVerifier{})

		require.NoError(t, svc.EnsureFirstAdmin(context.Background(), cfg))
		assert.Equal(t, 0, userStore.CreateCalls)
	})

	t.Run("no-op when seeding is not configured", func(t *testing.T) {
		userStore := &mocks.MockUserStore{}
		svc := newUserService(t, userStore, &mocks.MockPasswordVerifier{})

		require.NoError(t, svc.EnsureFirstAdmin(context.Background(), config.FirstAdminConfig{}))
		assert.Equal(t, 0, userStore.CreateCalls)
	})

	t.Run("tolerates a concurrent seeder", func(t *testing.T) {
		userStore := &mocks.MockUserStore{
			CountByRoleFn: func(ctx context.Context, role domain.Role) (int, error) {
				return 0, nil
			},
			CreateFn: func(ctx context.Context, user *domain.User) error {
				return store.ErrEmailExists
			},
		}
		svc := newUserService(t, userStore, &mocks.MockPasswordVerifier{})

		assert.NoError(t, svc.EnsureFirstAdmin(context.Background(), cfg))
	})
}
