package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/api/shared"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/mocks"
	"github.com/taskboard/taskboard/internal/service"
	"github.com/taskboard/taskboard/internal/service/auth"
	"github.com/taskboard/taskboard/internal/store"
)

// mockUserService implements service.UserService for handler tests.
type mockUserService struct {
	RegisterFn     func(ctx context.Context, actor *auth.Principal, input service.RegisterInput) (*domain.User, error)
	AuthenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
	GetByEmailFn   func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserService) Register(
	ctx context.Context,
	actor *auth.Principal,
	input service.RegisterInput,
) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, actor, input)
	}
	return nil, assert.AnError
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, email, password)
	}
	return nil, assert.AnError
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserService) EnsureFirstAdmin(ctx context.Context, cfg config.FirstAdminConfig) error {
	return nil
}

func postJSON(t *testing.T, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func newHandlerUser(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Test", "User", email, "secret1", role)
	require.NoError(t, err)
	return user
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	t.Run("success returns token", func(t *testing.T) {
		created := newHandlerUser(t, "new@example.com", domain.RoleUser)
		userService := &mockUserService{
			RegisterFn: func(ctx context.Context, actor *auth.Principal, input service.RegisterInput) (*domain.User, error) {
				assert.Nil(t, actor)
				assert.Equal(t, "new@example.com", input.Email)
				return created, nil
			},
		}
		h := NewAuthHandler(userService, &mocks.MockJWTService{Token: "signed-token"})

		req := postJSON(t, "/api/v1/auth/register", RegisterRequest{
			FirstName: "New",
			LastName:  "Person",
			Email:     "new@example.com",
			Password:  "secret1",
		})
		rr := httptest.NewRecorder()
		h.Register(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.Token)
	})

	t.Run("validation failure", func(t *testing.T) {
		h := NewAuthHandler(&mockUserService{}, &mocks.MockJWTService{})

		req := postJSON(t, "/api/v1/auth/register", RegisterRequest{Email: "not-an-email"})
		rr := httptest.NewRecorder()
		h.Register(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		userService := &mockUserService{
			RegisterFn: func(ctx context.Context, actor *auth.Principal, input service.RegisterInput) (*domain.User, error) {
				return nil, store.ErrEmailExists
			},
		}
		h := NewAuthHandler(userService, &mocks.MockJWTService{})

		req := postJSON(t, "/api/v1/auth/register", RegisterRequest{
			FirstName: "New",
			LastName:  "Person",
			Email:     "taken@example.com",
			Password:  "secret1",
		})
		rr := httptest.NewRecorder()
		h.Register(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		body := decodeError(t, rr)
		assert.Equal(t, "Email already exists", body.Message)
		assert.Equal(t, http.StatusConflict, body.Status)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	user := newHandlerUser(t, "alice@example.com", domain.RoleUser)

	t.Run("success returns token", func(t *testing.T) {
		userService := &mockUserService{
			AuthenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
				return user, nil
			},
		}
		h := NewAuthHandler(userService, &mocks.MockJWTService{Token: "signed-token"})

		req := postJSON(t, "/api/v1/auth/login", LoginRequest{Email: user.Email, Password: "secret1"})
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.Token)
	})

	t.Run("bad credentials", func(t *testing.T) {
		userService := &mockUserService{
			AuthenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
				return nil, service.ErrInvalidCredentials
			},
		}
		h := NewAuthHandler(userService, &mocks.MockJWTService{})

		req := postJSON(t, "/api/v1/auth/login", LoginRequest{Email: user.Email, Password: "wrong1"})
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		body := decodeError(t, rr)
		assert.Equal(t, "Invalid credentials", body.Message)
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Parallel()

	user := newHandlerUser(t, "alice@example.com", domain.RoleUser)
	userService := &mockUserService{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			if email == user.Email {
				return user, nil
			}
			return nil, store.ErrUserNotFound
		},
	}
	h := NewAuthHandler(userService, &mocks.MockJWTService{})

	t.Run("returns the caller's profile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req = req.WithContext(shared.WithPrincipal(req.Context(), auth.PrincipalFromUser(user)))
		rr := httptest.NewRecorder()
		h.Me(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, user.Email, resp.Email)
		assert.Equal(t, string(user.Role), resp.Role)
	})

	t.Run("rejects anonymous request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		rr := httptest.NewRecorder()
		h.Me(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
