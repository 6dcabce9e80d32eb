package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskboard/taskboard/internal/api/shared"
	"github.com/taskboard/taskboard/internal/service/auth"
	"github.com/taskboard/taskboard/internal/store"
)

// AuthMiddleware provides JWT authentication for routes. Authenticate runs
// on every route; requests without credentials pass through anonymous, and
// the per-route gates below decide whether that is acceptable.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      store.UserStore
	logger     *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
// If logger is nil, the default logger is used.
func NewAuthMiddleware(jwtService auth.JWTService, users store.UserStore, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
		logger:     logger.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate validates JWT tokens from the Authorization header and adds
// the resolved principal to the request context. A missing or non-Bearer
// header is not an error here: the request continues anonymous. A header
// that is present but does not validate is rejected immediately.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			next.ServeHTTP(w, r)
			return
		}

		token := parts[1]

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrUnparseableToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Unparseable token")
			case errors.Is(err, auth.ErrMalformedToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				m.logger.Error("failed to validate token", "error", err)
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		// The subject must still resolve to an account. A token for a
		// deleted user is indistinguishable from an invalid one to the
		// caller; the distinction stays in the logs.
		user, err := m.users.GetByEmail(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				m.logger.Warn("token subject has no account", "subject", claims.Subject)
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}
			m.logger.Error("failed to resolve token subject", "error", err)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := shared.WithPrincipal(r.Context(), auth.PrincipalFromUser(user))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that did not authenticate. It must run after
// Authenticate in the chain.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := shared.GetPrincipal(r.Context()); !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose principal is missing or not an
// administrator. It must run after Authenticate in the chain.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := shared.GetPrincipal(r.Context())
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !principal.IsAdmin() {
			m.logger.Warn("role denied",
				"actor", principal.Email,
				"path", r.URL.Path,
				"method", r.Method)
			shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPrincipal extracts the authenticated principal from the request.
// Returns the principal and a boolean indicating if it was found.
func GetPrincipal(r *http.Request) (auth.Principal, bool) {
	return shared.GetPrincipal(r.Context())
}
