package auth

import (
	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/domain"
)

// Principal is the resolved identity attached to a request after
// authentication. It is reconstructed per request from the user record
// referenced by the token's subject and discarded when the request ends;
// it is never persisted or shared across requests.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  domain.Role
}

// PrincipalFromUser builds a Principal from a stored user record.
func PrincipalFromUser(user *domain.User) Principal {
	return Principal{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}
}

// IsAdmin reports whether the principal holds the administrator role.
func (p Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}

// Owns reports whether the principal is the author identified by the
// given email. Ownership is always derived fresh from the resource
// snapshot at decision time; it is never cached.
func (p Principal) Owns(authorEmail string) bool {
	return p.Email == authorEmail
}
