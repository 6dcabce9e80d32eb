// Package auth provides token issuance/validation, password hashing, and
// the authenticated principal type.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing stateless bearer tokens.
// Tokens carry only the subject (user email) and a validity window; role
// membership is never embedded and is re-resolved against the user store
// on every request, so role changes take effect on the next request.
type JWTService interface {
	// GenerateToken creates a signed token for the given subject.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken, ErrMalformedToken, or
	// ErrUnparseableToken on failure; these map to distinct client-facing
	// messages so callers can tell "log in again" from "broken request".
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a bearer token.
type Claims struct {
	// Subject is the email of the user the token was issued for.
	Subject string

	// IssuedAt and ExpiresAt bound the token's validity window.
	// ExpiresAt is always after IssuedAt for tokens issued by this service.
	IssuedAt  time.Time
	ExpiresAt time.Time
}
