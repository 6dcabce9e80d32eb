package auth

import "errors"

// Common authentication service errors
var (
	// ErrExpiredToken indicates the token's validity window has passed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMalformedToken indicates the token is structurally valid JWT but
	// fails verification (signature mismatch, wrong algorithm, bad claims).
	ErrMalformedToken = errors.New("invalid authentication token")

	// ErrUnparseableToken indicates the token string is not a JWT at all
	// (wrong shape or prefix).
	ErrUnparseableToken = errors.New("unparseable authentication token")
)
