// Package service implements the business operations exposed to the API
// layer: registration/authentication, task management, and comments. Every
// mutating operation re-derives authorization from the acting principal and
// the current resource snapshot.
package service

import (
	"errors"
	"fmt"
)

// Common service errors
var (
	// ErrForbidden is the root of all authorization denials.
	// Check against this to catch both role and ownership denials.
	ErrForbidden = errors.New("forbidden")

	// ErrOwnershipDenied indicates the actor is neither the resource's
	// author nor an administrator.
	ErrOwnershipDenied = fmt.Errorf("%w: not the resource owner", ErrForbidden)

	// ErrRoleDenied indicates the actor's role does not meet the
	// operation's requirement.
	ErrRoleDenied = fmt.Errorf("%w: insufficient role", ErrForbidden)

	// ErrInvalidCredentials indicates a failed email/password login.
	// Deliberately covers both "no such user" and "wrong password".
	ErrInvalidCredentials = errors.New("invalid credentials")
)
