package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the authorization level granted to a user account.
// Each user holds exactly one role.
type Role string

const (
	// RoleUser is the default role for registered users.
	RoleUser Role = "USER"

	// RoleAdmin grants unrestricted access to all resources.
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts a string into a Role, returning ErrInvalidRole
// for anything other than the two known roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// User represents a registered user of the task tracker.
type User struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, used transiently during registration
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given details and the given role.
// It generates a new UUID for the user ID and sets the timestamps.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The store is responsible for hashing it before persistence.
func NewUser(firstName, lastName, email, password string, role Role) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	}

	if !validEmail(u.Email) {
		return ErrInvalidEmail
	}

	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}

	// A user must carry either a plaintext password pending hashing
	// or an already-hashed one loaded from the store.
	if u.Password != "" {
		if !validPassword(u.Password) {
			return ErrInvalidPassword
		}
	} else if u.HashedPassword == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrValidation)
	}

	return nil
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// validEmail performs basic structural validation of an email address.
// Request-level format checks are handled by the API layer's validator;
// this is the last line of defense before persistence.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domainPart := email[at+1:]
	dot := strings.Index(domainPart, ".")
	return dot > 0 && dot < len(domainPart)-1
}

// validPassword enforces the registration password policy: at least 6
// characters, letters and digits only, with at least one of each.
func validPassword(password string) bool {
	if len(password) < 6 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}
