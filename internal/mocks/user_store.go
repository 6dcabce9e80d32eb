package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// CreateFn allows test cases to mock the Create behavior
	CreateFn func(ctx context.Context, user *domain.User) error

	// GetByIDFn allows test cases to mock the GetByID behavior
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmailFn allows test cases to mock the GetByEmail behavior
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)

	// CountByRoleFn allows test cases to mock the CountByRole behavior
	CountByRoleFn func(ctx context.Context, role domain.Role) (int, error)

	// Call counters for verifying interaction with the store
	CreateCalls     int
	GetByIDCalls    int
	GetByEmailCalls int
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the store.UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.CreateCalls++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

// GetByID implements the store.UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.GetByIDCalls++
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the store.UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.GetByEmailCalls++
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

// CountByRole implements the store.UserStore interface
func (m *MockUserStore) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	if m.CountByRoleFn != nil {
		return m.CountByRoleFn(ctx, role)
	}
	return 0, nil
}
