package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// CreateFn allows test cases to mock the Create behavior
	CreateFn func(ctx context.Context, task *domain.Task) error

	// GetByIDFn allows test cases to mock the GetByID behavior
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// UpdateFn allows test cases to mock the Update behavior
	UpdateFn func(ctx context.Context, task *domain.Task) error

	// DeleteFn allows test cases to mock the Delete behavior
	DeleteFn func(ctx context.Context, id uuid.UUID) error

	// ListFn allows test cases to mock the List behavior
	ListFn func(ctx context.Context, offset, limit int) ([]*domain.Task, error)

	// ListByAuthorFn allows test cases to mock the ListByAuthor behavior
	ListByAuthorFn func(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*domain.Task, error)

	// Call counters for verifying interaction with the store
	CreateCalls  int
	GetByIDCalls int
	UpdateCalls  int
	DeleteCalls  int
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the store.TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.CreateCalls++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil
}

// GetByID implements the store.TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.GetByIDCalls++
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

// Update implements the store.TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.UpdateCalls++
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return nil
}

// Delete implements the store.TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalls++
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// List implements the store.TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, offset, limit)
	}
	return nil, nil
}

// ListByAuthor implements the store.TaskStore interface
func (m *MockTaskStore) ListByAuthor(
	ctx context.Context,
	authorID uuid.UUID,
	offset, limit int,
) ([]*domain.Task, error) {
	if m.ListByAuthorFn != nil {
		return m.ListByAuthorFn(ctx, authorID, offset, limit)
	}
	return nil, nil
}
