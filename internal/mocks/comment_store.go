package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/store"
)

// MockCommentStore implements store.CommentStore for testing
type MockCommentStore struct {
	// CreateFn allows test cases to mock the Create behavior
	CreateFn func(ctx context.Context, comment *domain.Comment) error

	// GetByIDFn allows test cases to mock the GetByID behavior
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	// DeleteFn allows test cases to mock the Delete behavior
	DeleteFn func(ctx context.Context, id uuid.UUID) error

	// ListByTaskFn allows test cases to mock the ListByTask behavior
	ListByTaskFn func(ctx context.Context, taskID uuid.UUID, offset, limit int) ([]*domain.Comment, error)

	// Call counters for verifying interaction with the store
	CreateCalls  int
	GetByIDCalls int
	DeleteCalls  int
}

// Ensure MockCommentStore implements store.CommentStore interface
var _ store.CommentStore = (*MockCommentStore)(nil)

// Create implements the store.CommentStore interface
func (m *MockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	m.CreateCalls++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, comment)
	}
	return nil
}

// GetByID implements the store.CommentStore interface
func (m *MockCommentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	m.GetByIDCalls++
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrCommentNotFound
}

// Delete implements the store.CommentStore interface
func (m *MockCommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalls++
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// ListByTask implements the store.CommentStore interface
func (m *MockCommentStore) ListByTask(
	ctx context.Context,
	taskID uuid.UUID,
	offset, limit int,
) ([]*domain.Comment, error) {
	if m.ListByTaskFn != nil {
		return m.ListByTaskFn(ctx, taskID, offset, limit)
	}
	return nil, nil
}
