package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/domain"
)

// CommentStore defines the interface for comment data persistence.
type CommentStore interface {
	// Create saves a new comment to the store.
	// Returns ErrTaskNotFound if the referenced task does not exist.
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID retrieves a comment by its unique ID.
	// Returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	// Delete removes a comment from the store by its ID.
	// Returns ErrCommentNotFound if the comment does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByTask retrieves the comments on the given task,
	// ordered by creation time, oldest first.
	ListByTask(ctx context.Context, taskID uuid.UUID, offset, limit int) ([]*domain.Comment, error)
}
