package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Implementations return task snapshots with the author and assignee
// references already resolved.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update modifies an existing task's title, description, status,
	// priority, and assignee. Returns ErrTaskNotFound if the task does
	// not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID, along with its
	// comments. Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves tasks ordered by creation time, newest first.
	List(ctx context.Context, offset, limit int) ([]*domain.Task, error)

	// ListByAuthor retrieves the tasks authored by the given user,
	// ordered by creation time, newest first.
	ListByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*domain.Task, error)
}
