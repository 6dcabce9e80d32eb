package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/store"
)

// taskColumns selects a task row with its author and assignee resolved.
const taskColumns = `
	t.id, t.title, t.description, t.status, t.priority, t.created_at, t.updated_at,
	a.id, a.first_name, a.last_name, a.email, a.role,
	s.id, s.first_name, s.last_name, s.email, s.role
`

const taskFrom = `
	FROM tasks t
	JOIN users a ON a.id = t.author_id
	LEFT JOIN users s ON s.id = t.assignee_id
`

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
type TaskStore struct {
	db store.DBTX
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should
// be initialized and managed by the caller.
func NewTaskStore(db store.DBTX) *TaskStore {
	return &TaskStore{db: db}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (id, title, description, status, priority, author_id, assignee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var assigneeID *uuid.UUID
	if task.Assignee != nil {
		assigneeID = &task.Assignee.ID
	}

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		task.Author.ID,
		assigneeID,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + taskFrom + ` WHERE t.id = $1`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, assignee_id = $5, updated_at = $6
		WHERE id = $7
	`

	var assigneeID *uuid.UUID
	if task.Assignee != nil {
		assigneeID = &task.Assignee.ID
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		assigneeID,
		now,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	task.UpdatedAt = now
	return nil
}

// Delete implements store.TaskStore.Delete
// Comments on the task are removed by the ON DELETE CASCADE constraint.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + taskFrom + `
		ORDER BY t.created_at DESC
		OFFSET $1 LIMIT $2`
	return s.queryTasks(ctx, query, offset, limit)
}

// ListByAuthor implements store.TaskStore.ListByAuthor
func (s *TaskStore) ListByAuthor(
	ctx context.Context,
	authorID uuid.UUID,
	offset, limit int,
) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + taskFrom + `
		WHERE t.author_id = $1
		ORDER BY t.created_at DESC
		OFFSET $2 LIMIT $3`
	return s.queryTasks(ctx, query, authorID, offset, limit)
}

// queryTasks runs a multi-row task query and maps the result set.
func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task rows: %w", err)
	}

	return tasks, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning code.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask maps one joined task row to a domain.Task.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status, priority, authorRole string
	var assigneeID uuid.NullUUID
	var assigneeFirst, assigneeLast, assigneeEmail, assigneeRole sql.NullString

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&priority,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.Author.ID,
		&task.Author.FirstName,
		&task.Author.LastName,
		&task.Author.Email,
		&authorRole,
		&assigneeID,
		&assigneeFirst,
		&assigneeLast,
		&assigneeEmail,
		&assigneeRole,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan task row: %w", err)
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	task.Author.Role = domain.Role(authorRole)

	if assigneeID.Valid {
		task.Assignee = &domain.UserRef{
			ID:        assigneeID.UUID,
			FirstName: assigneeFirst.String,
			LastName:  assigneeLast.String,
			Email:     assigneeEmail.String,
			Role:      domain.Role(assigneeRole.String),
		}
	}

	return &task, nil
}
