package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/store"
)

const commentColumns = `
	c.id, c.task_id, c.content, c.created_at,
	a.id, a.first_name, a.last_name, a.email, a.role
`

const commentFrom = `
	FROM comments c
	JOIN users a ON a.id = c.author_id
`

// CommentStore implements the store.CommentStore interface using a
// PostgreSQL database as the storage backend.
type CommentStore struct {
	db store.DBTX
}

// NewCommentStore creates a new PostgreSQL implementation of the
// CommentStore interface.
func NewCommentStore(db store.DBTX) *CommentStore {
	return &CommentStore{db: db}
}

// Ensure CommentStore implements store.CommentStore interface
var _ store.CommentStore = (*CommentStore)(nil)

// Create implements store.CommentStore.Create
func (s *CommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO comments (id, task_id, content, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		comment.ID,
		comment.TaskID,
		comment.Content,
		comment.Author.ID,
		comment.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrTaskNotFound
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// GetByID implements store.CommentStore.GetByID
func (s *CommentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + commentFrom + ` WHERE c.id = $1`
	comment, err := scanComment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

// Delete implements store.CommentStore.Delete
func (s *CommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrCommentNotFound
	}

	return nil
}

// ListByTask implements store.CommentStore.ListByTask
// Comments are returned oldest first, the order they appear in a thread.
func (s *CommentStore) ListByTask(
	ctx context.Context,
	taskID uuid.UUID,
	offset, limit int,
) ([]*domain.Comment, error) {
	query := `SELECT ` + commentColumns + commentFrom + `
		WHERE c.task_id = $1
		ORDER BY c.created_at ASC
		OFFSET $2 LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, taskID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var comments []*domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}

	return comments, nil
}

// scanComment maps one joined comment row to a domain.Comment.
func scanComment(row rowScanner) (*domain.Comment, error) {
	var comment domain.Comment
	var authorRole string

	err := row.Scan(
		&comment.ID,
		&comment.TaskID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.Author.ID,
		&comment.Author.FirstName,
		&comment.Author.LastName,
		&comment.Author.Email,
		&authorRole,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan comment row: %w", err)
	}

	comment.Author.Role = domain.Role(authorRole)
	return &comment, nil
}
