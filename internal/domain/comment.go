package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Comment represents a remark attached to a task.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	Content   string    `json:"content"`
	Author    UserRef   `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment creates a new Comment on the given task, authored by the given user.
func NewComment(taskID uuid.UUID, content string, author UserRef) (*Comment, error) {
	comment := &Comment{
		ID:        uuid.New(),
		TaskID:    taskID,
		Content:   content,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	return comment, nil
}

// Validate checks if the Comment has valid data.
func (c *Comment) Validate() error {
	if c.ID == uuid.Nil {
		return fmt.Errorf("%w: comment ID cannot be empty", ErrValidation)
	}
	if c.TaskID == uuid.Nil {
		return fmt.Errorf("%w: comment task ID cannot be empty", ErrValidation)
	}
	if c.Content == "" {
		return ErrEmptyContent
	}
	if c.Author.ID == uuid.Nil {
		return fmt.Errorf("%w: comment author cannot be empty", ErrValidation)
	}
	return nil
}
