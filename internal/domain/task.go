package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusComplete   TaskStatus = "COMPLETE"
)

// ParseTaskStatus converts a string into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusComplete:
		return TaskStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
}

// TaskPriority is the urgency level of a task.
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityLow    TaskPriority = "LOW"
)

// ParseTaskPriority converts a string into a TaskPriority.
func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(s) {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return TaskPriority(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskPriority, s)
	}
}

// UserRef is a denormalized reference to a user embedded in a task or
// comment snapshot. The email is what ownership decisions compare against.
type UserRef struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
}

// Ref returns a UserRef for the given user.
func (u *User) Ref() UserRef {
	return UserRef{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

// Task represents a unit of work tracked by the system.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Author      UserRef      `json:"author"`
	Assignee    *UserRef     `json:"assignee,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a new Task authored by the given user.
// New tasks always start in the PENDING state.
func NewTask(title, description string, priority TaskPriority, author UserRef) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      TaskStatusPending,
		Priority:    priority,
		Author:      author,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	}
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if _, err := ParseTaskStatus(string(t.Status)); err != nil {
		return err
	}
	if _, err := ParseTaskPriority(string(t.Priority)); err != nil {
		return err
	}
	if t.Author.ID == uuid.Nil {
		return fmt.Errorf("%w: task author cannot be empty", ErrValidation)
	}
	return nil
}
