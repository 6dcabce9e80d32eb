package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// Role is optional; a non-admin caller requesting ADMIN is downgraded to
// USER rather than rejected.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6,max=72"`
	Role      string `json:"role"       validate:"omitempty,oneof=USER ADMIN"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`
}

// UserResponse defines the representation of a user account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserShortResponse is the compact user representation embedded in task and
// comment responses.
type UserShortResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Priority    string `json:"priority"    validate:"required,oneof=HIGH MEDIUM LOW"`
}

// UpdateTaskRequest defines the payload for updating a task.
type UpdateTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Status      string `json:"status"      validate:"required,oneof=PENDING IN_PROGRESS COMPLETE"`
	Priority    string `json:"priority"    validate:"required,oneof=HIGH MEDIUM LOW"`
}

// TaskResponse defines the representation of a task.
type TaskResponse struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	Priority    string             `json:"priority"`
	Author      UserShortResponse  `json:"author"`
	Assignee    *UserShortResponse `json:"assignee,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// AddCommentRequest defines the payload for adding a comment to a task.
type AddCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// CommentResponse defines the representation of a comment.
type CommentResponse struct {
	ID        uuid.UUID         `json:"id"`
	TaskID    uuid.UUID         `json:"task_id"`
	Content   string            `json:"content"`
	Author    UserShortResponse `json:"author"`
	CreatedAt time.Time         `json:"created_at"`
}

// newUserResponse maps a domain user to its API representation.
func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// newUserShortResponse maps an embedded user reference.
func newUserShortResponse(ref domain.UserRef) UserShortResponse {
	return UserShortResponse{
		ID:        ref.ID,
		FirstName: ref.FirstName,
		LastName:  ref.LastName,
		Email:     ref.Email,
	}
}

// newTaskResponse maps a domain task to its API representation.
func newTaskResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		Author:      newUserShortResponse(task.Author),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Assignee != nil {
		assignee := newUserShortResponse(*task.Assignee)
		resp.Assignee = &assignee
	}
	return resp
}

// newTaskListResponse maps a list of tasks. It returns an empty slice, not
// nil, so an empty page serializes as [].
func newTaskListResponse(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, newTaskResponse(task))
	}
	return responses
}

// newCommentResponse maps a domain comment to its API representation.
func newCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		Content:   comment.Content,
		Author:    newUserShortResponse(comment.Author),
		CreatedAt: comment.CreatedAt,
	}
}

// newCommentListResponse maps a list of comments.
func newCommentListResponse(comments []*domain.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, newCommentResponse(comment))
	}
	return responses
}
