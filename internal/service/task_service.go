package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/cache"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/service/auth"
	"github.com/taskboard/taskboard/internal/store"
)

// CreateTaskInput carries the caller-supplied fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
}

// UpdateTaskInput carries the caller-supplied fields of a task update.
type UpdateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
}

// TaskService provides task management operations. Mutating operations
// enforce the ownership gate: only the task's author or an administrator
// may change or delete a task, regardless of which endpoint-level role
// gate already passed.
type TaskService interface {
	// CreateTask creates a task authored by the actor.
	CreateTask(ctx context.Context, actor auth.Principal, input CreateTaskInput) (*domain.Task, error)

	// GetTask retrieves a task by ID, reading through the task cache.
	// Returns store.ErrTaskNotFound if the task does not exist.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetAllTasks retrieves a page of all tasks.
	GetAllTasks(ctx context.Context, page, size int) ([]*domain.Task, error)

	// GetUserTasks retrieves a page of the actor's own tasks.
	GetUserTasks(ctx context.Context, actor auth.Principal, page, size int) ([]*domain.Task, error)

	// UpdateTask updates a task's title, description, status, and priority.
	// Returns ErrOwnershipDenied unless the actor is the author or an admin.
	UpdateTask(ctx context.Context, actor auth.Principal, id uuid.UUID, input UpdateTaskInput) (*domain.Task, error)

	// AssignTask sets the task's assignee. Returns store.ErrTaskNotFound
	// or store.ErrUserNotFound when either side is absent.
	AssignTask(ctx context.Context, actor auth.Principal, taskID, userID uuid.UUID) (*domain.Task, error)

	// DeleteTask removes a task. Returns ErrOwnershipDenied unless the
	// actor is the author or an admin; returns store.ErrTaskNotFound on a
	// repeat delete. The cache entry is evicted on every outcome.
	DeleteTask(ctx context.Context, actor auth.Principal, id uuid.UUID) error

	// DeleteTaskComment removes a comment addressed through its task.
	// The comment must belong to the given task and the actor must be the
	// comment's author or an admin; either check failing denies.
	DeleteTaskComment(ctx context.Context, actor auth.Principal, taskID, commentID uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore    store.TaskStore
	commentStore store.CommentStore
	userStore    store.UserStore
	taskCache    *cache.Region[domain.Task]
	commentCache *cache.Region[domain.Comment]
	logger       *slog.Logger
}

// Ensure taskServiceImpl implements TaskService interface
var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
// If logger is nil, the default logger is used.
func NewTaskService(
	taskStore store.TaskStore,
	commentStore store.CommentStore,
	userStore store.UserStore,
	taskCache *cache.Region[domain.Task],
	commentCache *cache.Region[domain.Comment],
	logger *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("taskStore cannot be nil")
	}
	if commentStore == nil {
		return nil, fmt.Errorf("commentStore cannot be nil")
	}
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if taskCache == nil {
		return nil, fmt.Errorf("taskCache cannot be nil")
	}
	if commentCache == nil {
		return nil, fmt.Errorf("commentCache cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:    taskStore,
		commentStore: commentStore,
		userStore:    userStore,
		taskCache:    taskCache,
		commentCache: commentCache,
		logger:       logger.With(slog.String("component", "task_service")),
	}, nil
}

// authorizeMutation is the resource-level ownership gate: the actor must be
// the author identified by authorEmail or an administrator. The decision is
// derived fresh from the resource snapshot on every call and never cached.
func (s *taskServiceImpl) authorizeMutation(
	actor auth.Principal,
	authorEmail string,
	resource string,
	resourceID uuid.UUID,
) error {
	if actor.IsAdmin() || actor.Owns(authorEmail) {
		return nil
	}

	s.logger.Warn("ownership denied",
		"actor", actor.Email,
		"resource", resource,
		"resource_id", resourceID)
	return fmt.Errorf("%w: only the %s author or an admin may modify it", ErrOwnershipDenied, resource)
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	actor auth.Principal,
	input CreateTaskInput,
) (*domain.Task, error) {
	author, err := s.userStore.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task author: %w", err)
	}

	task, err := domain.NewTask(input.Title, input.Description, input.Priority, author.Ref())
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, err
	}

	s.taskCache.Put(task.ID, *task)
	s.logger.Info("task created", "task_id", task.ID, "author", actor.Email)
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskCache.GetOrLoad(ctx, id, func(ctx context.Context) (domain.Task, error) {
		loaded, err := s.taskStore.GetByID(ctx, id)
		if err != nil {
			return domain.Task{}, err
		}
		return *loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetAllTasks implements TaskService.GetAllTasks
func (s *taskServiceImpl) GetAllTasks(ctx context.Context, page, size int) ([]*domain.Task, error) {
	return s.taskStore.List(ctx, page*size, size)
}

// GetUserTasks implements TaskService.GetUserTasks
func (s *taskServiceImpl) GetUserTasks(
	ctx context.Context,
	actor auth.Principal,
	page, size int,
) ([]*domain.Task, error) {
	return s.taskStore.ListByAuthor(ctx, actor.ID, page*size, size)
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	actor auth.Principal,
	id uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	// Mutations read the store directly; the cache is for reads only.
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeMutation(actor, task.Author.Email, "task", id); err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Status = input.Status
	task.Priority = input.Priority

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}

	s.taskCache.Put(task.ID, *task)
	s.logger.Info("task updated", "task_id", id, "actor", actor.Email)
	return task, nil
}

// AssignTask implements TaskService.AssignTask
func (s *taskServiceImpl) AssignTask(
	ctx context.Context,
	actor auth.Principal,
	taskID, userID uuid.UUID,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	assignee, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ref := assignee.Ref()
	task.Assignee = &ref

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}

	s.taskCache.Put(task.ID, *task)
	s.logger.Info("task assigned",
		"task_id", taskID,
		"assignee_id", userID,
		"actor", actor.Email)
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, actor auth.Principal, id uuid.UUID) error {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			// Keep delete idempotent from the cache's point of view: a
			// repeat delete must leave no stale entry behind.
			s.taskCache.Evict(id)
		}
		return err
	}

	if err := s.authorizeMutation(actor, task.Author.Email, "task", id); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.taskCache.Evict(id)
		}
		return err
	}

	s.taskCache.Evict(id)
	s.logger.Info("task deleted", "task_id", id, "actor", actor.Email)
	return nil
}

// DeleteTaskComment implements TaskService.DeleteTaskComment
func (s *taskServiceImpl) DeleteTaskComment(
	ctx context.Context,
	actor auth.Principal,
	taskID, commentID uuid.UUID,
) error {
	comment, err := s.commentStore.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	// The comment must belong to the task named in the request. A comment
	// addressed through the wrong task does not exist from the caller's
	// point of view.
	if comment.TaskID != taskID {
		s.logger.Warn("comment does not belong to task",
			"comment_id", commentID,
			"task_id", taskID,
			"actor", actor.Email)
		return store.ErrCommentNotFound
	}

	if err := s.authorizeMutation(actor, comment.Author.Email, "comment", commentID); err != nil {
		return err
	}

	if err := s.commentStore.Delete(ctx, commentID); err != nil {
		return err
	}

	s.commentCache.Evict(commentID)
	s.logger.Info("comment deleted",
		"comment_id", commentID,
		"task_id", taskID,
		"actor", actor.Email)
	return nil
}
