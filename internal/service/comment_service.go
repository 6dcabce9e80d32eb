package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/cache"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/service/auth"
	"github.com/taskboard/taskboard/internal/store"
)

// CommentService provides comment operations on tasks.
type CommentService interface {
	// AddComment attaches a comment authored by the actor to the given
	// task. Returns store.ErrTaskNotFound if the task does not exist.
	AddComment(ctx context.Context, actor auth.Principal, taskID uuid.UUID, content string) (*domain.Comment, error)

	// GetComment retrieves a comment by ID, reading through the comment
	// cache. Returns store.ErrCommentNotFound if the comment does not exist.
	GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	// GetTaskComments retrieves a page of the comments on a task.
	GetTaskComments(ctx context.Context, taskID uuid.UUID, page, size int) ([]*domain.Comment, error)

	// DeleteComment removes a comment. Returns ErrOwnershipDenied unless
	// the actor is the comment's author or an admin.
	DeleteComment(ctx context.Context, actor auth.Principal, id uuid.UUID) error
}

// commentServiceImpl implements the CommentService interface.
type commentServiceImpl struct {
	commentStore store.CommentStore
	taskStore    store.TaskStore
	userStore    store.UserStore
	commentCache *cache.Region[domain.Comment]
	logger       *slog.Logger
}

// Ensure commentServiceImpl implements CommentService interface
var _ CommentService = (*commentServiceImpl)(nil)

// NewCommentService creates a new CommentService.
// If logger is nil, the default logger is used.
func NewCommentService(
	commentStore store.CommentStore,
	taskStore store.TaskStore,
	userStore store.UserStore,
	commentCache *cache.Region[domain.Comment],
	logger *slog.Logger,
) (CommentService, error) {
	if commentStore == nil {
		return nil, fmt.Errorf("commentStore cannot be nil")
	}
	if taskStore == nil {
		return nil, fmt.Errorf("taskStore cannot be nil")
	}
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if commentCache == nil {
		return nil, fmt.Errorf("commentCache cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &commentServiceImpl{
		commentStore: commentStore,
		taskStore:    taskStore,
		userStore:    userStore,
		commentCache: commentCache,
		logger:       logger.With(slog.String("component", "comment_service")),
	}, nil
}

// AddComment implements CommentService.AddComment
func (s *commentServiceImpl) AddComment(
	ctx context.Context,
	actor auth.Principal,
	taskID uuid.UUID,
	content string,
) (*domain.Comment, error) {
	// Verify the task exists before attaching the comment.
	if _, err := s.taskStore.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	author, err := s.userStore.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve comment author: %w", err)
	}

	comment, err := domain.NewComment(taskID, content, author.Ref())
	if err != nil {
		return nil, err
	}

	if err := s.commentStore.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.commentCache.Put(comment.ID, *comment)
	s.logger.Info("comment added",
		"comment_id", comment.ID,
		"task_id", taskID,
		"author", actor.Email)
	return comment, nil
}

// GetComment implements CommentService.GetComment
func (s *commentServiceImpl) GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentCache.GetOrLoad(ctx, id, func(ctx context.Context) (domain.Comment, error) {
		loaded, err := s.commentStore.GetByID(ctx, id)
		if err != nil {
			return domain.Comment{}, err
		}
		return *loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetTaskComments implements CommentService.GetTaskComments
func (s *commentServiceImpl) GetTaskComments(
	ctx context.Context,
	taskID uuid.UUID,
	page, size int,
) ([]*domain.Comment, error) {
	return s.commentStore.ListByTask(ctx, taskID, page*size, size)
}

// DeleteComment implements CommentService.DeleteComment
func (s *commentServiceImpl) DeleteComment(
	ctx context.Context,
	actor auth.Principal,
	id uuid.UUID,
) error {
	comment, err := s.commentStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() && !actor.Owns(comment.Author.Email) {
		s.logger.Warn("ownership denied",
			"actor", actor.Email,
			"resource", "comment",
			"resource_id", id)
		return fmt.Errorf("%w: only the comment author or an admin may delete it", ErrOwnershipDenied)
	}

	if err := s.commentStore.Delete(ctx, id); err != nil {
		return err
	}

	s.commentCache.Evict(id)
	s.logger.Info("comment deleted", "comment_id", id, "actor", actor.Email)
	return nil
}
