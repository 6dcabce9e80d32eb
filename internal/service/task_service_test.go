package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/cache"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/mocks"
	"github.com/taskboard/taskboard/internal/service/auth"
	"github.com/taskboard/taskboard/internal/store"
)

// taskServiceFixture bundles a TaskService with its mock stores and caches
// so tests can inspect interactions.
type taskServiceFixture struct {
	svc          TaskService
	taskStore    *mocks.MockTaskStore
	commentStore *mocks.MockCommentStore
	userStore    *mocks.MockUserStore
	taskCache    *cache.Region[domain.Task]
	commentCache *cache.Region[domain.Comment]
}

func newTaskServiceFixture(t *testing.T) *taskServiceFixture {
	t.Helper()

	f := &taskServiceFixture{
		taskStore:    &mocks.MockTaskStore{},
		commentStore: &mocks.MockCommentStore{},
		userStore:    &mocks.MockUserStore{},
		taskCache:    cache.NewRegion[domain.Task]("tasks", 100, time.Minute, nil),
		commentCache: cache.NewRegion[domain.Comment]("comments", 100, time.Minute, nil),
	}

	svc, err := NewTaskService(f.taskStore, f.commentStore, f.userStore, f.taskCache, f.commentCache, nil)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func testUser(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Test", "User", email, "secret1", role)
	require.NoError(t, err)
	return user
}

func testTask(t *testing.T, author *domain.User) *domain.Task {
	t.Helper()
	task, err := domain.NewTask("Write report", "Quarterly numbers", domain.TaskPriorityMedium, author.Ref())
	require.NoError(t, err)
	return task
}

func principalOf(user *domain.User) auth.Principal {
	return auth.PrincipalFromUser(user)
}

func TestTaskService_CreateTask(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	author := testUser(t, "alice@example.com", domain.RoleUser)
	f.userStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		return author, nil
	}

	task, err := f.svc.CreateTask(context.Background(), principalOf(author), CreateTaskInput{
		Title:    "Write report",
		Priority: domain.TaskPriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.Equal(t, author.Email, task.Author.Email)
	assert.Equal(t, 1, f.taskStore.CreateCalls)

	// The created task is immediately readable from the cache.
	cached, ok := f.taskCache.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, task.Title, cached.Title)
}

func TestTaskService_GetTask_ReadThrough(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	author := testUser(t, "alice@example.com", domain.RoleUser)
	task := testTask(t, author)

	f.taskStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
		return task, nil
	}

	// First read misses and loads from the store.
	got, err := f.svc.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, 1, f.taskStore.GetByIDCalls)

	// Second read is served from the cache.
	got, err = f.svc.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, 1, f.taskStore.GetByIDCalls, "cached read must not hit the store")
}

func TestTaskService_GetTask_NotFound(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	_, err := f.svc.GetTask(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskService_UpdateTask_Ownership(t *testing.T) {
	t.Parallel()

	author := testUser(t, "alice@example.com", domain.RoleUser)
	admin := testUser(t, "admin@example.com", domain.RoleAdmin)
	stranger := testUser(t, "bob@example.com", domain.RoleUser)

	tests := []struct {
		name    string
		actor   *domain.User
		wantErr error
	}{
		{name: "author may update", actor: author},
		{name: "admin may update any task", actor: admin},
		{name: "other user is denied", actor: stranger, wantErr: ErrOwnershipDenied},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTaskServiceFixture(t)
			task := testTask(t, author)
			f.taskStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return task, nil
			}

			updated, err := f.svc.UpdateTask(context.Background(), principalOf(tc.actor), task.ID, UpdateTaskInput{
				Title:       "Revised report",
				Description: task.Description,
				Status:      domain.TaskStatusInProgress,
				Priority:    domain.TaskPriorityLow,
			})

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, ErrForbidden)
				assert.Equal(t, 0, f.taskStore.UpdateCalls)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Revised report", updated.Title)
			assert.Equal(t, domain.TaskStatusInProgress, updated.Status)
			assert.Equal(t, 1, f.taskStore.UpdateCalls)

			// The cache holds the committed state.
			cached, ok := f.taskCache.Get(task.ID)
			require.True(t, ok)
			assert.Equal(t, "Revised report", cached.Title)
		})
	}
}

func TestTaskService_AssignTask(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	author := testUser(t, "alice@example.com", domain.RoleUser)
	admin := testUser(t, "admin@example.com", domain.RoleAdmin)
	assignee := testUser(t, "bob@example.com", domain.RoleUser)
	task := testTask(t, author)

	f.taskStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
		return task, nil
	}
	f.userStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		if id == assignee.ID {
			return assignee, nil
		}
		return nil, store.ErrUserNotFound
	}

	updated, err := f.svc.AssignTask(context.Background(), principalOf(admin), task.ID, assignee.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Assignee)
	assert.Equal(t, assignee.Email, updated.Assignee.Email)

	_, err = f.svc.AssignTask(context.Background(), principalOf(admin), task.ID, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestTaskService_DeleteTask_EvictsCache(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	author := testUser(t, "alice@example.com", domain.RoleUser)
	task := testTask(t, author)

	f.taskStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
		return task, nil
	}
	f.taskCache.Put(task.ID, *task)

	err := f.svc.DeleteTask(context.Background(), principalOf(author), task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, f.taskStore.DeleteCalls)

	_, ok := f.taskCache.Get(task.ID)
	assert.False(t, ok, "deleted task must not linger in the cache")
}

func TestTaskService_DeleteTask_RepeatDelete(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	author := testUser(t, "alice@example.com", domain.RoleUser)
	task := testTask(t, author)

	// The task is gone from the store but a stale snapshot sits in the
	// cache. The repeat delete reports not found and still clears it.
	f.taskCache.Put(task.ID, *task)

	err := f.svc.DeleteTask(context.Background(), principalOf(author), task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	_, ok := f.taskCache.Get(task.ID)
	assert.False(t, ok)
}

func TestTaskService_DeleteTask_OwnershipDenied(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	author := testUser(t, "alice@example.com", domain.RoleUser)
	stranger := testUser(t, "bob@example.com", domain.RoleUser)
	task := testTask(t, author)

	f.taskStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
		return task, nil
	}

	err := f.svc.DeleteTask(context.Background(), principalOf(stranger), task.ID)
	assert.ErrorIs(t, err, ErrOwnershipDenied)
	assert.Equal(t, 0, f.taskStore.DeleteCalls)
}

func TestTaskService_DeleteTaskComment(t *testing.T) {
	t.Parallel()

	author := testUser(t, "alice@example.com", domain.RoleUser)
	stranger := testUser(t, "bob@example.com", domain.RoleUser)
	task := testTask(t, author)
	comment, err := domain.NewComment(task.ID, "Looks good", author.Ref())
	require.NoError(t, err)

	t.Run("author deletes own comment", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		f.commentStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return comment, nil
		}
		f.commentCache.Put(comment.ID, *comment)

		err := f.svc.DeleteTaskComment(context.Background(), principalOf(author), task.ID, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, f.commentStore.DeleteCalls)

		_, ok := f.commentCache.Get(comment.ID)
		assert.False(t, ok)
	})

	t.Run("comment on a different task reads as not found", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		f.commentStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return comment, nil
		}

		err := f.svc.DeleteTaskComment(context.Background(), principalOf(author), uuid.New(), comment.ID)
		assert.ErrorIs(t, err, store.ErrCommentNotFound)
		assert.Equal(t, 0, f.commentStore.DeleteCalls)
	})

	t.Run("non-author is denied", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		f.commentStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return comment, nil
		}

		err := f.svc.DeleteTaskComment(context.Background(), principalOf(stranger), task.ID, comment.ID)
		assert.ErrorIs(t, err, ErrOwnershipDenied)
	})
}

func TestTaskService_Pagination(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	author := testUser(t, "alice@example.com", domain.RoleUser)

	var gotOffset, gotLimit int
	f.taskStore.ListFn = func(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
		gotOffset, gotLimit = offset, limit
		return nil, nil
	}

	_, err := f.svc.GetAllTasks(context.Background(), 3, 25)
	require.NoError(t, err)
	assert.Equal(t, 75, gotOffset)
	assert.Equal(t, 25, gotLimit)

	f.taskStore.ListByAuthorFn = func(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]*domain.Task, error) {
		assert.Equal(t, author.ID, authorID)
		return nil, nil
	}
	_, err = f.svc.GetUserTasks(context.Background(), principalOf(author), 0, 10)
	require.NoError(t, err)
}
