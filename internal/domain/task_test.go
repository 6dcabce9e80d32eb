package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthorRef() UserRef {
	return UserRef{
		ID:        uuid.New(),
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Role:      RoleUser,
	}
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	task, err := NewTask("Write report", "Quarterly numbers", TaskPriorityHigh, testAuthorRef())
	require.NoError(t, err)

	assert.Equal(t, TaskStatusPending, task.Status, "new tasks always start pending")
	assert.Equal(t, TaskPriorityHigh, task.Priority)
	assert.Nil(t, task.Assignee)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestNewTask_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		title    string
		priority TaskPriority
		author   UserRef
		wantErr  error
	}{
		{
			name:     "empty title",
			title:    "",
			priority: TaskPriorityLow,
			author:   testAuthorRef(),
			wantErr:  ErrEmptyTitle,
		},
		{
			name:     "unknown priority",
			title:    "Write report",
			priority: TaskPriority("URGENT"),
			author:   testAuthorRef(),
			wantErr:  ErrInvalidTaskPriority,
		},
		{
			name:     "missing author",
			title:    "Write report",
			priority: TaskPriorityLow,
			author:   UserRef{},
			wantErr:  ErrValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTask(tc.title, "", tc.priority, tc.author)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"PENDING", "IN_PROGRESS", "COMPLETE"} {
		status, err := ParseTaskStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, TaskStatus(valid), status)
	}

	_, err := ParseTaskStatus("DONE")
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)
}

func TestNewComment(t *testing.T) {
	t.Parallel()

	taskID := uuid.New()
	comment, err := NewComment(taskID, "Looks good", testAuthorRef())
	require.NoError(t, err)
	assert.Equal(t, taskID, comment.TaskID)

	_, err = NewComment(taskID, "", testAuthorRef())
	assert.ErrorIs(t, err, ErrEmptyContent)

	_, err = NewComment(uuid.Nil, "Looks good", testAuthorRef())
	assert.ErrorIs(t, err, ErrValidation)
}
