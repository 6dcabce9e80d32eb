package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/service"
	"github.com/taskboard/taskboard/internal/service/auth"
	"github.com/taskboard/taskboard/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "expired token", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "malformed token", err: auth.ErrMalformedToken, want: http.StatusUnauthorized},
		{name: "unparseable token", err: auth.ErrUnparseableToken, want: http.StatusUnauthorized},
		{name: "invalid credentials", err: service.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "ownership denied", err: service.ErrOwnershipDenied, want: http.StatusForbidden},
		{name: "role denied", err: service.ErrRoleDenied, want: http.StatusForbidden},
		{name: "task not found", err: store.ErrTaskNotFound, want: http.StatusNotFound},
		{name: "comment not found", err: store.ErrCommentNotFound, want: http.StatusNotFound},
		{name: "user not found", err: store.ErrUserNotFound, want: http.StatusNotFound},
		{name: "duplicate email", err: store.ErrEmailExists, want: http.StatusConflict},
		{name: "invalid entity", err: store.ErrInvalidEntity, want: http.StatusBadRequest},
		{name: "domain validation", err: domain.ErrEmptyTitle, want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("database on fire"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage_NeverLeaksInternalText(t *testing.T) {
	t.Parallel()

	internal := errors.New("pq: connection to 10.0.0.5:5432 refused, password=hunter2")
	msg := GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "hunter2")

	// Wrapped sentinel errors keep their safe message.
	wrapped := errors.New("while deleting: " + store.ErrTaskNotFound.Error())
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(wrapped),
		"string matching must not substitute for errors.Is")
	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
}
