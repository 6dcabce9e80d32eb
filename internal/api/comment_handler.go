package api

import (
	"net/http"

	"github.com/taskboard/taskboard/internal/api/shared"
	"github.com/taskboard/taskboard/internal/service"
)

// CommentHandler handles comment-related API requests.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler with the given dependencies.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Add handles POST /comments/{taskID}.
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	taskID, ok := getPathUUID(w, r, "taskID")
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	comment, err := h.commentService.AddComment(r.Context(), principal, taskID, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add comment")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newCommentResponse(comment))
}

// Get handles GET /comments/{commentID}, the admin view of a single comment.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	commentID, ok := getPathUUID(w, r, "commentID")
	if !ok {
		return
	}

	comment, err := h.commentService.GetComment(r.Context(), commentID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load comment")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newCommentResponse(comment))
}

// ListByTask handles GET /comments/task/{taskID}.
func (h *CommentHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := getPathUUID(w, r, "taskID")
	if !ok {
		return
	}

	page, size := getPagination(r)
	comments, err := h.commentService.GetTaskComments(r.Context(), taskID, page, size)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list comments")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newCommentListResponse(comments))
}

// Delete handles DELETE /comments/{commentID}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	commentID, ok := getPathUUID(w, r, "commentID")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(r.Context(), principal, commentID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete comment")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
