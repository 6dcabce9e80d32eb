package api

import (
	"net/http"

	"github.com/taskboard/taskboard/internal/api/shared"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/service"
)

// TaskHandler handles task-related API requests. Endpoint-level access is
// enforced by the route table's gates; the handler passes the principal to
// the service layer, which applies the per-resource ownership checks.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), principal, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TaskPriority(req.Priority),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newTaskResponse(task))
}

// Get handles GET /tasks/{taskID}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	taskID, ok := getPathUUID(w, r, "taskID")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}

// ListMine handles GET /tasks, returning the caller's own tasks.
func (h *TaskHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	page, size := getPagination(r)
	tasks, err := h.taskService.GetUserTasks(r.Context(), principal, page, size)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponse(tasks))
}

// ListAll handles GET /tasks/all, the admin view over every task.
func (h *TaskHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, size := getPagination(r)
	tasks, err := h.taskService.GetAllTasks(r.Context(), page, size)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponse(tasks))
}

// Update handles PUT /tasks/{taskID}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	taskID, ok := getPathUUID(w, r, "taskID")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), principal, taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}

// Assign handles PUT /tasks/{taskID}/assign/{userID}.
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	taskID, ok := getPathUUID(w, r, "taskID")
	if !ok {
		return
	}
	userID, ok := getPathUUID(w, r, "userID")
	if !ok {
		return
	}

	task, err := h.taskService.AssignTask(r.Context(), principal, taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to assign task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}

// Delete handles DELETE /tasks/{taskID}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	taskID, ok := getPathUUID(w, r, "taskID")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), principal, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// DeleteComment handles DELETE /tasks/{taskID}/comments/{commentID}.
func (h *TaskHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}
	taskID, ok := getPathUUID(w, r, "taskID")
	if !ok {
		return
	}
	commentID, ok := getPathUUID(w, r, "commentID")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTaskComment(r.Context(), principal, taskID, commentID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete comment")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
