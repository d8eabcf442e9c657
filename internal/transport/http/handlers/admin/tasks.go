package adminhandler

import (
	"encoding/json"
	"net/http"

	"bizadmin/internal/domain/admin"
	"bizadmin/internal/transport/http/api"
	"bizadmin/internal/transport/http/middleware"
	"bizadmin/internal/transport/http/shared"
)

func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if assignee := r.URL.Query().Get("assignedTo"); assignee != "" {
		api.Success(w, h.Service.TasksAssignedTo(ctx, assignee), middleware.GetRequestID(ctx))
		return
	}
	api.Success(w, h.Service.Tasks(ctx), middleware.GetRequestID(ctx))
}

func (h *Handler) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var input admin.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("title", input.Title, "title is required")
	v.Required("assignedTo", input.AssignedTo, "assignedTo is required")
	if input.Deadline != "" {
		v.Date("deadline", input.Deadline)
	}
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	task, err := h.Service.AddTask(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Created(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "taskID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "task id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Status admin.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	task, err := h.Service.UpdateTaskStatus(r.Context(), id, payload.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRemoveTask(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "taskID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "task id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.RemoveTask(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
