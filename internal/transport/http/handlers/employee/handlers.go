package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bizadmin/internal/domain/admin"
	"bizadmin/internal/domain/employee"
	"bizadmin/internal/domain/messaging"
	"bizadmin/internal/transport/http/api"
	"bizadmin/internal/transport/http/middleware"
	"bizadmin/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/me", func(r chi.Router) {
		r.Get("/", h.handleCurrent)
		r.Put("/profile", h.handleUpdateProfile)
		r.Get("/tasks", h.handleTasks)
		r.Post("/tasks/{taskID}/status", h.handleTaskStatus)
		r.Get("/schedule", h.handleSchedule)
		r.Get("/messages", h.handleMessages)
		r.Get("/notifications", h.handleNotifications)
		r.Post("/messages", h.handleSendMessage)
		r.Post("/logout", h.handleLogout)
	})
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Current(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch employee.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, h.Service.UpdateProfile(r.Context(), patch), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTasks(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.MyTasks(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
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
		switch {
		case errors.Is(err, admin.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, admin.ErrInvalidInput):
			api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, task, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.MySchedule(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMessages(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.MyMessages(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.MyNotifications(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("content", payload.Content, "content is required")
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	msg, err := h.Service.SendMessage(r.Context(), payload.Content)
	if err != nil {
		if errors.Is(err, messaging.ErrEmptyMessage) {
			api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, msg, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.Service.Logout(r.Context())
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}
