package adminhandler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bizadmin/internal/domain/admin"
	"bizadmin/internal/transport/http/api"
	"bizadmin/internal/transport/http/middleware"
)

type Handler struct {
	Service *admin.Service
}

func NewHandler(service *admin.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleAddEmployee)
		r.Get("/{employeeID}", h.handleGetEmployee)
		r.Put("/{employeeID}", h.handleEditEmployee)
		r.Delete("/{employeeID}", h.handleRemoveEmployee)
		r.Post("/{employeeID}/status", h.handleEmployeeStatus)
	})
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.handleListTasks)
		r.Post("/", h.handleAddTask)
		r.Post("/{taskID}/status", h.handleTaskStatus)
		r.Delete("/{taskID}", h.handleRemoveTask)
	})
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.handleListEvents)
		r.Post("/", h.handleAddEvent)
		r.Put("/{eventID}", h.handleEditEvent)
		r.Delete("/{eventID}", h.handleRemoveEvent)
	})
	r.Route("/finances", func(r chi.Router) {
		r.Get("/", h.handleListTransactions)
		r.Post("/", h.handleAddTransaction)
		r.Get("/stats", h.handleFinancialStats)
	})
	r.Get("/statistics", h.handleStatistics)
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, admin.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
	case errors.Is(err, admin.ErrInvalidInput), errors.Is(err, admin.ErrNegativeAmount):
		api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
	}
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Statistics(r.Context()), middleware.GetRequestID(r.Context()))
}
