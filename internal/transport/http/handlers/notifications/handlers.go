package notificationshandler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bizadmin/internal/domain/notifications"
	"bizadmin/internal/transport/http/api"
	"bizadmin/internal/transport/http/middleware"
	"bizadmin/internal/transport/http/shared"
)

type Handler struct {
	Service *notifications.Service
}

func NewHandler(service *notifications.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{category}", h.handleListCategory)
		r.Post("/{category}/read", h.handleMarkRead)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.List(r.Context()), middleware.GetRequestID(r.Context()))
}

// handleListCategory pages through one category; the store itself never
// trims notifications, so large categories are sliced here.
func (h *Handler) handleListCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	items, err := h.Service.ListCategory(r.Context(), category)
	if err != nil {
		if errors.Is(err, notifications.ErrUnknownCategory) {
			api.Fail(w, http.StatusNotFound, "unknown_category", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", middleware.GetRequestID(r.Context()))
		return
	}

	total := len(items)
	page := shared.ParsePagination(r, 100, 500)
	if page.Offset >= total {
		items = nil
	} else {
		end := min(page.Offset+page.Limit, total)
		items = items[page.Offset:end]
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	h.Service.MarkRead(r.Context(), chi.URLParam(r, "category"))
	api.Success(w, map[string]string{"status": "read"}, middleware.GetRequestID(r.Context()))
}
