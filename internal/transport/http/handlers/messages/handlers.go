package messageshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bizadmin/internal/domain/messaging"
	"bizadmin/internal/transport/http/api"
	"bizadmin/internal/transport/http/middleware"
	"bizadmin/internal/transport/http/shared"
)

type Handler struct {
	Service *messaging.Service
}

func NewHandler(service *messaging.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/chats", func(r chi.Router) {
		r.Get("/", h.handleListChats)
		r.Post("/", h.handleStartChat)
		r.Get("/{chatID}/messages", h.handleChatMessages)
		r.Post("/{chatID}/messages", h.handleSend)
		r.Post("/{chatID}/read", h.handleMarkRead)
	})
}

func chatIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
	return id, err == nil
}

func (h *Handler) handleListChats(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Chats(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStartChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EmployeeID int64 `json:"employeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	chat, err := h.Service.StartChat(r.Context(), payload.EmployeeID)
	if err != nil {
		if errors.Is(err, messaging.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, chat, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleChatMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := chatIDParam(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "chat id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}

	msgs, err := h.Service.ChatMessages(r.Context(), id)
	if err != nil {
		if errors.Is(err, messaging.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, msgs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	id, ok := chatIDParam(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "chat id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}

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

	msg, err := h.Service.SendToChat(r.Context(), id, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, messaging.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", err.Error(), middleware.GetRequestID(r.Context()))
		case errors.Is(err, messaging.ErrEmptyMessage):
			api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, msg, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := chatIDParam(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "chat id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.MarkChatRead(r.Context(), id); err != nil {
		if errors.Is(err, messaging.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "read"}, middleware.GetRequestID(r.Context()))
}
