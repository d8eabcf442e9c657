package adminhandler

import (
	"encoding/json"
	"net/http"

	"bizadmin/internal/domain/admin"
	"bizadmin/internal/transport/http/api"
	"bizadmin/internal/transport/http/middleware"
	"bizadmin/internal/transport/http/shared"
)

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Events(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	var input admin.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("title", input.Title, "title is required")
	if input.Date != "" {
		v.Date("date", input.Date)
	}
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	event, err := h.Service.AddEvent(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Created(w, event, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEditEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "eventID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "event id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}

	var patch admin.EventPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	event, err := h.Service.EditEvent(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, event, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRemoveEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "eventID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "event id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.RemoveEvent(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
