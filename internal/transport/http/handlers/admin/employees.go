package adminhandler

import (
	"encoding/json"
	"net/http"

	"bizadmin/internal/domain/admin"
	"bizadmin/internal/transport/http/api"
	"bizadmin/internal/transport/http/middleware"
	"bizadmin/internal/transport/http/shared"
)

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Employees(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}
	emp, err := h.Service.EmployeeByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	var input admin.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", input.Name, "name is required")
	if input.JoinDate != "" {
		v.Date("joinDate", input.JoinDate)
	}
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Service.AddEmployee(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEditEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}

	var patch admin.EmployeePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Service.EditEmployee(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRemoveEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.RemoveEmployee(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Status admin.EmployeeStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Service.UpdateEmployeeStatus(r.Context(), id, payload.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}
