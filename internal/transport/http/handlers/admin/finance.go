package adminhandler

import (
	"encoding/json"
	"net/http"

	"bizadmin/internal/domain/admin"
	"bizadmin/internal/transport/http/api"
	"bizadmin/internal/transport/http/middleware"
	"bizadmin/internal/transport/http/shared"
)

func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Finances(r.Context()), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var input admin.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("category", input.Category, "category is required")
	if input.Date != "" {
		v.Date("date", input.Date)
	}
	if v.HasIssues() {
		v.Reject(w, middleware.GetRequestID(r.Context()))
		return
	}

	txn, err := h.Service.AddTransaction(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	api.Created(w, txn, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleFinancialStats(w http.ResponseWriter, r *http.Request) {
	rangeKey := admin.ParseRangeKey(r.URL.Query().Get("range"))
	api.Success(w, h.Service.FinancialStats(r.Context(), rangeKey), middleware.GetRequestID(r.Context()))
}
