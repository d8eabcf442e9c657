package reportshandler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizadmin/internal/domain/admin"
	"bizadmin/internal/domain/reports"
	"bizadmin/internal/transport/http/api"
	"bizadmin/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/{reportType}", h.handleReport)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	reportType := chi.URLParam(r, "reportType")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = reports.FormatJSON
	}
	rangeKey := admin.ParseRangeKey(r.URL.Query().Get("range"))

	report, err := h.Service.Build(r.Context(), reportType, rangeKey)
	if err != nil {
		if errors.Is(err, reports.ErrUnknownType) {
			api.Fail(w, http.StatusNotFound, "unknown_report", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "report_failed", "report generation failed", middleware.GetRequestID(r.Context()))
		return
	}

	switch format {
	case reports.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case reports.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-report.csv", reportType))
	case reports.FormatPDF:
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-report.pdf", reportType))
	default:
		api.Fail(w, http.StatusBadRequest, "unknown_format", "unknown report format", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.Render(w, report, format); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "report rendering failed", middleware.GetRequestID(r.Context()))
	}
}
