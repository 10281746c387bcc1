package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/report"
	"github.com/saudkhanbpk/ems-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	ExportPDF(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func rangeFromQuery(r *http.Request) report.RangeRequest {
	return report.RangeRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
		UserID:    r.URL.Query().Get("user_id"),
	}
}

// Summary implements ReportHandler.
func (h *ReportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.Summary(r.Context(), rangeFromQuery(r))
	if err != nil {
		slog.Error("Summary service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// ExportPDF implements ReportHandler.
func (h *ReportHandlerImpl) ExportPDF(w http.ResponseWriter, r *http.Request) {
	req := rangeFromQuery(r)

	pdf, err := h.reportService.ExportPDF(r.Context(), req)
	if err != nil {
		slog.Error("ExportPDF service error", "error", err)
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("work-summary-%s-%s.pdf", req.StartDate, req.EndDate)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		slog.Error("Failed to write pdf response", "error", err)
	}
}
