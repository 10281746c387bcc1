package http

import (
	"log/slog"
	"net/http"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/attendance"
	"github.com/saudkhanbpk/ems-backend-go/internal/handler/http/response"
	attendanceService "github.com/saudkhanbpk/ems-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendanceService.AttendanceService
}

func NewAttendanceHandler(service attendanceService.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: service}
}

// ClockIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	log, err := h.attendanceService.ClockIn(r.Context())
	if err != nil {
		slog.Error("ClockIn service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Clocked in successfully", log)
}

// ClockOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	log, err := h.attendanceService.ClockOut(r.Context())
	if err != nil {
		slog.Error("ClockOut service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clocked out successfully", log)
}

// StartBreak implements AttendanceHandler.
func (h *AttendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.StartBreak(r.Context()); err != nil {
		slog.Error("StartBreak service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Break started", nil)
}

// EndBreak implements AttendanceHandler.
func (h *AttendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.EndBreak(r.Context()); err != nil {
		slog.Error("EndBreak service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Break ended", nil)
}

// Today implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	log, err := h.attendanceService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, log)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := attendance.ListLogsRequest{
		UserID:    r.URL.Query().Get("user_id"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	logs, err := h.attendanceService.List(r.Context(), req)
	if err != nil {
		slog.Error("List attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, logs)
}
