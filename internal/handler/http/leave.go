package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/leave"
	"github.com/saudkhanbpk/ems-backend-go/internal/handler/http/response"
	leaveService "github.com/saudkhanbpk/ems-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leaveService.LeaveService
}

func NewLeaveHandler(service leaveService.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: service}
}

// Create implements LeaveHandler.
func (h *LeaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq leave.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", created)
}

// Decide implements LeaveHandler.
func (h *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var decideReq leave.DecideRequest

	if err := json.NewDecoder(r.Body).Decode(&decideReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	decideReq.ID = chi.URLParam(r, "leaveID")

	decided, err := h.leaveService.Decide(r.Context(), decideReq)
	if err != nil {
		slog.Error("Decide leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request decided", decided)
}

// List implements LeaveHandler.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req := leave.ListRequest{
		UserID: r.URL.Query().Get("user_id"),
		Status: r.URL.Query().Get("status"),
	}

	requests, err := h.leaveService.List(r.Context(), req)
	if err != nil {
		slog.Error("List leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}
