package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/handler/http/response"
)

type TrackingHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	Pause(w http.ResponseWriter, r *http.Request)
	Resume(w http.ResponseWriter, r *http.Request)
	Stop(w http.ResponseWriter, r *http.Request)
	Heartbeat(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	SetInterval(w http.ResponseWriter, r *http.Request)
	ListSessions(w http.ResponseWriter, r *http.Request)
	ListScreenshots(w http.ResponseWriter, r *http.Request)
}

type TrackingHandlerImpl struct {
	trackingService tracking.TrackingService
}

func NewTrackingHandler(trackingService tracking.TrackingService) TrackingHandler {
	return &TrackingHandlerImpl{trackingService: trackingService}
}

// Start implements TrackingHandler.
func (h *TrackingHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.trackingService.Start(r.Context())
	if err != nil {
		slog.Error("Start tracking service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Tracking started", "session_id", session.ID)
	response.Created(w, "Tracking started", session)
}

// Pause implements TrackingHandler.
func (h *TrackingHandlerImpl) Pause(w http.ResponseWriter, r *http.Request) {
	if err := h.trackingService.Pause(r.Context()); err != nil {
		slog.Error("Pause tracking service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Tracking paused", nil)
}

// Resume implements TrackingHandler.
func (h *TrackingHandlerImpl) Resume(w http.ResponseWriter, r *http.Request) {
	if err := h.trackingService.Resume(r.Context()); err != nil {
		slog.Error("Resume tracking service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Tracking resumed", nil)
}

// Stop implements TrackingHandler.
func (h *TrackingHandlerImpl) Stop(w http.ResponseWriter, r *http.Request) {
	session, err := h.trackingService.Stop(r.Context())
	if err != nil {
		slog.Error("Stop tracking service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Tracking stopped", "session_id", session.ID, "total_seconds", session.TotalSeconds)
	response.SuccessWithMessage(w, "Tracking stopped", session)
}

// Heartbeat implements TrackingHandler.
func (h *TrackingHandlerImpl) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var heartbeatReq tracking.HeartbeatRequest

	if err := json.NewDecoder(r.Body).Decode(&heartbeatReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.trackingService.Heartbeat(r.Context(), heartbeatReq); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, nil)
}

// Status implements TrackingHandler.
func (h *TrackingHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.trackingService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, status)
}

// SetInterval implements TrackingHandler.
func (h *TrackingHandlerImpl) SetInterval(w http.ResponseWriter, r *http.Request) {
	var intervalReq tracking.UpdateIntervalRequest

	if err := json.NewDecoder(r.Body).Decode(&intervalReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.trackingService.SetInterval(r.Context(), intervalReq); err != nil {
		slog.Error("SetInterval service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Screenshot interval updated", nil)
}

// ListSessions implements TrackingHandler.
func (h *TrackingHandlerImpl) ListSessions(w http.ResponseWriter, r *http.Request) {
	req := tracking.ListSessionsRequest{
		UserID:    r.URL.Query().Get("user_id"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	sessions, err := h.trackingService.Sessions(r.Context(), req)
	if err != nil {
		slog.Error("ListSessions service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, sessions)
}

// ListScreenshots implements TrackingHandler.
func (h *TrackingHandlerImpl) ListScreenshots(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	screenshots, err := h.trackingService.Screenshots(r.Context(), sessionID)
	if err != nil {
		slog.Error("ListScreenshots service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, screenshots)
}
