package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/sse"
)

type TrackingServiceImpl struct {
	manager *Manager
	tracking.WorkSessionRepository
	tracking.ScreenshotRepository
	hub *sse.Hub
}

func NewTrackingService(
	manager *Manager,
	sessionRepo tracking.WorkSessionRepository,
	screenshotRepo tracking.ScreenshotRepository,
	hub *sse.Hub,
) tracking.TrackingService {
	return &TrackingServiceImpl{
		manager:               manager,
		WorkSessionRepository: sessionRepo,
		ScreenshotRepository:  screenshotRepo,
		hub:                   hub,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", tracking.ErrNoCurrentUser
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", tracking.ErrNoCurrentUser
	}
	return userID, nil
}

// Start implements tracking.TrackingService.
func (s *TrackingServiceImpl) Start(ctx context.Context) (tracking.SessionResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return tracking.SessionResponse{}, err
	}

	session, err := s.manager.Tracker(userID).Start(ctx)
	if err != nil {
		return tracking.SessionResponse{}, err
	}
	s.manager.Monitor(userID).Touch()

	s.hub.Publish(userID, sse.Event{
		Event: sse.EventTrackingStarted,
		Data:  tracking.ToSessionResponse(session),
	})
	return tracking.ToSessionResponse(session), nil
}

// Pause implements tracking.TrackingService.
func (s *TrackingServiceImpl) Pause(ctx context.Context) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.manager.Tracker(userID).Pause()
}

// Resume implements tracking.TrackingService.
func (s *TrackingServiceImpl) Resume(ctx context.Context) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.manager.Tracker(userID).Resume(); err != nil {
		return err
	}
	s.manager.Monitor(userID).Touch()
	return nil
}

// Stop implements tracking.TrackingService.
func (s *TrackingServiceImpl) Stop(ctx context.Context) (tracking.SessionResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return tracking.SessionResponse{}, err
	}

	session, err := s.manager.Tracker(userID).Stop(ctx)
	if err != nil {
		return tracking.SessionResponse{}, err
	}

	s.hub.Publish(userID, sse.Event{
		Event: sse.EventTrackingStopped,
		Data:  tracking.ToSessionResponse(session),
	})
	return tracking.ToSessionResponse(session), nil
}

// Heartbeat implements tracking.TrackingService. The agent's one-second
// tick reports elapsed seconds and doubles as an activity signal.
func (s *TrackingServiceImpl) Heartbeat(ctx context.Context, req tracking.HeartbeatRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.manager.Tracker(userID).UpdateElapsed(req.ElapsedSeconds); err != nil {
		return err
	}
	s.manager.Monitor(userID).Touch()
	return nil
}

// Status implements tracking.TrackingService.
func (s *TrackingServiceImpl) Status(ctx context.Context) (tracking.StatusResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return tracking.StatusResponse{}, err
	}

	snap := s.manager.Tracker(userID).Status()

	resp := tracking.StatusResponse{
		State:           string(snap.State),
		ElapsedSeconds:  snap.Elapsed,
		ScreenshotCount: snap.ScreenshotCount,
	}
	if snap.Session != nil {
		resp.SessionID = &snap.Session.ID
		start := snap.Session.StartTime.Format(time.RFC3339)
		resp.StartTime = &start
	}
	if snap.LastCaptureAt != nil {
		last := snap.LastCaptureAt.Format(time.RFC3339)
		resp.LastScreenshotAt = &last
	}
	if snap.State == tracking.StateRunning {
		resp.InactivityWarned = s.manager.Monitor(userID).ShouldWarn()
	}
	return resp, nil
}

// SetInterval implements tracking.TrackingService.
func (s *TrackingServiceImpl) SetInterval(ctx context.Context, req tracking.UpdateIntervalRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	s.manager.Tracker(userID).SetInterval(time.Duration(req.ScreenshotIntervalSeconds) * time.Second)
	return nil
}

// Sessions implements tracking.TrackingService.
func (s *TrackingServiceImpl) Sessions(ctx context.Context, req tracking.ListSessionsRequest) ([]tracking.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req.UserID == "" {
		req.UserID = userID
	}

	sessions, err := s.WorkSessionRepository.ListByUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	responses := make([]tracking.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, tracking.ToSessionResponse(session))
	}
	return responses, nil
}

// Screenshots implements tracking.TrackingService.
func (s *TrackingServiceImpl) Screenshots(ctx context.Context, sessionID string) ([]tracking.ScreenshotResponse, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, err
	}

	screenshots, err := s.ScreenshotRepository.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list screenshots: %w", err)
	}

	responses := make([]tracking.ScreenshotResponse, 0, len(screenshots))
	for _, shot := range screenshots {
		responses = append(responses, tracking.ToScreenshotResponse(shot))
	}
	return responses, nil
}
