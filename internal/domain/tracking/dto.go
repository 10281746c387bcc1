package tracking

import (
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/validator"
)

// HeartbeatRequest carries the client's elapsed-seconds counter. The
// client tick owns monotonicity; the server only rejects negatives.
type HeartbeatRequest struct {
	ElapsedSeconds int64 `json:"elapsed_seconds"`
}

func (r *HeartbeatRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ElapsedSeconds < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "elapsed_seconds",
			Message: "elapsed_seconds must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateIntervalRequest changes the screenshot capture cadence for the
// calling user.
type UpdateIntervalRequest struct {
	ScreenshotIntervalSeconds int `json:"screenshot_interval_seconds"`
}

func (r *UpdateIntervalRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidInterval(r.ScreenshotIntervalSeconds) {
		errs = append(errs, validator.ValidationError{
			Field:   "screenshot_interval_seconds",
			Message: "screenshot_interval_seconds must be between 30 and 3600",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// StatusResponse is the tracker state as seen by the agent and the web
// dashboard.
type StatusResponse struct {
	State            string  `json:"state"`
	SessionID        *string `json:"session_id,omitempty"`
	StartTime        *string `json:"start_time,omitempty"`
	ElapsedSeconds   int64   `json:"elapsed_seconds"`
	ScreenshotCount  int     `json:"screenshot_count"`
	LastScreenshotAt *string `json:"last_screenshot_at,omitempty"`
	InactivityWarned bool    `json:"inactivity_warned"`
}

// SessionResponse represents a work session in API responses
type SessionResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	TotalSeconds    int64   `json:"total_seconds"`
	IsActive        bool    `json:"is_active"`
	ScreenshotCount int     `json:"screenshot_count"`
}

// ScreenshotResponse represents a screenshot in API responses
type ScreenshotResponse struct {
	ID         string `json:"id"`
	SessionID  string `json:"session_id"`
	CapturedAt string `json:"captured_at"`
	ImageURL   string `json:"image_url"`
}

// ListSessionsRequest filters the session history
type ListSessionsRequest struct {
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *ListSessionsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.StartDate) {
		if _, valid := validator.IsValidDate(r.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if !validator.IsEmpty(r.EndDate) {
		if _, valid := validator.IsValidDate(r.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToSessionResponse converts a WorkSession to its API representation
func ToSessionResponse(s WorkSession) SessionResponse {
	resp := SessionResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		StartTime:       s.StartTime.Format("2006-01-02T15:04:05Z07:00"),
		TotalSeconds:    s.TotalSeconds,
		IsActive:        s.IsActive,
		ScreenshotCount: s.ScreenshotCount,
	}
	if s.EndTime != nil {
		end := s.EndTime.Format("2006-01-02T15:04:05Z07:00")
		resp.EndTime = &end
	}
	return resp
}

// ToScreenshotResponse converts a Screenshot to its API representation
func ToScreenshotResponse(s Screenshot) ScreenshotResponse {
	return ScreenshotResponse{
		ID:         s.ID,
		SessionID:  s.SessionID,
		CapturedAt: s.CapturedAt.Format("2006-01-02T15:04:05Z07:00"),
		ImageURL:   s.ImageURL,
	}
}
