package report

import (
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/validator"
)

type RangeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	UserID    string `json:"user_id"`
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if _, valid := validator.IsValidDate(r.EndDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UserSummary aggregates one user's attendance and tracked time over a
// date range.
type UserSummary struct {
	UserID            string  `json:"user_id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	DaysPresent       int     `json:"days_present"`
	DaysAbsent        int     `json:"days_absent"`
	DaysOnLeave       int     `json:"days_on_leave"`
	TrackedSeconds    int64   `json:"tracked_seconds"`
	SessionCount      int     `json:"session_count"`
	ScreenshotCount   int     `json:"screenshot_count"`
	AvgSessionSeconds int64   `json:"avg_session_seconds"`
	AttendanceRate    float64 `json:"attendance_rate"`
}

type SummaryResponse struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Users     []UserSummary `json:"users"`
}
