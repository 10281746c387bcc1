package attendance

import (
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/validator"
)

type ListLogsRequest struct {
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *ListLogsRequest) Validate() error {
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

type BreakResponse struct {
	ID        string  `json:"id"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time,omitempty"`
}

type LogResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Date        string          `json:"date"`
	ClockIn     *string         `json:"clock_in,omitempty"`
	ClockOut    *string         `json:"clock_out,omitempty"`
	Status      string          `json:"status"`
	WorkSeconds int64           `json:"work_seconds"`
	Breaks      []BreakResponse `json:"breaks,omitempty"`
}

func ToLogResponse(a AttendanceLog) LogResponse {
	resp := LogResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Date:        a.Date.Format("2006-01-02"),
		Status:      string(a.Status),
		WorkSeconds: a.WorkSeconds,
	}
	if a.ClockIn != nil {
		in := a.ClockIn.Format("2006-01-02T15:04:05Z07:00")
		resp.ClockIn = &in
	}
	if a.ClockOut != nil {
		out := a.ClockOut.Format("2006-01-02T15:04:05Z07:00")
		resp.ClockOut = &out
	}
	for _, b := range a.Breaks {
		br := BreakResponse{
			ID:        b.ID,
			StartTime: b.StartTime.Format("2006-01-02T15:04:05Z07:00"),
		}
		if b.EndTime != nil {
			end := b.EndTime.Format("2006-01-02T15:04:05Z07:00")
			br.EndTime = &end
		}
		resp.Breaks = append(resp.Breaks, br)
	}
	return resp
}
