package attendance

import "time"

// Status classifies a day's attendance record.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusOnLeave Status = "on_leave"
)

// AttendanceLog is one user's record for one calendar day.
type AttendanceLog struct {
	ID          string
	UserID      string
	Date        time.Time
	ClockIn     *time.Time
	ClockOut    *time.Time
	Status      Status
	WorkSeconds int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	Breaks []Break
}

// Break is a gap inside a clocked-in day.
type Break struct {
	ID           string
	AttendanceID string
	StartTime    time.Time
	EndTime      *time.Time
	CreatedAt    time.Time
}

// Open reports whether the log has a clock-in without a clock-out.
func (a *AttendanceLog) Open() bool {
	return a.ClockIn != nil && a.ClockOut == nil
}
