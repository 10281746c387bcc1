package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, log AttendanceLog) (AttendanceLog, error)
	GetByID(ctx context.Context, id string) (AttendanceLog, error)
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (AttendanceLog, error)
	ClockOut(ctx context.Context, id string, at time.Time, workSeconds int64) error
	List(ctx context.Context, req ListLogsRequest) ([]AttendanceLog, error)
	// UsersWithoutLog returns user IDs with no attendance log on the
	// given date; the absentee cron marks them absent.
	UsersWithoutLog(ctx context.Context, date time.Time) ([]string, error)
	MarkAbsent(ctx context.Context, userID string, date time.Time) error
}

type BreakRepository interface {
	Create(ctx context.Context, b Break) (Break, error)
	GetOpenByAttendance(ctx context.Context, attendanceID string) (Break, error)
	End(ctx context.Context, id string, at time.Time) error
	ListByAttendance(ctx context.Context, attendanceID string) ([]Break, error)
}
