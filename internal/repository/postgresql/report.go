package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/report"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// Summarize implements report.ReportRepository. Attendance counters and
// tracked-time aggregates are joined per user over the range.
func (r *reportRepositoryImpl) Summarize(ctx context.Context, start, end time.Time, userID string) ([]report.UserSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.name, u.email,
			   COUNT(a.id) FILTER (WHERE a.status = 'present')  AS days_present,
			   COUNT(a.id) FILTER (WHERE a.status = 'absent')   AS days_absent,
			   COUNT(a.id) FILTER (WHERE a.status = 'on_leave') AS days_on_leave,
			   COALESCE(t.tracked_seconds, 0)  AS tracked_seconds,
			   COALESCE(t.session_count, 0)    AS session_count,
			   COALESCE(t.screenshot_count, 0) AS screenshot_count
		FROM users u
		LEFT JOIN attendance_logs a
			   ON a.user_id = u.id AND a.date BETWEEN $1 AND $2
		LEFT JOIN (
			SELECT s.user_id,
				   SUM(s.total_seconds) AS tracked_seconds,
				   COUNT(DISTINCT s.id) AS session_count,
				   COUNT(sc.id)         AS screenshot_count
			FROM work_sessions s
			LEFT JOIN screenshots sc ON sc.session_id = s.id
			WHERE s.start_time >= $1 AND s.start_time < $2::date + INTERVAL '1 day'
			GROUP BY s.user_id
		) t ON t.user_id = u.id
		WHERE u.role = 'employee'
		  AND ($3::uuid IS NULL OR u.id = $3::uuid)
		GROUP BY u.id, t.tracked_seconds, t.session_count, t.screenshot_count
		ORDER BY u.name
	`

	rows, err := q.Query(ctx, query, start, end, textParam(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to summarize report: %w", err)
	}
	defer rows.Close()

	var summaries []report.UserSummary
	for rows.Next() {
		var s report.UserSummary
		err := rows.Scan(
			&s.UserID,
			&s.Name,
			&s.Email,
			&s.DaysPresent,
			&s.DaysAbsent,
			&s.DaysOnLeave,
			&s.TrackedSeconds,
			&s.SessionCount,
			&s.ScreenshotCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}

		if s.SessionCount > 0 {
			s.AvgSessionSeconds = s.TrackedSeconds / int64(s.SessionCount)
		}
		totalDays := s.DaysPresent + s.DaysAbsent + s.DaysOnLeave
		if totalDays > 0 {
			s.AttendanceRate = float64(s.DaysPresent) / float64(totalDays)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
