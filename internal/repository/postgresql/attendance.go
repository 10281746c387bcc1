package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/attendance"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, user_id, date, clock_in, clock_out, status, work_seconds, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.AttendanceLog, error) {
	var a attendance.AttendanceLog
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Date,
		&a.ClockIn,
		&a.ClockOut,
		&a.Status,
		&a.WorkSeconds,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

// Create implements attendance.AttendanceRepository. The unique index
// on (user_id, date) rejects a second clock-in for the same day.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_logs (user_id, date, clock_in, status, work_seconds)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + attendanceColumns

	a, err := scanAttendance(q.QueryRow(ctx, query, log.UserID, log.Date, log.ClockIn, log.Status, log.WorkSeconds))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.AttendanceLog{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to create attendance log: %w", err)
	}
	return a, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_logs WHERE id = $1`

	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceLog{}, attendance.ErrLogNotFound
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to get attendance log: %w", err)
	}
	return a, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_logs WHERE user_id = $1 AND date = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceLog{}, attendance.ErrLogNotFound
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to get attendance log: %w", err)
	}
	return a, nil
}

// ClockOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ClockOut(ctx context.Context, id string, at time.Time, workSeconds int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_logs
		SET clock_out = $1, work_seconds = $2, updated_at = NOW()
		WHERE id = $3 AND clock_out IS NULL
		RETURNING id
	`

	var updated string
	err := q.QueryRow(ctx, query, at, workSeconds, id).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrNotClockedIn
		}
		return fmt.Errorf("failed to clock out: %w", err)
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, req attendance.ListLogsRequest) ([]attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_logs
		WHERE ($1::uuid IS NULL OR user_id = $1::uuid)
		  AND ($2::date IS NULL OR date >= $2::date)
		  AND ($3::date IS NULL OR date <= $3::date)
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, textParam(req.UserID), dateParam(req.StartDate), dateParam(req.EndDate))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.AttendanceLog
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		logs = append(logs, a)
	}
	return logs, rows.Err()
}

// UsersWithoutLog implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UsersWithoutLog(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id
		FROM users u
		WHERE u.role = 'employee'
		  AND NOT EXISTS (
			SELECT 1 FROM attendance_logs a WHERE a.user_id = u.id AND a.date = $1
		  )
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to find users without attendance: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkAbsent implements attendance.AttendanceRepository. Conflicts are
// ignored so the absentee cron is safe to rerun.
func (r *attendanceRepositoryImpl) MarkAbsent(ctx context.Context, userID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO attendance_logs (user_id, date, status, work_seconds)
		VALUES ($1, $2, 'absent', 0)
		ON CONFLICT (user_id, date) DO NOTHING
	`, userID, date)
	if err != nil {
		return fmt.Errorf("failed to mark absent: %w", err)
	}
	return nil
}

type breakRepositoryImpl struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepositoryImpl{db: db}
}

// Create implements attendance.BreakRepository.
func (r *breakRepositoryImpl) Create(ctx context.Context, b attendance.Break) (attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO breaks (attendance_id, start_time)
		VALUES ($1, $2)
		RETURNING id, attendance_id, start_time, end_time, created_at
	`

	var created attendance.Break
	err := q.QueryRow(ctx, query, b.AttendanceID, b.StartTime).Scan(
		&created.ID,
		&created.AttendanceID,
		&created.StartTime,
		&created.EndTime,
		&created.CreatedAt,
	)
	if err != nil {
		return attendance.Break{}, fmt.Errorf("failed to create break: %w", err)
	}
	return created, nil
}

// GetOpenByAttendance implements attendance.BreakRepository.
func (r *breakRepositoryImpl) GetOpenByAttendance(ctx context.Context, attendanceID string) (attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, start_time, end_time, created_at
		FROM breaks
		WHERE attendance_id = $1 AND end_time IS NULL
	`

	var b attendance.Break
	err := q.QueryRow(ctx, query, attendanceID).Scan(
		&b.ID,
		&b.AttendanceID,
		&b.StartTime,
		&b.EndTime,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Break{}, attendance.ErrNotOnBreak
		}
		return attendance.Break{}, fmt.Errorf("failed to get open break: %w", err)
	}
	return b, nil
}

// End implements attendance.BreakRepository.
func (r *breakRepositoryImpl) End(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE breaks SET end_time = $1 WHERE id = $2 AND end_time IS NULL RETURNING id`

	var updated string
	err := q.QueryRow(ctx, query, at, id).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrNotOnBreak
		}
		return fmt.Errorf("failed to end break: %w", err)
	}
	return nil
}

// ListByAttendance implements attendance.BreakRepository.
func (r *breakRepositoryImpl) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, attendance_id, start_time, end_time, created_at
		FROM breaks
		WHERE attendance_id = $1
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.Break
	for rows.Next() {
		var b attendance.Break
		err := rows.Scan(
			&b.ID,
			&b.AttendanceID,
			&b.StartTime,
			&b.EndTime,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		breaks = append(breaks, b)
	}
	return breaks, rows.Err()
}
