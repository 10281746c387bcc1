package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/database"
)

type workSessionRepositoryImpl struct {
	db *database.DB
}

func NewWorkSessionRepository(db *database.DB) tracking.WorkSessionRepository {
	return &workSessionRepositoryImpl{db: db}
}

const sessionColumns = `id, user_id, start_time, end_time, total_seconds, is_active, created_at, updated_at`

func scanSession(row pgx.Row) (tracking.WorkSession, error) {
	var s tracking.WorkSession
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.StartTime,
		&s.EndTime,
		&s.TotalSeconds,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// Create implements tracking.WorkSessionRepository. The partial unique
// index on (user_id) WHERE is_active guarantees one active session per
// user even when two clients race a check-in.
func (r *workSessionRepositoryImpl) Create(ctx context.Context, session tracking.WorkSession) (tracking.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_sessions (user_id, start_time, total_seconds, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING ` + sessionColumns

	s, err := scanSession(q.QueryRow(ctx, query, session.UserID, session.StartTime, session.TotalSeconds))
	if err != nil {
		if isUniqueViolation(err) {
			return tracking.WorkSession{}, tracking.ErrAlreadyTracking
		}
		return tracking.WorkSession{}, fmt.Errorf("failed to create work session: %w", err)
	}
	return s, nil
}

// GetByID implements tracking.WorkSessionRepository.
func (r *workSessionRepositoryImpl) GetByID(ctx context.Context, id string) (tracking.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.user_id, s.start_time, s.end_time, s.total_seconds, s.is_active, s.created_at, s.updated_at,
			   COUNT(sc.id) AS screenshot_count
		FROM work_sessions s
		LEFT JOIN screenshots sc ON sc.session_id = s.id
		WHERE s.id = $1
		GROUP BY s.id
	`

	var s tracking.WorkSession
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.UserID,
		&s.StartTime,
		&s.EndTime,
		&s.TotalSeconds,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.ScreenshotCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tracking.WorkSession{}, tracking.ErrSessionNotFound
		}
		return tracking.WorkSession{}, fmt.Errorf("failed to get work session: %w", err)
	}
	return s, nil
}

// GetActiveByUser implements tracking.WorkSessionRepository.
func (r *workSessionRepositoryImpl) GetActiveByUser(ctx context.Context, userID string) (tracking.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE user_id = $1 AND is_active`

	s, err := scanSession(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tracking.WorkSession{}, tracking.ErrNoActiveSession
		}
		return tracking.WorkSession{}, fmt.Errorf("failed to get active session: %w", err)
	}
	return s, nil
}

// Finish implements tracking.WorkSessionRepository.
func (r *workSessionRepositoryImpl) Finish(ctx context.Context, id string, endTime time.Time, totalSeconds int64) (tracking.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_sessions
		SET end_time = $1, total_seconds = $2, is_active = FALSE, updated_at = NOW()
		WHERE id = $3 AND is_active
		RETURNING ` + sessionColumns

	s, err := scanSession(q.QueryRow(ctx, query, endTime, totalSeconds, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tracking.WorkSession{}, tracking.ErrNoActiveSession
		}
		return tracking.WorkSession{}, fmt.Errorf("failed to finish work session: %w", err)
	}
	return s, nil
}

// ListByUser implements tracking.WorkSessionRepository.
func (r *workSessionRepositoryImpl) ListByUser(ctx context.Context, req tracking.ListSessionsRequest) ([]tracking.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.user_id, s.start_time, s.end_time, s.total_seconds, s.is_active, s.created_at, s.updated_at,
			   COUNT(sc.id) AS screenshot_count
		FROM work_sessions s
		LEFT JOIN screenshots sc ON sc.session_id = s.id
		WHERE s.user_id = $1
		  AND ($2::date IS NULL OR s.start_time >= $2::date)
		  AND ($3::date IS NULL OR s.start_time < $3::date + INTERVAL '1 day')
		GROUP BY s.id
		ORDER BY s.start_time DESC
	`

	rows, err := q.Query(ctx, query, req.UserID, dateParam(req.StartDate), dateParam(req.EndDate))
	if err != nil {
		return nil, fmt.Errorf("failed to list work sessions: %w", err)
	}
	defer rows.Close()

	var sessions []tracking.WorkSession
	for rows.Next() {
		var s tracking.WorkSession
		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.StartTime,
			&s.EndTime,
			&s.TotalSeconds,
			&s.IsActive,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.ScreenshotCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListActiveBefore implements tracking.WorkSessionRepository.
func (r *workSessionRepositoryImpl) ListActiveBefore(ctx context.Context, cutoff time.Time) ([]tracking.WorkSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE is_active AND start_time < $1`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale sessions: %w", err)
	}
	defer rows.Close()

	var sessions []tracking.WorkSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
