package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/leave"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `l.id, l.user_id, l.type, l.start_date, l.end_date, l.reason, l.status,
			   l.decided_by, l.decision_note, l.decided_at, l.created_at, l.updated_at,
			   u.name, u.email`

func scanLeave(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Type,
		&req.StartDate,
		&req.EndDate,
		&req.Reason,
		&req.Status,
		&req.DecidedBy,
		&req.DecisionNote,
		&req.DecidedAt,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.UserName,
		&req.UserEmail,
	)
	return req, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO leave_requests (user_id, type, start_date, end_date, reason, status)
			VALUES ($1, $2, $3, $4, $5, 'pending')
			RETURNING *
		)
		SELECT ` + leaveColumns + `
		FROM inserted l
		JOIN users u ON u.id = l.user_id
	`

	created, err := scanLeave(q.QueryRow(ctx, query, req.UserID, req.Type, req.StartDate, req.EndDate, req.Reason))
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
		WHERE l.id = $1
	`

	req, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, req leave.ListRequest) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
		WHERE ($1::uuid IS NULL OR l.user_id = $1::uuid)
		  AND ($2::text IS NULL OR l.status = $2)
		ORDER BY l.created_at DESC
	`

	rows, err := q.Query(ctx, query, textParam(req.UserID), textParam(req.Status))
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		lr, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Decide implements leave.LeaveRepository. Only pending requests can be
// decided; a second decision hits zero rows.
func (r *leaveRepositoryImpl) Decide(ctx context.Context, id string, status leave.Status, decidedBy string, note *string, at time.Time) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH updated AS (
			UPDATE leave_requests
			SET status = $1, decided_by = $2, decision_note = $3, decided_at = $4, updated_at = NOW()
			WHERE id = $5 AND status = 'pending'
			RETURNING *
		)
		SELECT ` + leaveColumns + `
		FROM updated l
		JOIN users u ON u.id = l.user_id
	`

	req, err := scanLeave(q.QueryRow(ctx, query, status, decidedBy, note, at, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrAlreadyDecided
		}
		return leave.Request{}, fmt.Errorf("failed to decide leave request: %w", err)
	}
	return req, nil
}

// HasOverlap implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE user_id = $1
			  AND status <> 'rejected'
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`, userID, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}

// ApprovedOn implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ApprovedOn(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT user_id FROM leave_requests
		WHERE status = 'approved' AND start_date <= $1 AND end_date >= $1
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
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
