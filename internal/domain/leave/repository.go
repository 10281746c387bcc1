package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, req ListRequest) ([]Request, error)
	Decide(ctx context.Context, id string, status Status, decidedBy string, note *string, at time.Time) (Request, error)
	HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error)
	// ApprovedOn returns user IDs with an approved leave covering the
	// given date; the absentee cron skips them.
	ApprovedOn(ctx context.Context, date time.Time) ([]string, error)
}
