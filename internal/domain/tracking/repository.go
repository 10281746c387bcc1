package tracking

import (
	"context"
	"time"
)

type WorkSessionRepository interface {
	Create(ctx context.Context, session WorkSession) (WorkSession, error)
	GetByID(ctx context.Context, id string) (WorkSession, error)
	GetActiveByUser(ctx context.Context, userID string) (WorkSession, error)
	Finish(ctx context.Context, id string, endTime time.Time, totalSeconds int64) (WorkSession, error)
	ListByUser(ctx context.Context, req ListSessionsRequest) ([]WorkSession, error)
	ListActiveBefore(ctx context.Context, cutoff time.Time) ([]WorkSession, error)
}

type ScreenshotRepository interface {
	Create(ctx context.Context, screenshot Screenshot) (Screenshot, error)
	ListBySession(ctx context.Context, sessionID string) ([]Screenshot, error)
}
