package report

import (
	"context"
	"time"
)

type ReportRepository interface {
	Summarize(ctx context.Context, start, end time.Time, userID string) ([]UserSummary, error)
}
