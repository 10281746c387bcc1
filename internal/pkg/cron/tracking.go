package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/attendance"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
)

// ApprovedLeaveSource is the slice of the leave repository the absentee
// sweep needs.
type ApprovedLeaveSource interface {
	ApprovedOn(ctx context.Context, date time.Time) ([]string, error)
}

// CloseStaleSessionsJob finishes work sessions whose owner stopped
// sending heartbeats (crashed agent, killed laptop). Sessions still
// active past maxAge are closed with the elapsed time they last
// reported.
func CloseStaleSessionsJob(sessions tracking.WorkSessionRepository, maxAge time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		cutoff := time.Now().UTC().Add(-maxAge)

		stale, err := sessions.ListActiveBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("failed to list stale sessions: %w", err)
		}

		for _, s := range stale {
			endTime := s.UpdatedAt
			if endTime.Before(s.StartTime) {
				endTime = s.StartTime
			}
			if _, err := sessions.Finish(ctx, s.ID, endTime, s.TotalSeconds); err != nil {
				slog.Error("Failed to close stale session", "session_id", s.ID, "user_id", s.UserID, "error", err)
				continue
			}
			slog.Info("Closed stale session", "session_id", s.ID, "user_id", s.UserID, "started_at", s.StartTime)
		}

		return nil
	}
}

// MarkAbsenteesJob marks employees absent who neither clocked in nor
// have an approved leave covering yesterday. Runs after midnight so the
// day under inspection is complete.
func MarkAbsenteesJob(attendanceRepo attendance.AttendanceRepository, leaves ApprovedLeaveSource) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		now := time.Now().UTC()
		yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

		missing, err := attendanceRepo.UsersWithoutLog(ctx, yesterday)
		if err != nil {
			return fmt.Errorf("failed to list users without attendance: %w", err)
		}
		if len(missing) == 0 {
			return nil
		}

		onLeave, err := leaves.ApprovedOn(ctx, yesterday)
		if err != nil {
			return fmt.Errorf("failed to list approved leaves: %w", err)
		}
		excused := make(map[string]struct{}, len(onLeave))
		for _, id := range onLeave {
			excused[id] = struct{}{}
		}

		marked := 0
		for _, userID := range missing {
			if _, ok := excused[userID]; ok {
				continue
			}
			if err := attendanceRepo.MarkAbsent(ctx, userID, yesterday); err != nil {
				slog.Error("Failed to mark user absent", "user_id", userID, "date", yesterday, "error", err)
				continue
			}
			marked++
		}

		slog.Info("Absentee sweep completed", "date", yesterday.Format("2006-01-02"), "marked", marked)
		return nil
	}
}
