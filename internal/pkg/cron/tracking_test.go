package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/attendance"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
)

type fakeSessionRepo struct {
	stale    []tracking.WorkSession
	finished []string
}

func (r *fakeSessionRepo) Create(ctx context.Context, s tracking.WorkSession) (tracking.WorkSession, error) {
	return s, nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id string) (tracking.WorkSession, error) {
	return tracking.WorkSession{}, tracking.ErrSessionNotFound
}

func (r *fakeSessionRepo) GetActiveByUser(ctx context.Context, userID string) (tracking.WorkSession, error) {
	return tracking.WorkSession{}, tracking.ErrNoActiveSession
}

func (r *fakeSessionRepo) Finish(ctx context.Context, id string, endTime time.Time, totalSeconds int64) (tracking.WorkSession, error) {
	r.finished = append(r.finished, id)
	return tracking.WorkSession{ID: id}, nil
}

func (r *fakeSessionRepo) ListByUser(ctx context.Context, req tracking.ListSessionsRequest) ([]tracking.WorkSession, error) {
	return nil, nil
}

func (r *fakeSessionRepo) ListActiveBefore(ctx context.Context, cutoff time.Time) ([]tracking.WorkSession, error) {
	return r.stale, nil
}

type fakeAttendanceRepo struct {
	missing []string
	marked  []string
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	return log, nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.AttendanceLog, error) {
	return attendance.AttendanceLog{}, attendance.ErrLogNotFound
}

func (r *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (attendance.AttendanceLog, error) {
	return attendance.AttendanceLog{}, attendance.ErrLogNotFound
}

func (r *fakeAttendanceRepo) ClockOut(ctx context.Context, id string, at time.Time, workSeconds int64) error {
	return nil
}

func (r *fakeAttendanceRepo) List(ctx context.Context, req attendance.ListLogsRequest) ([]attendance.AttendanceLog, error) {
	return nil, nil
}

func (r *fakeAttendanceRepo) UsersWithoutLog(ctx context.Context, date time.Time) ([]string, error) {
	return r.missing, nil
}

func (r *fakeAttendanceRepo) MarkAbsent(ctx context.Context, userID string, date time.Time) error {
	r.marked = append(r.marked, userID)
	return nil
}

type fakeApprovedLeaves struct {
	onLeave []string
}

func (r *fakeApprovedLeaves) ApprovedOn(ctx context.Context, date time.Time) ([]string, error) {
	return r.onLeave, nil
}

func TestCloseStaleSessions(t *testing.T) {
	repo := &fakeSessionRepo{stale: []tracking.WorkSession{
		{ID: "s1", UserID: "u1", StartTime: time.Now().Add(-24 * time.Hour), TotalSeconds: 7200},
		{ID: "s2", UserID: "u2", StartTime: time.Now().Add(-20 * time.Hour)},
	}}

	job := CloseStaleSessionsJob(repo, 12*time.Hour)
	require.NoError(t, job(context.Background()))
	assert.Equal(t, []string{"s1", "s2"}, repo.finished)
}

func TestCloseStaleSessionsNoneStale(t *testing.T) {
	repo := &fakeSessionRepo{}

	job := CloseStaleSessionsJob(repo, 12*time.Hour)
	require.NoError(t, job(context.Background()))
	assert.Empty(t, repo.finished)
}

func TestMarkAbsenteesSkipsApprovedLeave(t *testing.T) {
	attendanceRepo := &fakeAttendanceRepo{missing: []string{"u1", "u2", "u3"}}
	leaves := &fakeApprovedLeaves{onLeave: []string{"u2"}}

	job := MarkAbsenteesJob(attendanceRepo, leaves)
	require.NoError(t, job(context.Background()))
	assert.ElementsMatch(t, []string{"u1", "u3"}, attendanceRepo.marked)
}
