package leave

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/leave"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/user"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/slack"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/sse"
)

func authedContext(t *testing.T, userID, role string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{"user_id": userID, "role": role})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeLeaveRepo struct {
	requests map[string]leave.Request
	overlap  bool
}

func (r *fakeLeaveRepo) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	req.ID = "leave-1"
	req.Status = leave.StatusPending
	req.CreatedAt = time.Now()
	r.requests[req.ID] = req
	return req, nil
}

func (r *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return req, nil
}

func (r *fakeLeaveRepo) List(ctx context.Context, req leave.ListRequest) ([]leave.Request, error) {
	var out []leave.Request
	for _, lr := range r.requests {
		if req.UserID != "" && lr.UserID != req.UserID {
			continue
		}
		out = append(out, lr)
	}
	return out, nil
}

func (r *fakeLeaveRepo) Decide(ctx context.Context, id string, status leave.Status, decidedBy string, note *string, at time.Time) (leave.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	if req.Status != leave.StatusPending {
		return leave.Request{}, leave.ErrAlreadyDecided
	}
	req.Status = status
	req.DecidedBy = &decidedBy
	req.DecisionNote = note
	req.DecidedAt = &at
	r.requests[id] = req
	return req, nil
}

func (r *fakeLeaveRepo) HasOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	return r.overlap, nil
}

func (r *fakeLeaveRepo) ApprovedOn(ctx context.Context, date time.Time) ([]string, error) {
	return nil, nil
}

type fakeEmailService struct {
	decisions []string
}

func (f *fakeEmailService) SendLeaveDecision(to, employeeName, startDate, endDate, decision string, reason *string) error {
	f.decisions = append(f.decisions, decision)
	return nil
}

func (f *fakeEmailService) SendHTML(to, subject, htmlBody string) error { return nil }

func newTestLeave() (LeaveService, *fakeLeaveRepo, *fakeEmailService, *sse.Hub) {
	repo := &fakeLeaveRepo{requests: make(map[string]leave.Request)}
	emails := &fakeEmailService{}
	hub := sse.NewHub()
	svc := NewLeaveService(repo, emails, slack.NewClient(""), hub)
	return svc, repo, emails, hub
}

func TestCreateRejectsInvertedRange(t *testing.T) {
	svc, _, _, _ := newTestLeave()
	ctx := authedContext(t, "user-1", "employee")

	_, err := svc.Create(ctx, leave.CreateRequest{
		Type:      "annual",
		StartDate: "2026-03-10",
		EndDate:   "2026-03-08",
		Reason:    "family trip",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidRange)
}

func TestCreateRejectsOverlap(t *testing.T) {
	svc, repo, _, _ := newTestLeave()
	ctx := authedContext(t, "user-1", "employee")
	repo.overlap = true

	_, err := svc.Create(ctx, leave.CreateRequest{
		Type:      "sick",
		StartDate: "2026-03-08",
		EndDate:   "2026-03-10",
		Reason:    "flu",
	})
	assert.ErrorIs(t, err, leave.ErrOverlapping)
}

func TestDecideRequiresAdmin(t *testing.T) {
	svc, repo, _, _ := newTestLeave()
	repo.requests["leave-1"] = leave.Request{ID: "leave-1", UserID: "user-1", Status: leave.StatusPending}

	ctx := authedContext(t, "user-2", "employee")
	_, err := svc.Decide(ctx, leave.DecideRequest{ID: "leave-1", Decision: "approved"})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestDecideNotifiesAndPublishes(t *testing.T) {
	svc, repo, emails, hub := newTestLeave()
	repo.requests["leave-1"] = leave.Request{
		ID:        "leave-1",
		UserID:    "user-1",
		Type:      leave.TypeAnnual,
		StartDate: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:    leave.StatusPending,
		UserName:  "Sam",
		UserEmail: "sam@example.com",
	}

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	ctx := authedContext(t, "admin-1", "admin")
	decided, err := svc.Decide(ctx, leave.DecideRequest{ID: "leave-1", Decision: "approved"})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), decided.Status)
	assert.Equal(t, []string{"approved"}, emails.decisions)

	select {
	case ev := <-ch:
		assert.Equal(t, sse.EventLeaveDecided, ev.Event)
	case <-time.After(time.Second):
		t.Fatal("expected a leave.decided event")
	}
}

func TestDecideTwiceFails(t *testing.T) {
	svc, repo, _, _ := newTestLeave()
	repo.requests["leave-1"] = leave.Request{ID: "leave-1", UserID: "user-1", Status: leave.StatusPending}

	ctx := authedContext(t, "admin-1", "admin")
	_, err := svc.Decide(ctx, leave.DecideRequest{ID: "leave-1", Decision: "approved"})
	require.NoError(t, err)

	_, err = svc.Decide(ctx, leave.DecideRequest{ID: "leave-1", Decision: "rejected"})
	assert.ErrorIs(t, err, leave.ErrAlreadyDecided)
}

func TestListScopesEmployeesToOwnRequests(t *testing.T) {
	svc, repo, _, _ := newTestLeave()
	repo.requests["leave-1"] = leave.Request{ID: "leave-1", UserID: "user-1", Status: leave.StatusPending}
	repo.requests["leave-2"] = leave.Request{ID: "leave-2", UserID: "user-2", Status: leave.StatusPending}

	ctx := authedContext(t, "user-1", "employee")
	requests, err := svc.List(ctx, leave.ListRequest{})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "user-1", requests[0].UserID)
}
