package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/leave"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/user"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/email"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/slack"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/sse"
)

type LeaveService interface {
	Create(ctx context.Context, req leave.CreateRequest) (leave.Response, error)
	Decide(ctx context.Context, req leave.DecideRequest) (leave.Response, error)
	List(ctx context.Context, req leave.ListRequest) ([]leave.Response, error)
}

type LeaveServiceImpl struct {
	leave.LeaveRepository
	emailService email.EmailService
	slackClient  *slack.Client
	hub          *sse.Hub
}

func NewLeaveService(
	leaveRepo leave.LeaveRepository,
	emailService email.EmailService,
	slackClient *slack.Client,
	hub *sse.Hub,
) LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository: leaveRepo,
		emailService:    emailService,
		slackClient:     slackClient,
		hub:             hub,
	}
}

func claimsFromContext(ctx context.Context) (userID, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", tracking.ErrNoCurrentUser
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", tracking.ErrNoCurrentUser
	}
	role, _ = claims["role"].(string)
	return userID, role, nil
}

// Create implements LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateRequest) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	userID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.Response{}, err
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.Response{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.Response{}, fmt.Errorf("failed to parse end date: %w", err)
	}
	if end.Before(start) {
		return leave.Response{}, leave.ErrInvalidRange
	}

	overlap, err := s.LeaveRepository.HasOverlap(ctx, userID, start, end)
	if err != nil {
		return leave.Response{}, err
	}
	if overlap {
		return leave.Response{}, leave.ErrOverlapping
	}

	created, err := s.LeaveRepository.Create(ctx, leave.Request{
		UserID:    userID,
		Type:      leave.Type(req.Type),
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	})
	if err != nil {
		return leave.Response{}, err
	}
	return leave.ToResponse(created), nil
}

// Decide implements LeaveService. Admin only. The decision email and
// slack alert are best effort: a delivery failure never rolls back the
// decision.
func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	adminID, role, err := claimsFromContext(ctx)
	if err != nil {
		return leave.Response{}, err
	}
	if role != string(user.RoleAdmin) {
		return leave.Response{}, user.ErrAdminPrivilegeRequired
	}

	decided, err := s.LeaveRepository.Decide(ctx, req.ID, leave.Status(req.Decision), adminID, req.Note, time.Now().UTC())
	if err != nil {
		return leave.Response{}, err
	}

	s.notify(decided)

	s.hub.Publish(decided.UserID, sse.Event{
		Event: sse.EventLeaveDecided,
		Data:  leave.ToResponse(decided),
	})
	return leave.ToResponse(decided), nil
}

func (s *LeaveServiceImpl) notify(decided leave.Request) {
	err := s.emailService.SendLeaveDecision(
		decided.UserEmail,
		decided.UserName,
		decided.StartDate.Format("2006-01-02"),
		decided.EndDate.Format("2006-01-02"),
		string(decided.Status),
		decided.DecisionNote,
	)
	if err != nil {
		slog.Error("failed to send leave decision email", "leave_id", decided.ID, "error", err)
	}

	if s.slackClient.IsConfigured() {
		msg := fmt.Sprintf("Leave request of %s (%s to %s) was %s",
			decided.UserName,
			decided.StartDate.Format("2006-01-02"),
			decided.EndDate.Format("2006-01-02"),
			decided.Status,
		)
		if err := s.slackClient.Send(context.Background(), slack.Message{Text: msg}); err != nil {
			slog.Error("failed to send leave decision slack alert", "leave_id", decided.ID, "error", err)
		}
	}
}

// List implements LeaveService. Employees see their own requests;
// admins can filter by user and status.
func (s *LeaveServiceImpl) List(ctx context.Context, req leave.ListRequest) ([]leave.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if role != string(user.RoleAdmin) {
		req.UserID = userID
	}

	requests, err := s.LeaveRepository.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.Response, 0, len(requests))
	for _, lr := range requests {
		responses = append(responses, leave.ToResponse(lr))
	}
	return responses, nil
}
