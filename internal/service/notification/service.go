package notification

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/notification"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/user"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/email"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/slack"
)

type NotificationServiceImpl struct {
	emailService email.EmailService
	slackClient  *slack.Client
}

func NewNotificationService(emailService email.EmailService, slackClient *slack.Client) notification.NotificationService {
	return &NotificationServiceImpl{
		emailService: emailService,
		slackClient:  slackClient,
	}
}

func requireAdmin(ctx context.Context) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return tracking.ErrNoCurrentUser
	}
	if role, _ := claims["role"].(string); role != string(user.RoleAdmin) {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}

// SendEmail implements notification.NotificationService. Admin only.
func (s *NotificationServiceImpl) SendEmail(ctx context.Context, req notification.SendEmailRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := s.emailService.SendHTML(req.To, req.Subject, req.Body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendSlack implements notification.NotificationService. Admin only.
func (s *NotificationServiceImpl) SendSlack(ctx context.Context, req notification.SendSlackRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	if !s.slackClient.IsConfigured() {
		return notification.ErrSlackNotConfigured
	}

	if err := s.slackClient.Send(ctx, slack.Message{Text: req.Text, Channel: req.Channel}); err != nil {
		return fmt.Errorf("failed to send slack message: %w", err)
	}
	return nil
}
