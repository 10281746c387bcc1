package notification

import "context"

type NotificationService interface {
	SendEmail(ctx context.Context, req SendEmailRequest) error
	SendSlack(ctx context.Context, req SendSlackRequest) error
}
