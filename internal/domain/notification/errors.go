package notification

import "errors"

var (
	ErrEmailNotConfigured = errors.New("email delivery is not configured")
	ErrSlackNotConfigured = errors.New("slack webhook is not configured")
)
