package notification

import (
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/validator"
)

// SendEmailRequest delivers a one-off transactional email.
type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (r *SendEmailRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to is required",
		})
	} else if !validator.IsValidEmail(r.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject is required",
		})
	}

	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SendSlackRequest posts a message to the configured webhook.
type SendSlackRequest struct {
	Text    string `json:"text"`
	Channel string `json:"channel"`
}

func (r *SendSlackRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Text) {
		errs = append(errs, validator.ValidationError{
			Field:   "text",
			Message: "text is required",
		})
	}
	if len(r.Text) > 4000 {
		errs = append(errs, validator.ValidationError{
			Field:   "text",
			Message: "text must not exceed 4000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
