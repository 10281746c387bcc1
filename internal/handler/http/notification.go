package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/notification"
	"github.com/saudkhanbpk/ems-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	SendEmail(w http.ResponseWriter, r *http.Request)
	SendSlack(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService notification.NotificationService
}

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &NotificationHandlerImpl{notificationService: notificationService}
}

// SendEmail implements NotificationHandler.
func (h *NotificationHandlerImpl) SendEmail(w http.ResponseWriter, r *http.Request) {
	var emailReq notification.SendEmailRequest

	if err := json.NewDecoder(r.Body).Decode(&emailReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.notificationService.SendEmail(r.Context(), emailReq); err != nil {
		slog.Error("SendEmail service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Email sent successfully", nil)
}

// SendSlack implements NotificationHandler.
func (h *NotificationHandlerImpl) SendSlack(w http.ResponseWriter, r *http.Request) {
	var slackReq notification.SendSlackRequest

	if err := json.NewDecoder(r.Body).Decode(&slackReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.notificationService.SendSlack(r.Context(), slackReq); err != nil {
		slog.Error("SendSlack service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Slack message sent successfully", nil)
}
