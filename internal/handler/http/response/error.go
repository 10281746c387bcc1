package response

import (
	"errors"
	"net/http"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/attendance"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/auth"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/employee"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/leave"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/notification"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/organization"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/project"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/report"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/task"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/domain/user"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Tracking domain errors
	case errors.Is(err, tracking.ErrNoCurrentUser):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, tracking.ErrAlreadyTracking):
		Conflict(w, "A session is already being tracked")
	case errors.Is(err, tracking.ErrNotTracking):
		Conflict(w, "Tracker is not running")
	case errors.Is(err, tracking.ErrNotPaused):
		Conflict(w, "Tracker is not paused")
	case errors.Is(err, tracking.ErrNoActiveSession):
		NotFound(w, "No active session")
	case errors.Is(err, tracking.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, tracking.ErrNegativeElapsed),
		errors.Is(err, tracking.ErrInvalidInterval):
		BadRequest(w, err.Error(), nil)

	// Board domain errors
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrProjectNameTaken):
		Conflict(w, "Project name already exists")
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrCommentNotFound):
		NotFound(w, "Comment not found")
	case errors.Is(err, task.ErrInvalidStatus):
		BadRequest(w, "Invalid task status", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrLogNotFound):
		NotFound(w, "Attendance log not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "Not clocked in")
	case errors.Is(err, attendance.ErrAlreadyOnBreak):
		Conflict(w, "A break is already open")
	case errors.Is(err, attendance.ErrNotOnBreak):
		Conflict(w, "No open break")
	case errors.Is(err, attendance.ErrFutureDate):
		BadRequest(w, "Date must not be in the future", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, "Leave request already decided")
	case errors.Is(err, leave.ErrInvalidRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrOverlapping):
		Conflict(w, "An overlapping leave request exists")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrIncrementNotFound):
		NotFound(w, "Salary increment not found")
	case errors.Is(err, employee.ErrNegativeAmount):
		BadRequest(w, "Increment amount must be positive", nil)
	case errors.Is(err, employee.ErrUnsupportedImageType):
		BadRequest(w, "Avatar must be a PNG, JPEG or WebP image", nil)

	// Organization domain errors
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, organization.ErrNameTaken):
		Conflict(w, "Organization name already exists")

	// Report domain errors
	case errors.Is(err, report.ErrEmptyRange):
		NotFound(w, "No data in the requested range")
	case errors.Is(err, report.ErrPDFDisabled):
		ServiceUnavailable(w, "PDF rendering is not configured")

	// Notification domain errors
	case errors.Is(err, notification.ErrEmailNotConfigured):
		ServiceUnavailable(w, "Email delivery is not configured")
	case errors.Is(err, notification.ErrSlackNotConfigured):
		ServiceUnavailable(w, "Slack webhook is not configured")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
