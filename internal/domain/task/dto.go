package task

import (
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	ProjectID   string  `json:"project_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	} else if !validator.IsValidUUID(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}

	// Quick-add defaults to todo when status is omitted.
	if !validator.IsEmpty(r.Status) && !validator.IsValidTaskStatus(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of todo, inProgress, review, done",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateTaskRequest struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MoveTaskRequest moves a task to a column position. The board applies
// the move optimistically and publishes a revert event if persistence
// fails.
type MoveTaskRequest struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Position int    `json:"position"`
}

func (r *MoveTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if !validator.IsValidTaskStatus(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of todo, inProgress, review, done",
		})
	}

	if r.Position < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateCommentRequest struct {
	TaskID string `json:"task_id"`
	Body   string `json:"body"`
}

func (r *CreateCommentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TaskID) {
		errs = append(errs, validator.ValidationError{
			Field:   "task_id",
			Message: "task_id is required",
		})
	}

	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body is required",
		})
	}
	if len(r.Body) > 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TaskResponse struct {
	ID           string  `json:"id"`
	ProjectID    string  `json:"project_id"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	Status       string  `json:"status"`
	Position     int     `json:"position"`
	AssigneeID   *string `json:"assignee_id,omitempty"`
	CommentCount int     `json:"comment_count"`
	CreatedAt    string  `json:"created_at"`
}

type CommentResponse struct {
	ID         string `json:"id"`
	TaskID     string `json:"task_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name,omitempty"`
	Body       string `json:"body"`
	CreatedAt  string `json:"created_at"`
}

// BoardResponse groups a project's tasks by column, each column ordered
// by position.
type BoardResponse struct {
	ProjectID string                    `json:"project_id"`
	Columns   map[string][]TaskResponse `json:"columns"`
}

func ToTaskResponse(t Task) TaskResponse {
	return TaskResponse{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Position:     t.Position,
		AssigneeID:   t.AssigneeID,
		CommentCount: t.CommentCount,
		CreatedAt:    t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func ToCommentResponse(c Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		TaskID:     c.TaskID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Body:       c.Body,
		CreatedAt:  c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
