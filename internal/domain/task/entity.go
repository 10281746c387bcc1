package task

import "time"

// Status is one of the four fixed kanban columns.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inProgress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description *string
	Status      Status
	Position    int
	AssigneeID  *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	CommentCount int
}

type Comment struct {
	ID         string
	TaskID     string
	AuthorID   string
	Body       string
	CreatedAt  time.Time
	AuthorName string // join
}
