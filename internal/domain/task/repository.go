package task

import "context"

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	ListByProject(ctx context.Context, projectID string) ([]Task, error)
	// Move sets status and position, shifting siblings in both the
	// source and destination columns inside one transaction.
	Move(ctx context.Context, req MoveTaskRequest) (Task, error)
	Update(ctx context.Context, req UpdateTaskRequest) error
	Delete(ctx context.Context, id string) error
	NextPosition(ctx context.Context, projectID string, status Status) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c Comment) (Comment, error)
	ListByTask(ctx context.Context, taskID string) ([]Comment, error)
	Delete(ctx context.Context, id string) error
}
