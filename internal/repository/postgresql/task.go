package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/task"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/database"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

const taskColumns = `id, project_id, title, description, status, position, assignee_id, created_by, created_at, updated_at`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Position,
		&t.AssigneeID,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (project_id, title, description, status, position, assignee_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + taskColumns

	created, err := scanTask(q.QueryRow(ctx, query,
		t.ProjectID,
		t.Title,
		t.Description,
		t.Status,
		t.Position,
		t.AssigneeID,
		t.CreatedBy,
	))
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// ListByProject implements task.TaskRepository.
func (r *taskRepositoryImpl) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.project_id, t.title, t.description, t.status, t.position, t.assignee_id,
			   t.created_by, t.created_at, t.updated_at,
			   COUNT(c.id) AS comment_count
		FROM tasks t
		LEFT JOIN comments c ON c.task_id = t.id
		WHERE t.project_id = $1
		GROUP BY t.id
		ORDER BY t.status, t.position
	`

	rows, err := q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		err := rows.Scan(
			&t.ID,
			&t.ProjectID,
			&t.Title,
			&t.Description,
			&t.Status,
			&t.Position,
			&t.AssigneeID,
			&t.CreatedBy,
			&t.CreatedAt,
			&t.UpdatedAt,
			&t.CommentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Move implements task.TaskRepository. The source column is compacted
// and the destination column's tail is shifted inside one transaction
// so positions stay dense.
func (r *taskRepositoryImpl) Move(ctx context.Context, req task.MoveTaskRequest) (task.Task, error) {
	var moved task.Task

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		current, err := r.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		// Compact the column the task leaves.
		_, err = q.Exec(txCtx, `
			UPDATE tasks SET position = position - 1, updated_at = NOW()
			WHERE project_id = $1 AND status = $2 AND position > $3
		`, current.ProjectID, current.Status, current.Position)
		if err != nil {
			return fmt.Errorf("failed to compact source column: %w", err)
		}

		// Make room in the destination column.
		_, err = q.Exec(txCtx, `
			UPDATE tasks SET position = position + 1, updated_at = NOW()
			WHERE project_id = $1 AND status = $2 AND position >= $3 AND id <> $4
		`, current.ProjectID, req.Status, req.Position, req.ID)
		if err != nil {
			return fmt.Errorf("failed to shift destination column: %w", err)
		}

		query := `
			UPDATE tasks
			SET status = $1, position = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING ` + taskColumns

		moved, err = scanTask(q.QueryRow(txCtx, query, req.Status, req.Position, req.ID))
		if err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}
		return nil
	})
	if err != nil {
		return task.Task{}, err
	}
	return moved, nil
}

// Update implements task.TaskRepository.
func (r *taskRepositoryImpl) Update(ctx context.Context, req task.UpdateTaskRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET title = COALESCE($1, title),
			description = COALESCE($2, description),
			assignee_id = COALESCE($3, assignee_id),
			updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, req.Title, req.Description, req.AssigneeID, req.ID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.ErrTaskNotFound
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete implements task.TaskRepository.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// NextPosition implements task.TaskRepository.
func (r *taskRepositoryImpl) NextPosition(ctx context.Context, projectID string, status task.Status) (int, error) {
	q := GetQuerier(ctx, r.db)

	var next int
	err := q.QueryRow(ctx, `
		SELECT COALESCE(MAX(position) + 1, 0) FROM tasks WHERE project_id = $1 AND status = $2
	`, projectID, status).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next position: %w", err)
	}
	return next, nil
}
