package postgresql

import (
	"context"
	"fmt"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/task"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/database"
)

type commentRepositoryImpl struct {
	db *database.DB
}

func NewCommentRepository(db *database.DB) task.CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// Create implements task.CommentRepository.
func (r *commentRepositoryImpl) Create(ctx context.Context, c task.Comment) (task.Comment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO comments (task_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, task_id, author_id, body, created_at
	`

	var created task.Comment
	err := q.QueryRow(ctx, query, c.TaskID, c.AuthorID, c.Body).Scan(
		&created.ID,
		&created.TaskID,
		&created.AuthorID,
		&created.Body,
		&created.CreatedAt,
	)
	if err != nil {
		return task.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}
	return created, nil
}

// ListByTask implements task.CommentRepository.
func (r *commentRepositoryImpl) ListByTask(ctx context.Context, taskID string) ([]task.Comment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.task_id, c.author_id, c.body, c.created_at, u.name
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.task_id = $1
		ORDER BY c.created_at
	`

	rows, err := q.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []task.Comment
	for rows.Next() {
		var c task.Comment
		err := rows.Scan(
			&c.ID,
			&c.TaskID,
			&c.AuthorID,
			&c.Body,
			&c.CreatedAt,
			&c.AuthorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Delete implements task.CommentRepository.
func (r *commentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrCommentNotFound
	}
	return nil
}
