package postgresql

import (
	"context"
	"fmt"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/database"
)

type screenshotRepositoryImpl struct {
	db *database.DB
}

func NewScreenshotRepository(db *database.DB) tracking.ScreenshotRepository {
	return &screenshotRepositoryImpl{db: db}
}

// Create implements tracking.ScreenshotRepository.
func (r *screenshotRepositoryImpl) Create(ctx context.Context, screenshot tracking.Screenshot) (tracking.Screenshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO screenshots (session_id, user_id, captured_at, image_url, storage_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, session_id, user_id, captured_at, image_url, storage_path, created_at
	`

	var s tracking.Screenshot
	err := q.QueryRow(ctx, query,
		screenshot.SessionID,
		screenshot.UserID,
		screenshot.CapturedAt,
		screenshot.ImageURL,
		screenshot.StoragePath,
	).Scan(
		&s.ID,
		&s.SessionID,
		&s.UserID,
		&s.CapturedAt,
		&s.ImageURL,
		&s.StoragePath,
		&s.CreatedAt,
	)
	if err != nil {
		return tracking.Screenshot{}, fmt.Errorf("failed to create screenshot: %w", err)
	}
	return s, nil
}

// ListBySession implements tracking.ScreenshotRepository. Capture order
// is preserved by ordering on the insertion timestamp.
func (r *screenshotRepositoryImpl) ListBySession(ctx context.Context, sessionID string) ([]tracking.Screenshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, session_id, user_id, captured_at, image_url, storage_path, created_at
		FROM screenshots
		WHERE session_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list screenshots: %w", err)
	}
	defer rows.Close()

	var screenshots []tracking.Screenshot
	for rows.Next() {
		var s tracking.Screenshot
		err := rows.Scan(
			&s.ID,
			&s.SessionID,
			&s.UserID,
			&s.CapturedAt,
			&s.ImageURL,
			&s.StoragePath,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan screenshot: %w", err)
		}
		screenshots = append(screenshots, s)
	}
	return screenshots, rows.Err()
}
