package tracking

import "time"

// State is the lifecycle state of a user's time tracker.
type State string

const (
	StateIdle    State = "idle"    // No active session
	StateRunning State = "running" // Session active, captures scheduled
	StatePaused  State = "paused"  // Session active, captures suppressed
)

// WorkSession is one contiguous span of tracked work. A session stays
// active across pauses; only a stop closes it.
type WorkSession struct {
	ID           string
	UserID       string
	StartTime    time.Time
	EndTime      *time.Time
	TotalSeconds int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	ScreenshotCount int
}

// Screenshot is one capture taken during a running session. Records are
// append-only in capture-completion order and never mutated.
type Screenshot struct {
	ID          string
	SessionID   string
	UserID      string
	CapturedAt  time.Time
	ImageURL    string
	StoragePath string
	CreatedAt   time.Time
}
