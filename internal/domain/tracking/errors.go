package tracking

import "errors"

var (
	ErrNoCurrentUser    = errors.New("no authenticated user")
	ErrAlreadyTracking  = errors.New("a session is already being tracked")
	ErrNotTracking      = errors.New("tracker is not running")
	ErrNotPaused        = errors.New("tracker is not paused")
	ErrNoActiveSession  = errors.New("no active session")
	ErrSessionNotFound  = errors.New("session not found")
	ErrNegativeElapsed  = errors.New("elapsed seconds must not be negative")
	ErrCaptureUpload    = errors.New("screenshot upload failed")
	ErrInvalidInterval  = errors.New("screenshot interval must be between 30 and 3600 seconds")
	ErrSessionStillOpen = errors.New("session is still open")
)
