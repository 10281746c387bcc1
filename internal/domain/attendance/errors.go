package attendance

import "errors"

var (
	ErrLogNotFound      = errors.New("attendance log not found")
	ErrAlreadyClockedIn = errors.New("already clocked in today")
	ErrNotClockedIn     = errors.New("not clocked in")
	ErrAlreadyOnBreak   = errors.New("a break is already open")
	ErrNotOnBreak       = errors.New("no open break")
	ErrFutureDate       = errors.New("date must not be in the future")
)
