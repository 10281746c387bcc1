package leave

import "errors"

var (
	ErrRequestNotFound = errors.New("leave request not found")
	ErrAlreadyDecided  = errors.New("leave request already decided")
	ErrInvalidRange    = errors.New("end date must not be before start date")
	ErrOverlapping     = errors.New("an overlapping leave request exists")
)
