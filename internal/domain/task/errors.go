package task

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrMoveFailed      = errors.New("failed to move task")
)
