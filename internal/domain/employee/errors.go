package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrProfileExists     = errors.New("employee profile already exists")
	ErrIncrementNotFound = errors.New("salary increment not found")
	ErrNegativeAmount    = errors.New("increment amount must be positive")

	ErrUnsupportedImageType = errors.New("unsupported image type")
)
