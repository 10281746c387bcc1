package report

import "errors"

var (
	ErrEmptyRange  = errors.New("no data in the requested range")
	ErrPDFDisabled = errors.New("pdf rendering is not configured")
)
