package errors

import "errors"

var (
	ErrNotFound = errors.New("studio schedule not found")

	ErrInvalidID = errors.New("invalid schedule ID format")
)
