package errors

import "errors"

var (
	ErrNotFound = errors.New("service offering not found")

	ErrInvalidID = errors.New("invalid service offering ID format")
)
