package errors

import "errors"

var (
	ErrInvalidTransition = errors.New("action not allowed in current step")

	// ErrUnauthenticated marks a submission rejected because the caller
	// has no client identity. It maps to the "please sign in" prompt.
	ErrUnauthenticated = errors.New("not authenticated")
)
