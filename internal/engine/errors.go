package engine

import "errors"

var (
	// ErrValidation indicates a request that cannot be carried out as given.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a session file or preset was not found.
	ErrNotFound = errors.New("not found")

	// ErrExists indicates a session file would be overwritten.
	ErrExists = errors.New("already exists")
)
