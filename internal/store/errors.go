package store

import "errors"

var (
	// ErrNotFound is returned when a project key is not registered
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a key or path is already registered
	ErrConflict = errors.New("already registered")
)
