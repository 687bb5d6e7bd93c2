package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks input rejected before it reaches storage.
	ErrInvalidInput = errors.New("invalid input")
)
