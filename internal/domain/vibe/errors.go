package vibe

import "errors"

var (
	// ErrDuplicateName indicates a vibe with the same name already exists.
	ErrDuplicateName = errors.New("vibe name already exists")
	// ErrVibeNotFound indicates the vibe doesn't exist.
	ErrVibeNotFound = errors.New("vibe not found")
	// ErrReadOnlyDate indicates a write against a date other than today.
	ErrReadOnlyDate = errors.New("historical dates are view-only")
	// ErrInvalidInput indicates invalid vibe input.
	ErrInvalidInput = errors.New("invalid vibe input")
)
