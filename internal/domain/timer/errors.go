package timer

import "errors"

var (
	// ErrVibeNotFound indicates the target vibe doesn't exist.
	ErrVibeNotFound = errors.New("vibe not found")
	// ErrReadOnlyDate indicates a timer operation against a date other
	// than today.
	ErrReadOnlyDate = errors.New("historical dates are view-only")
)
