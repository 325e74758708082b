// Package errs holds the shared persistence sentinel errors in a leaf
// package so domain services can match them without importing the
// repository interfaces, which would form an import cycle.
package errs

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a uniqueness constraint fails
	ErrDuplicate = errors.New("already exists")
)
