package repository

import "github.com/vibetimer/vibetimer/internal/repository/errs"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errs.ErrNotFound

	// ErrDuplicate is returned when a uniqueness constraint fails
	ErrDuplicate = errs.ErrDuplicate
)
