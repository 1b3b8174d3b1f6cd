package domain

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when a customer email is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
)
