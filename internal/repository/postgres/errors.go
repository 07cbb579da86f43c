// Package postgres holds the error values shared by the repositories.
package postgres

import "github.com/pkg/errors"

var (
	ErrNotFound = errors.New("not found")

	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	ErrEmailRegistered = errors.New("email already registered")
)
