package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	ErrDuplicateEmail  = errors.New("email already in use")
	ErrAlreadyRequested = errors.New("shift already requested")
	ErrNoOpenShifts    = errors.New("no open shifts remaining")
)
