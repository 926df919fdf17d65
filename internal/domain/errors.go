package domain

import "github.com/cockroachdb/errors"

var (
	ErrPreconditionNotMet = errors.New("precondition not met")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBackendUnavailable = errors.New("backend unavailable")
)
