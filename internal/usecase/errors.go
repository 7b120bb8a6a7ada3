package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("resource conflict")
	ErrMissingRequiredData   = errors.New("missing required data")
	ErrUpstreamUnavailable   = errors.New("upstream provider unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
