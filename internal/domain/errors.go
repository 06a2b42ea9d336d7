package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing name, weekday outside 0..6).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would duplicate existing state, such as
// a second check-in at the same destination on the same day.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrOutOfRange is returned by a check-in whose position lies outside the
// destination's radius.
var ErrOutOfRange = errors.New("out of range")

// ErrPositionUnknown is returned when an operation needs the caller's position
// and none was supplied. It is distinct from ErrOutOfRange: an unknown
// position is never treated as "too far".
var ErrPositionUnknown = errors.New("position unknown")
