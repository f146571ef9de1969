// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user may not perform
// an operation, while ErrConflict signals that an operation cannot
// proceed because dependent records exist (e.g. deleting a room that
// still appears in stored assignments).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation their
// role does not permit. Handlers should translate this into an HTTP 403
// response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as removing a room or student that
// past allocations still reference. Handlers should translate this into
// an HTTP 409 response.
var ErrConflict = errors.New("conflict")
