// Package repository defines error values that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrUserExists indicates a signup against an email that is
// already registered, while ErrNotFound signals that an update or
// delete targeted a row that does not exist.
package repository

import "errors"

// ErrUserExists is returned when an insert collides with the unique
// email constraint on the users table. Handlers should translate this
// into an HTTP 409 response.
var ErrUserExists = errors.New("user already exists")

// ErrNotFound is returned when an operation targets a missing row, such
// as updating the password of an unknown email or consuming a reset
// token that was never issued. Handlers should translate this into an
// HTTP 404 (or 401 for token validation) response.
var ErrNotFound = errors.New("not found")
