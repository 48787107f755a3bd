// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors. Not-found conditions are reported
// as sql.ErrNoRows and handlers translate them into 404 responses.
package repository

import "errors"

// ErrInvalidStatus is returned when a booking status update names a
// value outside the confirmed/cancelled/completed set. Handlers should
// translate this into an HTTP 400 response.
var ErrInvalidStatus = errors.New("invalid status")

// ErrInvalidTransition is returned when a status update is legal in
// isolation but not reachable from the booking's current state, such
// as reopening a cancelled booking. Cancelled and completed are
// terminal. Handlers should translate this into an HTTP 409 response.
var ErrInvalidTransition = errors.New("invalid status transition")
