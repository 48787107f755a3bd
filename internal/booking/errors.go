// Package booking holds the availability resolver and the booking
// admission controller: the only two pieces of the system with real
// invariants.  Everything else is request/response plumbing around
// them.
package booking

import "errors"

// ErrMissingFields is returned when a required admission field is
// absent or empty.  Handlers translate it into a 400 with the
// guest-facing message.  Checked before anything touches the database,
// so a request that is both incomplete and references a nonexistent
// apartment fails on the missing field.
var ErrMissingFields = errors.New("missing required fields")

// ErrInvalidDates is returned when a date does not parse as
// YYYY-MM-DD or when check-out is not strictly after check-in.
var ErrInvalidDates = errors.New("invalid dates")

// ErrApartmentNotFound is returned when the apartment identifier does
// not resolve.  Admission surfaces it as a 400 "Invalid apartment" to
// keep the guest-visible behaviour of the booking form.
var ErrApartmentNotFound = errors.New("apartment not found")

// ErrDatesUnavailable is returned when the requested range overlaps an
// existing confirmed booking.  This is an expected, frequent outcome,
// not a server fault: handlers return 400 and never log it as an
// error.
var ErrDatesUnavailable = errors.New("dates not available")
