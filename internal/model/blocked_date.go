package model

import "time"

// BlockedDate marks a single calendar day as unavailable for an
// apartment independently of any booking, e.g. for maintenance.
// Blocked dates are created and deleted by admins; there is no
// update operation.
type BlockedDate struct {
	ID          uint64    // blocked_dates.id
	ApartmentID uint64    // blocked_dates.apartment_id
	Date        string    // blocked_dates.date (YYYY-MM-DD)
	Reason      string    // blocked_dates.reason
	CreatedAt   time.Time // blocked_dates.created_at
}
