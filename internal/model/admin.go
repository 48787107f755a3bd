package model

import "time"

// Admin is a back-office user.  Only admins may mutate apartments,
// booking statuses, blocked dates and settings; guest booking
// creation is intentionally public and requires no account.
type Admin struct {
	ID           uint64    // admins.id
	Username     string    // admins.username
	PasswordHash string    // admins.password_hash
	CreatedAt    time.Time // admins.created_at
}

// Setting is a single key/value entry of site-wide configuration such
// as the cancellation policy or check-in time.
type Setting struct {
	ID        uint64    // settings.id
	Key       string    // settings.key
	Value     string    // settings.value
	UpdatedAt time.Time // settings.updated_at
}
