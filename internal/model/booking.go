package model

import "time"

// Booking statuses.  A booking is created as confirmed and may be
// moved by an admin to cancelled or completed; both are terminal.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Booking records a guest reservation of an apartment for a range of
// nights.  CheckIn and CheckOut are calendar-day strings (YYYY-MM-DD)
// with no time component; the checkout day itself is not occupied.
// TotalAmount is frozen at creation time and never recomputed, even
// if the apartment's nightly price later changes.
//
// Fields:
//  ID              – primary key identifier.
//  ApartmentID     – apartment being booked.
//  GuestName       – full name of the guest.
//  GuestEmail      – contact email.
//  GuestPhone      – contact phone number.
//  CheckIn         – first occupied night (YYYY-MM-DD).
//  CheckOut        – day of departure, exclusive (YYYY-MM-DD).
//  NumGuests       – number of guests staying.
//  TotalAmount     – nights × price-per-night at creation time.
//  Status          – confirmed, cancelled or completed.
//  SpecialRequests – optional free-text requests.
//  CreatedAt       – creation timestamp.
type Booking struct {
	ID              uint64    // bookings.id
	ApartmentID     uint64    // bookings.apartment_id
	GuestName       string    // bookings.guest_name
	GuestEmail      string    // bookings.guest_email
	GuestPhone      string    // bookings.guest_phone
	CheckIn         string    // bookings.check_in
	CheckOut        string    // bookings.check_out
	NumGuests       uint32    // bookings.num_guests
	TotalAmount     float64   // bookings.total_amount
	Status          string    // bookings.status
	SpecialRequests string    // bookings.special_requests
	CreatedAt       time.Time // bookings.created_at
}
