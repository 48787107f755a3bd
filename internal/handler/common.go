package handler

import (
	"time"

	"github.com/kingola1/brinkett-booking/internal/model"
)

// bookingJSON is the wire shape of a booking record, shared by the
// guest lookup and the admin list.
type bookingJSON struct {
	ID              uint64  `json:"id"`
	ApartmentID     uint64  `json:"apartmentId"`
	GuestName       string  `json:"guestName"`
	GuestEmail      string  `json:"guestEmail"`
	GuestPhone      string  `json:"guestPhone"`
	CheckIn         string  `json:"checkIn"`
	CheckOut        string  `json:"checkOut"`
	NumGuests       uint32  `json:"numGuests"`
	TotalAmount     float64 `json:"totalAmount"`
	Status          string  `json:"status"`
	SpecialRequests string  `json:"specialRequests"`
	CreatedAt       string  `json:"createdAt"`
}

func bookingView(b *model.Booking) bookingJSON {
	return bookingJSON{
		ID:              b.ID,
		ApartmentID:     b.ApartmentID,
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		GuestPhone:      b.GuestPhone,
		CheckIn:         b.CheckIn,
		CheckOut:        b.CheckOut,
		NumGuests:       b.NumGuests,
		TotalAmount:     b.TotalAmount,
		Status:          b.Status,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
