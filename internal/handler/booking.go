package handler

import (
	"database/sql" // for sentinel errors returned from repository
	"errors"       // for errors.Is comparisons
	"net/http"     // HTTP status codes
	"strconv"      // parsing path parameters

	"github.com/labstack/echo/v4"

	"github.com/kingola1/brinkett-booking/internal/booking"
	"github.com/kingola1/brinkett-booking/internal/queue"
	"github.com/kingola1/brinkett-booking/internal/repository"
	queue_publisher "github.com/kingola1/brinkett-booking/internal/service"
)

// BookingHandler exposes the guest-facing booking surface: the
// availability read, booking creation and booking lookup.  No
// authentication applies; guest booking creation is intentionally
// public.
type BookingHandler struct {
	Resolver  *booking.Resolver
	Admission *booking.Admission
	Bookings  *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler.  All dependencies
// must be non-nil.
func NewBookingHandler(resolver *booking.Resolver, admission *booking.Admission, bookings *repository.BookingRepo) *BookingHandler {
	if resolver == nil || admission == nil || bookings == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Resolver: resolver, Admission: admission, Bookings: bookings}
}

// Availability handles GET /v1/apartments/:id/availability.  It
// returns every unavailable calendar day for the apartment from today
// onwards, merged from confirmed bookings and blocked dates.  The
// response is a flat, deduplicated list of YYYY-MM-DD strings.
func (h *BookingHandler) Availability(c echo.Context) error {
	apartmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || apartmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid apartment id"})
	}
	dates, err := h.Resolver.UnavailableDates(c.Request().Context(), apartmentID)
	if err != nil {
		c.Logger().Errorf("availability: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch availability"})
	}
	return c.JSON(http.StatusOK, echo.Map{"unavailableDates": dates})
}

type createBookingReq struct {
	ApartmentID     uint64 `json:"apartmentId"`
	GuestName       string `json:"guestName"`
	GuestEmail      string `json:"guestEmail"`
	GuestPhone      string `json:"guestPhone"`
	CheckIn         string `json:"checkIn"`
	CheckOut        string `json:"checkOut"`
	NumGuests       uint32 `json:"numGuests"`
	SpecialRequests string `json:"specialRequests"`
}

// Create handles POST /v1/bookings.  Validation failures, unknown
// apartments and date conflicts all surface as 400 with a
// plain-language reason the guest can act on; conflicts are an
// expected outcome and are not logged.  On success the response
// carries the booking ID, frozen total and night count so the client
// can confirm without another request.
func (h *BookingHandler) Create(c echo.Context) error {
	var body createBookingReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req := booking.Request{
		ApartmentID:     body.ApartmentID,
		GuestName:       body.GuestName,
		GuestEmail:      body.GuestEmail,
		GuestPhone:      body.GuestPhone,
		CheckIn:         body.CheckIn,
		CheckOut:        body.CheckOut,
		NumGuests:       body.NumGuests,
		SpecialRequests: body.SpecialRequests,
	}
	res, err := h.Admission.Admit(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "All required fields must be filled"})
		case errors.Is(err, booking.ErrInvalidDates):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Check-out must be after check-in"})
		case errors.Is(err, booking.ErrApartmentNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid apartment"})
		case errors.Is(err, booking.ErrDatesUnavailable):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Selected dates are not available"})
		}
		c.Logger().Errorf("create booking: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create booking"})
	}

	// Best effort: a broker outage must never fail a booking that is
	// already committed.
	ev := queue.BookingConfirmedEvent{
		BookingID:   res.BookingID,
		ApartmentID: req.ApartmentID,
		GuestName:   req.GuestName,
		GuestEmail:  req.GuestEmail,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Nights:      res.Nights,
		TotalAmount: res.TotalAmount,
	}
	_ = queue_publisher.PublishBookingConfirmed(c.Request().Context(), ev)

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"bookingId":   res.BookingID,
		"totalAmount": res.TotalAmount,
		"nights":      res.Nights,
	})
}

// GetByID handles GET /v1/bookings/:id and returns the full booking
// record, 404 when absent.
func (h *BookingHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		c.Logger().Errorf("get booking: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, bookingView(b))
}
