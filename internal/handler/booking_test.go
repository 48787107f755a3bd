package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingola1/brinkett-booking/internal/booking"
	"github.com/kingola1/brinkett-booking/internal/repository"
)

func newBookingHandler(t *testing.T) (*BookingHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	bookings := repository.NewBookingRepo(db)
	blocked := repository.NewBlockedDateRepo(db)
	apartments := repository.NewApartmentRepo(db)
	return NewBookingHandler(
		booking.NewResolver(bookings, blocked),
		booking.NewAdmission(db, apartments, bookings),
		bookings,
	), mock
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	require.NoError(t, h(c))
	return rec
}

func TestAvailabilityEndpoint(t *testing.T) {
	h, mock := newBookingHandler(t)

	// Far-future dates so the resolver's today clamp stays inert.
	in, err := time.Parse("2006-01-02", "2030-06-10")
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT check_in, check_out FROM bookings`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"check_in", "check_out"}).
			AddRow(in, in.AddDate(0, 0, 2)))
	mock.ExpectQuery(`SELECT date FROM blocked_dates`).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"date"}))

	rec := doJSON(t, h.Availability, http.MethodGet, "/v1/apartments/1/availability", "", map[string]string{"id": "1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"unavailableDates":["2030-06-10","2030-06-11","2030-06-12"]}`, rec.Body.String())
}

func TestAvailabilityBadID(t *testing.T) {
	h, _ := newBookingHandler(t)

	rec := doJSON(t, h.Availability, http.MethodGet, "/v1/apartments/abc/availability", "", map[string]string{"id": "abc"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingGuestMessages(t *testing.T) {
	cases := []struct {
		name string
		body string
		prep func(sqlmock.Sqlmock)
		want string
	}{
		{
			name: "missing fields",
			body: `{"apartmentId":1,"guestName":"","guestEmail":"j@e.com","guestPhone":"1","checkIn":"2024-06-10","checkOut":"2024-06-12","numGuests":2}`,
			want: "All required fields must be filled",
		},
		{
			name: "reversed dates",
			body: `{"apartmentId":1,"guestName":"Jane","guestEmail":"j@e.com","guestPhone":"1","checkIn":"2024-06-12","checkOut":"2024-06-10","numGuests":2}`,
			want: "Check-out must be after check-in",
		},
		{
			name: "unknown apartment",
			body: `{"apartmentId":1,"guestName":"Jane","guestEmail":"j@e.com","guestPhone":"1","checkIn":"2024-06-10","checkOut":"2024-06-12","numGuests":2}`,
			prep: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT price_per_night FROM apartments`).
					WithArgs(uint64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"price_per_night"}))
				mock.ExpectRollback()
			},
			want: "Invalid apartment",
		},
		{
			name: "dates taken",
			body: `{"apartmentId":1,"guestName":"Jane","guestEmail":"j@e.com","guestPhone":"1","checkIn":"2024-06-10","checkOut":"2024-06-12","numGuests":2}`,
			prep: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT price_per_night FROM apartments`).
					WithArgs(uint64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"price_per_night"}).AddRow(100.0))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
					WithArgs(uint64(1), "2024-06-10", "2024-06-12").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
				mock.ExpectRollback()
			},
			want: "Selected dates are not available",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, mock := newBookingHandler(t)
			if c.prep != nil {
				c.prep(mock)
			}
			rec := doJSON(t, h.Create, http.MethodPost, "/v1/bookings", c.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), c.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetBookingNotFound(t *testing.T) {
	h, mock := newBookingHandler(t)

	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := doJSON(t, h.GetByID, http.MethodGet, "/v1/bookings/7", "", map[string]string{"id": "7"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking not found")
}
