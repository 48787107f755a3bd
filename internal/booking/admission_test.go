package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingola1/brinkett-booking/internal/repository"
)

func newAdmission(t *testing.T) (*Admission, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAdmission(db, repository.NewApartmentRepo(db), repository.NewBookingRepo(db)), mock
}

func validRequest() Request {
	return Request{
		ApartmentID: 1,
		GuestName:   "Jane Smith",
		GuestEmail:  "jane@example.com",
		GuestPhone:  "+1 555 0100",
		CheckIn:     "2024-06-10",
		CheckOut:    "2024-06-12",
		NumGuests:   2,
	}
}

func expectPrice(mock sqlmock.Sqlmock, price float64) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT price_per_night FROM apartments WHERE id = ?`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"price_per_night"}).AddRow(price))
}

func expectConflicts(mock sqlmock.Sqlmock, in, out string, n int) {
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(1, in, out).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n))
}

func TestAdmitSuccess(t *testing.T) {
	adm, mock := newAdmission(t)

	mock.ExpectBegin()
	expectPrice(mock, 100)
	expectConflicts(mock, "2024-06-10", "2024-06-12", 0)
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(uint64(1), "Jane Smith", "jane@example.com", "+1 555 0100",
			"2024-06-10", "2024-06-12", uint32(2), 200.0, "").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	res, err := adm.Admit(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), res.BookingID)
	assert.Equal(t, 2, res.Nights)
	// Two nights at the current nightly price, frozen at admission.
	assert.Equal(t, 200.0, res.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdmitMissingFields(t *testing.T) {
	adm, mock := newAdmission(t)

	cases := []func(*Request){
		func(r *Request) { r.GuestName = "" },
		func(r *Request) { r.GuestName = "   " },
		func(r *Request) { r.GuestEmail = "" },
		func(r *Request) { r.GuestPhone = "" },
		func(r *Request) { r.CheckIn = "" },
		func(r *Request) { r.CheckOut = "" },
		func(r *Request) { r.NumGuests = 0 },
		func(r *Request) { r.ApartmentID = 0 },
	}
	for _, mutate := range cases {
		req := validRequest()
		mutate(&req)
		_, err := adm.Admit(context.Background(), req)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
	// Validation rejects before any database work.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdmitMissingFieldBeatsBadDates(t *testing.T) {
	adm, _ := newAdmission(t)

	// A request missing the email AND carrying garbage dates reports
	// the missing field, not the date problem.
	req := validRequest()
	req.GuestEmail = ""
	req.CheckIn = "garbage"
	_, err := adm.Admit(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestAdmitInvalidDates(t *testing.T) {
	adm, _ := newAdmission(t)

	cases := []struct {
		in, out string
	}{
		{"not-a-date", "2024-06-12"},
		{"2024-06-10", "12.06.2024"},
		{"2024-06-12", "2024-06-10"}, // reversed
		{"2024-06-10", "2024-06-10"}, // zero nights
	}
	for _, c := range cases {
		req := validRequest()
		req.CheckIn, req.CheckOut = c.in, c.out
		_, err := adm.Admit(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDates, "%s..%s", c.in, c.out)
	}
}

func TestAdmitApartmentNotFound(t *testing.T) {
	adm, mock := newAdmission(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT price_per_night FROM apartments WHERE id = ?`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"price_per_night"}))
	mock.ExpectRollback()

	_, err := adm.Admit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrApartmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdmitConflictRejected(t *testing.T) {
	adm, mock := newAdmission(t)

	mock.ExpectBegin()
	expectPrice(mock, 100)
	expectConflicts(mock, "2024-06-10", "2024-06-12", 1)
	mock.ExpectRollback()

	_, err := adm.Admit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDatesUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdmitBackToBackAllowed(t *testing.T) {
	adm, mock := newAdmission(t)

	// An existing stay ends 2024-06-10; a new stay checking in on that
	// day produces zero conflicts under the half-open overlap and is
	// admitted.
	req := validRequest()
	req.CheckIn, req.CheckOut = "2024-06-10", "2024-06-14"

	mock.ExpectBegin()
	expectPrice(mock, 85.5)
	expectConflicts(mock, "2024-06-10", "2024-06-14", 0)
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(uint64(1), "Jane Smith", "jane@example.com", "+1 555 0100",
			"2024-06-10", "2024-06-14", uint32(2), 342.0, "").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	res, err := adm.Admit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Nights)
	assert.Equal(t, 342.0, res.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdmitRaceLoserGetsConflict(t *testing.T) {
	adm, mock := newAdmission(t)

	// The losing side of two concurrent overlapping admissions sees a
	// clean conflict count but is aborted by the database at the
	// insert.  The dates are taken either way, so the guest gets the
	// conflict error, not a storage failure.
	mock.ExpectBegin()
	expectPrice(mock, 100)
	expectConflicts(mock, "2024-06-10", "2024-06-12", 0)
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock; try restarting transaction"})
	mock.ExpectRollback()

	_, err := adm.Admit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDatesUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdmitLockTimeoutGetsConflict(t *testing.T) {
	adm, mock := newAdmission(t)

	mock.ExpectBegin()
	expectPrice(mock, 100)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WithArgs(1, "2024-06-10", "2024-06-12").
		WillReturnError(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded; try restarting transaction"})
	mock.ExpectRollback()

	_, err := adm.Admit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDatesUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdmitInsertFailureRollsBack(t *testing.T) {
	adm, mock := newAdmission(t)

	mock.ExpectBegin()
	expectPrice(mock, 100)
	expectConflicts(mock, "2024-06-10", "2024-06-12", 0)
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	_, err := adm.Admit(context.Background(), validRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDatesUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
