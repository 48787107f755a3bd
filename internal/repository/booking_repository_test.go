package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingola1/brinkett-booking/internal/model"
)

func newBookingRepo(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepo(db), mock
}

func bookingRows(t *testing.T, ids ...uint64) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{
		"id", "apartment_id", "guest_name", "guest_email", "guest_phone",
		"check_in", "check_out", "num_guests", "total_amount", "status",
		"special_requests", "created_at",
	})
	in, err := time.Parse("2006-01-02", "2024-06-10")
	require.NoError(t, err)
	for _, id := range ids {
		rows.AddRow(id, 1, "Jane Smith", "jane@example.com", "+1 555 0100",
			in, in.AddDate(0, 0, 2), 2, 200.0, "confirmed", nil, time.Now())
	}
	return rows
}

func TestListNoFilter(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`FROM bookings ORDER BY created_at DESC`).
		WithArgs(10, 0).
		WillReturnRows(bookingRows(t, 12, 11, 10))

	bookings, total, err := repo.List(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, bookings, 3)
	assert.Equal(t, uint64(12), bookings[0].ID)
	assert.Equal(t, "2024-06-10", bookings[0].CheckIn)
	assert.Equal(t, "2024-06-12", bookings[0].CheckOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListStatusFilterAndPaging(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE status = \?`).
		WithArgs("cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	// Page 2 with limit 5 skips the first 5 rows.
	mock.ExpectQuery(`FROM bookings WHERE status = \? ORDER BY created_at DESC LIMIT \? OFFSET \?`).
		WithArgs("cancelled", 5, 5).
		WillReturnRows(bookingRows(t, 2, 1))

	bookings, total, err := repo.List(context.Background(), "cancelled", 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Len(t, bookings, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllDisablesFilter(t *testing.T) {
	repo, mock := newBookingRepo(t)

	// "all" behaves like no filter at all.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM bookings ORDER BY created_at DESC`).
		WithArgs(10, 0).
		WillReturnRows(bookingRows(t, 1))

	_, total, err := repo.List(context.Background(), "all", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WithArgs(uint64(99)).
		WillReturnRows(bookingRows(t))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUpdateStatus(t *testing.T) {
	t.Run("confirmed to cancelled", func(t *testing.T) {
		repo, mock := newBookingRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE bookings SET status = ? WHERE id = ? AND status = 'confirmed'`)).
			WithArgs("cancelled", uint64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), 5, model.BookingCancelled)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown status", func(t *testing.T) {
		repo, mock := newBookingRepo(t)
		err := repo.UpdateStatus(context.Background(), 5, "pending")
		assert.ErrorIs(t, err, ErrInvalidStatus)
		// No query issued for a status the state machine does not know.
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("back to confirmed is not a status", func(t *testing.T) {
		repo, _ := newBookingRepo(t)
		err := repo.UpdateStatus(context.Background(), 5, model.BookingConfirmed)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("missing booking", func(t *testing.T) {
		repo, mock := newBookingRepo(t)
		mock.ExpectExec(`UPDATE bookings SET status = \?`).
			WithArgs("completed", uint64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE id = \?`).
			WithArgs(uint64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.UpdateStatus(context.Background(), 99, model.BookingCompleted)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("already terminal", func(t *testing.T) {
		repo, mock := newBookingRepo(t)
		mock.ExpectExec(`UPDATE bookings SET status = \?`).
			WithArgs("completed", uint64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE id = \?`).
			WithArgs(uint64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.UpdateStatus(context.Background(), 5, model.BookingCompleted)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestDeleteBooking(t *testing.T) {
	repo, mock := newBookingRepo(t)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \?`).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 5))

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \?`).
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 99), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
