package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kingola1/brinkett-booking/internal/model"
	"github.com/kingola1/brinkett-booking/internal/utils"
)

// BookingRepo provides persistence for bookings.  The booking table is
// the source of truth for occupied date ranges: availability reads it
// and admission re-checks it inside a transaction before inserting.
// All date columns are calendar-day DATE values.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// that span the conflict check and the insert.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// BookingRecord carries the fields needed to insert a booking.  The
// generated ID is populated by CreateTx.
type BookingRecord struct {
	ID              uint64
	ApartmentID     uint64
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	CheckIn         string
	CheckOut        string
	NumGuests       uint32
	TotalAmount     float64
	SpecialRequests string
}

// DateRange is one confirmed booking's occupied span as stored, with
// the exclusive checkout day.  Availability expands it inclusively.
type DateRange struct {
	CheckIn  string
	CheckOut string
}

// CountConflictsTx counts confirmed bookings for the apartment whose
// [check_in, check_out) interval overlaps the candidate interval.
// Two half-open intervals overlap unless one ends on or before the
// other starts, hence NOT (check_out <= candidate start OR check_in >=
// candidate end).  It must run inside the same transaction as the
// subsequent insert so concurrent attempts serialize on the range.
func (r *BookingRepo) CountConflictsTx(ctx context.Context, tx *sql.Tx, apartmentID uint64, checkIn, checkOut string) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings
	           WHERE status = 'confirmed' AND apartment_id = ?
	           AND NOT (check_out <= ? OR check_in >= ?)`
	var n int
	err := tx.QueryRowContext(ctx, q, apartmentID, checkIn, checkOut).Scan(&n)
	return n, err
}

// CreateTx inserts a new booking with status confirmed within the
// scope of an existing transaction and populates the generated ID on
// the provided record.  The caller must commit or rollback.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *BookingRecord) error {
	const q = `INSERT INTO bookings
	           (apartment_id, guest_name, guest_email, guest_phone, check_in, check_out, num_guests, total_amount, status, special_requests)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'confirmed', ?)`
	result, err := tx.ExecContext(ctx, q,
		b.ApartmentID, b.GuestName, b.GuestEmail, b.GuestPhone,
		b.CheckIn, b.CheckOut, b.NumGuests, b.TotalAmount, b.SpecialRequests)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// ConfirmedRangesFrom returns the date ranges of confirmed bookings
// for the apartment that have not fully elapsed, i.e. whose checkout
// day is today or later.  Used by the availability resolver.
func (r *BookingRepo) ConfirmedRangesFrom(ctx context.Context, apartmentID uint64) ([]DateRange, error) {
	const q = `SELECT check_in, check_out FROM bookings
	           WHERE status = 'confirmed' AND apartment_id = ? AND check_out >= CURDATE()`
	rows, err := r.db.QueryContext(ctx, q, apartmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ranges := make([]DateRange, 0)
	for rows.Next() {
		var in, out time.Time
		if err := rows.Scan(&in, &out); err != nil {
			return nil, err
		}
		ranges = append(ranges, DateRange{
			CheckIn:  in.Format(utils.DateLayout),
			CheckOut: out.Format(utils.DateLayout),
		})
	}
	return ranges, rows.Err()
}

// GetByID returns the full booking record or sql.ErrNoRows.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, apartment_id, guest_name, guest_email, guest_phone,
	                  check_in, check_out, num_guests, total_amount, status, special_requests, created_at
	           FROM bookings WHERE id = ?`
	var b model.Booking
	var in, out time.Time
	var special sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.ApartmentID, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
		&in, &out, &b.NumGuests, &b.TotalAmount, &b.Status, &special, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.CheckIn = in.Format(utils.DateLayout)
	b.CheckOut = out.Format(utils.DateLayout)
	if special.Valid {
		b.SpecialRequests = special.String
	}
	return &b, nil
}

// List returns a page of bookings ordered newest first, optionally
// filtered by status, along with the total count for pagination.
// A status of "" or "all" disables the filter.
func (r *BookingRepo) List(ctx context.Context, status string, page, limit int) ([]model.Booking, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	filter := status != "" && status != "all"

	countQ := `SELECT COUNT(*) FROM bookings`
	if filter {
		countQ += ` WHERE status = ?`
	}
	var total int
	var err error
	if filter {
		err = r.db.QueryRowContext(ctx, countQ, status).Scan(&total)
	} else {
		err = r.db.QueryRowContext(ctx, countQ).Scan(&total)
	}
	if err != nil {
		return nil, 0, err
	}

	q := `SELECT id, apartment_id, guest_name, guest_email, guest_phone,
	             check_in, check_out, num_guests, total_amount, status, special_requests, created_at
	      FROM bookings`
	args := make([]interface{}, 0, 3)
	if filter {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0, limit)
	for rows.Next() {
		var b model.Booking
		var in, out time.Time
		var special sql.NullString
		if err := rows.Scan(
			&b.ID, &b.ApartmentID, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
			&in, &out, &b.NumGuests, &b.TotalAmount, &b.Status, &special, &b.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		b.CheckIn = in.Format(utils.DateLayout)
		b.CheckOut = out.Format(utils.DateLayout)
		if special.Valid {
			b.SpecialRequests = special.String
		}
		bookings = append(bookings, b)
	}
	return bookings, total, rows.Err()
}

// UpdateStatus moves a booking from confirmed to cancelled or
// completed.  Both target states are terminal, so the update only
// matches rows still in confirmed.  Returns ErrInvalidStatus for an
// unknown target, sql.ErrNoRows when the booking does not exist and
// ErrInvalidTransition when it exists but has already left confirmed.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	if status != model.BookingCancelled && status != model.BookingCompleted {
		return ErrInvalidStatus
	}
	const q = `UPDATE bookings SET status = ? WHERE id = ? AND status = 'confirmed'`
	result, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE id = ?`, id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return sql.ErrNoRows
	}
	return ErrInvalidTransition
}

// Delete hard-deletes a booking.  There is no soft delete or audit
// trail.  Returns sql.ErrNoRows when no booking matches.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
