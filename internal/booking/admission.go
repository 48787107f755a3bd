package booking

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/kingola1/brinkett-booking/internal/repository"
	"github.com/kingola1/brinkett-booking/internal/utils"
)

// Request carries a guest's booking submission.  Dates are calendar
// days (YYYY-MM-DD); CheckOut is exclusive, the guest occupies nights
// CheckIn through CheckOut minus one.
type Request struct {
	ApartmentID     uint64
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	CheckIn         string
	CheckOut        string
	NumGuests       uint32
	SpecialRequests string
}

// Result is returned on successful admission so the client can render
// a confirmation without a second round trip.
type Result struct {
	BookingID   uint64
	TotalAmount float64
	Nights      int
}

// Admission is the sole mutating entry point for new bookings.  It
// enforces the no-double-booking invariant by running the conflict
// check and the insert in one serializable transaction: two concurrent
// requests for overlapping dates on the same apartment cannot both
// pass the check and both commit.  A plain read-then-write without the
// transaction would race.
type Admission struct {
	db         *sql.DB
	apartments *repository.ApartmentRepo
	bookings   *repository.BookingRepo
}

// NewAdmission constructs an Admission controller.  All dependencies
// must be non-nil.
func NewAdmission(db *sql.DB, apartments *repository.ApartmentRepo, bookings *repository.BookingRepo) *Admission {
	if db == nil || apartments == nil || bookings == nil {
		panic("nil dependency passed to NewAdmission")
	}
	return &Admission{db: db, apartments: apartments, bookings: bookings}
}

// lockConflict reports whether err is a MySQL serialization failure:
// a deadlock (1213) or a lock wait timeout (1205).  Under serializable
// isolation the losing side of two concurrent overlapping admissions
// aborts with one of these instead of seeing the winner's row.
func lockConflict(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && (me.Number == 1213 || me.Number == 1205)
}

// Admit validates the request and, when every precondition holds,
// inserts a confirmed booking.  Preconditions are checked in a fixed
// order and the first failure wins:
//
//  1. all required fields present          → ErrMissingFields
//  2. apartment exists                     → ErrApartmentNotFound
//  3. no confirmed booking overlaps the half-open [CheckIn, CheckOut)
//     interval                             → ErrDatesUnavailable
//
// The overlap test is half-open, so a back-to-back stay checking in on
// another stay's checkout day is admitted even though the availability
// display blocks that day.  TotalAmount is nights × the apartment's
// CURRENT price and is frozen at insert time; later price changes
// never touch existing bookings.  Any storage failure rolls back the
// whole unit, so a booking is either fully created or not at all.
//
// When two admissions for overlapping dates race, the winner commits
// and the loser is aborted by the database with a serialization
// failure rather than a visible conflict count.  Both outcomes mean
// the same thing to the guest, so the loser also gets
// ErrDatesUnavailable, never a storage error.
func (a *Admission) Admit(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.GuestName) == "" ||
		strings.TrimSpace(req.GuestEmail) == "" ||
		strings.TrimSpace(req.GuestPhone) == "" ||
		req.CheckIn == "" || req.CheckOut == "" ||
		req.NumGuests == 0 || req.ApartmentID == 0 {
		return nil, ErrMissingFields
	}
	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		return nil, ErrInvalidDates
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		return nil, ErrInvalidDates
	}
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDates
	}

	tx, err := a.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	price, err := a.apartments.GetPriceTx(ctx, tx, req.ApartmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}

	conflicts, err := a.bookings.CountConflictsTx(ctx, tx, req.ApartmentID, req.CheckIn, req.CheckOut)
	if err != nil {
		if lockConflict(err) {
			return nil, ErrDatesUnavailable
		}
		return nil, err
	}
	if conflicts > 0 {
		return nil, ErrDatesUnavailable
	}

	nights := utils.Nights(checkIn, checkOut)
	total := float64(nights) * price

	rec := &repository.BookingRecord{
		ApartmentID:     req.ApartmentID,
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		NumGuests:       req.NumGuests,
		TotalAmount:     total,
		SpecialRequests: req.SpecialRequests,
	}
	if err := a.bookings.CreateTx(ctx, tx, rec); err != nil {
		if lockConflict(err) {
			return nil, ErrDatesUnavailable
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		if lockConflict(err) {
			return nil, ErrDatesUnavailable
		}
		return nil, err
	}
	committed = true

	return &Result{BookingID: rec.ID, TotalAmount: total, Nights: nights}, nil
}
