package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/kingola1/brinkett-booking/internal/model"
	"github.com/kingola1/brinkett-booking/internal/utils"
)

// BlockedDateRepo persists admin-declared unavailable days.  Blocked
// dates are per apartment and independent of bookings; the
// availability resolver merges them with confirmed booking ranges.
type BlockedDateRepo struct {
	db *sql.DB
}

// NewBlockedDateRepo returns a new BlockedDateRepo bound to the given database.
func NewBlockedDateRepo(db *sql.DB) *BlockedDateRepo { return &BlockedDateRepo{db: db} }

// ErrDateAlreadyBlocked is returned when the apartment already has a
// block on the given day (unique key on apartment_id + date).
var ErrDateAlreadyBlocked = errors.New("date already blocked")

// Create inserts a blocked day for an apartment and returns its ID.
// An empty reason defaults to "Maintenance".
func (r *BlockedDateRepo) Create(ctx context.Context, apartmentID uint64, date, reason string) (uint64, error) {
	if reason == "" {
		reason = "Maintenance"
	}
	const q = `INSERT INTO blocked_dates (apartment_id, date, reason) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, apartmentID, date, reason)
	if err != nil {
		// 1062 is the MySQL duplicate-entry code for the unique key.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrDateAlreadyBlocked
		}
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns every blocked date for an apartment ordered by day.
func (r *BlockedDateRepo) List(ctx context.Context, apartmentID uint64) ([]model.BlockedDate, error) {
	const q = `SELECT id, apartment_id, date, reason, created_at
	           FROM blocked_dates WHERE apartment_id = ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, q, apartmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.BlockedDate, 0)
	for rows.Next() {
		var b model.BlockedDate
		var day time.Time
		var reason sql.NullString
		if err := rows.Scan(&b.ID, &b.ApartmentID, &day, &reason, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Date = day.Format(utils.DateLayout)
		if reason.Valid {
			b.Reason = reason.String
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// DatesFrom returns the blocked days for an apartment from today
// onwards, as calendar-day strings.  Used by the availability
// resolver, which never reports past dates.
func (r *BlockedDateRepo) DatesFrom(ctx context.Context, apartmentID uint64) ([]string, error) {
	const q = `SELECT date FROM blocked_dates WHERE apartment_id = ? AND date >= CURDATE()`
	rows, err := r.db.QueryContext(ctx, q, apartmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	dates := make([]string, 0)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		dates = append(dates, day.Format(utils.DateLayout))
	}
	return dates, rows.Err()
}

// Delete removes a blocked date.  Returns sql.ErrNoRows when no row
// matches.
func (r *BlockedDateRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blocked_dates WHERE id = ?`, id)
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
