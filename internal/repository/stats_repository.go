package repository

import (
	"context"
	"database/sql"
	"math"
	"time"
)

// StatsRepo aggregates dashboard figures for the admin back office.
type StatsRepo struct{ db *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// DashboardStats is the JSON shape of the admin dashboard tiles.
type DashboardStats struct {
	TotalBookings    int     `json:"totalBookings"`
	UpcomingBookings int     `json:"upcomingBookings"`
	TotalRevenue     float64 `json:"totalRevenue"`
	OccupancyRate    int     `json:"occupancyRate"`
}

// Dashboard computes the stat tiles: lifetime booking count, upcoming
// confirmed stays, revenue from completed stays, and the share of the
// current month's days with a confirmed check-in.  now supplies the
// reference date so the month boundary is testable.
func (r *StatsRepo) Dashboard(ctx context.Context, now time.Time) (DashboardStats, error) {
	var s DashboardStats

	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings`).Scan(&s.TotalBookings); err != nil {
		return s, err
	}

	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE check_in >= CURDATE() AND status = 'confirmed'`,
	).Scan(&s.UpcomingBookings); err != nil {
		return s, err
	}

	var revenue sql.NullFloat64
	if err := r.db.QueryRowContext(ctx,
		`SELECT SUM(total_amount) FROM bookings WHERE status = 'completed'`,
	).Scan(&revenue); err != nil {
		return s, err
	}
	s.TotalRevenue = revenue.Float64

	month := now.Format("2006-01")
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	var bookedDays int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE DATE_FORMAT(check_in, '%Y-%m') = ? AND status = 'confirmed'`,
		month,
	).Scan(&bookedDays); err != nil {
		return s, err
	}
	s.OccupancyRate = int(math.Round(float64(bookedDays) / float64(daysInMonth) * 100))
	return s, nil
}
