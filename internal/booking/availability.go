package booking

import (
	"context"
	"sort"
	"time"

	"github.com/kingola1/brinkett-booking/internal/repository"
	"github.com/kingola1/brinkett-booking/internal/utils"
)

// Resolver computes the set of calendar days that should not be
// offered for new bookings: every day covered by a confirmed booking
// plus every admin-blocked day, from today onwards.
//
// The result is advisory only.  It is built from two independent reads
// with no snapshot isolation between them; the authoritative check
// happens again inside the admission transaction, so a stale read here
// can at worst show a day as free that admission will then reject.
type Resolver struct {
	bookings *repository.BookingRepo
	blocked  *repository.BlockedDateRepo
	now      func() time.Time
}

// NewResolver constructs a Resolver.  Both repositories must be non-nil.
func NewResolver(bookings *repository.BookingRepo, blocked *repository.BlockedDateRepo) *Resolver {
	if bookings == nil || blocked == nil {
		panic("nil repository passed to NewResolver")
	}
	return &Resolver{bookings: bookings, blocked: blocked, now: time.Now}
}

// UnavailableDates returns the deduplicated, sorted unavailable days
// for an apartment, from today onwards.  Booking ranges are expanded
// INCLUSIVE of the checkout day: the turnover day is shown as
// unavailable even though admission would accept a back-to-back
// check-in on it.  That asymmetry is deliberate (see Admit).  A stay
// already in progress contributes only its remaining days; days
// before today never appear.  If either underlying read fails the
// whole call fails; partial availability is never returned.
func (r *Resolver) UnavailableDates(ctx context.Context, apartmentID uint64) ([]string, error) {
	ranges, err := r.bookings.ConfirmedRangesFrom(ctx, apartmentID)
	if err != nil {
		return nil, err
	}
	blocked, err := r.blocked.DatesFrom(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	n := r.now().UTC()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)

	seen := make(map[string]struct{})
	for _, rg := range ranges {
		in, err := utils.ParseDate(rg.CheckIn)
		if err != nil {
			return nil, err
		}
		out, err := utils.ParseDate(rg.CheckOut)
		if err != nil {
			return nil, err
		}
		if in.Before(today) {
			in = today
		}
		for _, day := range utils.DaysInclusive(in, out) {
			seen[day] = struct{}{}
		}
	}
	for _, day := range blocked {
		seen[day] = struct{}{}
	}

	dates := make([]string, 0, len(seen))
	for day := range seen {
		dates = append(dates, day)
	}
	sort.Strings(dates)
	return dates, nil
}
