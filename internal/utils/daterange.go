package utils // package utils provides date-range helpers shared by availability and admission

import "time"

// DateLayout is the calendar-day format used everywhere dates cross a
// boundary: request payloads, database DATE columns and availability
// responses.  There is deliberately no time-of-day component.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC time.Time at midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Nights returns the number of nights between check-in and check-out,
// i.e. the length of the half-open interval [checkIn, checkOut).
// A stay from 2024-01-01 to 2024-01-04 is 3 nights.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one night.  Back-to-back stays where
// one guest checks out the day another checks in do not overlap.
// It is the in-process mirror of the SQL predicate booking admission
// runs inside its transaction; the two must agree, and the tests here
// pin the boundary cases.  The availability display deliberately uses
// the inclusive expansion in DaysInclusive instead.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(aEnd.Compare(bStart) <= 0 || aStart.Compare(bEnd) >= 0)
}

// DaysInclusive expands the range [start, end] into individual
// calendar-day strings, INCLUDING the end day.  Availability uses this
// to block the checkout/turnover day from being shown as available,
// trading a little capacity for collision safety.  Returns nil when
// end is before start.
func DaysInclusive(start, end time.Time) []string {
	if end.Before(start) {
		return nil
	}
	days := make([]string, 0, Nights(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days
}
