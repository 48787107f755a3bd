package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 10, d.Day())

	_, err = ParseDate("10/06/2024")
	assert.Error(t, err)

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestNights(t *testing.T) {
	cases := []struct {
		in, out string
		want    int
	}{
		{"2024-01-01", "2024-01-04", 3},
		{"2024-01-01", "2024-01-02", 1},
		{"2024-02-28", "2024-03-01", 2}, // leap year
		{"2024-06-10", "2024-06-10", 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Nights(day(t, c.in), day(t, c.out)), "%s..%s", c.in, c.out)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "2024-06-10", "2024-06-12", "2024-06-10", "2024-06-12", true},
		{"contained", "2024-06-10", "2024-06-20", "2024-06-12", "2024-06-14", true},
		{"partial left", "2024-06-08", "2024-06-11", "2024-06-10", "2024-06-12", true},
		{"partial right", "2024-06-11", "2024-06-14", "2024-06-10", "2024-06-12", true},
		{"single shared night", "2024-06-11", "2024-06-12", "2024-06-10", "2024-06-12", true},
		// The half-open boundary: checking in on another stay's
		// checkout day is not an overlap.
		{"back to back after", "2024-06-12", "2024-06-14", "2024-06-10", "2024-06-12", false},
		{"back to back before", "2024-06-08", "2024-06-10", "2024-06-10", "2024-06-12", false},
		{"disjoint", "2024-07-01", "2024-07-05", "2024-06-10", "2024-06-12", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Overlaps(day(t, c.aStart), day(t, c.aEnd), day(t, c.bStart), day(t, c.bEnd))
			assert.Equal(t, c.want, got)
			// The predicate is symmetric.
			assert.Equal(t, c.want, Overlaps(day(t, c.bStart), day(t, c.bEnd), day(t, c.aStart), day(t, c.aEnd)))
		})
	}
}

func TestDaysInclusive(t *testing.T) {
	got := DaysInclusive(day(t, "2024-06-10"), day(t, "2024-06-12"))
	assert.Equal(t, []string{"2024-06-10", "2024-06-11", "2024-06-12"}, got)

	// Single day ranges include that one day.
	got = DaysInclusive(day(t, "2024-06-10"), day(t, "2024-06-10"))
	assert.Equal(t, []string{"2024-06-10"}, got)

	// Month boundary.
	got = DaysInclusive(day(t, "2024-06-29"), day(t, "2024-07-02"))
	assert.Equal(t, []string{"2024-06-29", "2024-06-30", "2024-07-01", "2024-07-02"}, got)

	// Reversed ranges yield nothing.
	assert.Nil(t, DaysInclusive(day(t, "2024-06-12"), day(t, "2024-06-10")))
}
