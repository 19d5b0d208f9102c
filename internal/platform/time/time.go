// Package time holds calendar-day helpers. Days are UTC midnights.
package time

import (
	"time"

	perr "dltally/internal/platform/errors"
)

// DayLayout is the wire and storage format of a day
const DayLayout = "2006-01-02"

// Day truncates t to its UTC calendar day
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses YYYY-MM-DD as a UTC day
func ParseDay(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "parse day %q", s)
	}
	return d, nil
}

// FormatDay renders a day as YYYY-MM-DD
func FormatDay(t time.Time) string { return Day(t).Format(DayLayout) }

// DaysBetween returns the whole calendar days from a to b (b - a)
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// AddDays shifts a day by n calendar days
func AddDays(t time.Time, n int) time.Time { return Day(t).AddDate(0, 0, n) }

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
