// Package progress implements the habit progress computations: goal
// evaluation, tapering interpolation, streak transitions, fixed-days
// tracking, and the composed per-day progress view. Everything in this
// package is pure; persistence happens in the services layer.
package progress

import "time"

// ISODate is the wire format for calendar dates.
const ISODate = "2006-01-02"

// DateOf truncates a timestamp to its calendar day in UTC. All progress
// computations operate on these day-granular values.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day in UTC.
func Today() time.Time {
	return DateOf(time.Now())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// IsYesterday reports whether a is exactly one calendar day before b.
func IsYesterday(a, b time.Time) bool {
	return DateOf(a).AddDate(0, 0, 1).Equal(DateOf(b))
}

// DaysBetween returns the number of whole calendar days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) as a UTC day.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(ISODate, s, time.UTC)
}

// FormatDate formats a timestamp as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(ISODate)
}
