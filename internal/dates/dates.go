// Package dates provides calendar-day keys and window arithmetic.
//
// All keys use the same convention: the UTC calendar day of a timestamp,
// rendered as YYYY-MM-DD. Mixing local-day and UTC-day keys is the one
// mistake this package exists to prevent; every caller goes through DayOf.
package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format of a Day.
const Layout = "2006-01-02"

// Day identifies a calendar day with no time-of-day component.
// The YYYY-MM-DD form makes lexical order equal to chronological order.
type Day string

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format(Layout))
}

// Parse validates a raw string as a day key.
func Parse(raw string) (Day, error) {
	t, err := time.Parse(Layout, raw)
	if err != nil {
		return "", fmt.Errorf("parse day %q: %w", raw, err)
	}
	return DayOf(t), nil
}

// Time returns the midnight-UTC instant of the day.
func (d Day) Time() time.Time {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is chronologically before other.
func (d Day) Before(other Day) bool { return d < other }

// Enumerate returns every day from start to end inclusive, ascending.
// Returns nil when start is after end.
func Enumerate(start, end Day) []Day {
	if end.Before(start) {
		return nil
	}
	n := int(end.Time().Sub(start.Time())/(24*time.Hour)) + 1
	days := make([]Day, 0, n)
	for d := start; !end.Before(d); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Window returns the n trailing days ending at (and including) end.
func Window(end Day, n int) []Day {
	if n <= 0 {
		return nil
	}
	return Enumerate(end.AddDays(-(n-1)), end)
}
