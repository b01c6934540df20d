// Package localdate handles calendar-date arithmetic for membership
// coverage. Membership boundaries are calendar dates in the gym's local
// time zone, so "today" near midnight must be computed against that
// zone, not UTC.
package localdate

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// Date returns a date-only value pinned to UTC midnight. All coverage
// comparisons operate on such values.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOnly truncates t to its calendar date, discarding clock and zone.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Parse reads a YYYY-MM-DD string into a date-only value.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// AddMonths advances a date by whole calendar months. Go normalizes
// overflow the same way the reference platform did: Jan 31 plus one
// month lands on Mar 2 or Mar 3, not Feb 28. Renewal end dates keep
// that behavior.
func AddMonths(t time.Time, months int) time.Time {
	return DateOnly(t).AddDate(0, months, 0)
}

// Covers reports whether day falls within [start, end], bounds inclusive.
func Covers(start, end, day time.Time) bool {
	d := DateOnly(day)
	return !DateOnly(start).After(d) && !DateOnly(end).Before(d)
}
