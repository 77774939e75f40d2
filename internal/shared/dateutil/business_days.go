// Package dateutil provides calendar helpers for trading-day arithmetic.
package dateutil

import "time"

// IsBusinessDay reports whether t falls on a weekday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextBusinessDays returns the n weekdays strictly after the given date,
// in ascending order.
func NextBusinessDays(after time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	d := after
	for len(days) < n {
		d = d.AddDate(0, 0, 1)
		if IsBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}
