// Package datex holds calendar-date helpers. The whole system works on
// dates without time-of-day, normalized to UTC midnight.
package datex

import "time"

// Day collapses a timestamp to its calendar date (UTC midnight).
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewDate builds a calendar date.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns b minus a in whole days (negative if b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// WholeYears returns complete years elapsed from `from` to `to`,
// adjusting when the anniversary has not been reached yet.
func WholeYears(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}

// Parse reads a YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// Format renders a date as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(time.DateOnly)
}
