// Package report turns parsed feed events into countdown summaries and CSV
// exports. Countdown math, title cleaning and date formatting live here
// once; every renderer calls the same implementations.
package report

import (
	"strings"
	"time"
)

// placeholderMarker is boilerplate some feeds prepend to event titles.
const placeholderMarker = "PLACEHOLDER ONLY:"

// DaysRemaining counts whole calendar days from an adjusted "today" to the
// event start. Both sides are truncated to dates; time of day never
// matters. offsetDays shifts the cutoff (positive moves it later, so fewer
// events qualify). Zero means the event is today, negative means it is
// behind the cutoff.
func DaysRemaining(start, today time.Time, offsetDays int) int {
	adjusted := midnight(today).AddDate(0, 0, offsetDays)
	return int(midnight(start).Sub(adjusted).Hours() / 24)
}

// midnight truncates t to its own calendar date, re-anchored in UTC so day
// arithmetic is immune to DST transitions.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CleanTitle removes the placeholder marker wherever it appears and trims
// surrounding whitespace. Idempotent.
func CleanTitle(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, placeholderMarker, ""))
}

// FormatMonthDay renders a long month name with a zero-padded day,
// e.g. "March 05".
func FormatMonthDay(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("January 02")
}

// FormatMonthDayYear renders like FormatMonthDay with the year appended,
// e.g. "March 05, 2025".
func FormatMonthDayYear(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("January 02, 2006")
}

// FormatISODate renders an ISO calendar date, or "" for a zero time. CSV
// columns use the empty string for absent dates.
func FormatISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
