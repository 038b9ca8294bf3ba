package timeutil

import (
	"fmt"
	"time"
)

// Common layouts
const (
	DateLayout = "2006-01-02"
)

// dateUTC rebuilds t's calendar date at midnight UTC. All bucket keys are
// derived from this so DST transitions in the server's local zone can never
// move an entry into a neighbouring bucket.
func dateUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekKey returns the ISO-8601 week bucket for t, formatted "YYYY-Www".
// The year is the ISO week-year: Dec 29-31 can belong to W01 of the next
// year and Jan 1-3 to W52/W53 of the previous one. Keys sort
// lexicographically in chronological order.
func WeekKey(t time.Time) string {
	year, week := dateUTC(t).ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// MonthKey returns the calendar month bucket for t, formatted "YYYY-MM".
func MonthKey(t time.Time) string {
	d := dateUTC(t)
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
}

// DayKey returns the calendar day bucket for t, formatted "YYYY-MM-DD".
func DayKey(t time.Time) string {
	return dateUTC(t).Format(DateLayout)
}

// Window is an inclusive date range used to scope report queries.
type Window struct {
	From time.Time
	To   time.Time
}

// MonthWindow returns the window from the first day of t's month up to t.
func MonthWindow(t time.Time) Window {
	d := dateUTC(t)
	return Window{
		From: time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC),
		To:   d.Add(24*time.Hour - time.Nanosecond),
	}
}

// PreviousMonthWindow returns the full month preceding t's month.
func PreviousMonthWindow(t time.Time) Window {
	d := dateUTC(t)
	curStart := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{
		From: curStart.AddDate(0, -1, 0),
		To:   curStart.Add(-time.Nanosecond),
	}
}

// StartOfWeek returns the Monday 00:00 UTC of the ISO week containing t.
func StartOfWeek(t time.Time) time.Time {
	d := dateUTC(t)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the ISO week
	}
	return d.AddDate(0, 0, 1-weekday)
}

// LastNWeeksWindow returns the window spanning the n ISO weeks ending with
// the week that contains t.
func LastNWeeksWindow(t time.Time, n int) Window {
	d := dateUTC(t)
	return Window{
		From: StartOfWeek(d).AddDate(0, 0, -7*(n-1)),
		To:   d.Add(24*time.Hour - time.Nanosecond),
	}
}
