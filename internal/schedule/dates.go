package schedule

import (
	"strings"
	"time"
)

// DayKeyLayout is the canonical bucket key format.
const DayKeyLayout = "2006-01-02"

// DayKey returns the bucket key for t's calendar date. Any time-of-day
// component is dropped.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a YYYY-MM-DD key into a date at midnight UTC.
// Inputs carrying a time suffix (e.g. RFC 3339 timestamps) are accepted by
// taking the date prefix, so one mixed-format record doesn't break bucketing.
func ParseDayKey(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DayKeyLayout) {
		s = s[:len(DayKeyLayout)]
	}
	return time.Parse(DayKeyLayout, s)
}

func daysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Sunday beginning the week containing t.
func startOfWeek(t time.Time) time.Time {
	d := startOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}
