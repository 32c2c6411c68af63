package timeutil

import (
	"fmt"
	"time"
)

// DayKeyLayout is the canonical local-date form used to bucket intervals.
const DayKeyLayout = "2006-01-02"

// DayKey returns the canonical local-date key for t in loc, e.g.
// "2026-03-07". Two instants get the same key iff they fall in the same
// local calendar day. The key is always derived from the instant in the
// given zone, never from the stored UTC date.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayKeyLayout)
}

// ParseDayKey parses a YYYY-MM-DD key back to local midnight in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t, nil
}

// StartOfDay returns 00:00:00.000 of t's day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns 23:59:59.999 of t's day in loc. Day boundaries are
// wall-clock anchored, so a day crossing a DST transition may not span
// exactly 24 elapsed hours.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayKey(a, loc) == DayKey(b, loc)
}

// WeekOf returns the 7 calendar days of the week containing t, each
// truncated to local midnight, starting from the most recent Sunday on
// or before t. Any instant inside the week yields the same 7 days.
func WeekOf(t time.Time, loc *time.Location) []time.Time {
	lt := t.In(loc)
	sunday := StartOfDay(lt.AddDate(0, 0, -int(lt.Weekday())), loc)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = sunday.AddDate(0, 0, i)
	}
	return days
}

// DayLabel formats a day as a short weekday plus date number, e.g. "Mon 9".
func DayLabel(t time.Time, loc *time.Location) string {
	lt := t.In(loc)
	return fmt.Sprintf("%s %d", lt.Format("Mon"), lt.Day())
}

// ClockLabel formats the wall-clock time compactly, e.g. "8AM" or "8:30PM".
func ClockLabel(t time.Time, loc *time.Location) string {
	lt := t.In(loc)
	if lt.Minute() == 0 {
		return lt.Format("3PM")
	}
	return lt.Format("3:04PM")
}

// SpanLabel formats a per-day segment as "Mon, 8AM - 8PM" for chart axes.
func SpanLabel(start, end time.Time, loc *time.Location) string {
	return fmt.Sprintf("%s, %s - %s", start.In(loc).Format("Mon"), ClockLabel(start, loc), ClockLabel(end, loc))
}
