// Package reconcile derives staffing-adequacy state from two
// independently stored interval collections: coverage requirements and
// scheduled shifts. Everything here is a pure function of its inputs;
// nothing is persisted and no I/O happens inside the package.
package reconcile

import (
	"time"

	"github.com/clinicshift/clinicshift-api/pkg/timeutil"
)

// DaySegment is the portion of a source record's interval falling within
// a single local calendar day. Start and End always share the same day
// key, and the segments of one record concatenate back to the original
// interval with no gaps or overlaps.
type DaySegment[T any] struct {
	DayKey string
	Start  time.Time
	End    time.Time
	Source T
}

// Split explodes the half-open interval [start, end) into day-bounded
// segments in loc. A zero-length or inverted interval yields no
// segments; callers treat that as a data-quality issue, not an error.
func Split[T any](src T, start, end time.Time, loc *time.Location) []DaySegment[T] {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return nil
	}

	var segments []DaySegment[T]
	cursor := start.In(loc)
	end = end.In(loc)
	for cursor.Before(end) {
		dayEnd := timeutil.EndOfDay(cursor, loc)
		segEnd := end
		if dayEnd.Before(end) {
			segEnd = dayEnd
		}
		segments = append(segments, DaySegment[T]{
			DayKey: timeutil.DayKey(cursor, loc),
			Start:  cursor,
			End:    segEnd,
			Source: src,
		})
		cursor = segEnd.Add(time.Millisecond)
	}
	return segments
}

// Hours returns the segment's span in hours.
func (s DaySegment[T]) Hours() float64 {
	return s.End.Sub(s.Start).Hours()
}
