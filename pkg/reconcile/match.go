package reconcile

import (
	"sort"
	"time"

	"github.com/clinicshift/clinicshift-api/pkg/models"
)

// ShiftIndex groups split shift segments by (day, role, start), with
// cancelled shifts excluded before grouping so they never reach a count.
type ShiftIndex struct {
	counts   map[Key]int
	byStaff  map[string][]DaySegment[models.ScheduledShift]
	segments []DaySegment[models.ScheduledShift]
}

// BuildShiftIndex splits every non-cancelled shift at local-day
// boundaries in loc and indexes the segments by bucket key and by staff
// member. Shifts that cannot be temporally placed are skipped.
func BuildShiftIndex(shifts []models.ScheduledShift, loc *time.Location) *ShiftIndex {
	idx := &ShiftIndex{
		counts:  make(map[Key]int),
		byStaff: make(map[string][]DaySegment[models.ScheduledShift]),
	}
	for _, shift := range shifts {
		if shift.Cancelled() {
			continue
		}
		for _, seg := range Split(shift, shift.StartTime, shift.EndTime, loc) {
			idx.counts[KeyFor(seg.DayKey, shift.Staff.Role, seg.Start)]++
			idx.byStaff[shift.Staff.ID] = append(idx.byStaff[shift.Staff.ID], seg)
			idx.segments = append(idx.segments, seg)
		}
	}
	for _, segs := range idx.byStaff {
		sortSegments(segs)
	}
	sortSegments(idx.segments)
	return idx
}

// Assigned returns the number of shift segments whose (day, role, start)
// exactly equals k. A shift starting even one minute off its coverage
// window does not match; see the matching caveat in DESIGN.md.
func (idx *ShiftIndex) Assigned(k Key) int {
	return idx.counts[k]
}

// ForStaffDay returns the staff member's segments on one day, sorted by
// start time.
func (idx *ShiftIndex) ForStaffDay(staffID, dayKey string) []DaySegment[models.ScheduledShift] {
	var out []DaySegment[models.ScheduledShift]
	for _, seg := range idx.byStaff[staffID] {
		if seg.DayKey == dayKey {
			out = append(out, seg)
		}
	}
	return out
}

// Segments returns every indexed segment sorted by (day key, start).
func (idx *ShiftIndex) Segments() []DaySegment[models.ScheduledShift] {
	return idx.segments
}

func sortSegments(segs []DaySegment[models.ScheduledShift]) {
	sort.Slice(segs, func(i, j int) bool {
		if segs[i].DayKey != segs[j].DayKey {
			return segs[i].DayKey < segs[j].DayKey
		}
		return segs[i].Start.Before(segs[j].Start)
	})
}
