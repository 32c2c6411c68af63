package reconcile

import (
	"sort"
	"time"

	"github.com/clinicshift/clinicshift-api/pkg/models"
)

// Key buckets segments by local day, role and exact start instant.
// Matching a shift to a coverage window relies on start-instant equality,
// so the instant is kept at millisecond precision.
type Key struct {
	DayKey string
	Role   models.Role
	Start  int64 // unix milliseconds
}

// KeyFor builds the bucket key for a segment start.
func KeyFor(dayKey string, role models.Role, start time.Time) Key {
	return Key{DayKey: dayKey, Role: role, Start: start.UnixMilli()}
}

// CoverageSlot is one aggregated coverage bucket. Well-formed input has
// a single requirement per key; when duplicates occur their required
// counts are summed so no staffing need is silently dropped.
type CoverageSlot struct {
	DaySegment[models.CoverageRequirement]
	Required int
}

// Key returns the slot's bucket key.
func (s *CoverageSlot) Key() Key {
	return KeyFor(s.DayKey, s.Source.Role, s.Start)
}

// CoverageIndex groups split coverage segments by (day, role, start).
type CoverageIndex struct {
	slots map[Key]*CoverageSlot
}

// BuildCoverageIndex splits every requirement at local-day boundaries in
// loc and aggregates the segments. Records whose interval cannot be
// placed (missing or inverted timestamps) contribute nothing.
func BuildCoverageIndex(reqs []models.CoverageRequirement, loc *time.Location) *CoverageIndex {
	idx := &CoverageIndex{slots: make(map[Key]*CoverageSlot)}
	for _, req := range reqs {
		for _, seg := range Split(req, req.StartTime, req.EndTime, loc) {
			k := KeyFor(seg.DayKey, req.Role, seg.Start)
			if slot, ok := idx.slots[k]; ok {
				slot.Required += req.RequiredCount
				continue
			}
			idx.slots[k] = &CoverageSlot{DaySegment: seg, Required: req.RequiredCount}
		}
	}
	return idx
}

// Required returns the summed required count at k, zero if absent.
func (idx *CoverageIndex) Required(k Key) int {
	if slot, ok := idx.slots[k]; ok {
		return slot.Required
	}
	return 0
}

// Slots returns every coverage slot sorted by (day key, start time).
func (idx *CoverageIndex) Slots() []*CoverageSlot {
	out := make([]*CoverageSlot, 0, len(idx.slots))
	for _, slot := range idx.slots {
		out = append(out, slot)
	}
	sortSlots(out)
	return out
}

// ForDay returns the slots for one day, optionally restricted to a role
// (pass "" to keep all roles), sorted by start time.
func (idx *CoverageIndex) ForDay(dayKey string, role models.Role) []*CoverageSlot {
	var out []*CoverageSlot
	for _, slot := range idx.slots {
		if slot.DayKey != dayKey {
			continue
		}
		if role != "" && slot.Source.Role != role {
			continue
		}
		out = append(out, slot)
	}
	sortSlots(out)
	return out
}

func sortSlots(slots []*CoverageSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].DayKey != slots[j].DayKey {
			return slots[i].DayKey < slots[j].DayKey
		}
		return slots[i].Start.Before(slots[j].Start)
	})
}
