package reconcile

import (
	"time"

	"github.com/clinicshift/clinicshift-api/pkg/models"
	"github.com/clinicshift/clinicshift-api/pkg/timeutil"
)

// ViewContext carries the viewer-dependent inputs a projection needs.
// It replaces ambient auth/tenant globals so the projections stay pure
// and testable.
type ViewContext struct {
	Now      time.Time
	Location *time.Location
	StaffID  string
	Admin    bool
}

func (v ViewContext) loc() *time.Location {
	if v.Location != nil {
		return v.Location
	}
	return time.Local
}

// TodayKey returns the viewer's current local day key.
func (v ViewContext) TodayKey() string {
	return timeutil.DayKey(v.Now, v.loc())
}

// TodaySnapshots returns the staffing snapshots for every coverage slot
// on the viewer's current day, sorted by start time.
func (r *Reconciler) TodaySnapshots(ctx ViewContext) []StaffingSnapshot {
	slots := r.Coverage.ForDay(ctx.TodayKey(), "")
	out := make([]StaffingSnapshot, 0, len(slots))
	for _, slot := range slots {
		out = append(out, r.Snapshot(slot))
	}
	return out
}

// UpcomingSnapshots returns snapshots for coverage slots strictly after
// today, ordered by (day key, start), truncated to limit.
func (r *Reconciler) UpcomingSnapshots(ctx ViewContext, limit int) []StaffingSnapshot {
	today := ctx.TodayKey()
	var out []StaffingSnapshot
	for _, slot := range r.Coverage.Slots() {
		if slot.DayKey <= today {
			continue
		}
		out = append(out, r.Snapshot(slot))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// RolePoint is one bar of the required-vs-scheduled weekly chart.
type RolePoint struct {
	Label     string    `json:"label"`
	Required  int       `json:"required"`
	Scheduled int       `json:"scheduled"`
	DayKey    string    `json:"dayKey"`
	Start     time.Time `json:"start"`
}

// WeeklyRoleSeries returns the current week's coverage slots for one
// role, each paired with its assigned count, in chronological order.
func (r *Reconciler) WeeklyRoleSeries(ctx ViewContext, role models.Role) []RolePoint {
	loc := ctx.loc()
	week := make(map[string]bool, 7)
	for _, day := range timeutil.WeekOf(ctx.Now, loc) {
		week[timeutil.DayKey(day, loc)] = true
	}

	var out []RolePoint
	for _, slot := range r.Coverage.Slots() {
		if slot.Source.Role != role || !week[slot.DayKey] {
			continue
		}
		out = append(out, RolePoint{
			Label:     timeutil.SpanLabel(slot.Start, slot.End, loc),
			Required:  slot.Required,
			Scheduled: r.Shifts.Assigned(slot.Key()),
			DayKey:    slot.DayKey,
			Start:     slot.Start,
		})
	}
	return out
}

// DayHours is one day of a staff member's weekly hour totals.
type DayHours struct {
	DayLabel string  `json:"dayLabel"`
	DayKey   string  `json:"dayKey"`
	Hours    float64 `json:"hours"`
}

// DailyHoursForStaff sums the staff member's non-cancelled segment spans
// for each day of the viewer's current week, in hours.
func (r *Reconciler) DailyHoursForStaff(ctx ViewContext, staffID string) []DayHours {
	loc := ctx.loc()
	days := timeutil.WeekOf(ctx.Now, loc)
	out := make([]DayHours, 0, len(days))
	for _, day := range days {
		key := timeutil.DayKey(day, loc)
		var hours float64
		for _, seg := range r.Shifts.ForStaffDay(staffID, key) {
			hours += seg.Hours()
		}
		out = append(out, DayHours{
			DayLabel: timeutil.DayLabel(day, loc),
			DayKey:   key,
			Hours:    hours,
		})
	}
	return out
}
