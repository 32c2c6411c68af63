package reconcile

import (
	"time"

	"github.com/clinicshift/clinicshift-api/pkg/models"
)

// StaffingSnapshot is the derived staffing state of one coverage slot.
// Computed fresh on every pass and never persisted.
type StaffingSnapshot struct {
	CoverageID    string         `json:"coverageId"`
	DayKey        string         `json:"dayKey"`
	Role          models.Role    `json:"role"`
	Start         time.Time      `json:"start"`
	End           time.Time      `json:"end"`
	RequiredCount int            `json:"requiredCount"`
	AssignedCount int            `json:"assignedCount"`
	Adequacy      Adequacy       `json:"adequacy"`
	Status        CalendarStatus `json:"status"`
	Note          string         `json:"note,omitempty"`
}

// Missing returns how many more staff the slot still needs, never negative.
func (s StaffingSnapshot) Missing() int {
	if n := s.RequiredCount - s.AssignedCount; n > 0 {
		return n
	}
	return 0
}

// Reconciler matches an indexed pair of coverage and shift collections.
// It is a pure view over the two collections passed at construction;
// rebuilding it is how inputs change.
type Reconciler struct {
	Coverage *CoverageIndex
	Shifts   *ShiftIndex
	loc      *time.Location
}

// New indexes both collections in loc and returns a Reconciler over them.
func New(coverage []models.CoverageRequirement, shifts []models.ScheduledShift, loc *time.Location) *Reconciler {
	if loc == nil {
		loc = time.Local
	}
	return &Reconciler{
		Coverage: BuildCoverageIndex(coverage, loc),
		Shifts:   BuildShiftIndex(shifts, loc),
		loc:      loc,
	}
}

// Location returns the zone all derived day keys are anchored to.
func (r *Reconciler) Location() *time.Location {
	return r.loc
}

// Snapshot derives the staffing state for one coverage slot.
func (r *Reconciler) Snapshot(slot *CoverageSlot) StaffingSnapshot {
	assigned := r.Shifts.Assigned(slot.Key())
	return StaffingSnapshot{
		CoverageID:    slot.Source.ID,
		DayKey:        slot.DayKey,
		Role:          slot.Source.Role,
		Start:         slot.Start,
		End:           slot.End,
		RequiredCount: slot.Required,
		AssignedCount: assigned,
		Adequacy:      Classify(slot.Required, assigned),
		Status:        CalendarState(slot.Required, assigned),
		Note:          slot.Source.Note,
	}
}

// Snapshots derives staffing state for every coverage slot, sorted by
// (day key, start time).
func (r *Reconciler) Snapshots() []StaffingSnapshot {
	slots := r.Coverage.Slots()
	out := make([]StaffingSnapshot, 0, len(slots))
	for _, slot := range slots {
		out = append(out, r.Snapshot(slot))
	}
	return out
}
