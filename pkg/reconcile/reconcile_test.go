package reconcile

import (
	"testing"
	"time"

	"github.com/clinicshift/clinicshift-api/pkg/models"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour int) time.Time {
	return day.Add(time.Duration(hour) * time.Hour)
}

func nurseShift(id, staffID string, start, end time.Time, status models.ShiftStatus) models.ScheduledShift {
	return models.ScheduledShift{
		ID:        id,
		Staff:     models.StaffRef{ID: staffID, Name: "Nurse " + staffID, Role: models.RoleNurse},
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestFullyStaffedWithCancelledShiftExcluded(t *testing.T) {
	// Two live nurses plus one cancelled nurse at the exact coverage
	// start must count as exactly 2 assigned.
	coverage := []models.CoverageRequirement{{
		ID: "c1", Role: models.RoleNurse,
		StartTime: at(monday, 8), EndTime: at(monday, 20), RequiredCount: 2,
	}}
	shifts := []models.ScheduledShift{
		nurseShift("s1", "n1", at(monday, 8), at(monday, 20), models.StatusScheduled),
		nurseShift("s2", "n2", at(monday, 8), at(monday, 20), models.StatusScheduled),
		nurseShift("s3", "n3", at(monday, 8), at(monday, 20), models.StatusCancelled),
	}

	snaps := New(coverage, shifts, time.UTC).Snapshots()
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	if snaps[0].AssignedCount != 2 {
		t.Errorf("assignedCount = %d, want 2", snaps[0].AssignedCount)
	}
	if snaps[0].Adequacy != FullyStaffed {
		t.Errorf("adequacy = %q, want %q", snaps[0].Adequacy, FullyStaffed)
	}
}

func TestUnderstaffedReportsMissingCount(t *testing.T) {
	coverage := []models.CoverageRequirement{{
		ID: "c1", Role: models.RoleDoctor,
		StartTime: at(monday, 9), EndTime: at(monday, 17), RequiredCount: 3,
	}}
	shifts := []models.ScheduledShift{{
		ID:        "s1",
		Staff:     models.StaffRef{ID: "d1", Name: "Dr One", Role: models.RoleDoctor},
		StartTime: at(monday, 9), EndTime: at(monday, 17),
		Status: models.StatusScheduled,
	}}

	snaps := New(coverage, shifts, time.UTC).Snapshots()
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	snap := snaps[0]
	if snap.Adequacy != Understaffed {
		t.Errorf("adequacy = %q, want %q", snap.Adequacy, Understaffed)
	}
	if snap.Missing() != 2 {
		t.Errorf("missing = %d, want 2", snap.Missing())
	}
	if snap.Status != StatusPartial {
		t.Errorf("status = %q, want %q", snap.Status, StatusPartial)
	}
}

func TestDuplicateCoverageKeysSumRequired(t *testing.T) {
	// Two requirements at the same (day, role, start) must report a
	// summed required count, never overwrite each other.
	win := models.CoverageRequirement{
		Role:      models.RoleNurse,
		StartTime: at(monday, 8), EndTime: at(monday, 16), RequiredCount: 1,
	}
	a, b := win, win
	a.ID, b.ID = "c1", "c2"

	idx := BuildCoverageIndex([]models.CoverageRequirement{a, b}, time.UTC)
	slots := idx.Slots()
	if len(slots) != 1 {
		t.Fatalf("expected 1 aggregated slot, got %d", len(slots))
	}
	if slots[0].Required != 2 {
		t.Errorf("required = %d, want 2", slots[0].Required)
	}
	if got := idx.Required(slots[0].Key()); got != 2 {
		t.Errorf("Required(key) = %d, want 2", got)
	}
}

func TestCancelledShiftNeverCounts(t *testing.T) {
	coverage := []models.CoverageRequirement{{
		ID: "c1", Role: models.RoleNurse,
		StartTime: at(monday, 8), EndTime: at(monday, 16), RequiredCount: 1,
	}}
	shifts := []models.ScheduledShift{
		nurseShift("s1", "n1", at(monday, 8), at(monday, 16), models.StatusCancelled),
	}

	snap := New(coverage, shifts, time.UTC).Snapshots()[0]
	if snap.AssignedCount != 0 {
		t.Errorf("assignedCount = %d, want 0", snap.AssignedCount)
	}
	if snap.Status != StatusOpen {
		t.Errorf("status = %q, want %q", snap.Status, StatusOpen)
	}
}

func TestOffsetShiftDoesNotMatch(t *testing.T) {
	// Matching is by exact start instant: a shift one minute off the
	// coverage window is invisible to the requirement.
	coverage := []models.CoverageRequirement{{
		ID: "c1", Role: models.RoleNurse,
		StartTime: at(monday, 8), EndTime: at(monday, 16), RequiredCount: 1,
	}}
	shifts := []models.ScheduledShift{
		nurseShift("s1", "n1", at(monday, 8).Add(time.Minute), at(monday, 16), models.StatusScheduled),
	}

	snap := New(coverage, shifts, time.UTC).Snapshots()[0]
	if snap.AssignedCount != 0 {
		t.Errorf("assignedCount = %d, want 0", snap.AssignedCount)
	}
}

func TestMalformedRecordsAreSkipped(t *testing.T) {
	coverage := []models.CoverageRequirement{
		{ID: "bad", Role: models.RoleNurse, RequiredCount: 5}, // no timestamps
		{ID: "ok", Role: models.RoleNurse, StartTime: at(monday, 8), EndTime: at(monday, 16), RequiredCount: 1},
	}
	shifts := []models.ScheduledShift{
		nurseShift("s1", "n1", at(monday, 8), at(monday, 16), models.StatusScheduled),
		nurseShift("s2", "n2", at(monday, 16), at(monday, 8), models.StatusScheduled), // inverted
	}

	snaps := New(coverage, shifts, time.UTC).Snapshots()
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	if snaps[0].CoverageID != "ok" || snaps[0].AssignedCount != 1 {
		t.Errorf("snapshot = %+v, want coverage ok with 1 assigned", snaps[0])
	}
}

func TestMidnightSpanningShiftMatchesNextDayCoverage(t *testing.T) {
	// Coverage for Sunday 00:00-06:00; a shift running Sat 22:00 -> Sun
	// 06:00 contributes its Sunday segment, which starts exactly at
	// local midnight.
	sat := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	coverage := []models.CoverageRequirement{{
		ID: "c1", Role: models.RoleNurse,
		StartTime: sun, EndTime: at(sun, 6), RequiredCount: 1,
	}}
	shifts := []models.ScheduledShift{
		nurseShift("s1", "n1", at(sat, 22), at(sun, 6), models.StatusScheduled),
	}

	snap := New(coverage, shifts, time.UTC).Snapshots()[0]
	if snap.AssignedCount != 1 {
		t.Errorf("assignedCount = %d, want 1", snap.AssignedCount)
	}
	if snap.Adequacy != FullyStaffed {
		t.Errorf("adequacy = %q, want %q", snap.Adequacy, FullyStaffed)
	}
}
