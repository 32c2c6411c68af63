package assign

import (
	"testing"
	"time"

	"github.com/clinicshift/clinicshift-api/pkg/models"
	"github.com/clinicshift/clinicshift-api/pkg/reconcile"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return monday.Add(time.Duration(hour) * time.Hour)
}

func openSlot(id string, role models.Role, startHour, endHour, required, assigned int) reconcile.StaffingSnapshot {
	return reconcile.StaffingSnapshot{
		CoverageID:    id,
		DayKey:        "2026-03-02",
		Role:          role,
		Start:         at(startHour),
		End:           at(endHour),
		RequiredCount: required,
		AssignedCount: assigned,
	}
}

func TestPlanFillsOpenSlot(t *testing.T) {
	p := NewPlanner([]Candidate{
		{ID: "n1", Name: "Alice", Role: models.RoleNurse, MaxHours: 40},
		{ID: "n2", Name: "Bob", Role: models.RoleNurse, MaxHours: 40},
	})

	proposals := p.Plan([]reconcile.StaffingSnapshot{
		openSlot("c1", models.RoleNurse, 8, 16, 1, 0),
	}, false)

	if len(proposals) != 1 {
		t.Fatalf("expected 1 proposal, got %d", len(proposals))
	}
	if proposals[0].CoverageID != "c1" || proposals[0].Role != models.RoleNurse {
		t.Errorf("proposal = %+v", proposals[0])
	}
	if got := p.Candidates[proposals[0].StaffID].AssignedHours; got != 8.0 {
		t.Errorf("assigned hours = %v, want 8", got)
	}
	if len(p.Conflicts) != 0 {
		t.Errorf("unexpected conflicts: %+v", p.Conflicts)
	}
}

func TestPlanPrefersLeastLoadedCandidate(t *testing.T) {
	p := NewPlanner([]Candidate{
		{ID: "n1", Name: "Alice", Role: models.RoleNurse, MaxHours: 40},
		{ID: "n2", Name: "Bob", Role: models.RoleNurse, MaxHours: 40},
	})
	p.Prefill([]models.ScheduledShift{{
		ID:        "s1",
		Staff:     models.StaffRef{ID: "n1", Role: models.RoleNurse},
		StartTime: at(0), EndTime: at(6),
		Status: models.StatusScheduled,
	}})

	proposals := p.Plan([]reconcile.StaffingSnapshot{
		openSlot("c1", models.RoleNurse, 8, 16, 1, 0),
	}, false)

	if len(proposals) != 1 || proposals[0].StaffID != "n2" {
		t.Fatalf("expected n2 (least loaded) to be picked, got %+v", proposals)
	}
}

func TestPlanRespectsOverlapAndHoursCap(t *testing.T) {
	p := NewPlanner([]Candidate{
		{ID: "n1", Name: "Alice", Role: models.RoleNurse, MaxHours: 10},
	})
	p.Prefill([]models.ScheduledShift{{
		ID:        "s1",
		Staff:     models.StaffRef{ID: "n1", Role: models.RoleNurse},
		StartTime: at(6), EndTime: at(10),
		Status: models.StatusScheduled,
	}})

	// Overlaps the existing 06:00-10:00 shift.
	proposals := p.Plan([]reconcile.StaffingSnapshot{
		openSlot("c1", models.RoleNurse, 9, 12, 1, 0),
	}, false)
	if len(proposals) != 0 {
		t.Fatalf("expected no proposals, got %+v", proposals)
	}
	if len(p.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(p.Conflicts))
	}

	// No overlap, but 8 more hours would blow the 10h cap.
	p.Conflicts = nil
	proposals = p.Plan([]reconcile.StaffingSnapshot{
		openSlot("c2", models.RoleNurse, 12, 20, 1, 0),
	}, false)
	if len(proposals) != 0 || len(p.Conflicts) != 1 {
		t.Fatalf("expected hours-cap conflict, got proposals=%+v conflicts=%+v", proposals, p.Conflicts)
	}
}

func TestPlanReportsMissingRole(t *testing.T) {
	p := NewPlanner([]Candidate{
		{ID: "n1", Name: "Alice", Role: models.RoleNurse, MaxHours: 40},
	})

	proposals := p.Plan([]reconcile.StaffingSnapshot{
		openSlot("c1", models.RoleDoctor, 8, 16, 1, 0),
	}, false)

	if len(proposals) != 0 {
		t.Fatalf("expected no proposals, got %+v", proposals)
	}
	if len(p.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(p.Conflicts))
	}
	if len(p.Conflicts[0].Reasons) == 0 {
		t.Error("conflict has no reasons")
	}
}

func TestPlanFillsMultipleHeadcount(t *testing.T) {
	p := NewPlanner([]Candidate{
		{ID: "n1", Name: "Alice", Role: models.RoleNurse, MaxHours: 40},
		{ID: "n2", Name: "Bob", Role: models.RoleNurse, MaxHours: 40},
		{ID: "n3", Name: "Cara", Role: models.RoleNurse, MaxHours: 40},
	})

	// Requires 3, one already assigned: two proposals for distinct staff.
	proposals := p.Plan([]reconcile.StaffingSnapshot{
		openSlot("c1", models.RoleNurse, 8, 16, 3, 1),
	}, false)

	if len(proposals) != 2 {
		t.Fatalf("expected 2 proposals, got %d", len(proposals))
	}
	if proposals[0].StaffID == proposals[1].StaffID {
		t.Errorf("same staff double-booked: %s", proposals[0].StaffID)
	}
}

func TestFairnessScore(t *testing.T) {
	p := NewPlanner([]Candidate{
		{ID: "n1", Role: models.RoleNurse, MaxHours: 40, AssignedHours: 8},
		{ID: "n2", Role: models.RoleNurse, MaxHours: 40, AssignedHours: 8},
	})
	if got := p.FairnessScore(); got != 100.0 {
		t.Errorf("even hours score = %v, want 100", got)
	}

	empty := NewPlanner(nil)
	if got := empty.FairnessScore(); got != 100.0 {
		t.Errorf("empty pool score = %v, want 100", got)
	}
}
