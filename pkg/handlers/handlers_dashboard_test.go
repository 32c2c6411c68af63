package handlers

import (
	"testing"

	"github.com/clinicshift/clinicshift-api/pkg/reconcile"
)

func TestAdequacyCounts(t *testing.T) {
	snaps := []reconcile.StaffingSnapshot{
		{RequiredCount: 2, AssignedCount: 1, Adequacy: reconcile.Understaffed},
		{RequiredCount: 2, AssignedCount: 2, Adequacy: reconcile.FullyStaffed},
		{RequiredCount: 1, AssignedCount: 3, Adequacy: reconcile.Overstaffed},
		{RequiredCount: 3, AssignedCount: 0, Adequacy: reconcile.Understaffed},
	}

	staffed, understaffed := adequacyCounts(snaps)
	if understaffed != 2 {
		t.Errorf("expected 2 understaffed, got %d", understaffed)
	}
	// Overstaffed slots are staffed for the stat card.
	if staffed != 2 {
		t.Errorf("expected 2 staffed, got %d", staffed)
	}
}

func TestAdequacyCountsEmpty(t *testing.T) {
	staffed, understaffed := adequacyCounts(nil)
	if staffed != 0 || understaffed != 0 {
		t.Errorf("expected zero counts, got staffed=%d understaffed=%d", staffed, understaffed)
	}
}
