package reconcile

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		required, assigned int
		want               Adequacy
	}{
		{2, 0, Understaffed},
		{2, 1, Understaffed},
		{2, 2, FullyStaffed},
		{2, 3, Overstaffed},
		{0, 0, FullyStaffed},
		{0, 1, Overstaffed},
	}
	for _, tt := range tests {
		if got := Classify(tt.required, tt.assigned); got != tt.want {
			t.Errorf("Classify(%d, %d) = %q, want %q", tt.required, tt.assigned, got, tt.want)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	// For fixed required > 0, raising assigned must walk understaffed ->
	// fullyStaffed -> overstaffed without skipping or reversing.
	rank := map[Adequacy]int{Understaffed: 0, FullyStaffed: 1, Overstaffed: 2}
	for required := 1; required <= 5; required++ {
		prev := -1
		for assigned := 0; assigned <= required+3; assigned++ {
			cur := rank[Classify(required, assigned)]
			if cur < prev {
				t.Fatalf("required=%d: adequacy reversed at assigned=%d", required, assigned)
			}
			if cur > prev+1 && prev >= 0 {
				t.Fatalf("required=%d: adequacy skipped a state at assigned=%d", required, assigned)
			}
			prev = cur
		}
		if prev != rank[Overstaffed] {
			t.Fatalf("required=%d: never reached overstaffed", required)
		}
	}
}

func TestCalendarState(t *testing.T) {
	tests := []struct {
		required, assigned int
		want               CalendarStatus
	}{
		{3, 0, StatusOpen},
		{3, 1, StatusPartial},
		{3, 2, StatusPartial},
		{3, 3, StatusFilled},
		{3, 4, StatusFilled},
		{0, 0, StatusFilled},
	}
	for _, tt := range tests {
		if got := CalendarState(tt.required, tt.assigned); got != tt.want {
			t.Errorf("CalendarState(%d, %d) = %q, want %q", tt.required, tt.assigned, got, tt.want)
		}
	}
}

func TestFramingsAgree(t *testing.T) {
	// Both framings derive from the same pair: filled iff not
	// understaffed, open iff nothing assigned against a real need.
	for required := 0; required <= 4; required++ {
		for assigned := 0; assigned <= 6; assigned++ {
			adequacy := Classify(required, assigned)
			status := CalendarState(required, assigned)
			if (status == StatusFilled) != (adequacy != Understaffed) {
				t.Errorf("(%d, %d): status %q disagrees with adequacy %q", required, assigned, status, adequacy)
			}
			if status == StatusOpen && (assigned != 0 || required == 0) {
				t.Errorf("(%d, %d): unexpected open", required, assigned)
			}
		}
	}
}
