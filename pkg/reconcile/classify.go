package reconcile

// Adequacy is the tri-state staffing classification of a coverage slot.
type Adequacy string

const (
	Understaffed Adequacy = "understaffed"
	FullyStaffed Adequacy = "fullyStaffed"
	Overstaffed  Adequacy = "overstaffed"
)

// Classify compares assigned headcount to required headcount.
func Classify(required, assigned int) Adequacy {
	switch {
	case assigned < required:
		return Understaffed
	case assigned > required:
		return Overstaffed
	default:
		return FullyStaffed
	}
}

// CalendarStatus is the coarser open/partial/filled framing calendar
// views use. It is a view over the same (required, assigned) pair, not a
// separate computation.
type CalendarStatus string

const (
	StatusOpen    CalendarStatus = "open"
	StatusPartial CalendarStatus = "partial"
	StatusFilled  CalendarStatus = "filled"
)

// CalendarState maps a (required, assigned) pair to its calendar status:
// filled once nothing remains to staff, partial when some but not all of
// the need is met, open when nobody is assigned yet.
func CalendarState(required, assigned int) CalendarStatus {
	remaining := required - assigned
	switch {
	case remaining <= 0:
		return StatusFilled
	case assigned > 0:
		return StatusPartial
	default:
		return StatusOpen
	}
}
