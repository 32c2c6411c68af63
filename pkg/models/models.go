package models

import "time"

// Role is the closed set of clinic staff roles. Values arriving from
// outside the core are parsed with ParseRole so an unrecognized string
// lands in RoleOther instead of failing the whole pass.
type Role string

const (
	RoleDoctor       Role = "doctor"
	RoleNurse        Role = "nurse"
	RoleReceptionist Role = "receptionist"
	RoleBilling      Role = "billing"
	RoleStaff        Role = "staff"
	RoleOther        Role = "other"
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleDoctor, RoleNurse, RoleReceptionist, RoleBilling, RoleStaff, RoleOther}

// ParseRole maps a raw role string onto the closed enum, falling back to
// RoleOther for anything it does not recognize.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleDoctor, RoleNurse, RoleReceptionist, RoleBilling, RoleStaff, RoleOther:
		return Role(s)
	default:
		return RoleOther
	}
}

// ShiftStatus is the lifecycle state of a scheduled shift.
type ShiftStatus string

const (
	StatusScheduled ShiftStatus = "scheduled"
	StatusCompleted ShiftStatus = "completed"
	StatusCancelled ShiftStatus = "cancelled"
)

// ValidStatus reports whether s is one of the known shift statuses.
func ValidStatus(s string) bool {
	switch ShiftStatus(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// StaffRef identifies the staff member a shift belongs to.
type StaffRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// CoverageRequirement represents a need for N staff of a given role
// during an interval. The reconciliation core only reads it.
type CoverageRequirement struct {
	ID            string    `json:"id"`
	Role          Role      `json:"role"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	RequiredCount int       `json:"requiredCount"`
	Note          string    `json:"note,omitempty"`
}

// ScheduledShift represents one staff member's assignment to work an
// interval. Treated as an immutable snapshot per reconciliation pass.
type ScheduledShift struct {
	ID        string      `json:"id"`
	Staff     StaffRef    `json:"staff"`
	StartTime time.Time   `json:"startTime"`
	EndTime   time.Time   `json:"endTime"`
	Status    ShiftStatus `json:"status"`
	Notes     string      `json:"notes,omitempty"`
}

// Cancelled reports whether the shift must be excluded from staffing counts.
func (s ScheduledShift) Cancelled() bool {
	return s.Status == StatusCancelled
}
