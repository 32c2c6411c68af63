package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicshift/clinicshift-api/pkg/database"
	"github.com/clinicshift/clinicshift-api/pkg/models"
	"github.com/clinicshift/clinicshift-api/pkg/reconcile"
	"github.com/clinicshift/clinicshift-api/pkg/timeutil"
)

// AdminSummary returns the stat-card numbers for the admin dashboard
func (h *Handler) AdminSummary(c *gin.Context) {
	claims := h.claims(c)
	ctx := h.viewContext(c)

	r, err := h.reconcilerFor(claims.TenantID, "", ctx.Location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch data"})
		return
	}

	fullyStaffed, understaffed := adequacyCounts(r.TodaySnapshots(ctx))

	var activeStaff, pendingTimeOff int64
	h.DB.Model(&database.Staff{}).Where("tenant_id = ? AND active = ?", claims.TenantID, true).Count(&activeStaff)
	h.DB.Model(&database.TimeOffRequest{}).Where("tenant_id = ? AND status = ?", claims.TenantID, "pending").Count(&pendingTimeOff)

	c.JSON(http.StatusOK, gin.H{
		"activeStaffCount":    activeStaff,
		"fullyStaffedCount":   fullyStaffed,
		"understaffedCount":   understaffed,
		"pendingTimeOffCount": pendingTimeOff,
	})
}

// StaffSummary returns the stat-card numbers for a staff dashboard
func (h *Handler) StaffSummary(c *gin.Context) {
	claims := h.claims(c)
	ctx := h.viewContext(c)

	r, err := h.reconcilerFor(claims.TenantID, claims.UserID, ctx.Location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch data"})
		return
	}

	var hoursThisWeek float64
	daily := r.DailyHoursForStaff(ctx, claims.UserID)
	for _, day := range daily {
		hoursThisWeek += day.Hours
	}

	week := make(map[string]bool, 7)
	for _, day := range timeutil.WeekOf(ctx.Now, ctx.Location) {
		week[timeutil.DayKey(day, ctx.Location)] = true
	}
	shiftsThisWeek := 0
	for _, seg := range r.Shifts.Segments() {
		if week[seg.DayKey] {
			shiftsThisWeek++
		}
	}

	var approvedTimeOff int64
	h.DB.Model(&database.TimeOffRequest{}).
		Where("tenant_id = ? AND staff_id = ? AND status = ? AND end_date >= ?",
			claims.TenantID, claims.UserID, "approved", ctx.Now).
		Count(&approvedTimeOff)

	c.JSON(http.StatusOK, gin.H{
		"shiftsThisWeekCount":          shiftsThisWeek,
		"hoursThisWeek":                hoursThisWeek,
		"dailyHours":                   daily,
		"approvedUpcomingTimeOffCount": approvedTimeOff,
	})
}

// TodayCoverage returns today's staffing snapshots sorted by start time
func (h *Handler) TodayCoverage(c *gin.Context) {
	claims := h.claims(c)
	ctx := h.viewContext(c)

	r, err := h.reconcilerFor(claims.TenantID, "", ctx.Location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch data"})
		return
	}

	snaps := r.TodaySnapshots(ctx)
	out := make([]gin.H, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, snapshotPayload(snap))
	}
	c.JSON(http.StatusOK, gin.H{"dayKey": ctx.TodayKey(), "coverage": out})
}

// UpcomingCoverage returns snapshots for days after today, oldest first
func (h *Handler) UpcomingCoverage(c *gin.Context) {
	claims := h.claims(c)
	ctx := h.viewContext(c)

	limit := 8
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	r, err := h.reconcilerFor(claims.TenantID, "", ctx.Location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch data"})
		return
	}

	snaps := r.UpcomingSnapshots(ctx, limit)
	out := make([]gin.H, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, snapshotPayload(snap))
	}
	c.JSON(http.StatusOK, gin.H{"coverage": out})
}

// RoleSeries returns the current week's required-vs-scheduled bar series
// for one role.
func (h *Handler) RoleSeries(c *gin.Context) {
	claims := h.claims(c)
	ctx := h.viewContext(c)

	role := models.ParseRole(c.Param("role"))

	r, err := h.reconcilerFor(claims.TenantID, "", ctx.Location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":   role,
		"series": r.WeeklyRoleSeries(ctx, role),
	})
}

// StaffHours returns the caller's per-day hour totals for the current
// week. Admins may pass staffId to inspect someone else's week.
func (h *Handler) StaffHours(c *gin.Context) {
	claims := h.claims(c)
	ctx := h.viewContext(c)

	staffID := claims.UserID
	if other := c.Query("staffId"); other != "" && claims.IsAdmin {
		staffID = other
	}

	r, err := h.reconcilerFor(claims.TenantID, staffID, ctx.Location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staffId": staffID,
		"days":    r.DailyHoursForStaff(ctx, staffID),
	})
}

// adequacyCounts buckets snapshots for the admin stat cards. Overstaffed
// slots count as staffed here; the calendar framing still distinguishes
// them from exact fills.
func adequacyCounts(snaps []reconcile.StaffingSnapshot) (staffed, understaffed int) {
	for _, snap := range snaps {
		switch snap.Adequacy {
		case reconcile.Understaffed:
			understaffed++
		case reconcile.FullyStaffed, reconcile.Overstaffed:
			staffed++
		}
	}
	return staffed, understaffed
}

func snapshotPayload(snap reconcile.StaffingSnapshot) gin.H {
	return gin.H{
		"coverageId":    snap.CoverageID,
		"dayKey":        snap.DayKey,
		"role":          snap.Role,
		"start":         snap.Start,
		"end":           snap.End,
		"requiredCount": snap.RequiredCount,
		"assignedCount": snap.AssignedCount,
		"adequacy":      snap.Adequacy,
		"status":        snap.Status,
		"missing":       snap.Missing(),
	}
}
