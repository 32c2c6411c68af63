package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicshift/clinicshift-api/pkg/assign"
	"github.com/clinicshift/clinicshift-api/pkg/database"
	"github.com/clinicshift/clinicshift-api/pkg/models"
	"github.com/clinicshift/clinicshift-api/pkg/reconcile"
)

type shiftRequest struct {
	StaffID   string    `json:"staffId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
}

func (r shiftRequest) validate() string {
	if r.StaffID == "" {
		return "staffId is required"
	}
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return "startTime and endTime are required"
	}
	if !r.EndTime.After(r.StartTime) {
		return "endTime must be after startTime"
	}
	if r.Status != "" && !models.ValidStatus(r.Status) {
		return "status must be scheduled, completed or cancelled"
	}
	return ""
}

// ListSchedules returns the tenant's shifts. Non-admin sessions and the
// staffId query parameter both restrict the list to one staff member.
func (h *Handler) ListSchedules(c *gin.Context) {
	claims := h.claims(c)

	q := h.DB.Preload("Staff").Where("tenant_id = ?", claims.TenantID)
	if staffID := c.Query("staffId"); staffID != "" && claims.IsAdmin {
		q = q.Where("staff_id = ?", staffID)
	} else if !claims.IsAdmin {
		q = q.Where("staff_id = ?", claims.UserID)
	}

	var rows []database.Shift
	if err := q.Order("start_time").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch schedules"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateSchedule assigns a staff member to a shift
func (h *Handler) CreateSchedule(c *gin.Context) {
	var req shiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	claims := h.claims(c)
	var staff database.Staff
	if err := h.DB.Where("id = ? AND tenant_id = ?", req.StaffID, claims.TenantID).First(&staff).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}

	status := req.Status
	if status == "" {
		status = string(models.StatusScheduled)
	}

	row := database.Shift{
		ID:        uuid.NewString(),
		TenantID:  claims.TenantID,
		StaffID:   staff.ID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    status,
		Notes:     req.Notes,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create shift"})
		return
	}

	h.Log.Info("shift created", zap.String("id", row.ID), zap.String("staff_id", staff.ID))
	row.Staff = &staff
	c.JSON(http.StatusCreated, row)
}

// UpdateSchedule edits a shift. Admins may edit anything; staff may only
// update the status of their own shifts (e.g. mark completed).
func (h *Handler) UpdateSchedule(c *gin.Context) {
	claims := h.claims(c)

	var row database.Shift
	if err := h.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), claims.TenantID).First(&row).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}
	if !claims.IsAdmin && row.StaffID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your shift"})
		return
	}

	var req shiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if claims.IsAdmin {
		if req.StaffID != "" {
			row.StaffID = req.StaffID
		}
		if !req.StartTime.IsZero() {
			row.StartTime = req.StartTime
		}
		if !req.EndTime.IsZero() {
			row.EndTime = req.EndTime
		}
		if !row.EndTime.After(row.StartTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endTime must be after startTime"})
			return
		}
		row.Notes = req.Notes
	}
	if req.Status != "" {
		if !models.ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be scheduled, completed or cancelled"})
			return
		}
		row.Status = req.Status
	}

	if err := h.DB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update shift"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeleteSchedule removes a shift
func (h *Handler) DeleteSchedule(c *gin.Context) {
	res := h.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), h.claims(c).TenantID).Delete(&database.Shift{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete shift"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted"})
}

// AutoGenerateSchedules fills understaffed coverage with generated
// shifts. Dry-run mode returns the proposals without persisting them.
func (h *Handler) AutoGenerateSchedules(c *gin.Context) {
	var req struct {
		Role   string `json:"role"`
		DryRun bool   `json:"dryRun"`
	}
	// Body is optional; an empty body generates for every role.
	_ = c.ShouldBindJSON(&req)

	claims := h.claims(c)
	ctx := h.viewContext(c)

	r, err := h.reconcilerFor(claims.TenantID, "", ctx.Location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch data"})
		return
	}

	role := models.Role("")
	if req.Role != "" {
		role = models.ParseRole(req.Role)
	}

	today := ctx.TodayKey()
	var open []reconcile.StaffingSnapshot
	for _, snap := range r.Snapshots() {
		if snap.DayKey < today || snap.Adequacy != reconcile.Understaffed {
			continue
		}
		if role != "" && snap.Role != role {
			continue
		}
		open = append(open, snap)
	}

	var staffRows []database.Staff
	if err := h.DB.Where("tenant_id = ? AND active = ?", claims.TenantID, true).Find(&staffRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch staff"})
		return
	}
	candidates := make([]assign.Candidate, 0, len(staffRows))
	for _, s := range staffRows {
		candidates = append(candidates, assign.Candidate{
			ID:       s.ID,
			Name:     s.Name,
			Role:     models.ParseRole(s.Role),
			MaxHours: s.MaxHours,
		})
	}

	var existing []database.Shift
	if err := h.DB.Preload("Staff").Where("tenant_id = ?", claims.TenantID).Find(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch shifts"})
		return
	}

	planner := assign.NewPlanner(candidates)
	planner.Prefill(toShiftRecords(existing))
	proposals := planner.Plan(open, true)

	created := 0
	if !req.DryRun {
		for _, p := range proposals {
			row := database.Shift{
				ID:        uuid.NewString(),
				TenantID:  claims.TenantID,
				StaffID:   p.StaffID,
				StartTime: p.Start,
				EndTime:   p.End,
				Status:    string(models.StatusScheduled),
				Notes:     "Auto-generated",
			}
			if err := h.DB.Create(&row).Error; err != nil {
				h.Log.Error("could not persist generated shift", zap.Error(err))
				continue
			}
			created++
		}
	}

	h.Log.Info("auto-generation finished",
		zap.Int("open_slots", len(open)),
		zap.Int("proposals", len(proposals)),
		zap.Int("created", created),
		zap.Int("conflicts", len(planner.Conflicts)))

	c.JSON(http.StatusOK, gin.H{
		"proposals":      proposals,
		"created":        created,
		"conflicts":      planner.Conflicts,
		"fairness_score": planner.FairnessScore(),
	})
}
