package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicshift/clinicshift-api/pkg/database"
	"github.com/clinicshift/clinicshift-api/pkg/models"
	"github.com/clinicshift/clinicshift-api/pkg/reconcile"
)

type coverageRequest struct {
	Role          string    `json:"role"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	RequiredCount int       `json:"requiredCount"`
	Note          string    `json:"note"`
}

func (r coverageRequest) validate() string {
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return "startTime and endTime are required"
	}
	if !r.EndTime.After(r.StartTime) {
		return "endTime must be after startTime"
	}
	if r.RequiredCount < 0 {
		return "requiredCount must be non-negative"
	}
	return ""
}

// ListCoverage returns all coverage requirements for the tenant
func (h *Handler) ListCoverage(c *gin.Context) {
	var rows []database.Coverage
	if err := h.DB.Where("tenant_id = ?", h.claims(c).TenantID).Order("start_time").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch coverage"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateCoverage creates a coverage requirement
func (h *Handler) CreateCoverage(c *gin.Context) {
	var req coverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if req.RequiredCount == 0 {
		req.RequiredCount = 1
	}

	row := database.Coverage{
		ID:            uuid.NewString(),
		TenantID:      h.claims(c).TenantID,
		Role:          string(models.ParseRole(req.Role)),
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		RequiredCount: req.RequiredCount,
		Note:          req.Note,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create coverage"})
		return
	}

	h.Log.Info("coverage created", zap.String("id", row.ID), zap.String("role", row.Role))
	c.JSON(http.StatusCreated, row)
}

// UpdateCoverage edits a coverage requirement
func (h *Handler) UpdateCoverage(c *gin.Context) {
	var row database.Coverage
	if err := h.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), h.claims(c).TenantID).First(&row).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coverage not found"})
		return
	}

	var req coverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	row.Role = string(models.ParseRole(req.Role))
	row.StartTime = req.StartTime
	row.EndTime = req.EndTime
	if req.RequiredCount > 0 {
		row.RequiredCount = req.RequiredCount
	}
	row.Note = req.Note

	if err := h.DB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update coverage"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeleteCoverage removes a coverage requirement
func (h *Handler) DeleteCoverage(c *gin.Context) {
	res := h.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), h.claims(c).TenantID).Delete(&database.Coverage{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete coverage"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coverage not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coverage deleted"})
}

// UnfilledCoverage returns the understaffed coverage segments from today
// onward, the input the auto-generation form works from.
func (h *Handler) UnfilledCoverage(c *gin.Context) {
	ctx := h.viewContext(c)
	r, err := h.reconcilerFor(h.claims(c).TenantID, "", ctx.Location)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch data"})
		return
	}

	role := models.Role("")
	if raw := c.Query("role"); raw != "" {
		role = models.ParseRole(raw)
	}

	today := ctx.TodayKey()
	var out []reconcile.StaffingSnapshot
	for _, snap := range r.Snapshots() {
		if snap.DayKey < today || snap.Adequacy != reconcile.Understaffed {
			continue
		}
		if role != "" && snap.Role != role {
			continue
		}
		out = append(out, snap)
	}
	c.JSON(http.StatusOK, gin.H{"unfilled": out})
}
