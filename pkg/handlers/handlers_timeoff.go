package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicshift/clinicshift-api/pkg/database"
)

// ListTimeOff returns time-off requests: all of them for admins, only
// the caller's own for staff.
func (h *Handler) ListTimeOff(c *gin.Context) {
	claims := h.claims(c)

	q := h.DB.Preload("Staff").Where("tenant_id = ?", claims.TenantID)
	if !claims.IsAdmin {
		q = q.Where("staff_id = ?", claims.UserID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []database.TimeOffRequest
	if err := q.Order("start_date").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch time-off requests"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// RequestTimeOff submits a time-off request for the calling staff member
func (h *Handler) RequestTimeOff(c *gin.Context) {
	var req struct {
		StartDate time.Time `json:"startDate"`
		EndDate   time.Time `json:"endDate"`
		Reason    string    `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() || req.EndDate.Before(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate are required and must be ordered"})
		return
	}

	claims := h.claims(c)
	row := database.TimeOffRequest{
		ID:        uuid.NewString(),
		TenantID:  claims.TenantID,
		StaffID:   claims.UserID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
		Status:    "pending",
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create request"})
		return
	}

	h.Log.Info("time-off requested", zap.String("id", row.ID), zap.String("staff_id", row.StaffID))
	c.JSON(http.StatusCreated, row)
}

// DecideTimeOff approves or denies a pending request
func (h *Handler) DecideTimeOff(c *gin.Context) {
	var req struct {
		Decision string `json:"decision"` // approved | denied
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Decision != "approved" && req.Decision != "denied" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be approved or denied"})
		return
	}

	claims := h.claims(c)
	var row database.TimeOffRequest
	if err := h.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), claims.TenantID).First(&row).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}
	if row.Status != "pending" {
		c.JSON(http.StatusConflict, gin.H{"error": "Request already decided"})
		return
	}

	now := time.Now()
	row.Status = req.Decision
	row.DecidedBy = &claims.UserID
	row.DecidedAt = &now

	if err := h.DB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update request"})
		return
	}

	h.Log.Info("time-off decided", zap.String("id", row.ID), zap.String("decision", row.Status))
	c.JSON(http.StatusOK, row)
}
