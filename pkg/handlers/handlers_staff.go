package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicshift/clinicshift-api/pkg/auth"
	"github.com/clinicshift/clinicshift-api/pkg/database"
	"github.com/clinicshift/clinicshift-api/pkg/models"
)

// ListStaff returns every staff member of the tenant
func (h *Handler) ListStaff(c *gin.Context) {
	var rows []database.Staff
	if err := h.DB.Where("tenant_id = ?", h.claims(c).TenantID).Order("name").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch staff"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateStaff adds a staff member with a login
func (h *Handler) CreateStaff(c *gin.Context) {
	var req struct {
		Name     string  `json:"name"`
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Role     string  `json:"role"`
		IsAdmin  bool    `json:"isAdmin"`
		MaxHours float64 `json:"maxHours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}
	if req.MaxHours <= 0 {
		req.MaxHours = 40
	}

	row := database.Staff{
		ID:           uuid.NewString(),
		TenantID:     h.claims(c).TenantID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         string(models.ParseRole(req.Role)),
		IsAdmin:      req.IsAdmin,
		Active:       true,
		MaxHours:     req.MaxHours,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create staff member (email taken?)"})
		return
	}

	h.Log.Info("staff created", zap.String("id", row.ID), zap.String("role", row.Role))
	c.JSON(http.StatusCreated, row)
}

// UpdateStaff edits a staff member
func (h *Handler) UpdateStaff(c *gin.Context) {
	var row database.Staff
	if err := h.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), h.claims(c).TenantID).First(&row).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}

	var req struct {
		Name     string   `json:"name"`
		Role     string   `json:"role"`
		IsAdmin  *bool    `json:"isAdmin"`
		Active   *bool    `json:"active"`
		MaxHours *float64 `json:"maxHours"`
		Password string   `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != "" {
		row.Name = req.Name
	}
	if req.Role != "" {
		row.Role = string(models.ParseRole(req.Role))
	}
	if req.IsAdmin != nil {
		row.IsAdmin = *req.IsAdmin
	}
	if req.Active != nil {
		row.Active = *req.Active
	}
	if req.MaxHours != nil && *req.MaxHours > 0 {
		row.MaxHours = *req.MaxHours
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}
		row.PasswordHash = hash
	}

	if err := h.DB.Save(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update staff member"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// DeactivateStaff soft-disables a staff member so history keeps its
// shifts while new ones cannot be assigned.
func (h *Handler) DeactivateStaff(c *gin.Context) {
	res := h.DB.Model(&database.Staff{}).
		Where("id = ? AND tenant_id = ?", c.Param("id"), h.claims(c).TenantID).
		Update("active", false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not deactivate staff member"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deactivated"})
}
