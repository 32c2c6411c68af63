package handlers

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinicshift/clinicshift-api/pkg/auth"
	"github.com/clinicshift/clinicshift-api/pkg/database"
	"github.com/clinicshift/clinicshift-api/pkg/models"
	"github.com/clinicshift/clinicshift-api/pkg/reconcile"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// Register wires every route onto the engine. Shared by the server
// binary and the serverless entrypoint.
func Register(r *gin.Engine, h *Handler) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "ClinicShift API",
			"version": "1.3.0",
		})
	})

	r.POST("/auth/signup", h.SignupTenant)
	r.POST("/auth/login", h.Login)

	api := r.Group("/api/v1")
	api.Use(h.AuthMiddleware())
	{
		api.GET("/staff", h.ListStaff)
		api.POST("/staff", h.AdminOnly(), h.CreateStaff)
		api.PUT("/staff/:id", h.AdminOnly(), h.UpdateStaff)
		api.DELETE("/staff/:id", h.AdminOnly(), h.DeactivateStaff)

		api.GET("/coverage", h.ListCoverage)
		api.POST("/coverage", h.AdminOnly(), h.CreateCoverage)
		api.PUT("/coverage/:id", h.AdminOnly(), h.UpdateCoverage)
		api.DELETE("/coverage/:id", h.AdminOnly(), h.DeleteCoverage)
		api.GET("/coverage/unfilled", h.UnfilledCoverage)

		api.GET("/schedules", h.ListSchedules)
		api.POST("/schedules", h.AdminOnly(), h.CreateSchedule)
		api.PUT("/schedules/:id", h.UpdateSchedule)
		api.DELETE("/schedules/:id", h.AdminOnly(), h.DeleteSchedule)
		api.POST("/schedules/auto-generate", h.AdminOnly(), h.AutoGenerateSchedules)

		api.GET("/timeoff", h.ListTimeOff)
		api.POST("/timeoff", h.RequestTimeOff)
		api.POST("/timeoff/:id/decision", h.AdminOnly(), h.DecideTimeOff)

		api.GET("/summary/admin", h.AdminOnly(), h.AdminSummary)
		api.GET("/summary/staff", h.StaffSummary)
		api.GET("/dashboard/today", h.TodayCoverage)
		api.GET("/dashboard/upcoming", h.UpcomingCoverage)
		api.GET("/dashboard/roles/:role", h.RoleSeries)
		api.GET("/dashboard/hours", h.StaffHours)

		admin := api.Group("/admin")
		admin.Use(h.AdminOnly())
		{
			admin.POST("/keys", h.GenerateKey)
			admin.GET("/keys", h.ListKeys)
			admin.PUT("/keys/:id", h.UpdateKeyLimit)
			admin.DELETE("/keys/:id", h.RevokeKey)
			admin.GET("/usage/:id", h.GetUsage)
		}
	}

	integration := r.Group("/integration")
	integration.Use(h.APIKeyMiddleware())
	{
		integration.POST("/reconcile", h.ReconcileJSON)
		integration.POST("/validate", h.ValidateInput)
		integration.GET("/usage", h.GetMyUsage)
		integration.GET("/schedules.ics", h.ScheduleICS)
	}
}

// AuthMiddleware verifies the JWT token for authenticated routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// AdminOnly rejects non-admin sessions. Must run after AuthMiddleware.
func (h *Handler) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.claims(c).IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIKeyMiddleware verifies the HMAC integration key for the
// integration routes and attaches the key record for usage tracking.
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Authorization")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}

		if len(key) > 7 && key[:7] == "Bearer " {
			key = key[7:]
		}

		name, err := auth.VerifyHMACKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			c.Abort()
			return
		}

		var apiKey database.APIKey
		h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:       key,
			Name:      name,
			RateLimit: 10000,
		})

		now := time.Now()
		apiKey.LastUsed = &now
		h.DB.Save(&apiKey)

		c.Set("apiKey", &apiKey)
		c.Next()
	}
}

func (h *Handler) claims(c *gin.Context) *auth.Claims {
	return c.MustGet("claims").(*auth.Claims)
}

// requestLocation resolves the zone derived views are computed in: a
// tz query parameter wins, then CLINIC_TZ, then the server's local zone.
func requestLocation(c *gin.Context) *time.Location {
	if tz := c.Query("tz"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if tz := os.Getenv("CLINIC_TZ"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// viewContext builds the explicit projection context for the session.
func (h *Handler) viewContext(c *gin.Context) reconcile.ViewContext {
	claims := h.claims(c)
	return reconcile.ViewContext{
		Now:      time.Now(),
		Location: requestLocation(c),
		StaffID:  claims.UserID,
		Admin:    claims.IsAdmin,
	}
}

func toCoverageRecords(rows []database.Coverage) []models.CoverageRequirement {
	out := make([]models.CoverageRequirement, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.CoverageRequirement{
			ID:            row.ID,
			Role:          models.ParseRole(row.Role),
			StartTime:     row.StartTime,
			EndTime:       row.EndTime,
			RequiredCount: row.RequiredCount,
			Note:          row.Note,
		})
	}
	return out
}

func toShiftRecords(rows []database.Shift) []models.ScheduledShift {
	out := make([]models.ScheduledShift, 0, len(rows))
	for _, row := range rows {
		ref := models.StaffRef{ID: row.StaffID, Role: models.RoleOther}
		if row.Staff != nil {
			ref.Name = row.Staff.Name
			ref.Role = models.ParseRole(row.Staff.Role)
		}
		out = append(out, models.ScheduledShift{
			ID:        row.ID,
			Staff:     ref,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Status:    models.ShiftStatus(row.Status),
			Notes:     row.Notes,
		})
	}
	return out
}

// reconcilerFor fetches both collections for the tenant and indexes
// them. The two fetches are independent, so they run concurrently and
// join before reconciliation begins; partial data is never reconciled.
// Pass a staffID to restrict shifts to one staff member.
func (h *Handler) reconcilerFor(tenantID, staffID string, loc *time.Location) (*reconcile.Reconciler, error) {
	var (
		coverage []database.Coverage
		shifts   []database.Shift
		covErr   error
		shiftErr error
		wg       sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		covErr = h.DB.Where("tenant_id = ?", tenantID).Find(&coverage).Error
	}()
	go func() {
		defer wg.Done()
		q := h.DB.Preload("Staff").Where("tenant_id = ?", tenantID)
		if staffID != "" {
			q = q.Where("staff_id = ?", staffID)
		}
		shiftErr = q.Find(&shifts).Error
	}()
	wg.Wait()

	if covErr != nil {
		return nil, covErr
	}
	if shiftErr != nil {
		return nil, shiftErr
	}

	return reconcile.New(toCoverageRecords(coverage), toShiftRecords(shifts), loc), nil
}

// Login handles staff login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.Staff
	if err := h.DB.Where("email = ? AND active = ?", req.Email, true).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.CreateToken(user.ID, user.TenantID, user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	h.Log.Info("staff logged in", zap.String("staff_id", user.ID), zap.Bool("admin", user.IsAdmin))
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"is_admin": user.IsAdmin,
		},
	})
}

// SignupTenant creates a new clinic tenant with its first admin account
func (h *Handler) SignupTenant(c *gin.Context) {
	var req struct {
		ClinicName string `json:"clinicName"`
		AdminName  string `json:"adminName"`
		Email      string `json:"email"`
		Password   string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ClinicName == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clinicName, email and password are required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	tenant := database.Tenant{ID: uuid.NewString(), Name: req.ClinicName}
	admin := database.Staff{
		ID:           uuid.NewString(),
		TenantID:     tenant.ID,
		Name:         req.AdminName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         string(models.RoleOther),
		IsAdmin:      true,
		Active:       true,
		MaxHours:     40,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		return tx.Create(&admin).Error
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create tenant"})
		return
	}

	h.Log.Info("tenant created", zap.String("tenant_id", tenant.ID), zap.String("name", tenant.Name))
	c.JSON(http.StatusCreated, gin.H{"tenant_id": tenant.ID, "admin_id": admin.ID})
}
