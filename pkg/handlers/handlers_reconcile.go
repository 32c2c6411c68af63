package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clinicshift/clinicshift-api/pkg/database"
	"github.com/clinicshift/clinicshift-api/pkg/models"
	"github.com/clinicshift/clinicshift-api/pkg/reconcile"
)

// ReconcileInput is the payload for the stateless reconciliation
// endpoint: both collections posted in full, exactly as the core
// expects them.
type ReconcileInput struct {
	Coverage []models.CoverageRequirement `json:"coverage"`
	Shifts   []models.ScheduledShift      `json:"shifts"`
	TimeZone string                       `json:"timeZone"`
}

// ReconcileJSON runs one reconciliation pass over posted collections and
// returns every staffing snapshot. Nothing is stored; integrations use
// this to derive adequacy state from their own data.
func (h *Handler) ReconcileJSON(c *gin.Context) {
	var input ReconcileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc := requestLocation(c)
	if input.TimeZone != "" {
		parsed, err := time.LoadLocation(input.TimeZone)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown timeZone"})
			return
		}
		loc = parsed
	}

	r := reconcile.New(input.Coverage, input.Shifts, loc)
	snapshots := r.Snapshots()

	h.RecordUsage(c, len(input.Coverage), len(input.Shifts))

	understaffed := 0
	for _, snap := range snapshots {
		if snap.Adequacy == reconcile.Understaffed {
			understaffed++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshots":          snapshots,
		"understaffed_count": understaffed,
		"time_zone":          loc.String(),
	})
}

// RecordUsage records integration usage in the database using an
// efficient upsert
func (h *Handler) RecordUsage(c *gin.Context, coverageCount, shiftCount int) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	today := time.Now().Format("2006-01-02")

	// Use OnConflict for a single-query upsert (supported by both Postgres and SQLite)
	h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":  gorm.Expr("request_count + ?", 1),
			"total_coverage": gorm.Expr("total_coverage + ?", coverageCount),
			"total_shifts":   gorm.Expr("total_shifts + ?", shiftCount),
		}),
	}).Create(&database.APIUsage{
		KeyID:         apiKey.ID,
		Date:          today,
		RequestCount:  1,
		TotalCoverage: coverageCount,
		TotalShifts:   shiftCount,
	})
}
