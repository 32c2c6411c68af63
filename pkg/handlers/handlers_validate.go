package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicshift/clinicshift-api/pkg/models"
)

// ValidateInput checks a reconciliation payload for structural problems
// without running a pass: duplicate IDs, unplaceable intervals, unknown
// statuses. Useful to integrations before they start posting regularly.
func (h *Handler) ValidateInput(c *gin.Context) {
	var input ReconcileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	// Check for duplicate IDs
	covIDs := make(map[string]bool)
	for _, cov := range input.Coverage {
		if covIDs[cov.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate coverage ID: " + cov.ID})
			return
		}
		covIDs[cov.ID] = true
	}

	shiftIDs := make(map[string]bool)
	for _, s := range input.Shifts {
		if shiftIDs[s.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate shift ID: " + s.ID})
			return
		}
		shiftIDs[s.ID] = true

		if s.Status != "" && !models.ValidStatus(string(s.Status)) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Unknown shift status: " + string(s.Status)})
			return
		}
	}

	// Records that cannot be temporally placed are skipped by the core;
	// report them so the caller can fix the data instead of silently
	// losing counts.
	unplaceable := 0
	for _, cov := range input.Coverage {
		if cov.StartTime.IsZero() || cov.EndTime.IsZero() || !cov.EndTime.After(cov.StartTime) {
			unplaceable++
		}
	}
	for _, s := range input.Shifts {
		if s.StartTime.IsZero() || s.EndTime.IsZero() || !s.EndTime.After(s.StartTime) {
			unplaceable++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"coverage_count":    len(input.Coverage),
			"shift_count":       len(input.Shifts),
			"unplaceable_count": unplaceable,
		},
	})
}
