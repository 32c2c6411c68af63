package handlers

import (
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"

	"github.com/clinicshift/clinicshift-api/pkg/database"
)

// ScheduleICS exports upcoming scheduled shifts as an iCalendar feed so
// integrations can subscribe from external calendar clients. Cancelled
// shifts are excluded; ?days=N bounds the horizon (default 30).
func (h *Handler) ScheduleICS(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &days); err != nil || days <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days parameter"})
			return
		}
	}

	now := time.Now()
	horizon := now.AddDate(0, 0, days)

	query := h.DB.Preload("Staff").
		Where("status <> ?", "cancelled").
		Where("end_time >= ? AND start_time <= ?", now, horizon)

	// Keys minted through the admin console carry a tenant; raw HMAC
	// keys see nothing until an admin claims them.
	key := c.MustGet("apiKey").(*database.APIKey)
	if key.TenantID != "" {
		query = query.Where("tenant_id = ?", key.TenantID)
	} else {
		query = query.Where("1 = 0")
	}

	var shifts []database.Shift
	if err := query.Order("start_time asc").Find(&shifts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load schedules"})
		return
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for _, s := range shifts {
		event := cal.AddEvent(fmt.Sprintf("shift-%s@clinicshift", s.ID))
		event.SetCreatedTime(s.CreatedAt)
		event.SetStartAt(s.StartTime)
		event.SetEndAt(s.EndTime)

		summary := "Shift"
		if s.Staff != nil {
			summary = fmt.Sprintf("%s (%s)", s.Staff.Name, s.Staff.Role)
		}
		event.SetSummary(summary)
		desc := s.Notes
		if s.Status != "scheduled" {
			desc = fmt.Sprintf("Status: %s. %s", s.Status, s.Notes)
		}
		if desc != "" {
			event.SetDescription(desc)
		}
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="schedules.ics"`)
	c.String(http.StatusOK, cal.Serialize())
}
