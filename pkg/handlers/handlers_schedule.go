package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ningrum77/puskesmas-bok/pkg/models"
	"github.com/ningrum77/puskesmas-bok/pkg/scheduler"
)

// ListSchedules returns every roster event.
func (h *Handler) ListSchedules(c *gin.Context) {
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"schedules": snap.Schedules})
}

// CreateSchedule validates a roster candidate against the live ledger and
// appends it. The check runs inside the same request; a verdict obtained
// earlier by the client is advisory only.
func (h *Handler) CreateSchedule(c *gin.Context) {
	var ev models.ScheduleEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	snap := h.Store.Snapshot()
	result := scheduler.Validate(snap.Schedules, snap.ActivityTypes, ev)
	if !result.OK {
		c.JSON(http.StatusConflict, result)
		return
	}

	if err := h.Store.AddSchedule(ev); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

// CheckSchedule runs the roster validation without saving, for live feedback
// while the operator is still filling the form.
func (h *Handler) CheckSchedule(c *gin.Context) {
	var ev models.ScheduleEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, scheduler.Validate(snap.Schedules, snap.ActivityTypes, ev))
}

// DeleteSchedule removes one roster event.
func (h *Handler) DeleteSchedule(c *gin.Context) {
	if err := h.Store.DeleteSchedule(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}

// BackfillSPT stamps an SPT number and date onto every event of one activity
// in one month, the office's batch numbering workflow.
func (h *Handler) BackfillSPT(c *gin.Context) {
	var req struct {
		ActivityID string `json:"activityId"`
		Month      string `json:"month"` // YYYY-MM
		SPTNumber  string `json:"sptNumber"`
		SPTDate    string `json:"sptDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ActivityID == "" || len(req.Month) != 7 || req.SPTNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activityId, month and sptNumber are required"})
		return
	}

	if err := h.Store.BackfillSPT(req.ActivityID, req.Month, req.SPTNumber, req.SPTDate); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "SPT applied"})
}

// ExportRecapCSV streams the month's roster recap as a CSV download.
func (h *Handler) ExportRecapCSV(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return
	}
	monthNum, err := strconv.Atoi(c.Query("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12"})
		return
	}

	snap := h.Store.Snapshot()
	out, err := scheduler.MonthlyRecapCSV(snap.Schedules, snap.ActivityTypes, year, time.Month(monthNum))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("rekap-jadwal-%04d-%02d.csv", year, monthNum)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
}

// ListHolidays returns the custom off-days.
func (h *Handler) ListHolidays(c *gin.Context) {
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"holidays": snap.Holidays})
}

// AddHoliday records a custom off-day on the roster calendar.
func (h *Handler) AddHoliday(c *gin.Context) {
	var hol models.Holiday
	if err := c.ShouldBindJSON(&hol); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if hol.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	if err := h.Store.AddHoliday(hol); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hol)
}

// DeleteHoliday removes the off-day on a date.
func (h *Handler) DeleteHoliday(c *gin.Context) {
	if err := h.Store.DeleteHoliday(c.Param("date")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Holiday deleted"})
}
