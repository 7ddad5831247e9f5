package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ningrum77/puskesmas-bok/pkg/models"
	"github.com/ningrum77/puskesmas-bok/pkg/rpk"
)

// RPKMatrix builds the year's monitoring matrix: one row per activity type,
// twelve month cells each, with yearly totals.
func (h *Handler) RPKMatrix(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return
	}

	snap := h.Store.Snapshot()
	rows := make([]rpk.YearRow, 0, len(snap.ActivityTypes))
	for _, at := range snap.ActivityTypes {
		rows = append(rows, rpk.Year(snap.Reports, snap.RPKGoals, at.ID, year))
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "rows": rows})
}

// RPKCell returns one (activity, month) monitoring figure.
func (h *Handler) RPKCell(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12"})
		return
	}

	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, rpk.Cell(snap.Reports, snap.RPKGoals, c.Param("activityId"), year, month))
}

// ListGoals returns every RPK goal.
func (h *Handler) ListGoals(c *gin.Context) {
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"goals": snap.RPKGoals})
}

// UpsertGoal sets the plan for one (activity, month), replacing any previous
// goal for the same pair.
func (h *Handler) UpsertGoal(c *gin.Context) {
	var g models.RPKGoal
	if err := c.ShouldBindJSON(&g); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if g.ActivityTypeID == "" || len(g.Month) != 7 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activityTypeId and month (YYYY-MM) are required"})
		return
	}
	if g.PlannedBudget < 0 || g.Target < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan figures cannot be negative"})
		return
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	if err := h.Store.UpsertGoal(g); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}
