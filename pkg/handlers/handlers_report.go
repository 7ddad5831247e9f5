package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ningrum77/puskesmas-bok/pkg/ai"
	"github.com/ningrum77/puskesmas-bok/pkg/letter"
	"github.com/ningrum77/puskesmas-bok/pkg/models"
	"github.com/ningrum77/puskesmas-bok/pkg/report"
	"github.com/ningrum77/puskesmas-bok/pkg/rpk"
	"github.com/ningrum77/puskesmas-bok/pkg/storage"
)

// ListReports returns every activity report.
func (h *Handler) ListReports(c *gin.Context) {
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"reports": snap.Reports})
}

// SaveReport inserts or updates a report. Expense amounts are always
// recomputed server side; a submitted report can never revert to draft.
func (h *Handler) SaveReport(c *gin.Context) {
	var r models.ActivityReport
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = models.StatusDraft
	}
	if r.Status != models.StatusDraft && r.Status != models.StatusSubmitted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be draft or submitted"})
		return
	}

	report.RecalcAmounts(&r)

	if err := h.Store.SaveReport(r); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteReport removes a report.
func (h *Handler) DeleteReport(c *gin.Context) {
	if err := h.Store.DeleteReport(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted"})
}

// ReportFromSchedule drafts a new report out of one roster event, with the
// transport expense priced from the SHS list and the matching template
// preselected. The draft is returned without being saved; the operator
// reviews it in the editor first.
func (h *Handler) ReportFromSchedule(c *gin.Context) {
	id := c.Param("id")
	snap := h.Store.Snapshot()

	for _, ev := range snap.Schedules {
		if ev.ID == id {
			draft := report.FromSchedule(ev, snap.ActivityTypes, snap.SHSItems, snap.Templates)
			c.JSON(http.StatusOK, draft)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
}

// ApplySHSItem fills an expense line from a price-list entry.
func (h *Handler) ApplySHSItem(c *gin.Context) {
	var req struct {
		Expense   models.Expense `json:"expense"`
		SHSItemID string         `json:"shsItemId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap := h.Store.Snapshot()
	for _, item := range snap.SHSItems {
		if item.ID == req.SHSItemID {
			report.ApplySHS(&req.Expense, item)
			c.JSON(http.StatusOK, req.Expense)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "price list item not found"})
}

// ReportBudget returns the remaining plan ceiling for the report the
// operator is editing, counting the month's other submitted reports.
func (h *Handler) ReportBudget(c *gin.Context) {
	var req struct {
		ReportID        string `json:"reportId"`
		ActivityID      string `json:"activityId"`
		Date            string `json:"date"`
		CurrentExpenses int64  `json:"currentExpenses"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap := h.Store.Snapshot()
	info, ok := rpk.Remaining(snap.Reports, snap.RPKGoals, req.ReportID, req.ActivityID, req.Date, req.CurrentExpenses)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"hasGoal": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasGoal": true, "budget": info})
}

// RenderReport substitutes the report into its template and returns the
// printable document body.
func (h *Handler) RenderReport(c *gin.Context) {
	id := c.Param("id")
	snap := h.Store.Snapshot()

	var rep *models.ActivityReport
	for i := range snap.Reports {
		if snap.Reports[i].ID == id {
			rep = &snap.Reports[i]
			break
		}
	}
	if rep == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	var tmpl *models.Template
	for i := range snap.Templates {
		if snap.Templates[i].ID == rep.TemplateID {
			tmpl = &snap.Templates[i]
			break
		}
	}
	if tmpl == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}

	rd := letter.Renderer{Letterhead: snap.Letterhead}
	c.JSON(http.StatusOK, gin.H{"html": rd.Render(*tmpl, *rep)})
}

// UploadReportImage attaches a documentation photo to a report.
func (h *Handler) UploadReportImage(c *gin.Context) {
	id := c.Param("id")
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	path, err := storage.SaveImage(h.uploadsDir(), id, fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var updated models.ActivityReport
	storeErr := h.Store.Update(func(snap *models.Snapshot) error {
		for i := range snap.Reports {
			if snap.Reports[i].ID == id {
				snap.Reports[i].Images = append(snap.Reports[i].Images, path)
				updated = snap.Reports[i]
				return nil
			}
		}
		return errNotFoundf("report %s", id)
	})
	if storeErr != nil {
		_ = storage.Remove(path)
		writeStoreError(c, storeErr)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// EnhanceSection asks the assist model to rewrite one report section. On any
// failure the current text comes back untouched.
func (h *Handler) EnhanceSection(c *gin.Context) {
	var req struct {
		Section     string `json:"section"`
		CurrentText string `json:"currentText"`
		Context     string `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.AI.EnhanceSection(req.Section, req.CurrentText, req.Context)
	if err != nil {
		status := http.StatusBadGateway
		if err == ai.ErrNoAPIKey {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error(), "text": req.CurrentText})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

// SummarizeExpenses asks the assist model for an executive spending summary
// of one report.
func (h *Handler) SummarizeExpenses(c *gin.Context) {
	id := c.Param("id")
	snap := h.Store.Snapshot()

	for _, r := range snap.Reports {
		if r.ID == id {
			text, err := h.AI.SummarizeExpenses(r.Expenses)
			if err != nil {
				status := http.StatusBadGateway
				if err == ai.ErrNoAPIKey {
					status = http.StatusServiceUnavailable
				}
				c.JSON(status, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"text": text})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
}

func (h *Handler) uploadsDir() string {
	if h.Cfg != nil && h.Cfg.Data.UploadsDir != "" {
		return h.Cfg.Data.UploadsDir
	}
	return "uploads"
}
