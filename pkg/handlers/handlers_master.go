package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ningrum77/puskesmas-bok/pkg/letter"
	"github.com/ningrum77/puskesmas-bok/pkg/models"
	"github.com/ningrum77/puskesmas-bok/pkg/storage"
)

// ListTransactions returns the cash ledger.
func (h *Handler) ListTransactions(c *gin.Context) {
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"transactions": snap.Transactions})
}

// AddTransaction appends a cash ledger entry.
func (h *Handler) AddTransaction(c *gin.Context) {
	var t models.Transaction
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if t.Type != "income" && t.Type != "expense" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be income or expense"})
		return
	}
	if t.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Date == "" {
		t.Date = time.Now().Format("2006-01-02")
	}

	if err := h.Store.AddTransaction(t); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// DeleteTransaction removes a ledger entry.
func (h *Handler) DeleteTransaction(c *gin.Context) {
	if err := h.Store.DeleteTransaction(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// ListStaff returns the staff roster.
func (h *Handler) ListStaff(c *gin.Context) {
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"staff": snap.Staff})
}

// SaveStaff inserts or updates a staff record.
func (h *Handler) SaveStaff(c *gin.Context) {
	var st models.Staff
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if st.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if err := h.Store.SaveStaff(st); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DeleteStaff removes a staff record.
func (h *Handler) DeleteStaff(c *gin.Context) {
	if err := h.Store.DeleteStaff(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff deleted"})
}

// ListActivityTypes returns the activity catalog.
func (h *Handler) ListActivityTypes(c *gin.Context) {
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"activityTypes": snap.ActivityTypes})
}

// SaveActivityType inserts or updates a catalog entry. Changing the required
// headcount never touches existing roster events; the rule applies at entry
// time only.
func (h *Handler) SaveActivityType(c *gin.Context) {
	var at models.ActivityType
	if err := c.ShouldBindJSON(&at); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if at.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if at.ID == "" {
		at.ID = uuid.NewString()
	}
	if err := h.Store.SaveActivityType(at); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, at)
}

// DeleteActivityType removes a catalog entry unless schedules, reports or
// goals still reference it.
func (h *Handler) DeleteActivityType(c *gin.Context) {
	if err := h.Store.DeleteActivityType(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Activity type deleted"})
}

// ListTemplates returns the letter templates.
func (h *Handler) ListTemplates(c *gin.Context) {
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"templates": snap.Templates})
}

// SaveTemplate inserts or updates a template.
func (h *Handler) SaveTemplate(c *gin.Context) {
	var t models.Template
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if t.Name == "" || t.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and body are required"})
		return
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := h.Store.SaveTemplate(t); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTemplate removes a template.
func (h *Handler) DeleteTemplate(c *gin.Context) {
	if err := h.Store.DeleteTemplate(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

// TemplateTokens lists the placeholders a template body declares, in order
// of first appearance. The report editor builds its input form from this.
func (h *Handler) TemplateTokens(c *gin.Context) {
	id := c.Param("id")
	snap := h.Store.Snapshot()
	for _, t := range snap.Templates {
		if t.ID == id {
			c.JSON(http.StatusOK, gin.H{"tokens": letter.Tokens(t.Body)})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
}

// ListSHSItems returns the standard price list.
func (h *Handler) ListSHSItems(c *gin.Context) {
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"shsItems": snap.SHSItems})
}

// SaveSHSItem inserts or updates a price-list entry.
func (h *Handler) SaveSHSItem(c *gin.Context) {
	var item models.SHSItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if item.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
		return
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if err := h.Store.SaveSHSItem(item); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteSHSItem removes a price-list entry.
func (h *Handler) DeleteSHSItem(c *gin.Context) {
	if err := h.Store.DeleteSHSItem(c.Param("id")); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Price list item deleted"})
}

// GetLetterhead returns the printed document header configuration.
func (h *Handler) GetLetterhead(c *gin.Context) {
	snap := h.Store.Snapshot()
	c.JSON(http.StatusOK, snap.Letterhead)
}

// SetLetterhead replaces the document header configuration.
func (h *Handler) SetLetterhead(c *gin.Context) {
	var cfg models.LetterheadConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Store.SetLetterhead(cfg); err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UploadLetterheadLogo stores a logo image and wires it into the header.
// side is "pemkab" or "puskesmas".
func (h *Handler) UploadLetterheadLogo(c *gin.Context) {
	side := c.Param("side")
	if side != "pemkab" && side != "puskesmas" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be pemkab or puskesmas"})
		return
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	path, err := storage.SaveImage(h.uploadsDir(), "letterhead", fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	storeErr := h.Store.Update(func(snap *models.Snapshot) error {
		if side == "pemkab" {
			snap.Letterhead.LogoPemkab = &path
		} else {
			snap.Letterhead.LogoPuskesmas = &path
		}
		return nil
	})
	if storeErr != nil {
		_ = storage.Remove(path)
		writeStoreError(c, storeErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}

// Dashboard aggregates the landing-page figures: cash position, report
// progress and this month's roster load.
func (h *Handler) Dashboard(c *gin.Context) {
	snap := h.Store.Snapshot()

	var income, expense int64
	for _, t := range snap.Transactions {
		if t.Type == "income" {
			income += t.Amount
		} else {
			expense += t.Amount
		}
	}

	var drafts, submitted int
	var realized int64
	for _, r := range snap.Reports {
		switch r.Status {
		case models.StatusSubmitted:
			submitted++
			realized += r.ExpenseTotal()
		default:
			drafts++
		}
	}

	monthKey := time.Now().Format("2006-01")
	schedulesThisMonth := 0
	for _, ev := range snap.Schedules {
		if len(ev.Date) >= 7 && ev.Date[:7] == monthKey {
			schedulesThisMonth++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalIncome":        income,
		"totalExpense":       expense,
		"balance":            income - expense,
		"draftReports":       drafts,
		"submittedReports":   submitted,
		"realizedTotal":      realized,
		"schedulesThisMonth": schedulesThisMonth,
	})
}
