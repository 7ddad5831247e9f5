// Package report holds the editor-side operations on activity reports:
// derived expense amounts, price-list application and drafting a report
// straight from a roster event.
package report

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ningrum77/puskesmas-bok/pkg/models"
	"github.com/ningrum77/puskesmas-bok/pkg/util"
)

// RecalcAmounts re-derives every expense amount from quantity and unit
// price. Amount is never trusted from input.
func RecalcAmounts(r *models.ActivityReport) {
	for i := range r.Expenses {
		r.Expenses[i].Amount = r.Expenses[i].Quantity * r.Expenses[i].UnitPrice
	}
}

// ApplySHS fills an expense from a price-list item in one step: description,
// unit, unit price and category, with the amount recomputed.
func ApplySHS(e *models.Expense, item models.SHSItem) {
	e.Description = item.Name
	e.Unit = item.Unit
	e.UnitPrice = item.Price
	e.Category = item.Category
	id := item.ID
	e.SHSItemID = &id
	e.Amount = e.Quantity * e.UnitPrice
}

// FromSchedule drafts a report out of a roster event: title, date, location
// and staff come from the event, the SPT fields and the standard content
// placeholders are prefilled, a transport expense is priced from the first
// Transport price-list item times the headcount, and the template whose name
// matches the activity is preselected.
func FromSchedule(ev models.ScheduleEvent, types []models.ActivityType, shsItems []models.SHSItem, templates []models.Template) models.ActivityReport {
	var activity *models.ActivityType
	for i := range types {
		if types[i].ID == ev.ActivityID {
			activity = &types[i]
			break
		}
	}
	actName := "Kegiatan"
	if activity != nil {
		actName = activity.Name
	}

	templateID := ""
	if len(templates) > 0 {
		templateID = templates[0].ID
	}
	if activity != nil {
		lowerAct := strings.ToLower(activity.Name)
		for _, t := range templates {
			lowerTpl := strings.ToLower(t.Name)
			if strings.Contains(lowerTpl, lowerAct) || strings.Contains(lowerAct, lowerTpl) {
				templateID = t.ID
				break
			}
		}
	}

	var transport *models.SHSItem
	for i := range shsItems {
		if strings.Contains(strings.ToLower(shsItems[i].Category), "transport") {
			transport = &shsItems[i]
			break
		}
	}
	if transport == nil && len(shsItems) > 0 {
		transport = &shsItems[0]
	}

	headcount := int64(len(ev.StaffNames))
	autoExpense := models.Expense{
		ID:          uuid.NewString(),
		Description: "Transport Petugas: " + actName,
		Quantity:    headcount,
		Unit:        "Org/Kali",
		Category:    "Transport",
		Date:        ev.Date,
	}
	if transport != nil {
		autoExpense.Unit = transport.Unit
		autoExpense.UnitPrice = transport.Price
		id := transport.ID
		autoExpense.SHSItemID = &id
	}
	autoExpense.Amount = autoExpense.Quantity * autoExpense.UnitPrice

	content := map[string]string{
		"tanggal_kegiatan": util.FormatDateID(ev.Date),
		"lokasi_kegiatan":  ev.Location,
	}
	if ev.SPTNumber != nil {
		content["nomor_spt"] = *ev.SPTNumber
	}
	if ev.SPTDate != nil {
		content["tanggal_spt"] = util.FormatDateID(*ev.SPTDate)
	}

	activityID := ev.ActivityID
	r := models.ActivityReport{
		ID:         uuid.NewString(),
		Title:      "Laporan Hasil " + actName + " - " + ev.Location,
		Date:       ev.Date,
		Location:   ev.Location,
		TemplateID: templateID,
		Content:    content,
		Expenses:   []models.Expense{autoExpense},
		StaffNames: append([]string(nil), ev.StaffNames...),
		Status:     models.StatusDraft,
		SPTNumber:  ev.SPTNumber,
		SPTDate:    ev.SPTDate,
		ActivityID: &activityID,
	}
	return r
}
