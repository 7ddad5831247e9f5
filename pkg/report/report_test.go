package report

import (
	"strings"
	"testing"

	"github.com/ningrum77/puskesmas-bok/pkg/models"
)

func TestRecalcAmounts(t *testing.T) {
	r := models.ActivityReport{
		Expenses: []models.Expense{
			{Quantity: 3, UnitPrice: 50000, Amount: 1},
			{Quantity: 2, UnitPrice: 25000},
		},
	}

	RecalcAmounts(&r)
	if r.Expenses[0].Amount != 150000 {
		t.Errorf("Expected 150000, got %d", r.Expenses[0].Amount)
	}
	if r.Expenses[1].Amount != 50000 {
		t.Errorf("Expected 50000, got %d", r.Expenses[1].Amount)
	}
	if r.ExpenseTotal() != 200000 {
		t.Errorf("Expected total 200000, got %d", r.ExpenseTotal())
	}
}

func TestApplySHS(t *testing.T) {
	e := models.Expense{ID: "x1", Quantity: 3}
	item := models.SHSItem{ID: "shs-1", Name: "Transport Petugas Dalam Kota", Category: "Transport", Unit: "Org/Kali", Price: 50000}

	ApplySHS(&e, item)
	if e.Description != item.Name || e.Unit != item.Unit || e.UnitPrice != item.Price {
		t.Errorf("Expected expense filled from price list, got %+v", e)
	}
	if e.SHSItemID == nil || *e.SHSItemID != "shs-1" {
		t.Error("Expected SHS reference set")
	}
	if e.Amount != 150000 {
		t.Errorf("Expected recomputed amount 150000, got %d", e.Amount)
	}
}

func TestFromSchedule(t *testing.T) {
	spt := "094/001/III/2026"
	sptDate := "2026-03-01"
	ev := models.ScheduleEvent{
		ID: "e1", Date: "2026-03-10", ActivityID: "act-1", Location: "Desa Kupu",
		StaffNames: []string{"Ani", "Budi", "Citra"},
		SPTNumber:  &spt, SPTDate: &sptDate,
	}
	types := []models.ActivityType{{ID: "act-1", Name: "Pusling", RequiredStaffCount: 3}}
	shs := []models.SHSItem{
		{ID: "shs-9", Name: "Makan Minum", Category: "Konsumsi", Unit: "Porsi", Price: 30000},
		{ID: "shs-1", Name: "Transport Petugas", Category: "Transport", Unit: "Org/Kali", Price: 50000},
	}
	templates := []models.Template{
		{ID: "tpl-9", Name: "Memo Umum"},
		{ID: "tpl-1", Name: "Laporan Pusling"},
	}

	draft := FromSchedule(ev, types, shs, templates)

	if draft.Status != models.StatusDraft {
		t.Errorf("Expected draft status, got %s", draft.Status)
	}
	if !strings.Contains(draft.Title, "Pusling") || !strings.Contains(draft.Title, "Desa Kupu") {
		t.Errorf("Unexpected title: %s", draft.Title)
	}
	if draft.TemplateID != "tpl-1" {
		t.Errorf("Expected the matching template preselected, got %s", draft.TemplateID)
	}
	if draft.ActivityID == nil || *draft.ActivityID != "act-1" {
		t.Error("Expected activity reference carried over")
	}
	if draft.SPTNumber == nil || *draft.SPTNumber != spt {
		t.Error("Expected SPT number carried over")
	}
	if draft.Content["nomor_spt"] != spt {
		t.Errorf("Expected SPT prefilled in content, got %q", draft.Content["nomor_spt"])
	}
	if draft.Content["tanggal_kegiatan"] != "10 Maret 2026" {
		t.Errorf("Expected Indonesian long date, got %q", draft.Content["tanggal_kegiatan"])
	}

	if len(draft.Expenses) != 1 {
		t.Fatalf("Expected one auto expense, got %d", len(draft.Expenses))
	}
	exp := draft.Expenses[0]
	if exp.SHSItemID == nil || *exp.SHSItemID != "shs-1" {
		t.Error("Expected the transport price-list item picked")
	}
	if exp.Quantity != 3 {
		t.Errorf("Expected quantity to match headcount, got %d", exp.Quantity)
	}
	if exp.Amount != 150000 {
		t.Errorf("Expected amount 150000, got %d", exp.Amount)
	}
}

func TestFromSchedule_NoTransportItemFallsBackToFirst(t *testing.T) {
	ev := models.ScheduleEvent{ID: "e1", Date: "2026-03-10", ActivityID: "act-1", Location: "Desa", StaffNames: []string{"Ani"}}
	types := []models.ActivityType{{ID: "act-1", Name: "Pusling", RequiredStaffCount: 1}}
	shs := []models.SHSItem{{ID: "shs-9", Name: "Makan Minum", Category: "Konsumsi", Unit: "Porsi", Price: 30000}}

	draft := FromSchedule(ev, types, shs, nil)
	if draft.Expenses[0].SHSItemID == nil || *draft.Expenses[0].SHSItemID != "shs-9" {
		t.Error("Expected fallback to the first price-list item")
	}
}

func TestFromSchedule_UnknownActivityStillDrafts(t *testing.T) {
	ev := models.ScheduleEvent{ID: "e1", Date: "2026-03-10", ActivityID: "gone", Location: "Desa", StaffNames: []string{"Ani"}}

	draft := FromSchedule(ev, nil, nil, nil)
	if draft.Status != models.StatusDraft {
		t.Errorf("Expected a draft even without a known activity, got %s", draft.Status)
	}
	if len(draft.Expenses) != 1 {
		t.Errorf("Expected the auto expense regardless, got %d", len(draft.Expenses))
	}
}
