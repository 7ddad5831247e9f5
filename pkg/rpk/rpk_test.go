package rpk

import (
	"testing"

	"github.com/ningrum77/puskesmas-bok/pkg/models"
)

func strPtr(s string) *string { return &s }

func submittedReport(id, activityID, date string, amount int64) models.ActivityReport {
	return models.ActivityReport{
		ID:         id,
		Date:       date,
		Status:     models.StatusSubmitted,
		ActivityID: strPtr(activityID),
		Expenses: []models.Expense{
			{ID: id + "-e1", Quantity: 1, UnitPrice: amount, Amount: amount},
		},
	}
}

func TestClassify(t *testing.T) {
	if got := Classify(350000, 500000); got != StatusWarning {
		t.Errorf("Expected warning for partial realization, got %s", got)
	}
	if got := Classify(550000, 500000); got != StatusComplete {
		t.Errorf("Expected complete when realization exceeds plan, got %s", got)
	}
	if got := Classify(500000, 500000); got != StatusComplete {
		t.Errorf("Expected complete at exactly the plan, got %s", got)
	}
	if got := Classify(0, 500000); got != StatusPending {
		t.Errorf("Expected pending with no realization, got %s", got)
	}
	if got := Classify(0, 0); got != StatusNoTarget {
		t.Errorf("Expected noTarget with neither plan nor realization, got %s", got)
	}
	if got := Classify(100000, 0); got != StatusComplete {
		t.Errorf("Expected complete for realization without a plan, got %s", got)
	}
}

func TestOverBudget(t *testing.T) {
	if !OverBudget(550000, 500000) {
		t.Error("Expected over budget when realization exceeds plan")
	}
	if OverBudget(500000, 500000) {
		t.Error("Expected not over budget at exactly the plan")
	}
}

func TestCell_SumsSubmittedReportsOnly(t *testing.T) {
	reports := []models.ActivityReport{
		submittedReport("r1", "act-1", "2026-03-05", 200000),
		submittedReport("r2", "act-1", "2026-03-18", 150000),
		{
			ID:         "r3",
			Date:       "2026-03-20",
			Status:     models.StatusDraft,
			ActivityID: strPtr("act-1"),
			Expenses:   []models.Expense{{Quantity: 1, UnitPrice: 999999, Amount: 999999}},
		},
		submittedReport("r4", "act-2", "2026-03-10", 80000),
		submittedReport("r5", "act-1", "2026-04-02", 75000),
	}
	goals := []models.RPKGoal{
		{ID: "g1", Month: "2026-03", ActivityTypeID: "act-1", Target: 4, Unit: "kali", PlannedBudget: 500000},
	}

	cell := Cell(reports, goals, "act-1", 2026, 3)
	if cell.Realized != 350000 {
		t.Errorf("Expected realized 350000, got %d", cell.Realized)
	}
	if cell.Planned != 500000 {
		t.Errorf("Expected planned 500000, got %d", cell.Planned)
	}
	if cell.ReportCount != 2 {
		t.Errorf("Expected 2 reports counted, got %d", cell.ReportCount)
	}
	if cell.Status != StatusWarning {
		t.Errorf("Expected warning status, got %s", cell.Status)
	}
	if cell.OverBudget {
		t.Error("Expected not over budget")
	}
}

func TestCell_OrderIndependent(t *testing.T) {
	a := submittedReport("r1", "act-1", "2026-03-05", 200000)
	b := submittedReport("r2", "act-1", "2026-03-18", 150000)
	goals := []models.RPKGoal{
		{ID: "g1", Month: "2026-03", ActivityTypeID: "act-1", PlannedBudget: 500000},
	}

	first := Cell([]models.ActivityReport{a, b}, goals, "act-1", 2026, 3)
	second := Cell([]models.ActivityReport{b, a}, goals, "act-1", 2026, 3)

	if first.Realized != second.Realized || first.Status != second.Status {
		t.Errorf("Expected order-independent result, got %+v vs %+v", first, second)
	}
}

func TestCell_OverBudgetStaysComplete(t *testing.T) {
	reports := []models.ActivityReport{
		submittedReport("r1", "act-1", "2026-03-05", 550000),
	}
	goals := []models.RPKGoal{
		{ID: "g1", Month: "2026-03", ActivityTypeID: "act-1", PlannedBudget: 500000},
	}

	cell := Cell(reports, goals, "act-1", 2026, 3)
	if cell.Status != StatusComplete {
		t.Errorf("Expected complete status, got %s", cell.Status)
	}
	if !cell.OverBudget {
		t.Error("Expected over budget flag set")
	}
}

func TestYear_Totals(t *testing.T) {
	reports := []models.ActivityReport{
		submittedReport("r1", "act-1", "2026-03-05", 200000),
		submittedReport("r2", "act-1", "2026-07-10", 300000),
	}
	goals := []models.RPKGoal{
		{ID: "g1", Month: "2026-03", ActivityTypeID: "act-1", PlannedBudget: 250000},
		{ID: "g2", Month: "2026-07", ActivityTypeID: "act-1", PlannedBudget: 250000},
	}

	row := Year(reports, goals, "act-1", 2026)
	if len(row.Months) != 12 {
		t.Fatalf("Expected 12 month cells, got %d", len(row.Months))
	}
	if row.YearlyRealized != 500000 {
		t.Errorf("Expected yearly realized 500000, got %d", row.YearlyRealized)
	}
	if row.YearlyPlanned != 500000 {
		t.Errorf("Expected yearly planned 500000, got %d", row.YearlyPlanned)
	}
	if row.Months[0].Status != StatusNoTarget {
		t.Errorf("Expected January to have no target, got %s", row.Months[0].Status)
	}
}

func TestRemaining_ExcludesEditedReport(t *testing.T) {
	reports := []models.ActivityReport{
		submittedReport("r1", "act-1", "2026-03-05", 200000),
		submittedReport("r2", "act-1", "2026-03-18", 150000),
	}
	goals := []models.RPKGoal{
		{ID: "g1", Month: "2026-03", ActivityTypeID: "act-1", PlannedBudget: 500000},
	}

	// r2 is being edited with a new expense total of 250000
	info, ok := Remaining(reports, goals, "r2", "act-1", "2026-03-18", 250000)
	if !ok {
		t.Fatal("Expected a goal to be found")
	}
	if info.Spent != 450000 {
		t.Errorf("Expected spent 450000, got %d", info.Spent)
	}
	if info.Remaining != 50000 {
		t.Errorf("Expected remaining 50000, got %d", info.Remaining)
	}
	if info.OverBudget {
		t.Error("Expected not over budget")
	}
}

func TestRemaining_NoGoal(t *testing.T) {
	_, ok := Remaining(nil, nil, "", "act-1", "2026-03-18", 100000)
	if ok {
		t.Error("Expected no budget info without a goal")
	}
}
