// Package rpk reconciles submitted activity reports against the monthly RPK
// plan: realized spend per (activity, month), planned ceiling lookup and the
// four-state progress classification used by the monitoring matrix.
package rpk

import (
	"fmt"
	"strings"

	"github.com/ningrum77/puskesmas-bok/pkg/models"
)

// Status classifies realization against a plan. Over-budget is not a fifth
// state; it is the OverBudget flag next to Complete.
type Status string

const (
	StatusNoTarget Status = "noTarget"
	StatusComplete Status = "complete"
	StatusWarning  Status = "warning"
	StatusPending  Status = "pending"
)

// MonthKey formats a (year, month) pair the way goals and report dates are
// keyed, e.g. 2026-03.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthlyReports returns the submitted reports of one activity whose date
// falls in the given month, in stable input order.
func MonthlyReports(reports []models.ActivityReport, activityID string, year, month int) []models.ActivityReport {
	key := MonthKey(year, month)
	var out []models.ActivityReport
	for _, r := range reports {
		if r.Status != models.StatusSubmitted {
			continue
		}
		if r.ActivityID == nil || *r.ActivityID != activityID {
			continue
		}
		if strings.HasPrefix(r.Date, key) {
			out = append(out, r)
		}
	}
	return out
}

// RealizedAmount adds up every expense of every report. Multiple trips in
// the same month are summed, never deduplicated or capped.
func RealizedAmount(reports []models.ActivityReport) int64 {
	var total int64
	for _, r := range reports {
		total += r.ExpenseTotal()
	}
	return total
}

// PlannedAmount looks up the month's ceiling; zero when no goal exists.
func PlannedAmount(goals []models.RPKGoal, activityID, month string) int64 {
	if g := findGoal(goals, activityID, month); g != nil {
		return g.PlannedBudget
	}
	return 0
}

// PhysicalTarget looks up the month's physical target; zero when absent.
func PhysicalTarget(goals []models.RPKGoal, activityID, month string) int {
	if g := findGoal(goals, activityID, month); g != nil {
		return g.Target
	}
	return 0
}

func findGoal(goals []models.RPKGoal, activityID, month string) *models.RPKGoal {
	for i := range goals {
		if goals[i].ActivityTypeID == activityID && goals[i].Month == month {
			return &goals[i]
		}
	}
	return nil
}

// Classify maps any (realized, planned) pair to exactly one status. A
// positive realization against a zero plan counts as met-or-exceeded.
func Classify(realized, planned int64) Status {
	switch {
	case planned <= 0 && realized <= 0:
		return StatusNoTarget
	case realized >= planned && realized > 0:
		return StatusComplete
	case realized > 0:
		return StatusWarning
	default:
		return StatusPending
	}
}

// OverBudget reports whether realization exceeded the plan.
func OverBudget(realized, planned int64) bool {
	return realized > planned
}

// MonthCell is one cell of the monitoring matrix: money and physical
// realization for an activity in a month.
type MonthCell struct {
	Month          string `json:"month"`
	Realized       int64  `json:"realized"`
	Planned        int64  `json:"planned"`
	ReportCount    int    `json:"reportCount"`
	PhysicalTarget int    `json:"physicalTarget"`
	Unit           string `json:"unit,omitempty"`
	Status         Status `json:"status"`
	OverBudget     bool   `json:"overBudget"`
}

// Cell computes the full monitoring figure for one (activity, month).
func Cell(reports []models.ActivityReport, goals []models.RPKGoal, activityID string, year, month int) MonthCell {
	key := MonthKey(year, month)
	matched := MonthlyReports(reports, activityID, year, month)
	realized := RealizedAmount(matched)
	planned := PlannedAmount(goals, activityID, key)

	cell := MonthCell{
		Month:          key,
		Realized:       realized,
		Planned:        planned,
		ReportCount:    len(matched),
		PhysicalTarget: PhysicalTarget(goals, activityID, key),
		Status:         Classify(realized, planned),
		OverBudget:     OverBudget(realized, planned),
	}
	if g := findGoal(goals, activityID, key); g != nil {
		cell.Unit = g.Unit
	}
	return cell
}

// YearRow is the twelve months of one activity plus the yearly totals.
type YearRow struct {
	ActivityID     string      `json:"activityId"`
	Months         []MonthCell `json:"months"`
	YearlyRealized int64       `json:"yearlyRealized"`
	YearlyPlanned  int64       `json:"yearlyPlanned"`
}

// Year builds the monitoring row for one activity across a calendar year.
func Year(reports []models.ActivityReport, goals []models.RPKGoal, activityID string, year int) YearRow {
	row := YearRow{ActivityID: activityID, Months: make([]MonthCell, 0, 12)}
	for m := 1; m <= 12; m++ {
		cell := Cell(reports, goals, activityID, year, m)
		row.YearlyRealized += cell.Realized
		row.YearlyPlanned += cell.Planned
		row.Months = append(row.Months, cell)
	}
	return row
}

// BudgetInfo is the remaining-ceiling view the report editor shows while an
// operator is still typing expenses.
type BudgetInfo struct {
	Plafon     int64 `json:"plafon"`
	Spent      int64 `json:"spent"`
	Remaining  int64 `json:"remaining"`
	OverBudget bool  `json:"overBudget"`
}

// Remaining combines the month's already-submitted reports (excluding the
// report being edited) with the editor's current expense total. The second
// return is false when the activity has no goal for that month.
func Remaining(reports []models.ActivityReport, goals []models.RPKGoal, editedID, activityID, date string, currentExpenses int64) (BudgetInfo, bool) {
	if len(date) < 7 {
		return BudgetInfo{}, false
	}
	month := date[:7]
	g := findGoal(goals, activityID, month)
	if g == nil {
		return BudgetInfo{}, false
	}

	var others int64
	for _, r := range reports {
		if r.ID == editedID || r.Status != models.StatusSubmitted {
			continue
		}
		if r.ActivityID == nil || *r.ActivityID != activityID {
			continue
		}
		if strings.HasPrefix(r.Date, month) {
			others += r.ExpenseTotal()
		}
	}

	spent := others + currentExpenses
	return BudgetInfo{
		Plafon:     g.PlannedBudget,
		Spent:      spent,
		Remaining:  g.PlannedBudget - spent,
		OverBudget: spent > g.PlannedBudget,
	}, true
}
