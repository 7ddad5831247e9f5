package models

// ActivityType is the reference catalog entry every schedule, report and RPK
// goal points at. RequiredStaffCount drives the roster headcount check.
type ActivityType struct {
	ID                 string `json:"id"`
	Code               string `json:"code"`
	Name               string `json:"name"`
	Color              string `json:"color"`
	RequiredStaffCount int    `json:"requiredStaffCount"`
}

// Staff is a clinic employee who can appear on the roster.
type Staff struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// ScheduleEvent is one dated field assignment. StaffNames is ordered and its
// length must match the activity's RequiredStaffCount at creation time.
// SPT fields are back-filled in bulk per (activity, month) batch.
type ScheduleEvent struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"` // YYYY-MM-DD
	StaffNames []string `json:"staffNames"`
	ActivityID string   `json:"activityId"`
	Location   string   `json:"location"`
	SPTNumber  *string  `json:"sptNumber,omitempty"`
	SPTDate    *string  `json:"sptDate,omitempty"`
}

// Expense is a cost line item inside a report. Amount is derived from
// Quantity*UnitPrice and never settable on its own.
type Expense struct {
	ID           string  `json:"id"`
	Description  string  `json:"description"`
	Quantity     int64   `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitPrice    int64   `json:"unitPrice"` // rupiah
	Amount       int64   `json:"amount"`    // quantity * unitPrice
	Category     string  `json:"category"`
	Date         string  `json:"date"`
	SHSItemID    *string `json:"shsItemId,omitempty"`
	ReceiptImage *string `json:"receiptImage,omitempty"`
}

// Report statuses. A report only ever moves draft -> submitted.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

// ActivityReport is a filled-in official letter plus its expense breakdown.
// Content maps template placeholder names to the operator's text.
type ActivityReport struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Date        string            `json:"date"`
	Location    string            `json:"location"`
	TemplateID  string            `json:"templateId"`
	Content     map[string]string `json:"content"`
	TotalBudget int64             `json:"totalBudget"`
	Expenses    []Expense         `json:"expenses"`
	StaffNames  []string          `json:"staffNames"`
	Status      string            `json:"status"`
	Images      []string          `json:"images,omitempty"`
	SPTNumber   *string           `json:"sptNumber,omitempty"`
	SPTDate     *string           `json:"sptDate,omitempty"`
	ActivityID  *string           `json:"activityId,omitempty"`
}

// ExpenseTotal sums the report's line items.
func (r *ActivityReport) ExpenseTotal() int64 {
	var total int64
	for _, e := range r.Expenses {
		total += e.Amount
	}
	return total
}

// RPKGoal is the planned budget ceiling and physical target for one activity
// in one month. At most one goal exists per (ActivityTypeID, Month).
type RPKGoal struct {
	ID              string `json:"id"`
	Month           string `json:"month"` // YYYY-MM
	ActivityTypeID  string `json:"activityTypeId"`
	Target          int    `json:"target"` // physical count
	Unit            string `json:"unit"`
	PlannedBudget   int64  `json:"plannedBudget"`
	DisbursedAmount int64  `json:"disbursedAmount"`
}

// SHSItem is a standard unit-price list entry used to pre-fill expenses.
type SHSItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
	Price    int64  `json:"price"`
}

// Template is an official letter body with {{placeholder}} tokens.
type Template struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Body string `json:"body"`
}

// Transaction is one cash ledger entry (income or expense).
type Transaction struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	Type         string  `json:"type"` // income | expense
	Amount       int64   `json:"amount"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Source       string  `json:"source"`
	ReceiptImage *string `json:"receiptImage,omitempty"`
}

// Holiday marks a custom off-day on the roster calendar.
type Holiday struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description"`
}

// LetterheadConfig holds the printed document header.
type LetterheadConfig struct {
	GovName       string  `json:"govName"`
	DeptName      string  `json:"deptName"`
	PuskesmasName string  `json:"puskesmasName"`
	Address       string  `json:"address"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	Website       string  `json:"website"`
	LogoPemkab    *string `json:"logoPemkab,omitempty"`
	LogoPuskesmas *string `json:"logoPuskesmas,omitempty"`
}

// Snapshot is the whole application state, persisted as one JSON document.
type Snapshot struct {
	Transactions  []Transaction    `json:"transactions"`
	Schedules     []ScheduleEvent  `json:"schedules"`
	Reports       []ActivityReport `json:"reports"`
	Templates     []Template       `json:"templates"`
	Staff         []Staff          `json:"staff"`
	ActivityTypes []ActivityType   `json:"activityTypes"`
	Letterhead    LetterheadConfig `json:"letterhead"`
	Holidays      []Holiday        `json:"holidays"`
	RPKGoals      []RPKGoal        `json:"rpkGoals"`
	SHSItems      []SHSItem        `json:"shsItems"`
}
