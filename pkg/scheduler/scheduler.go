// Package scheduler owns the roster rules: no staff member may be booked
// twice on one date, and every event must carry exactly the headcount its
// activity type requires. It also builds the monthly recap export.
package scheduler

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ningrum77/puskesmas-bok/pkg/models"
	"github.com/ningrum77/puskesmas-bok/pkg/util"
)

// Reason codes for a rejected roster entry. These are pre-submit validation
// outcomes, not errors: a failed check blocks the save with a readable
// message and nothing is thrown.
const (
	ReasonDoubleBooked      = "staff_double_booked"
	ReasonHeadcountMismatch = "staff_count_mismatch"
	ReasonDuplicateStaff    = "duplicate_staff_in_event"
	ReasonMissingField      = "missing_required_field"
	ReasonUnknownActivity   = "unknown_activity"
)

// CheckResult is the discriminated outcome of a roster validation.
type CheckResult struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func reject(code, message string) CheckResult {
	return CheckResult{OK: false, Code: code, Message: message}
}

// BusyStaff returns the set of staff names already assigned on a date,
// the union across every event sharing that date.
func BusyStaff(events []models.ScheduleEvent, date string) map[string]bool {
	busy := make(map[string]bool)
	for _, ev := range events {
		if ev.Date != date {
			continue
		}
		for _, name := range ev.StaffNames {
			busy[name] = true
		}
	}
	return busy
}

// HasConflict reports whether any candidate staff name is already booked on
// the candidate date. The verdict does not depend on event order.
func HasConflict(events []models.ScheduleEvent, date string, staffNames []string) bool {
	busy := BusyStaff(events, date)
	for _, name := range staffNames {
		if busy[name] {
			return true
		}
	}
	return false
}

// Validate runs every pre-save check on a candidate event: required fields,
// a known activity, the activity's exact headcount, no repeated name within
// the candidate, and no double booking against the existing ledger. Callers
// must re-run this at save time; an earlier verdict can be stale once other
// events have been added in the meantime.
func Validate(events []models.ScheduleEvent, types []models.ActivityType, candidate models.ScheduleEvent) CheckResult {
	if candidate.Date == "" || candidate.ActivityID == "" || strings.TrimSpace(candidate.Location) == "" {
		return reject(ReasonMissingField, "date, activity and location are required")
	}
	for _, name := range candidate.StaffNames {
		if strings.TrimSpace(name) == "" {
			return reject(ReasonMissingField, "every staff slot must be filled")
		}
	}

	var activity *models.ActivityType
	for i := range types {
		if types[i].ID == candidate.ActivityID {
			activity = &types[i]
			break
		}
	}
	if activity == nil {
		return reject(ReasonUnknownActivity, "activity type does not exist")
	}

	if len(candidate.StaffNames) != activity.RequiredStaffCount {
		return reject(ReasonHeadcountMismatch, fmt.Sprintf(
			"%s requires %d staff, got %d", activity.Name, activity.RequiredStaffCount, len(candidate.StaffNames)))
	}

	seen := make(map[string]bool, len(candidate.StaffNames))
	for _, name := range candidate.StaffNames {
		if seen[name] {
			return reject(ReasonDuplicateStaff, fmt.Sprintf("%s is listed twice in this event", name))
		}
		seen[name] = true
	}

	if HasConflict(events, candidate.Date, candidate.StaffNames) {
		return reject(ReasonDoubleBooked, "staff already scheduled on this date")
	}

	return CheckResult{OK: true}
}

// recapRow aggregates one (activity, staff, location) combination across the
// month: the distinct day numbers that combination worked.
type recapRow struct {
	activityName string
	staff        string
	location     string
	days         []int
	firstDate    string
	sptNumber    string
}

// MonthlyRecapCSV renders the month's roster grouped by activity, staff and
// location, one row per combination with its sorted day list. Output matches
// the office recap sheet: No., activity, staff, SPT number, dates, location.
func MonthlyRecapCSV(events []models.ScheduleEvent, types []models.ActivityType, year int, month time.Month) (string, error) {
	key := fmt.Sprintf("%04d-%02d", year, int(month))

	nameOf := make(map[string]string, len(types))
	for _, t := range types {
		nameOf[t.ID] = t.Name
	}

	rows := make(map[string]*recapRow)
	var order []string
	for _, ev := range events {
		if !strings.HasPrefix(ev.Date, key) {
			continue
		}
		day, err := strconv.Atoi(ev.Date[len(ev.Date)-2:])
		if err != nil {
			continue
		}
		actName := nameOf[ev.ActivityID]
		if actName == "" {
			actName = "Lainnya"
		}
		loc := ev.Location
		if loc == "" {
			loc = "-"
		}
		for _, staff := range ev.StaffNames {
			k := ev.ActivityID + "|" + staff + "|" + loc
			row, ok := rows[k]
			if !ok {
				row = &recapRow{activityName: actName, staff: staff, location: loc, firstDate: ev.Date}
				if ev.SPTNumber != nil {
					row.sptNumber = *ev.SPTNumber
				}
				rows[k] = row
				order = append(order, k)
			}
			if !containsInt(row.days, day) {
				row.days = append(row.days, day)
				sort.Ints(row.days)
			}
		}
	}

	final := make([]*recapRow, 0, len(rows))
	for _, k := range order {
		final = append(final, rows[k])
	}
	sort.SliceStable(final, func(i, j int) bool {
		if final[i].activityName != final[j].activityName {
			return final[i].activityName < final[j].activityName
		}
		return final[i].firstDate < final[j].firstDate
	})

	monthLabel := util.MonthYearID(year, month)

	var out strings.Builder
	w := csv.NewWriter(&out)
	if err := w.Write([]string{"No.", "Nama Kegiatan", "Nama Pegawai", "Nomor SPT", "Tanggal", "Lokasi"}); err != nil {
		return "", err
	}
	for i, row := range final {
		days := make([]string, len(row.days))
		for j, d := range row.days {
			days[j] = strconv.Itoa(d)
		}
		spt := row.sptNumber
		if spt == "" {
			spt = "-"
		}
		record := []string{
			strconv.Itoa(i + 1),
			row.activityName,
			row.staff,
			spt,
			strings.Join(days, ", ") + " " + monthLabel,
			strings.ReplaceAll(row.location, ",", " "),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return out.String(), nil
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
