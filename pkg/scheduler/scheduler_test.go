package scheduler

import (
	"strings"
	"testing"
	"time"

	"github.com/ningrum77/puskesmas-bok/pkg/models"
)

var testTypes = []models.ActivityType{
	{ID: "act-1", Code: "PSL", Name: "Pusling", RequiredStaffCount: 3},
	{ID: "act-2", Code: "PYD", Name: "Posyandu", RequiredStaffCount: 2},
}

func TestValidate_DoubleBooking(t *testing.T) {
	existing := []models.ScheduleEvent{
		{ID: "e1", Date: "2026-03-10", ActivityID: "act-1", Location: "Desa Kupu", StaffNames: []string{"Ani", "Budi", "Citra"}},
	}

	candidate := models.ScheduleEvent{
		Date: "2026-03-10", ActivityID: "act-2", Location: "Desa Lain",
		StaffNames: []string{"Budi", "Dewi"},
	}

	result := Validate(existing, testTypes, candidate)
	if result.OK {
		t.Fatal("Expected validation to fail for a double-booked staff member")
	}
	if result.Code != ReasonDoubleBooked {
		t.Errorf("Expected code %s, got %s", ReasonDoubleBooked, result.Code)
	}
}

func TestValidate_DifferentDateIsFine(t *testing.T) {
	existing := []models.ScheduleEvent{
		{ID: "e1", Date: "2026-03-10", ActivityID: "act-1", Location: "Desa Kupu", StaffNames: []string{"Ani", "Budi", "Citra"}},
	}

	candidate := models.ScheduleEvent{
		Date: "2026-03-11", ActivityID: "act-2", Location: "Desa Lain",
		StaffNames: []string{"Budi", "Dewi"},
	}

	result := Validate(existing, testTypes, candidate)
	if !result.OK {
		t.Errorf("Expected validation to pass on a different date, got %s: %s", result.Code, result.Message)
	}
}

func TestValidate_HeadcountMismatch(t *testing.T) {
	candidate := models.ScheduleEvent{
		Date: "2026-03-10", ActivityID: "act-1", Location: "Desa Kupu",
		StaffNames: []string{"Ani", "Budi"},
	}

	result := Validate(nil, testTypes, candidate)
	if result.OK || result.Code != ReasonHeadcountMismatch {
		t.Errorf("Expected headcount mismatch, got %+v", result)
	}
}

func TestValidate_DuplicateStaffInEvent(t *testing.T) {
	candidate := models.ScheduleEvent{
		Date: "2026-03-10", ActivityID: "act-2", Location: "Desa Kupu",
		StaffNames: []string{"Ani", "Ani"},
	}

	result := Validate(nil, testTypes, candidate)
	if result.OK || result.Code != ReasonDuplicateStaff {
		t.Errorf("Expected duplicate staff rejection, got %+v", result)
	}
}

func TestValidate_UnknownActivity(t *testing.T) {
	candidate := models.ScheduleEvent{
		Date: "2026-03-10", ActivityID: "nope", Location: "Desa Kupu",
		StaffNames: []string{"Ani", "Budi"},
	}

	result := Validate(nil, testTypes, candidate)
	if result.OK || result.Code != ReasonUnknownActivity {
		t.Errorf("Expected unknown activity rejection, got %+v", result)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	result := Validate(nil, testTypes, models.ScheduleEvent{Date: "2026-03-10"})
	if result.OK || result.Code != ReasonMissingField {
		t.Errorf("Expected missing field rejection, got %+v", result)
	}
}

func TestHasConflict_OrderIndependent(t *testing.T) {
	a := models.ScheduleEvent{ID: "e1", Date: "2026-03-10", StaffNames: []string{"Ani"}}
	b := models.ScheduleEvent{ID: "e2", Date: "2026-03-10", StaffNames: []string{"Budi"}}

	forward := HasConflict([]models.ScheduleEvent{a, b}, "2026-03-10", []string{"Budi"})
	backward := HasConflict([]models.ScheduleEvent{b, a}, "2026-03-10", []string{"Budi"})

	if forward != backward || !forward {
		t.Errorf("Expected the same conflict verdict regardless of order, got %v vs %v", forward, backward)
	}
}

func TestMonthlyRecapCSV_GroupsByActivityStaffLocation(t *testing.T) {
	spt := "094/123/IV/2026"
	events := []models.ScheduleEvent{
		{ID: "e1", Date: "2026-03-05", ActivityID: "act-1", Location: "Desa Kupu", StaffNames: []string{"Ani", "Budi", "Citra"}, SPTNumber: &spt},
		{ID: "e2", Date: "2026-03-12", ActivityID: "act-1", Location: "Desa Kupu", StaffNames: []string{"Ani", "Budi", "Citra"}, SPTNumber: &spt},
		{ID: "e3", Date: "2026-04-01", ActivityID: "act-1", Location: "Desa Kupu", StaffNames: []string{"Ani", "Budi", "Citra"}},
	}

	out, err := MonthlyRecapCSV(events, testTypes, 2026, time.March)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header + one row per staff member
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "No.,Nama Kegiatan,Nama Pegawai") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "5, 12 Maret 2026") {
		t.Errorf("Expected merged day list with month label, got: %s", lines[1])
	}
	if !strings.Contains(lines[1], spt) {
		t.Errorf("Expected SPT number in row, got: %s", lines[1])
	}
	if strings.Contains(out, "2026-04") || strings.Contains(out, "April") {
		t.Error("Expected April events to be excluded")
	}
}

func TestMonthlyRecapCSV_StripsCommasFromLocation(t *testing.T) {
	events := []models.ScheduleEvent{
		{ID: "e1", Date: "2026-03-05", ActivityID: "act-2", Location: "Balai Desa, Kupu", StaffNames: []string{"Ani", "Budi"}},
	}

	out, err := MonthlyRecapCSV(events, testTypes, 2026, time.March)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(out, "Balai Desa  Kupu") {
		t.Errorf("Expected comma stripped from location, got:\n%s", out)
	}
}

func TestMonthlyRecapCSV_EmptyMonth(t *testing.T) {
	out, err := MonthlyRecapCSV(nil, testTypes, 2026, time.March)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Errorf("Expected header only, got %d lines", len(lines))
	}
}
