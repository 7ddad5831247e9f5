package util

import (
	"testing"
	"time"
)

func TestFormatDateID(t *testing.T) {
	if got := FormatDateID("2026-03-02"); got != "2 Maret 2026" {
		t.Errorf("Expected 2 Maret 2026, got %q", got)
	}
	if got := FormatDateID("2026-12-17"); got != "17 Desember 2026" {
		t.Errorf("Expected 17 Desember 2026, got %q", got)
	}
}

func TestFormatDateID_UnparseablePassesThrough(t *testing.T) {
	if got := FormatDateID("bukan tanggal"); got != "bukan tanggal" {
		t.Errorf("Expected input unchanged, got %q", got)
	}
}

func TestMonthYearID(t *testing.T) {
	if got := MonthYearID(2026, time.August); got != "Agustus 2026" {
		t.Errorf("Expected Agustus 2026, got %q", got)
	}
}
