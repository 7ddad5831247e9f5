package util

import (
	"fmt"
	"time"
)

var monthNamesID = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthNameID returns the Indonesian month name.
func MonthNameID(m time.Month) string {
	return monthNamesID[int(m)-1]
}

// MonthYearID formats a month heading such as "Maret 2026".
func MonthYearID(year int, m time.Month) string {
	return fmt.Sprintf("%s %d", MonthNameID(m), year)
}

// FormatDateID renders a YYYY-MM-DD date as "2 Maret 2026", the long form
// used in printed letters. Unparseable input is returned unchanged.
func FormatDateID(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d %s %d", t.Day(), MonthNameID(t.Month()), t.Year())
}
