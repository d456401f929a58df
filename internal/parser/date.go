package parser

import (
	"strconv"
	"time"
)

// Date comparison results returned by CompareDateWithCurrent.
const (
	DateFuture      = "FUTURE"
	DatePastOrToday = "PAST_OR_TODAY"
)

// IsDateFormatValid checks the strict YYYY-MM-DD shape: exactly 10
// characters, literal hyphens at positions 4 and 7, ASCII digits
// everywhere else, month 1-12, day 1-31, year 1000-9999. Day validity is
// intentionally permissive: no month-length or leap-year checking, so a
// February 31 passes. Callers translate a false result into DT01.
func IsDateFormatValid(dateStr string) bool {
	if len(dateStr) != 10 {
		return false
	}
	if dateStr[4] != '-' || dateStr[7] != '-' {
		return false
	}
	for i := 0; i < len(dateStr); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if dateStr[i] < '0' || dateStr[i] > '9' {
			return false
		}
	}

	year, _ := strconv.Atoi(dateStr[0:4])
	month, _ := strconv.Atoi(dateStr[5:7])
	day, _ := strconv.Atoi(dateStr[8:10])

	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > 31 {
		return false
	}
	if year < 1000 || year > 9999 {
		return false
	}
	return true
}

// CompareDateWithCurrent interprets a format-valid date as midnight UTC
// and classifies it against the current UTC calendar day. FUTURE drives
// pending execution (AP02); PAST_OR_TODAY executes immediately (AP00).
func CompareDateWithCurrent(dateStr string) string {
	return compareDateAt(dateStr, time.Now().UTC())
}

func compareDateAt(dateStr string, now time.Time) string {
	provided, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		// The permissive format check admits dates like February 31 that
		// the calendar rejects. Such dates never compare as later than
		// today, so they fall through to immediate execution.
		return DatePastOrToday
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if provided.After(today) {
		return DateFuture
	}
	return DatePastOrToday
}
