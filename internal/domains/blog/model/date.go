package model

import (
	"strconv"
	"strings"
	"time"
)

const (
	// StoredDateLayout is how publication dates are persisted (DD-MM-YYYY)
	StoredDateLayout = "02-01-2006"
	// DisplayDateLayout renders "January 05, 2024"
	DisplayDateLayout = "January 02, 2006"
)

// Accepted input layouts, tried in order: YYYY-MM-DD, DD-MM-YYYY, MM/DD/YYYY.
// Single digit day and month are allowed.
var inputDateLayouts = []string{
	"2006-1-2",
	"2-1-2006",
	"1/2/2006",
}

// NormalizeDate parses s in any accepted layout and returns it as DD-MM-YYYY.
// ok is false when no layout matches.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(StoredDateLayout), true
		}
	}
	return "", false
}

// FormatDisplayDate turns a stored DD-MM-YYYY date into "January 05, 2024".
// Anything that is not a real calendar date is returned unchanged.
func FormatDisplayDate(stored string) string {
	parts := strings.Split(stored, "-")
	if len(parts) != 3 {
		return stored
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return stored
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return stored
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises overflow (31-02 becomes March), reject that
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return stored
	}

	return t.Format(DisplayDateLayout)
}
