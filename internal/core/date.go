package core

import (
	"regexp"
	"time"
)

// Canonical calendar-date format for stored transactions.
const DateLayout = "2006-01-02"

// MonthLayout labels month buckets, e.g. "Jan 2025".
const MonthLayout = "Jan 2006"

var dayMonthYear = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// looseLayouts are tried in order when a date is not in canonical form.
var looseLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"02 Jan 2006",
	MonthLayout,
}

// NormalizeDate converts a date in either DD/MM/YYYY or any loosely
// parseable form into canonical YYYY-MM-DD. For DD/MM/YYYY input the day
// and month are swapped into ISO order before parsing. Values that fail
// every parse are returned unchanged: they are later excluded from
// month-bucketed views but still counted in flat totals.
func NormalizeDate(s string) string {
	if m := dayMonthYear.FindStringSubmatch(s); m != nil {
		iso := m[3] + "-" + m[2] + "-" + m[1]
		if t, err := time.Parse(DateLayout, iso); err == nil {
			return t.Format(DateLayout)
		}
		return s
	}
	if t, ok := ParseDay(s); ok {
		return t.Format(DateLayout)
	}
	return s
}

// ParseDay is the "is valid date" check used by time-based views. It
// returns the parsed day and whether the value was a real calendar date.
func ParseDay(s string) (time.Time, bool) {
	if m := dayMonthYear.FindStringSubmatch(s); m != nil {
		s = m[3] + "-" + m[2] + "-" + m[1]
	}
	for _, layout := range looseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
