package dateutil

import (
	"strconv"
	"strings"
	"time"
)

// isoLayouts are tried in order before falling back to DD-MM-YYYY parsing.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseFlexible parses a date string in ISO 8601 form first, then as
// DD-MM-YYYY (the format the public NAV API returns). The second return
// value is false when the string could not be parsed.
func ParseFlexible(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// DD-MM-YYYY by positional split.
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1000 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// ParseFlexibleDate parses like ParseFlexible but degrades to the current
// date when the input is malformed. Callers must tolerate the substituted
// value; use ParseFlexible when a diagnostic is needed.
func ParseFlexibleDate(s string) time.Time {
	if t, ok := ParseFlexible(s); ok {
		return t
	}
	return time.Now().UTC()
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

// YearsBetween returns the elapsed years from a to b using an exact
// day count over 365.25.
func YearsBetween(a, b time.Time) float64 {
	return DaysBetween(a, b) / 365.25
}
