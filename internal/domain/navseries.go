package domain

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/mfplan/fund-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// RawNAVPoint is the wire shape delivered by the public NAV API: dates may
// arrive as ISO 8601 or DD-MM-YYYY text, and the NAV as a string or a number.
type RawNAVPoint struct {
	Date string  `json:"date"`
	NAV  FlexNum `json:"nav"`
}

// FlexNum unmarshals a JSON string or number into a decimal.
type FlexNum struct {
	decimal.Decimal
}

func (f *FlexNum) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		f.Decimal = d
		return nil
	}
	return f.Decimal.UnmarshalJSON(data)
}

// NAVPoint is a single observation of a fund's net asset value.
// Immutable once parsed.
type NAVPoint struct {
	Date time.Time       `json:"date"`
	NAV  decimal.Decimal `json:"nav"`
}

// NAVSeries is a sequence of NAV observations. Operations assume (and
// SortChronological establishes) non-decreasing date order; duplicate dates
// are tolerated, with the first instance winning per lookup.
type NAVSeries []NAVPoint

// ParseNAVSeries converts raw API points into a chronologically sorted
// series. Malformed dates silently degrade to the current date (the lookup
// policies tolerate the substitution); non-positive or unparseable NAVs are
// dropped. The returned count is the number of points whose date fell back.
func ParseNAVSeries(raw []RawNAVPoint) (NAVSeries, int) {
	series := make(NAVSeries, 0, len(raw))
	fallbacks := 0
	for _, r := range raw {
		if r.NAV.Decimal.LessThanOrEqual(decimal.Zero) {
			continue
		}
		date, ok := dateutil.ParseFlexible(r.Date)
		if !ok {
			date = time.Now().UTC()
			fallbacks++
		}
		series = append(series, NAVPoint{Date: date, NAV: r.NAV.Decimal})
	}
	return series.SortChronological(), fallbacks
}

// SortChronological returns a copy of the series stably sorted by ascending date.
func (s NAVSeries) SortChronological() NAVSeries {
	sorted := make(NAVSeries, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// First returns the earliest point of a sorted series.
func (s NAVSeries) First() (NAVPoint, bool) {
	if len(s) == 0 {
		return NAVPoint{}, false
	}
	return s[0], true
}

// Last returns the latest point of a sorted series.
func (s NAVSeries) Last() (NAVPoint, bool) {
	if len(s) == 0 {
		return NAVPoint{}, false
	}
	return s[len(s)-1], true
}

// NearestNAV resolves the NAV applicable to a target date. Priority:
// exact calendar-day match, then the earliest date strictly after the
// target, then the latest date strictly before it, then the first element
// as a last resort. Preferring the next available date mirrors how a SIP
// instruction placed on a non-trading day executes at the next trading
// day's NAV.
func (s NAVSeries) NearestNAV(target time.Time) (NAVPoint, bool) {
	if len(s) == 0 {
		return NAVPoint{}, false
	}

	for _, p := range s {
		if dateutil.SameDay(p.Date, target) {
			return p, true
		}
	}

	for _, p := range s {
		if p.Date.After(target) {
			return p, true
		}
	}

	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Date.Before(target) {
			return s[i], true
		}
	}

	return s[0], true
}

// FilterByPeriod returns the points within a trailing period measured back
// from the latest observation. Recognized periods: "1m", "3m", "6m", "1y",
// "3y", "5y"; anything else returns the full series.
func (s NAVSeries) FilterByPeriod(period string) NAVSeries {
	last, ok := s.Last()
	if !ok {
		return s
	}

	var start time.Time
	switch period {
	case "1m":
		start = last.Date.AddDate(0, -1, 0)
	case "3m":
		start = last.Date.AddDate(0, -3, 0)
	case "6m":
		start = last.Date.AddDate(0, -6, 0)
	case "1y":
		start = last.Date.AddDate(-1, 0, 0)
	case "3y":
		start = last.Date.AddDate(-3, 0, 0)
	case "5y":
		start = last.Date.AddDate(-5, 0, 0)
	default:
		return s
	}

	return s.FilterByDateRange(start, last.Date)
}

// FilterByDateRange returns the points within [start, end], both inclusive.
// The end boundary is extended by one calendar day so the comparison can
// stay half-open internally.
func (s NAVSeries) FilterByDateRange(start, end time.Time) NAVSeries {
	cutoff := end.AddDate(0, 0, 1)
	filtered := make(NAVSeries, 0, len(s))
	for _, p := range s {
		if !p.Date.Before(start) && p.Date.Before(cutoff) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// ParseNAVValue converts a textual NAV into a decimal, returning false for
// non-positive or malformed values.
func ParseNAVValue(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil || d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}
	return d, true
}
