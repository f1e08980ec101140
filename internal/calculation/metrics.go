package calculation

import (
	"math"

	"github.com/mfplan/fund-planner/internal/domain"
	"github.com/mfplan/fund-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// tradingDaysPerYear annualizes daily volatility.
const tradingDaysPerYear = 252

// AnalyzePerformance computes the full performance summary for a sorted
// NAV series. Fewer than 2 points is not enough data and yields nil, not
// an error. CAGR is reported for periods of a year or more, the
// annualized sub-year return otherwise; never both.
func (ce *CalculationEngine) AnalyzePerformance(series domain.NAVSeries) *domain.FundMetrics {
	first, ok := series.First()
	if !ok {
		return nil
	}
	last, _ := series.Last()
	if len(series) < 2 {
		return nil
	}

	years := dateutil.YearsBetween(first.Date, last.Date)

	m := &domain.FundMetrics{
		StartDate:      first.Date,
		EndDate:        last.Date,
		StartNAV:       first.NAV,
		EndNAV:         last.NAV,
		Years:          decimal.NewFromFloat(years),
		AbsoluteReturn: AbsoluteReturn(first, last),
		MaxDrawdown:    MaxDrawdown(series),
	}

	if years >= 1 {
		m.CAGR = CAGR(first, last)
	} else {
		m.AnnualizedReturn = AnnualizedReturn(first, last)
	}
	m.Volatility = Volatility(series)

	return m
}

// AbsoluteReturn is the total percentage change between two observations.
func AbsoluteReturn(first, last domain.NAVPoint) decimal.Decimal {
	if first.NAV.IsZero() {
		return decimalZero
	}
	return last.NAV.Sub(first.NAV).Div(first.NAV).Mul(decimalHundred)
}

// CAGR is the compound annual growth rate between two observations, as a
// percentage. Defined only for periods of at least one year (exact
// day-count over 365.25); returns nil otherwise.
func CAGR(first, last domain.NAVPoint) *decimal.Decimal {
	years := dateutil.YearsBetween(first.Date, last.Date)
	if years < 1 || first.NAV.LessThanOrEqual(decimalZero) {
		return nil
	}
	ratio := last.NAV.Div(first.NAV).InexactFloat64()
	cagr := (math.Pow(ratio, 1/years) - 1) * 100
	d := decimal.NewFromFloat(cagr)
	return &d
}

// AnnualizedReturn extrapolates a sub-year period to an annual rate, as a
// percentage. Returns nil when the period spans a year or more (CAGR
// applies there) or when no time has elapsed.
func AnnualizedReturn(first, last domain.NAVPoint) *decimal.Decimal {
	days := dateutil.DaysBetween(first.Date, last.Date)
	if days <= 0 || days >= 365.25 || first.NAV.LessThanOrEqual(decimalZero) {
		return nil
	}
	ratio := last.NAV.Div(first.NAV).InexactFloat64()
	annualized := (math.Pow(ratio, 365.25/days) - 1) * 100
	d := decimal.NewFromFloat(annualized)
	return &d
}

// Volatility is the annualized standard deviation of daily simple returns,
// as a percentage: sample stdev scaled by sqrt(252). Requires at least 3
// points; nil otherwise.
func Volatility(series domain.NAVSeries) *decimal.Decimal {
	if len(series) < 3 {
		return nil
	}

	returns := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1].NAV
		if prev.LessThanOrEqual(decimalZero) {
			continue
		}
		r := series[i].NAV.Sub(prev).Div(prev).InexactFloat64()
		returns = append(returns, r)
	}
	if len(returns) < 2 {
		return nil
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		diff := r - mean
		variance += diff * diff
	}
	variance /= float64(len(returns) - 1)

	vol := math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear) * 100
	d := decimal.NewFromFloat(vol)
	return &d
}

// MaxDrawdown is the largest peak-to-trough decline seen scanning the
// series left to right, as a positive percentage.
func MaxDrawdown(series domain.NAVSeries) decimal.Decimal {
	if len(series) == 0 {
		return decimalZero
	}

	peak := series[0].NAV
	maxDD := decimalZero
	for _, p := range series {
		if p.NAV.GreaterThan(peak) {
			peak = p.NAV
		}
		if peak.LessThanOrEqual(decimalZero) {
			continue
		}
		dd := peak.Sub(p.NAV).Div(peak)
		if dd.GreaterThan(maxDD) {
			maxDD = dd
		}
	}
	return maxDD.Mul(decimalHundred)
}

// CompareRollingCAGR computes per-period CAGRs for two series over the
// standard comparison windows, pairing only windows both series cover.
// Used by the fund comparison view.
func (ce *CalculationEngine) CompareRollingCAGR(a, b domain.NAVSeries) map[string][2]*decimal.Decimal {
	periods := []string{"1y", "3y", "5y"}
	out := make(map[string][2]*decimal.Decimal, len(periods))
	for _, period := range periods {
		fa := a.FilterByPeriod(period)
		fb := b.FilterByPeriod(period)
		var ca, cb *decimal.Decimal
		if firstA, ok := fa.First(); ok && len(fa) >= 2 {
			lastA, _ := fa.Last()
			ca = CAGR(firstA, lastA)
		}
		if firstB, ok := fb.First(); ok && len(fb) >= 2 {
			lastB, _ := fb.Last()
			cb = CAGR(firstB, lastB)
		}
		out[period] = [2]*decimal.Decimal{ca, cb}
	}
	return out
}
