package calculation

import (
	"math"
	"time"

	"github.com/mfplan/fund-planner/internal/domain"
	"github.com/mfplan/fund-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// maxTimelinePoints caps chart timelines; long series are decimated.
const maxTimelinePoints = 20

// contributionDates expands a stream into its monthly contribution dates,
// start and end inclusive.
func contributionDates(stream domain.ContributionStream) []time.Time {
	if stream.StartDate.After(stream.EndDate) {
		return nil
	}
	var dates []time.Time
	for d := stream.StartDate; !d.After(stream.EndDate); d = d.AddDate(0, 1, 0) {
		dates = append(dates, d)
	}
	return dates
}

// stepUpRate returns the annual step-up fraction for a stream, zero when
// step-up is disabled.
func stepUpRate(s *domain.StepUp) decimal.Decimal {
	if s == nil || !s.Enabled {
		return decimalZero
	}
	return pctToRate(s.AnnualRatePercent)
}

// AnnuityDueFV is the closed-form future value of a constant contribution
// paid at the start of each of n monthly periods at monthly rate r:
// P * ((1+r)^n - 1)/r * (1+r).
func AnnuityDueFV(monthly decimal.Decimal, monthlyRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimalZero
	}
	if monthlyRate.IsZero() {
		return monthly.Mul(decimal.NewFromInt(int64(months)))
	}
	growth := onePlus(monthlyRate).Pow(decimal.NewFromInt(int64(months)))
	return monthly.Mul(growth.Sub(decimalOne)).Div(monthlyRate).Mul(onePlus(monthlyRate))
}

// LumpsumFutureValue compounds a one-time investment from its investment
// date to asOf at its own annual rate.
func LumpsumFutureValue(entry domain.LumpsumEntry, asOf time.Time) decimal.Decimal {
	years := dateutil.YearsBetween(entry.InvestmentDate, asOf)
	if years <= 0 {
		return entry.Amount
	}
	rate := pctToRate(entry.AnnualRatePercent).InexactFloat64()
	factor := math.Pow(1+rate, years)
	return entry.Amount.Mul(decimal.NewFromFloat(factor))
}

// ProjectSIP computes the future value of a contribution stream at a
// constant expected rate, optionally combined with a lumpsum growing at
// its own rate. When step-up is enabled the contribution changes every 12
// periods, so the value is accumulated period by period; the closed-form
// annuity is used otherwise. Degenerate inputs (inverted dates,
// non-positive amounts) produce a zero result, not an error: input
// validation is the caller's contract.
func (ce *CalculationEngine) ProjectSIP(stream domain.ContributionStream, lumpsum *domain.LumpsumEntry) *domain.SIPResult {
	result := &domain.SIPResult{}
	dates := contributionDates(stream)
	if len(dates) == 0 || stream.MonthlyAmount.LessThanOrEqual(decimalZero) {
		return result
	}

	monthlyRate := pctToRate(stream.AnnualRatePercent).Div(decimalTwelve)
	stepUp := stepUpRate(stream.StepUp)

	// Period-by-period accumulation; matches the closed-form annuity-due
	// exactly when the contribution never changes.
	value := decimalZero
	invested := decimalZero
	contribution := stream.MonthlyAmount
	var flows []domain.CashFlow
	timeline := make([]domain.TimelinePoint, 0, len(dates))

	for k, date := range dates {
		if k > 0 && k%12 == 0 && stepUp.GreaterThan(decimalZero) {
			contribution = contribution.Mul(onePlus(stepUp))
		}
		value = value.Add(contribution).Mul(onePlus(monthlyRate))
		invested = invested.Add(contribution)
		flows = append(flows, domain.CashFlow{Date: date, Amount: contribution.Neg()})

		marketValue := value
		investedValue := invested
		if lumpsum != nil {
			marketValue = marketValue.Add(LumpsumFutureValue(*lumpsum, date))
			investedValue = investedValue.Add(lumpsum.Amount)
		}
		timeline = append(timeline, domain.TimelinePoint{
			Date:          date,
			InvestedValue: investedValue,
			MarketValue:   marketValue,
		})
	}

	result.Months = len(dates)
	result.SIPValue = value
	result.TotalInvestment = invested

	if lumpsum != nil && lumpsum.Amount.GreaterThan(decimalZero) {
		result.LumpsumValue = LumpsumFutureValue(*lumpsum, stream.EndDate)
		result.TotalInvestment = result.TotalInvestment.Add(lumpsum.Amount)
		flows = append(flows, domain.CashFlow{Date: lumpsum.InvestmentDate, Amount: lumpsum.Amount.Neg()})
	}
	result.TotalValue = result.SIPValue.Add(result.LumpsumValue)

	ce.finishSIPResult(result, flows, stream.StartDate, stream.EndDate, timeline)
	return result
}

// ReplaySIP runs the contribution schedule against a historical NAV
// series, buying fractional units at each period's resolved NAV. The
// lumpsum, if any, is applied once at the first contribution date using
// the same nearest-NAV resolution and is kept out of the SIP date
// sequence so it is not double-counted.
func (ce *CalculationEngine) ReplaySIP(series domain.NAVSeries, stream domain.ContributionStream, lumpsum *domain.LumpsumEntry) *domain.SIPResult {
	result := &domain.SIPResult{}
	dates := contributionDates(stream)
	if len(dates) == 0 || len(series) == 0 || stream.MonthlyAmount.LessThanOrEqual(decimalZero) {
		return result
	}

	stepUp := stepUpRate(stream.StepUp)

	units := decimalZero
	lumpsumUnits := decimalZero
	invested := decimalZero
	contribution := stream.MonthlyAmount
	var flows []domain.CashFlow
	timeline := make([]domain.TimelinePoint, 0, len(dates))

	if lumpsum != nil && lumpsum.Amount.GreaterThan(decimalZero) {
		if point, ok := series.NearestNAV(dates[0]); ok {
			lumpsumUnits = lumpsum.Amount.Div(point.NAV)
			units = units.Add(lumpsumUnits)
			invested = invested.Add(lumpsum.Amount)
			flows = append(flows, domain.CashFlow{Date: dates[0], Amount: lumpsum.Amount.Neg()})
		}
	}

	for k, date := range dates {
		if k > 0 && k%12 == 0 && stepUp.GreaterThan(decimalZero) {
			contribution = contribution.Mul(onePlus(stepUp))
		}
		point, ok := series.NearestNAV(date)
		if !ok {
			continue
		}
		units = units.Add(contribution.Div(point.NAV))
		invested = invested.Add(contribution)
		flows = append(flows, domain.CashFlow{Date: date, Amount: contribution.Neg()})

		nav := point.NAV
		unitsSoFar := units
		timeline = append(timeline, domain.TimelinePoint{
			Date:          date,
			InvestedValue: invested,
			MarketValue:   unitsSoFar.Mul(nav),
			Units:         &unitsSoFar,
			NAV:           &nav,
		})
	}

	endPoint, ok := series.NearestNAV(stream.EndDate)
	if !ok {
		return result
	}

	result.Months = len(dates)
	result.TotalInvestment = invested
	result.TotalValue = units.Mul(endPoint.NAV)
	// Valued at the end NAV, like the SIP units, so the split means the
	// same thing in both projection modes.
	result.LumpsumValue = lumpsumUnits.Mul(endPoint.NAV)
	result.SIPValue = result.TotalValue.Sub(result.LumpsumValue)
	result.TotalUnits = &units

	ce.finishSIPResult(result, flows, stream.StartDate, stream.EndDate, timeline)
	return result
}

// finishSIPResult fills the shared return metrics and the decimated chart
// timeline for both projection modes.
func (ce *CalculationEngine) finishSIPResult(result *domain.SIPResult, flows []domain.CashFlow, start, end time.Time, timeline []domain.TimelinePoint) {
	if result.TotalInvestment.GreaterThan(decimalZero) {
		result.AbsoluteReturn = result.TotalValue.Sub(result.TotalInvestment).
			Div(result.TotalInvestment).Mul(decimalHundred)
	}

	years := dateutil.YearsBetween(start, end)
	if years > 0 && result.TotalInvestment.GreaterThan(decimalZero) && result.TotalValue.GreaterThan(decimalZero) {
		ratio := result.TotalValue.Div(result.TotalInvestment).InexactFloat64()
		annualized := (math.Pow(ratio, 1/years) - 1) * 100
		d := decimal.NewFromFloat(annualized)
		result.AnnualizedReturn = &d
	}

	if len(flows) > 0 && result.TotalValue.GreaterThan(decimalZero) {
		flows = append(flows, domain.CashFlow{Date: end, Amount: result.TotalValue})
		result.XIRR = ce.XIRR(flows)
	}

	result.Timeline = decimateTimeline(timeline, maxTimelinePoints)
}

// decimateTimeline thins a timeline to at most max points, always keeping
// the final point. Short series pass through untouched.
func decimateTimeline(timeline []domain.TimelinePoint, max int) []domain.TimelinePoint {
	if len(timeline) <= max {
		return timeline
	}
	stride := (len(timeline) + max - 1) / max
	out := make([]domain.TimelinePoint, 0, max+1)
	for i := 0; i < len(timeline); i += stride {
		out = append(out, timeline[i])
	}
	if last := timeline[len(timeline)-1]; len(out) == 0 || !out[len(out)-1].Date.Equal(last.Date) {
		out = append(out, last)
	}
	return out
}
