package calculation

import (
	"time"

	"github.com/mfplan/fund-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// targetTolerance absorbs rounding noise when the incremental search
// compares a future value against the target.
var targetTolerance = decimal.NewFromFloat(0.01)

// lumpsumsFutureValue compounds each lumpsum entry from its investment
// date to the target date at its stated rate and sums the results.
func lumpsumsFutureValue(lumpsums []domain.LumpsumEntry, target time.Time) decimal.Decimal {
	total := decimalZero
	for _, l := range lumpsums {
		total = total.Add(LumpsumFutureValue(l, target))
	}
	return total
}

// RequiredMonthlySIP solves the inverse problem for a fixed horizon:
// the monthly contribution needed to reach the target corpus in the given
// number of months at the expected annual rate, after netting out the
// projected future value of any lumpsum entries. A non-positive adjusted
// target means the lumpsums alone suffice and the required SIP is zero.
func (ce *CalculationEngine) RequiredMonthlySIP(target decimal.Decimal, annualRatePercent decimal.Decimal, months int, asOf time.Time, lumpsums []domain.LumpsumEntry) *domain.TargetSIPResult {
	result := &domain.TargetSIPResult{
		TargetAmount: target,
		MonthsNeeded: months,
		Found:        true,
	}
	if months <= 0 || target.LessThanOrEqual(decimalZero) {
		result.Found = false
		return result
	}

	horizon := asOf.AddDate(0, months, 0)
	result.LumpsumFV = lumpsumsFutureValue(lumpsums, horizon)
	result.AdjustedTarget = target.Sub(result.LumpsumFV)

	if result.AdjustedTarget.LessThanOrEqual(decimalZero) {
		result.AdjustedTarget = decimalZero
		result.RequiredMonthly = decimalZero
		return result
	}

	monthlyRate := pctToRate(annualRatePercent).Div(decimalTwelve)
	annuityFactor := AnnuityDueFV(decimalOne, monthlyRate, months)
	if annuityFactor.LessThanOrEqual(decimalZero) {
		result.Found = false
		return result
	}
	result.RequiredMonthly = result.AdjustedTarget.Div(annuityFactor)
	return result
}

// MonthsToTarget solves the inverse problem for a fixed contribution:
// the smallest month count at which the SIP future value meets the
// lumpsum-adjusted target, searched incrementally up to a 600-month
// ceiling. Found is false when the ceiling is reached without success.
func (ce *CalculationEngine) MonthsToTarget(target decimal.Decimal, monthly decimal.Decimal, annualRatePercent decimal.Decimal, asOf time.Time, lumpsums []domain.LumpsumEntry) *domain.TargetSIPResult {
	result := &domain.TargetSIPResult{
		TargetAmount:    target,
		RequiredMonthly: monthly,
	}
	if target.LessThanOrEqual(decimalZero) || monthly.LessThanOrEqual(decimalZero) {
		return result
	}

	monthlyRate := pctToRate(annualRatePercent).Div(decimalTwelve)

	for months := 1; months <= TargetSearchCeiling; months++ {
		horizon := asOf.AddDate(0, months, 0)
		lumpsumFV := lumpsumsFutureValue(lumpsums, horizon)
		adjusted := target.Sub(lumpsumFV)

		fv := AnnuityDueFV(monthly, monthlyRate, months)
		if fv.Add(targetTolerance).GreaterThanOrEqual(adjusted) {
			result.LumpsumFV = lumpsumFV
			result.AdjustedTarget = adjusted
			if result.AdjustedTarget.LessThan(decimalZero) {
				result.AdjustedTarget = decimalZero
			}
			result.MonthsNeeded = months
			result.Found = true
			return result
		}
	}

	ce.Logger.Debugf("months-to-target: ceiling of %d months reached without meeting target", TargetSearchCeiling)
	return result
}
