package calculation

import (
	"github.com/mfplan/fund-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// SimulateSWP runs the year-by-year corpus evolution under a periodic
// withdrawal plan: each year earns interest at the annual rate, pays out
// twelve monthly withdrawals, and steps the withdrawal up at the year
// boundary when enabled. The loop stops once the corpus depletes or after
// the 50-year ceiling; only the first 25 rows are kept for display.
//
// The "indefinite" classification compares the initial withdrawal against
// the initial corpus's monthly interest only. It is a heuristic, not a
// full-horizon proof.
func (ce *CalculationEngine) SimulateSWP(corpus decimal.Decimal, stream domain.WithdrawalStream) *domain.SWPResult {
	result := &domain.SWPResult{
		InitialCorpus:     corpus,
		MonthlyWithdrawal: stream.MonthlyAmount,
	}
	if corpus.LessThanOrEqual(decimalZero) || stream.MonthlyAmount.LessThanOrEqual(decimalZero) {
		return result
	}

	annualRate := pctToRate(stream.AnnualRatePercent)
	stepUp := stepUpRate(stream.StepUp)
	monthlyInterest := corpus.Mul(annualRate).Div(decimalTwelve)

	result.Indefinite = stepUp.IsZero() && stream.MonthlyAmount.LessThanOrEqual(monthlyInterest)

	monthly := stream.MonthlyAmount
	running := corpus

	for year := 1; year <= SimulationHorizonYears; year++ {
		interest := running.Mul(annualRate)
		withdrawal := monthly.Mul(decimalTwelve)
		ending := running.Add(interest).Sub(withdrawal)

		displayEnding := ending
		if displayEnding.LessThan(decimalZero) {
			displayEnding = decimalZero
		}

		if year <= SWPDisplayYears {
			result.Breakdown = append(result.Breakdown, domain.SWPYearRow{
				Year:           year,
				StartingCorpus: running,
				Interest:       interest,
				Withdrawal:     withdrawal,
				EndingCorpus:   displayEnding,
			})
		}

		result.TotalInterest = result.TotalInterest.Add(interest)
		result.TotalWithdrawn = result.TotalWithdrawn.Add(withdrawal)

		if ending.LessThanOrEqual(decimalZero) {
			result.DepletionYear = year
			result.FinalCorpus = decimalZero
			return result
		}

		running = ending
		result.FinalCorpus = running

		// Step-up applies after the year's row is recorded.
		if stepUp.GreaterThan(decimalZero) {
			monthly = monthly.Mul(onePlus(stepUp))
		}
	}

	return result
}
