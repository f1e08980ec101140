package calculation

import (
	"math"

	"github.com/mfplan/fund-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// Simplified long-term capital gains treatment: half of any withdrawal is
// assumed to be gains, taxed at 12.5% above an annual exemption of
// ₹1,25,000.
var (
	ltcgExemption    = decimal.NewFromInt(125000)
	ltcgTaxRate      = decimal.NewFromFloat(0.125)
	ltcgGainFraction = decimal.NewFromFloat(0.5)
)

// estimateLTCG applies the simplified LTCG heuristic to a year's total
// withdrawal amount.
func estimateLTCG(withdrawal decimal.Decimal) decimal.Decimal {
	gains := withdrawal.Mul(ltcgGainFraction)
	taxable := gains.Sub(ltcgExemption)
	if taxable.LessThanOrEqual(decimalZero) {
		return decimalZero
	}
	return taxable.Mul(ltcgTaxRate)
}

// PlanRetirement chains an accumulation phase (all lumpsum entries and SIP
// streams, each with its own schedule and rate) into a goal-driven
// withdrawal phase, producing a year-by-year corpus breakdown over a
// 50-year horizon plus FIRE-achievability and per-goal affordability.
//
// Each goal is checked against total passive income independently, while
// the simulation debits the sum of all goals from the corpus.
func (ce *CalculationEngine) PlanRetirement(plan domain.RetirementPlan) *domain.RetirementResult {
	result := &domain.RetirementResult{
		TotalMonthlyNeeds: plan.TotalMonthlyNeeds(),
	}
	if plan.RetirementAge <= 0 || plan.CurrentAge <= 0 || plan.RetirementAge < plan.CurrentAge {
		return result
	}

	swpRate := pctToRate(plan.SWPRatePercent)
	corpus := decimalZero
	corpusAtRetirementSet := false

	for i := 0; i < SimulationHorizonYears; i++ {
		year := plan.BaseYear + i
		age := plan.CurrentAge + i

		row := domain.YearlyBreakdownRow{
			Year:           year,
			Age:            age,
			StartingCorpus: corpus,
		}

		oneTime := decimalZero
		for _, w := range plan.OneTimeWithdrawals {
			if w.Date.Year() == year {
				oneTime = oneTime.Add(w.Amount)
			}
		}

		if age < plan.RetirementAge {
			investment, avgRate := ce.accumulationForYear(plan, year)
			growth := corpus.Mul(avgRate)

			row.Investment = investment
			row.Growth = growth
			row.Withdrawals = oneTime
			row.LTCGTax = estimateLTCG(oneTime)

			corpus = corpus.Add(investment).Add(growth).Sub(oneTime).Sub(row.LTCGTax)
		} else {
			if !corpusAtRetirementSet {
				result.CorpusAtRetirement = corpus
				corpusAtRetirementSet = true
			}

			growth := corpus.Mul(swpRate)
			withdrawals := result.TotalMonthlyNeeds.Mul(decimalTwelve).Add(oneTime)

			row.Growth = growth
			row.Withdrawals = withdrawals
			row.LTCGTax = estimateLTCG(withdrawals)

			corpus = corpus.Add(growth).Sub(withdrawals).Sub(row.LTCGTax)
		}

		row.EndingCorpus = corpus
		if row.EndingCorpus.LessThan(decimalZero) {
			row.EndingCorpus = decimalZero
		}
		result.Breakdown = append(result.Breakdown, row)

		if age >= plan.RetirementAge && corpus.LessThanOrEqual(decimalZero) {
			result.DepletionAge = age
			break
		}
	}

	if !corpusAtRetirementSet {
		// Retirement age beyond the horizon; treat the final corpus as the
		// retirement corpus for the affordability estimates.
		result.CorpusAtRetirement = corpus
	}

	result.PostTaxCorpus = result.CorpusAtRetirement.Sub(estimateLTCG(result.CorpusAtRetirement))
	if result.PostTaxCorpus.LessThan(decimalZero) {
		result.PostTaxCorpus = decimalZero
	}
	result.PassiveIncome = result.PostTaxCorpus.Mul(swpRate).Div(decimalTwelve)

	result.FIREAchievable = result.TotalMonthlyNeeds.GreaterThan(decimalZero) &&
		result.PassiveIncome.GreaterThanOrEqual(result.TotalMonthlyNeeds)
	result.FIREAge = ce.estimateFIREAge(plan, result)

	for _, g := range plan.Goals {
		result.Goals = append(result.Goals, domain.GoalAffordability{
			Name:          g.Name,
			MonthlyAmount: g.MonthlyAmount,
			PassiveIncome: result.PassiveIncome,
			Affordable:    result.PassiveIncome.GreaterThanOrEqual(g.MonthlyAmount),
		})
	}

	return result
}

// accumulationForYear sums the year's contributions from lumpsum entries
// (matched by investment year) and active SIP streams (matched by
// [startYear, endYear] inclusive, with step-up compounded per elapsed
// year), and returns the growth rate averaged across the streams active
// or already invested by that year.
func (ce *CalculationEngine) accumulationForYear(plan domain.RetirementPlan, year int) (decimal.Decimal, decimal.Decimal) {
	investment := decimalZero
	rateSum := decimalZero
	rateCount := 0

	for _, l := range plan.Lumpsums {
		if l.InvestmentDate.Year() == year {
			investment = investment.Add(l.Amount)
		}
		if l.InvestmentDate.Year() <= year {
			rateSum = rateSum.Add(pctToRate(l.AnnualRatePercent))
			rateCount++
		}
	}

	for _, s := range plan.SIPs {
		startYear := s.StartDate.Year()
		endYear := s.EndDate.Year()
		if year < startYear || year > endYear {
			continue
		}
		monthly := s.MonthlyAmount
		if step := stepUpRate(s.StepUp); step.GreaterThan(decimalZero) && year > startYear {
			factor := onePlus(step).Pow(decimal.NewFromInt(int64(year - startYear)))
			monthly = monthly.Mul(factor)
		}
		investment = investment.Add(monthly.Mul(decimalTwelve))
		rateSum = rateSum.Add(pctToRate(s.AnnualRatePercent))
		rateCount++
	}

	if rateCount == 0 {
		return investment, decimalZero
	}
	return investment, rateSum.Div(decimal.NewFromInt(int64(rateCount)))
}

// estimateFIREAge reports the stated retirement age when passive income
// already covers the total monthly needs, and otherwise projects the
// additional months required through a log-based annuity inversion using
// the average SIP rate and total SIP amount. A heuristic estimate, not a
// simulation-validated answer.
func (ce *CalculationEngine) estimateFIREAge(plan domain.RetirementPlan, result *domain.RetirementResult) int {
	if result.FIREAchievable {
		return plan.RetirementAge
	}
	needs := result.TotalMonthlyNeeds
	if needs.LessThanOrEqual(decimalZero) {
		return 0
	}

	swpRate := pctToRate(plan.SWPRatePercent).InexactFloat64()
	if swpRate <= 0 {
		return 0
	}
	targetCorpus := needs.Mul(decimalTwelve).InexactFloat64() / swpRate

	monthlySIP := 0.0
	rateSum := 0.0
	for _, s := range plan.SIPs {
		monthlySIP += s.MonthlyAmount.InexactFloat64()
		rateSum += pctToRate(s.AnnualRatePercent).InexactFloat64()
	}
	if len(plan.SIPs) == 0 {
		return 0
	}
	monthlyRate := rateSum / float64(len(plan.SIPs)) / 12

	current := result.PostTaxCorpus.InexactFloat64()
	var months float64
	switch {
	case monthlyRate <= 0 && monthlySIP <= 0:
		return 0
	case monthlyRate <= 0:
		months = (targetCorpus - current) / monthlySIP
	default:
		numerator := targetCorpus*monthlyRate + monthlySIP
		denominator := current*monthlyRate + monthlySIP
		if denominator <= 0 || numerator <= denominator {
			return plan.RetirementAge
		}
		months = math.Log(numerator/denominator) / math.Log(1+monthlyRate)
	}

	fireAge := plan.RetirementAge + int(math.Ceil(months/12))
	if fireAge > plan.CurrentAge+SimulationHorizonYears {
		ce.Logger.Debugf("fire age estimate %d beyond simulation horizon", fireAge)
		return 0
	}
	return fireAge
}
