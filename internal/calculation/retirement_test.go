package calculation

import (
	"testing"

	"github.com/mfplan/fund-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() domain.RetirementPlan {
	return domain.RetirementPlan{
		BaseYear:       2025,
		CurrentAge:     30,
		RetirementAge:  45,
		SWPRatePercent: decimal.NewFromInt(8),
		Lumpsums: []domain.LumpsumEntry{
			{
				Name:              "existing portfolio",
				Amount:            decimal.NewFromInt(1000000),
				InvestmentDate:    mustDate("2025-06-01"),
				AnnualRatePercent: decimal.NewFromInt(12),
			},
		},
		SIPs: []domain.ContributionStream{
			{
				Name:              "equity sip",
				MonthlyAmount:     decimal.NewFromInt(50000),
				StartDate:         mustDate("2025-01-01"),
				EndDate:           mustDate("2039-12-01"),
				AnnualRatePercent: decimal.NewFromInt(12),
			},
		},
		Goals: []domain.RetirementGoal{
			{Name: "living expenses", MonthlyAmount: decimal.NewFromInt(80000)},
			{Name: "travel", MonthlyAmount: decimal.NewFromInt(20000)},
		},
	}
}

func TestEstimateLTCG(t *testing.T) {
	// Half of 10,00,000 is treated as gains; 8,75,000 above the 1,25,000
	// exemption taxed at 12.5%.
	tax := estimateLTCG(decimal.NewFromInt(1000000))
	assert.InDelta(t, 46875, tax.InexactFloat64(), 1e-6)

	// Small withdrawals stay inside the exemption.
	assert.True(t, estimateLTCG(decimal.NewFromInt(200000)).IsZero())
	assert.True(t, estimateLTCG(decimal.Zero).IsZero())
}

func TestPlanRetirement_PhasesAndBreakdown(t *testing.T) {
	engine := NewCalculationEngine()

	result := engine.PlanRetirement(samplePlan())
	require.NotEmpty(t, result.Breakdown)

	first := result.Breakdown[0]
	assert.Equal(t, 2025, first.Year)
	assert.Equal(t, 30, first.Age)
	// Year one: 10,00,000 lumpsum plus 12 x 50,000 SIP.
	assert.InDelta(t, 1600000, first.Investment.InexactFloat64(), 1e-6)

	for i := 1; i < len(result.Breakdown); i++ {
		assert.Equal(t, result.Breakdown[i-1].Year+1, result.Breakdown[i].Year, "years must be sequential")
		assert.True(t, result.Breakdown[i].StartingCorpus.Equal(result.Breakdown[i-1].EndingCorpus),
			"each year must start where the previous ended")
	}

	// Accumulation rows carry investment; withdrawal rows do not.
	for _, row := range result.Breakdown {
		if row.Age < 45 {
			assert.True(t, row.Investment.GreaterThanOrEqual(decimalZero))
			assert.True(t, row.Withdrawals.IsZero(), "no goal withdrawals before retirement")
		} else {
			assert.True(t, row.Investment.IsZero(), "no contributions after retirement")
			assert.True(t, row.Withdrawals.GreaterThan(decimalZero))
		}
	}

	assert.True(t, result.CorpusAtRetirement.GreaterThan(decimalZero))
	assert.True(t, result.PostTaxCorpus.LessThan(result.CorpusAtRetirement),
		"LTCG haircut applies to the retirement corpus")
	assert.InDelta(t, 100000, result.TotalMonthlyNeeds.InexactFloat64(), 1e-6)
}

func TestPlanRetirement_Idempotent(t *testing.T) {
	engine := NewCalculationEngine()
	plan := samplePlan()

	first := engine.PlanRetirement(plan)
	second := engine.PlanRetirement(plan)

	require.Equal(t, len(first.Breakdown), len(second.Breakdown))
	for i := range first.Breakdown {
		assert.True(t, first.Breakdown[i].EndingCorpus.Equal(second.Breakdown[i].EndingCorpus))
	}
	assert.Equal(t, first.FIREAge, second.FIREAge)
}

func TestPlanRetirement_GoalAffordabilityIsPerGoal(t *testing.T) {
	engine := NewCalculationEngine()

	result := engine.PlanRetirement(samplePlan())
	require.Len(t, result.Goals, 2)

	// Each goal is checked against the full passive income independently;
	// the goals are not netted against each other.
	for _, g := range result.Goals {
		assert.True(t, g.PassiveIncome.Equal(result.PassiveIncome))
		assert.Equal(t, g.PassiveIncome.GreaterThanOrEqual(g.MonthlyAmount), g.Affordable)
	}
}

func TestPlanRetirement_FIREAchievableWithLargeCorpus(t *testing.T) {
	engine := NewCalculationEngine()

	plan := samplePlan()
	plan.Lumpsums[0].Amount = decimal.NewFromInt(100000000)

	result := engine.PlanRetirement(plan)
	assert.True(t, result.FIREAchievable)
	assert.Equal(t, plan.RetirementAge, result.FIREAge,
		"passive income already covers needs, so FIRE age is the stated retirement age")
}

func TestPlanRetirement_OneTimeWithdrawalTaxed(t *testing.T) {
	engine := NewCalculationEngine()

	plan := samplePlan()
	plan.OneTimeWithdrawals = []domain.OneTimeWithdrawal{
		{Label: "house down payment", Amount: decimal.NewFromInt(2000000), Date: mustDate("2030-03-01")},
	}

	result := engine.PlanRetirement(plan)

	var row2030 *domain.YearlyBreakdownRow
	for i := range result.Breakdown {
		if result.Breakdown[i].Year == 2030 {
			row2030 = &result.Breakdown[i]
			break
		}
	}
	require.NotNil(t, row2030)
	assert.InDelta(t, 2000000, row2030.Withdrawals.InexactFloat64(), 1e-6)
	// gains = 10,00,000; (10,00,000 - 1,25,000) * 12.5%
	assert.InDelta(t, 109375, row2030.LTCGTax.InexactFloat64(), 1e-6)
}

func TestPlanRetirement_CorpusDepletionStopsEarly(t *testing.T) {
	engine := NewCalculationEngine()

	plan := domain.RetirementPlan{
		BaseYear:       2025,
		CurrentAge:     44,
		RetirementAge:  45,
		SWPRatePercent: decimal.NewFromInt(6),
		Lumpsums: []domain.LumpsumEntry{
			{Amount: decimal.NewFromInt(2000000), InvestmentDate: mustDate("2025-01-01"), AnnualRatePercent: decimal.NewFromInt(10)},
		},
		Goals: []domain.RetirementGoal{
			{Name: "expenses", MonthlyAmount: decimal.NewFromInt(100000)},
		},
	}

	result := engine.PlanRetirement(plan)

	assert.Greater(t, result.DepletionAge, 0, "1.2M a year against a 2M corpus must deplete")
	assert.Less(t, len(result.Breakdown), SimulationHorizonYears, "loop must stop at depletion")
	last := result.Breakdown[len(result.Breakdown)-1]
	assert.True(t, last.EndingCorpus.IsZero(), "displayed corpus is clamped at zero")
}

func TestPlanRetirement_DegenerateInputs(t *testing.T) {
	engine := NewCalculationEngine()

	result := engine.PlanRetirement(domain.RetirementPlan{})
	assert.Empty(t, result.Breakdown)

	result = engine.PlanRetirement(domain.RetirementPlan{CurrentAge: 50, RetirementAge: 40, BaseYear: 2025})
	assert.Empty(t, result.Breakdown, "retirement age before current age is caller error, handled quietly")
}
