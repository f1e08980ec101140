package calculation

import (
	"testing"

	"github.com/mfplan/fund-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredMonthlySIP(t *testing.T) {
	engine := NewCalculationEngine()

	result := engine.RequiredMonthlySIP(
		decimal.NewFromInt(1000000), decimal.NewFromInt(12), 120, mustDate("2025-01-01"), nil)

	require.True(t, result.Found)
	// Sanity: the solved contribution reproduces the target.
	fv := AnnuityDueFV(result.RequiredMonthly, decimal.NewFromFloat(0.01), 120)
	assert.InDelta(t, 1000000, fv.InexactFloat64(), 1)
	assert.InDelta(t, 4304, result.RequiredMonthly.InexactFloat64(), 5)
}

func TestRequiredMonthlySIP_LumpsumAloneSuffices(t *testing.T) {
	engine := NewCalculationEngine()

	lumpsums := []domain.LumpsumEntry{
		{
			Amount:            decimal.NewFromInt(800000),
			InvestmentDate:    mustDate("2025-01-01"),
			AnnualRatePercent: decimal.NewFromInt(12),
		},
	}

	// 8,00,000 at 12% over 10 years is ~24.8L, far past the 10L target.
	result := engine.RequiredMonthlySIP(
		decimal.NewFromInt(1000000), decimal.NewFromInt(12), 120, mustDate("2025-01-01"), lumpsums)

	require.True(t, result.Found)
	assert.True(t, result.RequiredMonthly.IsZero(), "no SIP needed when the lumpsum covers the target")
	assert.True(t, result.AdjustedTarget.IsZero())
	assert.True(t, result.LumpsumFV.GreaterThan(decimal.NewFromInt(1000000)))
}

func TestMonthsToTarget(t *testing.T) {
	engine := NewCalculationEngine()

	result := engine.MonthsToTarget(
		decimal.NewFromInt(1000000), decimal.NewFromInt(10000), decimal.NewFromInt(12),
		mustDate("2025-01-01"), nil)

	require.True(t, result.Found)
	assert.Greater(t, result.MonthsNeeded, 60)
	assert.Less(t, result.MonthsNeeded, 84)

	// The found month count is minimal: one month less must fall short.
	fvAtFound := AnnuityDueFV(decimal.NewFromInt(10000), decimal.NewFromFloat(0.01), result.MonthsNeeded)
	fvBefore := AnnuityDueFV(decimal.NewFromInt(10000), decimal.NewFromFloat(0.01), result.MonthsNeeded-1)
	assert.True(t, fvAtFound.GreaterThanOrEqual(decimal.NewFromInt(999999)))
	assert.True(t, fvBefore.LessThan(decimal.NewFromInt(1000000)))
}

func TestMonthsToTarget_CeilingReached(t *testing.T) {
	engine := NewCalculationEngine()

	// 100 a month will never reach one crore inside 600 months.
	result := engine.MonthsToTarget(
		decimal.NewFromInt(10000000), decimal.NewFromInt(100), decimal.NewFromInt(8),
		mustDate("2025-01-01"), nil)

	assert.False(t, result.Found)
}

func TestTargetSolversRoundTrip(t *testing.T) {
	engine := NewCalculationEngine()

	tests := []struct {
		name    string
		target  int64
		ratePct int64
		months  int
	}{
		{"ten lakh over ten years at 12", 1000000, 12, 120},
		{"fifty lakh over twenty years at 10", 5000000, 10, 240},
		{"five lakh over three years at 8", 500000, 8, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := decimal.NewFromInt(tt.target)
			rate := decimal.NewFromInt(tt.ratePct)
			asOf := mustDate("2025-01-01")

			amount := engine.RequiredMonthlySIP(target, rate, tt.months, asOf, nil)
			require.True(t, amount.Found)

			trip := engine.MonthsToTarget(target, amount.RequiredMonthly, rate, asOf, nil)
			require.True(t, trip.Found)
			assert.Equal(t, tt.months, trip.MonthsNeeded,
				"time solver must return the original horizon for the amount solver's output")
		})
	}
}

func TestMonthsToTarget_DegenerateInputs(t *testing.T) {
	engine := NewCalculationEngine()

	assert.False(t, engine.MonthsToTarget(decimal.Zero, decimal.NewFromInt(1000), decimal.NewFromInt(8), mustDate("2025-01-01"), nil).Found)
	assert.False(t, engine.MonthsToTarget(decimal.NewFromInt(100000), decimal.Zero, decimal.NewFromInt(8), mustDate("2025-01-01"), nil).Found)
	assert.False(t, engine.RequiredMonthlySIP(decimal.NewFromInt(100000), decimal.NewFromInt(8), 0, mustDate("2025-01-01"), nil).Found)
}
