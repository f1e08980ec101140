package calculation

import (
	"testing"
	"time"

	"github.com/mfplan/fund-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cashFlow(date string, amount float64) domain.CashFlow {
	d, _ := time.Parse("2006-01-02", date)
	return domain.CashFlow{Date: d, Amount: decimal.NewFromFloat(amount)}
}

func TestXIRR_SimpleTwoFlow(t *testing.T) {
	engine := NewCalculationEngine()

	// 10,000 invested, 12,000 back exactly one 365-day year later: 20%.
	flows := []domain.CashFlow{
		cashFlow("2022-01-01", -10000),
		cashFlow("2023-01-01", 12000),
	}

	rate := engine.XIRR(flows)
	require.NotNil(t, rate)
	assert.InDelta(t, 20.0, rate.InexactFloat64(), 0.1)
}

func TestXIRR_MonthlyContributions(t *testing.T) {
	engine := NewCalculationEngine()

	start, _ := time.Parse("2006-01-02", "2022-01-01")
	var flows []domain.CashFlow
	for i := 0; i < 12; i++ {
		flows = append(flows, domain.CashFlow{
			Date:   start.AddDate(0, i, 0),
			Amount: decimal.NewFromInt(-10000),
		})
	}
	// Terminal value slightly above the 120,000 put in.
	flows = append(flows, cashFlow("2023-01-01", 128000))

	rate := engine.XIRR(flows)
	require.NotNil(t, rate)
	// Money was at work for ~6.5 months on average, so the annualized
	// rate is well above the 6.7% absolute gain.
	assert.Greater(t, rate.InexactFloat64(), 10.0)
	assert.Less(t, rate.InexactFloat64(), 16.0)
}

func TestXIRR_UndefinedWithoutSignMix(t *testing.T) {
	engine := NewCalculationEngine()

	assert.Nil(t, engine.XIRR(nil))
	assert.Nil(t, engine.XIRR([]domain.CashFlow{cashFlow("2022-01-01", -1000)}))
	assert.Nil(t, engine.XIRR([]domain.CashFlow{
		cashFlow("2022-01-01", -1000),
		cashFlow("2023-01-01", -2000),
	}), "all-outflow list has no rate")
	assert.Nil(t, engine.XIRR([]domain.CashFlow{
		cashFlow("2022-01-01", 1000),
		cashFlow("2023-01-01", 2000),
	}), "all-inflow list has no rate")
}

func TestXIRR_NegativeReturn(t *testing.T) {
	engine := NewCalculationEngine()

	flows := []domain.CashFlow{
		cashFlow("2022-01-01", -10000),
		cashFlow("2023-01-01", 8000),
	}

	rate := engine.XIRR(flows)
	require.NotNil(t, rate)
	assert.InDelta(t, -20.0, rate.InexactFloat64(), 0.1)
}

func TestXIRR_Deterministic(t *testing.T) {
	engine := NewCalculationEngine()

	flows := []domain.CashFlow{
		cashFlow("2020-06-15", -50000),
		cashFlow("2021-06-15", -50000),
		cashFlow("2023-06-15", 125000),
	}

	first := engine.XIRR(flows)
	second := engine.XIRR(flows)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.True(t, first.Equal(*second), "same flows must converge to the same rate")
}
