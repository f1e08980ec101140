package calculation

import (
	"math"

	"github.com/mfplan/fund-planner/internal/domain"
	"github.com/mfplan/fund-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

const (
	xirrMaxIterations = 100
	xirrPrecision     = 1e-6
	xirrInitialGuess  = 0.10
)

// XIRR finds the annualized discount rate that zeroes the net present
// value of a dated cash-flow list, by Newton-Raphson with an analytic
// derivative. The flow list must contain at least one negative and one
// positive amount; the rate is undefined (nil) otherwise and callers are
// expected to validate before invoking.
//
// The returned rate is a percentage. When the iteration budget runs out
// or the derivative underflows, the last estimate is returned as a
// best-effort approximation rather than signaling non-convergence.
func (ce *CalculationEngine) XIRR(flows []domain.CashFlow) *decimal.Decimal {
	if len(flows) < 2 {
		return nil
	}

	hasNegative := false
	hasPositive := false
	for _, f := range flows {
		if f.Amount.LessThan(decimalZero) {
			hasNegative = true
		}
		if f.Amount.GreaterThan(decimalZero) {
			hasPositive = true
		}
	}
	if !hasNegative || !hasPositive {
		return nil
	}

	anchor := flows[0].Date
	amounts := make([]float64, len(flows))
	yearFracs := make([]float64, len(flows))
	for i, f := range flows {
		amounts[i] = f.Amount.InexactFloat64()
		yearFracs[i] = dateutil.DaysBetween(anchor, f.Date) / 365.0
	}

	rate := xirrInitialGuess
	for i := 0; i < xirrMaxIterations; i++ {
		npv := 0.0
		derivative := 0.0
		for j := range amounts {
			t := yearFracs[j]
			discount := math.Pow(1+rate, t)
			npv += amounts[j] / discount
			derivative -= t * amounts[j] / math.Pow(1+rate, t+1)
		}

		if math.Abs(npv) < xirrPrecision {
			break
		}
		if derivative == 0 || math.IsNaN(derivative) || math.IsInf(derivative, 0) {
			ce.Logger.Warnf("xirr: derivative underflow at rate %.6f, returning last estimate", rate)
			break
		}

		next := rate - npv/derivative
		if math.IsNaN(next) || math.IsInf(next, 0) {
			ce.Logger.Warnf("xirr: iteration diverged at rate %.6f, returning last estimate", rate)
			break
		}
		if math.Abs(next-rate) < xirrPrecision {
			rate = next
			break
		}
		rate = next
	}

	pct := decimal.NewFromFloat(rate * 100)
	return &pct
}
