package calculation

import (
	"github.com/shopspring/decimal"
)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalZero    = decimal.Zero
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)
)

// Horizon and display limits for the year-by-year simulators.
const (
	SimulationHorizonYears = 50
	SWPDisplayYears        = 25
	TargetSearchCeiling    = 600 // months
)

// CalculationEngine hosts the pure projection and return computations.
// It holds no input or result state; every method is a deterministic
// function of its arguments, safe to invoke from any caller.
type CalculationEngine struct {
	Logger Logger
}

// NewCalculationEngine creates an engine with a no-op logger.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// onePlus returns 1 + value.
func onePlus(value decimal.Decimal) decimal.Decimal {
	return decimalOne.Add(value)
}

// pctToRate converts a percentage (12.5) to a rate fraction (0.125).
func pctToRate(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(decimalHundred)
}
