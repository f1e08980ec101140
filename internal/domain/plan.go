package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashFlow is a dated, signed amount: outflows (investments) negative,
// inflows (redemptions, terminal value) positive. Used as ephemeral input
// to the XIRR solver.
type CashFlow struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// StepUp describes an annual percentage increase applied to a SIP or SWP
// amount at each year boundary.
type StepUp struct {
	Enabled           bool            `json:"enabled" yaml:"enabled"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent" yaml:"annual_rate_percent"`
}

// ContributionStream is a SIP: a fixed monthly contribution between two
// dates, growing at an expected annual rate, optionally stepped up each
// year. Immutable per calculation run.
type ContributionStream struct {
	Name              string          `json:"name,omitempty" yaml:"name,omitempty"`
	MonthlyAmount     decimal.Decimal `json:"monthlyAmount" yaml:"monthly_amount"`
	StartDate         time.Time       `json:"startDate" yaml:"start_date"`
	EndDate           time.Time       `json:"endDate" yaml:"end_date"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent" yaml:"annual_rate_percent"`
	StepUp            *StepUp         `json:"stepUp,omitempty" yaml:"step_up,omitempty"`
}

// LumpsumEntry is a one-time investment growing at its own expected annual rate.
type LumpsumEntry struct {
	Name              string          `json:"name,omitempty" yaml:"name,omitempty"`
	Amount            decimal.Decimal `json:"amount" yaml:"amount"`
	InvestmentDate    time.Time       `json:"investmentDate" yaml:"investment_date"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent" yaml:"annual_rate_percent"`
}

// WithdrawalStream is an SWP: a fixed monthly withdrawal from an
// accumulated corpus, optionally stepped up annually.
type WithdrawalStream struct {
	MonthlyAmount     decimal.Decimal `json:"monthlyAmount" yaml:"monthly_amount"`
	AnnualRatePercent decimal.Decimal `json:"annualRatePercent" yaml:"annual_rate_percent"`
	StepUp            *StepUp         `json:"stepUp,omitempty" yaml:"step_up,omitempty"`
}

// OneTimeWithdrawal is a dated withdrawal overlaid on a retirement plan
// (a house purchase, a wedding).
type OneTimeWithdrawal struct {
	Label  string          `json:"label,omitempty" yaml:"label,omitempty"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Date   time.Time       `json:"date" yaml:"date"`
}

// RetirementGoal is a recurring monthly spending need during the
// withdrawal phase.
type RetirementGoal struct {
	Name          string          `json:"name" yaml:"name"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount" yaml:"monthly_amount"`
}

// RetirementPlan is the full input to the combined lifecycle planner:
// accumulation streams chained into a goal-driven withdrawal phase.
type RetirementPlan struct {
	BaseYear           int                  `json:"baseYear" yaml:"base_year"`
	CurrentAge         int                  `json:"currentAge" yaml:"current_age"`
	RetirementAge      int                  `json:"retirementAge" yaml:"retirement_age"`
	SWPRatePercent     decimal.Decimal      `json:"swpRatePercent" yaml:"swp_rate_percent"`
	Lumpsums           []LumpsumEntry       `json:"lumpsums,omitempty" yaml:"lumpsums,omitempty"`
	SIPs               []ContributionStream `json:"sips,omitempty" yaml:"sips,omitempty"`
	Goals              []RetirementGoal     `json:"goals,omitempty" yaml:"goals,omitempty"`
	OneTimeWithdrawals []OneTimeWithdrawal  `json:"oneTimeWithdrawals,omitempty" yaml:"one_time_withdrawals,omitempty"`
}

// TotalMonthlyNeeds sums the monthly amounts across all retirement goals.
func (p *RetirementPlan) TotalMonthlyNeeds() decimal.Decimal {
	total := decimal.Zero
	for _, g := range p.Goals {
		total = total.Add(g.MonthlyAmount)
	}
	return total
}
