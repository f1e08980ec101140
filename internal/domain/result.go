package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// All result records are value objects: recomputed wholesale on every
// input change, never patched incrementally. Rate fields hold percentages
// (12.5 means 12.5%), matching how the calculators present them.

// TimelinePoint is one charting sample of a projection or replay.
type TimelinePoint struct {
	Date          time.Time        `json:"date"`
	InvestedValue decimal.Decimal  `json:"investedValue"`
	MarketValue   decimal.Decimal  `json:"marketValue"`
	Units         *decimal.Decimal `json:"units,omitempty"`
	NAV           *decimal.Decimal `json:"nav,omitempty"`
}

// FundMetrics summarizes historical performance of a NAV series.
// CAGR and AnnualizedReturn are mutually exclusive by elapsed duration:
// CAGR for periods of a year or more, AnnualizedReturn below that.
// Volatility is nil when fewer than 3 points are available.
type FundMetrics struct {
	StartDate        time.Time        `json:"startDate"`
	EndDate          time.Time        `json:"endDate"`
	StartNAV         decimal.Decimal  `json:"startNav"`
	EndNAV           decimal.Decimal  `json:"endNav"`
	Years            decimal.Decimal  `json:"years"`
	AbsoluteReturn   decimal.Decimal  `json:"absoluteReturn"`
	CAGR             *decimal.Decimal `json:"cagr,omitempty"`
	AnnualizedReturn *decimal.Decimal `json:"annualizedReturn,omitempty"`
	Volatility       *decimal.Decimal `json:"volatility,omitempty"`
	MaxDrawdown      decimal.Decimal  `json:"maxDrawdown"`
}

// SIPResult is the output of the SIP/lumpsum future-value engine in either
// expected-rate or historical-replay mode.
type SIPResult struct {
	TotalInvestment  decimal.Decimal  `json:"totalInvestment"`
	TotalValue       decimal.Decimal  `json:"totalValue"`
	SIPValue         decimal.Decimal  `json:"sipValue"`
	LumpsumValue     decimal.Decimal  `json:"lumpsumValue"`
	AbsoluteReturn   decimal.Decimal  `json:"absoluteReturn"`
	AnnualizedReturn *decimal.Decimal `json:"annualizedReturn,omitempty"`
	XIRR             *decimal.Decimal `json:"xirr,omitempty"`
	TotalUnits       *decimal.Decimal `json:"totalUnits,omitempty"`
	Months           int              `json:"months"`
	Timeline         []TimelinePoint  `json:"timeline"`
}

// SWPYearRow is one simulated year of a withdrawal plan.
type SWPYearRow struct {
	Year           int             `json:"year"`
	StartingCorpus decimal.Decimal `json:"startingCorpus"`
	Interest       decimal.Decimal `json:"interest"`
	Withdrawal     decimal.Decimal `json:"withdrawal"`
	EndingCorpus   decimal.Decimal `json:"endingCorpus"`
}

// SWPResult is the output of the SWP depletion simulator.
type SWPResult struct {
	InitialCorpus     decimal.Decimal `json:"initialCorpus"`
	MonthlyWithdrawal decimal.Decimal `json:"monthlyWithdrawal"`
	Indefinite        bool            `json:"indefinite"`
	DepletionYear     int             `json:"depletionYear"` // 0 when the corpus survives the horizon
	TotalWithdrawn    decimal.Decimal `json:"totalWithdrawn"`
	TotalInterest     decimal.Decimal `json:"totalInterest"`
	FinalCorpus       decimal.Decimal `json:"finalCorpus"`
	Breakdown         []SWPYearRow    `json:"breakdown"`
}

// YearlyBreakdownRow is one simulated year of the combined lifecycle
// planner. Output-only, produced fresh each calculation.
type YearlyBreakdownRow struct {
	Year           int             `json:"year"`
	Age            int             `json:"age"`
	StartingCorpus decimal.Decimal `json:"startingCorpus"`
	Investment     decimal.Decimal `json:"investment"`
	Growth         decimal.Decimal `json:"growth"`
	LTCGTax        decimal.Decimal `json:"ltcgTax"`
	Withdrawals    decimal.Decimal `json:"withdrawals"`
	EndingCorpus   decimal.Decimal `json:"endingCorpus"`
}

// GoalAffordability marks a single retirement goal against projected
// passive income. Each goal is checked independently against the total
// passive income; only the corpus simulation sums the goals.
type GoalAffordability struct {
	Name          string          `json:"name"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
	PassiveIncome decimal.Decimal `json:"passiveIncome"`
	Affordable    bool            `json:"affordable"`
}

// RetirementResult is the output of the combined lifecycle planner.
type RetirementResult struct {
	CorpusAtRetirement decimal.Decimal      `json:"corpusAtRetirement"`
	PostTaxCorpus      decimal.Decimal      `json:"postTaxCorpus"`
	PassiveIncome      decimal.Decimal      `json:"passiveIncome"` // monthly, at retirement
	TotalMonthlyNeeds  decimal.Decimal      `json:"totalMonthlyNeeds"`
	FIREAchievable     bool                 `json:"fireAchievable"`
	FIREAge            int                  `json:"fireAge"`
	DepletionAge       int                  `json:"depletionAge"` // 0 when the corpus survives the horizon
	Goals              []GoalAffordability  `json:"goals"`
	Breakdown          []YearlyBreakdownRow `json:"breakdown"`
}

// TargetSIPResult is the output of the inverse solvers.
type TargetSIPResult struct {
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	LumpsumFV       decimal.Decimal `json:"lumpsumFv"`
	AdjustedTarget  decimal.Decimal `json:"adjustedTarget"`
	RequiredMonthly decimal.Decimal `json:"requiredMonthly"`
	MonthsNeeded    int             `json:"monthsNeeded"`
	Found           bool            `json:"found"`
}
