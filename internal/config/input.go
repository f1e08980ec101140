package config

import (
	"fmt"
	"os"

	"github.com/mfplan/fund-planner/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan input files.
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// PlanFile is the top-level document for a retirement plan input file.
type PlanFile struct {
	Plan domain.RetirementPlan `yaml:"plan" json:"plan"`
}

// LoadFromFile loads a retirement plan from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.RetirementPlan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file PlanFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePlan(&file.Plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &file.Plan, nil
}

// ValidatePlan validates a loaded retirement plan. The calculation engine
// assumes positive amounts and rates, so bad inputs are rejected here.
func (ip *InputParser) ValidatePlan(plan *domain.RetirementPlan) error {
	if plan.BaseYear < 1900 {
		return fmt.Errorf("base year %d is not plausible", plan.BaseYear)
	}
	if plan.CurrentAge <= 0 {
		return fmt.Errorf("current age must be positive")
	}
	if plan.RetirementAge < plan.CurrentAge {
		return fmt.Errorf("retirement age %d is before current age %d", plan.RetirementAge, plan.CurrentAge)
	}
	if plan.SWPRatePercent.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("swp rate must be positive")
	}

	for i := range plan.Lumpsums {
		if err := ip.validateLumpsum(&plan.Lumpsums[i]); err != nil {
			return fmt.Errorf("lumpsum %d (%s) validation failed: %w", i, plan.Lumpsums[i].Name, err)
		}
	}
	for i := range plan.SIPs {
		if err := ip.ValidateContributionStream(&plan.SIPs[i]); err != nil {
			return fmt.Errorf("sip %d (%s) validation failed: %w", i, plan.SIPs[i].Name, err)
		}
	}
	for i, goal := range plan.Goals {
		if goal.MonthlyAmount.LessThan(decimal.Zero) {
			return fmt.Errorf("goal %d (%s) validation failed: monthly amount cannot be negative", i, goal.Name)
		}
	}
	for i, w := range plan.OneTimeWithdrawals {
		if w.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("one-time withdrawal %d (%s) validation failed: amount must be positive", i, w.Label)
		}
		if w.Date.IsZero() {
			return fmt.Errorf("one-time withdrawal %d (%s) validation failed: date is required", i, w.Label)
		}
	}

	return nil
}

// ValidateContributionStream validates a single SIP stream.
func (ip *InputParser) ValidateContributionStream(stream *domain.ContributionStream) error {
	if stream.MonthlyAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("monthly amount must be positive")
	}
	if stream.AnnualRatePercent.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("expected annual return must be positive")
	}
	if stream.StartDate.IsZero() {
		return fmt.Errorf("start date is required")
	}
	if stream.EndDate.IsZero() {
		return fmt.Errorf("end date is required")
	}
	if !stream.StartDate.Before(stream.EndDate) {
		return fmt.Errorf("start date must be before end date")
	}
	if stream.StepUp != nil && stream.StepUp.Enabled && stream.StepUp.AnnualRatePercent.LessThan(decimal.Zero) {
		return fmt.Errorf("step-up rate cannot be negative")
	}
	return nil
}

// ValidateWithdrawalStream validates an SWP withdrawal stream.
func (ip *InputParser) ValidateWithdrawalStream(stream *domain.WithdrawalStream) error {
	if stream.MonthlyAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("monthly withdrawal must be positive")
	}
	if stream.AnnualRatePercent.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("expected annual return must be positive")
	}
	if stream.StepUp != nil && stream.StepUp.Enabled && stream.StepUp.AnnualRatePercent.LessThan(decimal.Zero) {
		return fmt.Errorf("step-up rate cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateLumpsum(entry *domain.LumpsumEntry) error {
	if entry.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be positive")
	}
	if entry.AnnualRatePercent.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("expected annual return must be positive")
	}
	if entry.InvestmentDate.IsZero() {
		return fmt.Errorf("investment date is required")
	}
	return nil
}
