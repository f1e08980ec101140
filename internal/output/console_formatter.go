package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfplan/fund-planner/internal/calculation"
	"github.com/mfplan/fund-planner/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Width(26)
	valueStyle = lipgloss.NewStyle().Bold(true)
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ConsoleFormatter renders a styled, human-readable report.
type ConsoleFormatter struct{}

func (f ConsoleFormatter) Name() string { return "console" }

func (f ConsoleFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}

	if report.Title != "" {
		fmt.Fprintln(buf, titleStyle.Render(report.Title))
		fmt.Fprintln(buf)
	}
	if report.Metrics != nil {
		f.writeMetrics(buf, report.Metrics)
	}
	if report.SIP != nil {
		f.writeSIP(buf, report.SIP)
	}
	if report.SWP != nil {
		f.writeSWP(buf, report.SWP)
	}
	if report.Retirement != nil {
		f.writeRetirement(buf, report.Retirement)
	}
	if report.Target != nil {
		f.writeTarget(buf, report.Target)
	}

	return buf.Bytes(), nil
}

func writeRow(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "%s %s\n", labelStyle.Render(label), valueStyle.Render(value))
}

func (f ConsoleFormatter) writeMetrics(buf *bytes.Buffer, m *domain.FundMetrics) {
	fmt.Fprintln(buf, titleStyle.Render("FUND PERFORMANCE"))
	writeRow(buf, "Period", fmt.Sprintf("%s to %s (%s years)",
		m.StartDate.Format("02 Jan 2006"), m.EndDate.Format("02 Jan 2006"), m.Years.StringFixed(1)))
	writeRow(buf, "NAV", fmt.Sprintf("%s to %s", m.StartNAV.StringFixed(4), m.EndNAV.StringFixed(4)))
	writeRow(buf, "Absolute Return", signedPercent(m.AbsoluteReturn.StringFixed(2)+"%", m.AbsoluteReturn.IsNegative()))
	if m.CAGR != nil {
		writeRow(buf, "CAGR", signedPercent(m.CAGR.StringFixed(2)+"%", m.CAGR.IsNegative()))
	}
	if m.AnnualizedReturn != nil {
		writeRow(buf, "Annualized Return", signedPercent(m.AnnualizedReturn.StringFixed(2)+"%", m.AnnualizedReturn.IsNegative()))
	}
	writeRow(buf, "Volatility", FormatOptionalPercentage(m.Volatility))
	writeRow(buf, "Max Drawdown", FormatPercentage(m.MaxDrawdown))
	fmt.Fprintln(buf)
}

func signedPercent(s string, negative bool) string {
	if negative {
		return badStyle.Render(s)
	}
	return goodStyle.Render(s)
}

func (f ConsoleFormatter) writeSIP(buf *bytes.Buffer, r *domain.SIPResult) {
	fmt.Fprintln(buf, titleStyle.Render("SIP PROJECTION"))
	writeRow(buf, "Months", strconv.Itoa(r.Months))
	writeRow(buf, "Total Investment", FormatCurrency(r.TotalInvestment))
	if !r.LumpsumValue.IsZero() {
		writeRow(buf, "SIP Value", FormatCurrency(r.SIPValue))
		writeRow(buf, "Lumpsum Value", FormatCurrency(r.LumpsumValue))
	}
	writeRow(buf, "Total Value", FormatCurrency(r.TotalValue))
	writeRow(buf, "Absolute Return", signedPercent(r.AbsoluteReturn.StringFixed(2)+"%", r.AbsoluteReturn.IsNegative()))
	writeRow(buf, "Annualized Return", FormatOptionalPercentage(r.AnnualizedReturn))
	writeRow(buf, "XIRR", FormatOptionalPercentage(r.XIRR))
	if r.TotalUnits != nil {
		writeRow(buf, "Units Held", r.TotalUnits.StringFixed(4))
	}
	fmt.Fprintln(buf)
}

func (f ConsoleFormatter) writeSWP(buf *bytes.Buffer, r *domain.SWPResult) {
	fmt.Fprintln(buf, titleStyle.Render("SWP SIMULATION"))
	writeRow(buf, "Initial Corpus", FormatCurrency(r.InitialCorpus))
	writeRow(buf, "Monthly Withdrawal", FormatCurrency(r.MonthlyWithdrawal))
	switch {
	case r.Indefinite:
		writeRow(buf, "Sustainability", goodStyle.Render("indefinite, withdrawals stay within interest"))
	case r.DepletionYear > 0:
		writeRow(buf, "Sustainability", badStyle.Render(fmt.Sprintf("corpus depletes in year %d", r.DepletionYear)))
	default:
		writeRow(buf, "Sustainability", fmt.Sprintf("survives the %d-year horizon", calculation.SimulationHorizonYears))
	}
	writeRow(buf, "Total Withdrawn", FormatCurrency(r.TotalWithdrawn))
	writeRow(buf, "Total Interest", FormatCurrency(r.TotalInterest))
	writeRow(buf, "Final Corpus", FormatCurrency(r.FinalCorpus))

	if len(r.Breakdown) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, mutedStyle.Render(fmt.Sprintf("%4s %18s %18s %18s %18s",
			"Year", "Start", "Interest", "Withdrawal", "End")))
		for _, row := range r.Breakdown {
			fmt.Fprintf(buf, "%4d %18s %18s %18s %18s\n",
				row.Year,
				FormatCurrency(row.StartingCorpus),
				FormatCurrency(row.Interest),
				FormatCurrency(row.Withdrawal),
				FormatCurrency(row.EndingCorpus))
		}
	}
	fmt.Fprintln(buf)
}

func (f ConsoleFormatter) writeRetirement(buf *bytes.Buffer, r *domain.RetirementResult) {
	fmt.Fprintln(buf, titleStyle.Render("RETIREMENT PLAN"))
	writeRow(buf, "Corpus at Retirement", FormatCurrency(r.CorpusAtRetirement))
	writeRow(buf, "Post-tax Corpus", FormatCurrency(r.PostTaxCorpus))
	writeRow(buf, "Passive Income (monthly)", FormatCurrency(r.PassiveIncome))
	writeRow(buf, "Monthly Needs", FormatCurrency(r.TotalMonthlyNeeds))
	if r.FIREAchievable {
		writeRow(buf, "FIRE", goodStyle.Render(fmt.Sprintf("achievable at age %d", r.FIREAge)))
	} else if r.FIREAge > 0 {
		writeRow(buf, "FIRE", fmt.Sprintf("projected at age %d", r.FIREAge))
	} else {
		writeRow(buf, "FIRE", badStyle.Render("not achievable within the horizon"))
	}
	if r.DepletionAge > 0 {
		writeRow(buf, "Corpus Depletes", badStyle.Render(fmt.Sprintf("at age %d", r.DepletionAge)))
	}

	for _, g := range r.Goals {
		status := goodStyle.Render("affordable")
		if !g.Affordable {
			status = badStyle.Render("not affordable")
		}
		writeRow(buf, "Goal: "+g.Name, fmt.Sprintf("%s/month, %s", FormatCurrency(g.MonthlyAmount), status))
	}

	if len(r.Breakdown) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, mutedStyle.Render(fmt.Sprintf("%4s %4s %16s %14s %14s %12s %14s %16s",
			"Year", "Age", "Start", "Invested", "Growth", "LTCG", "Withdrawn", "End")))
		for _, row := range r.Breakdown {
			fmt.Fprintf(buf, "%4d %4d %16s %14s %14s %12s %14s %16s\n",
				row.Year, row.Age,
				FormatCurrency(row.StartingCorpus),
				FormatCurrency(row.Investment),
				FormatCurrency(row.Growth),
				FormatCurrency(row.LTCGTax),
				FormatCurrency(row.Withdrawals),
				FormatCurrency(row.EndingCorpus))
		}
	}
	fmt.Fprintln(buf)
}

func (f ConsoleFormatter) writeTarget(buf *bytes.Buffer, r *domain.TargetSIPResult) {
	fmt.Fprintln(buf, titleStyle.Render("TARGET SIP"))
	writeRow(buf, "Target Amount", FormatCurrency(r.TargetAmount))
	if !r.LumpsumFV.IsZero() {
		writeRow(buf, "Lumpsum Future Value", FormatCurrency(r.LumpsumFV))
		writeRow(buf, "Adjusted Target", FormatCurrency(r.AdjustedTarget))
	}
	if !r.Found {
		writeRow(buf, "Result", badStyle.Render("not reachable within the search horizon"))
	} else {
		writeRow(buf, "Required Monthly SIP", FormatCurrency(r.RequiredMonthly))
		writeRow(buf, "Months Needed", strconv.Itoa(r.MonthsNeeded))
	}
	fmt.Fprintln(buf)
}
