package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mfplan/fund-planner/internal/output"
)

// View renders the current state of the application.
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.renderParameters(),
			" ",
			m.renderResults(),
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Render("mfplan - Mutual Fund Planner"),
		SubtitleStyle.Render(m.currentScene.String()),
	)
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("F1", "sip"),
		formatShortcut("F2", "swp"),
		formatShortcut("F3", "target"),
		formatShortcut("tab", "next field"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, "  "))
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderParameters() string {
	params := m.activeParams()
	lines := make([]string, 0, len(params)*2)
	for i, p := range params {
		label := LabelStyle.Render(p.label)
		if i == m.focusIndex {
			label = FocusedLabelStyle.Render(p.label)
		}
		lines = append(lines, label, p.input.View())
	}
	return BorderStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderResults() string {
	if m.err != nil {
		return BorderStyle.Render(ErrorStyle.Render(m.err.Error()))
	}

	switch m.currentScene {
	case SceneSIP:
		return m.renderSIPResults()
	case SceneSWP:
		return m.renderSWPResults()
	case SceneTarget:
		return m.renderTargetResults()
	}
	return ""
}

func metricRow(label, value string) string {
	return MetricLabelStyle.Render(label) + MetricValueStyle.Render(value)
}

func signedRow(label string, value decimal.Decimal, render func(decimal.Decimal) string) string {
	style := MetricPositiveStyle
	if value.IsNegative() {
		style = MetricNegativeStyle
	}
	return MetricLabelStyle.Render(label) + style.Render(render(value))
}

func (m Model) renderSIPResults() string {
	if m.sipResult == nil {
		return BorderStyle.Render("Enter a monthly amount and duration")
	}
	r := m.sipResult

	rows := []string{
		metricRow("Months", fmt.Sprintf("%d", r.Months)),
		metricRow("Total Investment", output.FormatCurrency(r.TotalInvestment)),
		metricRow("Projected Value", output.FormatCurrency(r.TotalValue)),
		signedRow("Absolute Return", r.AbsoluteReturn, func(d decimal.Decimal) string {
			return output.FormatPercentage(d)
		}),
		metricRow("XIRR", output.FormatOptionalPercentage(r.XIRR)),
	}
	return BorderStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderSWPResults() string {
	if m.swpResult == nil {
		return BorderStyle.Render("Enter a corpus and withdrawal amount")
	}
	r := m.swpResult

	sustainability := "survives the horizon"
	style := MetricPositiveStyle
	switch {
	case r.Indefinite:
		sustainability = "indefinite"
	case r.DepletionYear > 0:
		sustainability = fmt.Sprintf("depletes in year %d", r.DepletionYear)
		style = MetricNegativeStyle
	}

	rows := []string{
		MetricLabelStyle.Render("Sustainability") + style.Render(sustainability),
		metricRow("Total Withdrawn", output.FormatCurrency(r.TotalWithdrawn)),
		metricRow("Total Interest", output.FormatCurrency(r.TotalInterest)),
		metricRow("Final Corpus", output.FormatCurrency(r.FinalCorpus)),
	}

	if n := len(r.Breakdown); n > 0 {
		rows = append(rows, "")
		shown := r.Breakdown
		if n > 10 {
			shown = shown[:10]
		}
		for _, row := range shown {
			rows = append(rows, fmt.Sprintf("year %2d  %s", row.Year, output.FormatCurrency(row.EndingCorpus)))
		}
		if n > 10 {
			rows = append(rows, LabelStyle.Render(fmt.Sprintf("... %d more years", n-10)))
		}
	}
	return BorderStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderTargetResults() string {
	if m.targetResult == nil {
		return BorderStyle.Render("Enter a target corpus and horizon")
	}
	r := m.targetResult

	if !r.Found {
		return BorderStyle.Render(ErrorStyle.Render("target not reachable"))
	}
	rows := []string{
		metricRow("Target", output.FormatCurrency(r.TargetAmount)),
		metricRow("Required Monthly", output.FormatCurrency(r.RequiredMonthly)),
		metricRow("Months", fmt.Sprintf("%d", r.MonthsNeeded)),
	}
	return BorderStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderHelp() string {
	helpText := `mfplan interactive explorer

SCREENS:
  F1       SIP projection
  F2       SWP simulation
  F3       Target SIP solver

NAVIGATION:
  tab / down        Next field
  shift+tab / up    Previous field
  type              Edit the focused value

OTHER:
  ?        Show this help
  esc      Back
  q        Quit

Results recompute on every edit.`

	return BorderStyle.Render(helpText)
}
