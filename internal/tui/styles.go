package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("205")
	ColorSuccess = lipgloss.Color("42")
	ColorDanger  = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("240")
	ColorBorder  = lipgloss.Color("62")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	FocusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	LabelStyle        = lipgloss.NewStyle().Foreground(ColorMuted)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted).Width(22)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true)
	MetricPositiveStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)

	StatusBarStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	StatusKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger)
)
