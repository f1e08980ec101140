package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/mfplan/fund-planner/internal/calculation"
	"github.com/mfplan/fund-planner/internal/domain"
)

// Scene identifies the active screen.
type Scene int

const (
	SceneSIP Scene = iota
	SceneSWP
	SceneTarget
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneSIP:
		return "SIP Projection"
	case SceneSWP:
		return "SWP Simulation"
	case SceneTarget:
		return "Target SIP"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// parameter is one editable input field.
type parameter struct {
	label string
	input textinput.Model
}

func newParameter(label, initial, placeholder string) parameter {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(initial)
	ti.CharLimit = 16
	ti.Width = 14
	return parameter{label: label, input: ti}
}

// Model is the what-if explorer state: editable parameters on the left,
// recomputed results on the right.
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	engine *calculation.CalculationEngine

	sipParams    []parameter
	swpParams    []parameter
	targetParams []parameter
	focusIndex   int

	sipResult    *domain.SIPResult
	swpResult    *domain.SWPResult
	targetResult *domain.TargetSIPResult

	err error
}

// NewModel creates the application model with sensible starting values.
func NewModel() Model {
	m := Model{
		currentScene: SceneSIP,
		engine:       calculation.NewCalculationEngine(),
		width:        80,
		height:       24,
		sipParams: []parameter{
			newParameter("Monthly SIP", "10000", "amount"),
			newParameter("Annual Return %", "12", "percent"),
			newParameter("Years", "10", "years"),
			newParameter("Step-up %", "0", "percent"),
		},
		swpParams: []parameter{
			newParameter("Corpus", "1000000", "amount"),
			newParameter("Monthly Withdrawal", "8000", "amount"),
			newParameter("Annual Return %", "8", "percent"),
			newParameter("Step-up %", "0", "percent"),
		},
		targetParams: []parameter{
			newParameter("Target Corpus", "10000000", "amount"),
			newParameter("Annual Return %", "12", "percent"),
			newParameter("Months", "240", "months"),
		},
	}
	m.focusParam(0)
	m.recalculate()
	return m
}

// Init is required by the tea.Model interface.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// activeParams returns the parameter set for the current scene.
func (m *Model) activeParams() []parameter {
	switch m.currentScene {
	case SceneSWP:
		return m.swpParams
	case SceneTarget:
		return m.targetParams
	default:
		return m.sipParams
	}
}

func (m *Model) focusParam(index int) {
	params := m.activeParams()
	if len(params) == 0 {
		return
	}
	m.focusIndex = (index + len(params)) % len(params)
	for i := range params {
		if i == m.focusIndex {
			params[i].input.Focus()
		} else {
			params[i].input.Blur()
		}
	}
}

func (m *Model) paramValue(params []parameter, index int) decimal.Decimal {
	v, err := decimal.NewFromString(params[index].input.Value())
	if err != nil {
		return decimal.Zero
	}
	return v
}

// recalculate reruns the calculator behind the current scene.
func (m *Model) recalculate() {
	m.err = nil
	switch m.currentScene {
	case SceneSIP:
		m.recalculateSIP()
	case SceneSWP:
		m.recalculateSWP()
	case SceneTarget:
		m.recalculateTarget()
	}
}

func (m *Model) recalculateSIP() {
	monthly := m.paramValue(m.sipParams, 0)
	rate := m.paramValue(m.sipParams, 1)
	years := m.paramValue(m.sipParams, 2)
	stepUp := m.paramValue(m.sipParams, 3)

	if monthly.IsZero() || years.IsZero() {
		m.sipResult = nil
		return
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	months := int(years.Mul(decimal.NewFromInt(12)).IntPart())
	stream := domain.ContributionStream{
		MonthlyAmount:     monthly,
		AnnualRatePercent: rate,
		StartDate:         start,
		EndDate:           start.AddDate(0, months-1, 0),
	}
	if stepUp.GreaterThan(decimal.Zero) {
		stream.StepUp = &domain.StepUp{Enabled: true, AnnualRatePercent: stepUp}
	}
	m.sipResult = m.engine.ProjectSIP(stream, nil)
}

func (m *Model) recalculateSWP() {
	corpus := m.paramValue(m.swpParams, 0)
	monthly := m.paramValue(m.swpParams, 1)
	rate := m.paramValue(m.swpParams, 2)
	stepUp := m.paramValue(m.swpParams, 3)

	if corpus.IsZero() || monthly.IsZero() {
		m.swpResult = nil
		return
	}

	stream := domain.WithdrawalStream{
		MonthlyAmount:     monthly,
		AnnualRatePercent: rate,
	}
	if stepUp.GreaterThan(decimal.Zero) {
		stream.StepUp = &domain.StepUp{Enabled: true, AnnualRatePercent: stepUp}
	}
	m.swpResult = m.engine.SimulateSWP(corpus, stream)
}

func (m *Model) recalculateTarget() {
	target := m.paramValue(m.targetParams, 0)
	rate := m.paramValue(m.targetParams, 1)
	months := int(m.paramValue(m.targetParams, 2).IntPart())

	if target.IsZero() || months <= 0 {
		m.targetResult = nil
		return
	}
	m.targetResult = m.engine.RequiredMonthlySIP(target, rate, months, time.Now().UTC(), nil)
}
