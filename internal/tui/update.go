package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	NextField key.Binding
	PrevField key.Binding
	SIP       key.Binding
	SWP       key.Binding
	Target    key.Binding
	Help      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	SIP:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "sip")),
	SWP:       key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "swp")),
	Target:    key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "target")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Help):
			if m.currentScene != SceneHelp {
				m.previousScene = m.currentScene
				m.currentScene = SceneHelp
			}
			return m, nil

		case key.Matches(msg, keys.Back):
			if m.currentScene == SceneHelp {
				m.currentScene = m.previousScene
			}
			return m, nil

		case key.Matches(msg, keys.SIP):
			return m.switchScene(SceneSIP), nil
		case key.Matches(msg, keys.SWP):
			return m.switchScene(SceneSWP), nil
		case key.Matches(msg, keys.Target):
			return m.switchScene(SceneTarget), nil

		case key.Matches(msg, keys.NextField):
			m.focusParam(m.focusIndex + 1)
			return m, nil
		case key.Matches(msg, keys.PrevField):
			m.focusParam(m.focusIndex - 1)
			return m, nil
		}
	}

	if m.currentScene == SceneHelp {
		return m, nil
	}

	// Route everything else to the focused input and recompute.
	params := m.activeParams()
	var cmd tea.Cmd
	params[m.focusIndex].input, cmd = params[m.focusIndex].input.Update(msg)
	m.recalculate()
	return m, cmd
}

func (m Model) switchScene(scene Scene) Model {
	if m.currentScene == scene {
		return m
	}
	m.currentScene = scene
	m.focusParam(0)
	m.recalculate()
	return m
}
