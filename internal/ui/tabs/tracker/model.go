// Package tracker provides the live tracking tab.
package tracker

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/timekeeper-tui/internal/app"
	"github.com/j-veylop/timekeeper-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the tracker tab.
type keyMap struct {
	Up   key.Binding
	Down key.Binding
}

// defaultKeyMap returns the default key bindings for the tracker tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the tracker tab state.
type Model struct {
	state      *app.State
	keys       keyMap
	viewport   viewport.Model
	indicator  components.Indicator
	timeoutBar components.TimeoutBar
	width      int
	height     int
}

// New creates a new tracker tab.
func New(state *app.State) *Model {
	return &Model{
		state:      state,
		keys:       defaultKeyMap(),
		viewport:   viewport.New(0, 0),
		indicator:  components.NewIndicator(),
		timeoutBar: components.NewTimeoutBar(),
	}
}

// Init starts the indicator if a session is already running.
func (m *Model) Init() tea.Cmd {
	return m.syncIndicator(true)
}

// Update handles messages for the tracker tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.DisplayTickMsg, app.TrackingChangedMsg:
		return m, m.syncIndicator(false)

	case app.TabSwitchMsg:
		// Ticks are only routed to the active tab, so the pulse may have
		// stopped while another tab was shown.
		if msg.Tab == app.TabTracker {
			return m, m.syncIndicator(true)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.indicator, cmd = m.indicator.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// syncIndicator matches the indicator to the snapshot. With restart set a
// fresh pulse is started even if the indicator already shows tracking.
func (m *Model) syncIndicator(restart bool) tea.Cmd {
	tracking := m.state.Snapshot().Tracking
	if restart {
		m.indicator.SetTracking(false)
	}
	return m.indicator.SetTracking(tracking)
}

// SetSize sets the available size for the tracker tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 0)
	m.viewport.Height = max(height-2, 0)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Up, m.keys.Down}}
}
