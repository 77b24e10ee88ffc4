// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/timekeeper-tui/internal/logger"
	"github.com/j-veylop/timekeeper-tui/internal/services"
	"github.com/j-veylop/timekeeper-tui/internal/ui/components"
	"github.com/j-veylop/timekeeper-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabTracker is the ID for the live tracker tab.
	TabTracker TabID = iota
	// TabHistory is the ID for the history tab.
	TabHistory
	// TabInfo is the ID for the info tab.
	TabInfo
)

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabTracker:
		return "Tracker"
	case TabHistory:
		return "History"
	case TabInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Start   key.Binding
	Stop    key.Binding
	Export  key.Binding
	Reset   key.Binding
	Help    key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{}
	km = setTabKeys(km)
	km = setActionKeys(km)
	km = setDialogKeys(km)
	return km
}

func setTabKeys(k KeyMap) KeyMap {
	k.Tab1 = key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "tracker"))
	k.Tab2 = key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "history"))
	k.Tab3 = key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "info"))
	k.NextTab = key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab/→", "next tab"))
	k.PrevTab = key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab/←", "prev tab"))
	return k
}

func setActionKeys(k KeyMap) KeyMap {
	k.Start = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start tracking"))
	k.Stop = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop tracking"))
	k.Export = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export data"))
	k.Reset = key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset all data"))
	k.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	k.Quit = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	return k
}

func setDialogKeys(k KeyMap) KeyMap {
	k.Confirm = key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm"))
	k.Cancel = key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n/esc", "cancel"))
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3},
		{k.NextTab, k.PrevTab},
		{k.Start, k.Stop, k.Export, k.Reset},
		{k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	// Tab bar styles
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	// Notification styles
	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	// Content styles
	Content lipgloss.Style
	Toast   lipgloss.Style
	Dialog  lipgloss.Style

	// Common styles
	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Warning lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	highlight := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	success := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	warning := lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"}
	errorColor := lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"}
	info := lipgloss.AdaptiveColor{Light: "#0087D7", Dark: "#5FAFFF"}

	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(highlight).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(subtle).Padding(0, 2)

	s.NotificationSuccess = lipgloss.NewStyle().Foreground(success).Padding(0, 1)
	s.NotificationError = lipgloss.NewStyle().Foreground(errorColor).Bold(true).Padding(0, 1)
	s.NotificationWarning = lipgloss.NewStyle().Foreground(warning).Padding(0, 1)
	s.NotificationInfo = lipgloss.NewStyle().Foreground(info).Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Toast = styles.ToastStyle
	s.Dialog = styles.ModalContentStyle

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(highlight)
	s.Subtle = lipgloss.NewStyle().Foreground(subtle)
	s.Warning = lipgloss.NewStyle().Foreground(warning).Bold(true)

	return s
}

// Model is the main application model.
type Model struct {
	// Tab management
	activeTab TabID
	tabs      []Tab
	tabNames  []string

	// Shared state
	state    *State
	services *services.Manager
	keymap   KeyMap
	styles   Styles

	// UI components
	spinner spinner.Model

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp bool
	ready    bool
	confirm  *ConfirmMsg

	// Service subscription
	eventChannel chan services.ServiceEvent

	now             func() time.Time
	timeoutInterval time.Duration
	displayInterval time.Duration
}

// NewModel initializes a new application model.
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := &Model{
		activeTab:       TabTracker,
		tabNames:        []string{"Tracker", "History", "Info"},
		tabs:            make([]Tab, 3),
		state:           NewState(),
		services:        mgr,
		keymap:          DefaultKeyMap(),
		styles:          DefaultStyles(),
		spinner:         s,
		now:             time.Now,
		timeoutInterval: DefaultTimeoutCheckInterval,
		displayInterval: DefaultDisplayRefreshInterval,
	}

	if mgr != nil {
		m.applyIntervals()
	}

	return m
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

// IsConfirming reports whether the confirm dialog is open.
func (m *Model) IsConfirming() bool {
	return m.confirm != nil
}

func (m *Model) applyIntervals() {
	cfg := m.services.Config()
	if cfg.TimeoutCheckInterval > 0 {
		m.timeoutInterval = cfg.TimeoutCheckInterval
	}
	if cfg.DisplayRefreshInterval > 0 {
		m.displayInterval = cfg.DisplayRefreshInterval
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		timeoutTickCmd(m.timeoutInterval),
		displayTickCmd(m.displayInterval),
	}

	if m.services != nil {
		m.refreshSnapshot()
		cmds = append(cmds, subscribeToServicesCmd(m.services))
		cmds = append(cmds, m.startupErrorCmds()...)
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// startupErrorCmds turns storage problems found at startup into toasts.
func (m *Model) startupErrorCmds() []tea.Cmd {
	errs := m.services.StartupErrors()
	cmds := make([]tea.Cmd, 0, len(errs))
	for _, err := range errs {
		cmds = append(cmds, notifyErrorCmd(err.Error()))
	}
	return cmds
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg, tea.FocusMsg:
		m.reportActivity()
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)

	case tea.KeyMsg:
		cmd, handled := m.handleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		cmds = append(cmds, m.handleAppMsg(msg)...)
	}

	if cmd := m.updateActiveTab(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// reportActivity forwards user input to the activity bus.
func (m *Model) reportActivity() {
	if m.services != nil {
		m.services.NotifyActivity(m.now())
	}
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TimeoutTickMsg:
		if m.services != nil {
			m.services.CheckTimeout()
		}
		cmds = append(cmds, timeoutTickCmd(m.timeoutInterval))

	case DisplayTickMsg:
		m.refreshSnapshot()
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, displayTickCmd(m.displayInterval))

	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))

	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEvent(msg.Event))
		if m.eventChannel != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
		}

	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}

	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)

	case ClearExpiredNotificationsMsg:
		m.state.ClearExpiredNotifications()

	case ErrorMsg:
		text := msg.Error.Error()
		if msg.Context != "" {
			text = msg.Context + ": " + text
		}
		cmds = append(cmds, notifyErrorCmd(text))

	case ExportResultMsg:
		m.state.ClearLoadingNotification()
		if msg.Error != nil {
			cmds = append(cmds, notifyErrorCmd(fmt.Sprintf("Export failed: %v", msg.Error)))
		} else {
			cmds = append(cmds, notifySuccessCmd("Exported to "+msg.Path))
		}

	case ConfirmMsg:
		m.confirm = &msg

	case TabSwitchMsg:
		m.activeTab = msg.Tab
		m.updateTabSizes()

	case ToggleHelpMsg:
		m.showHelp = !m.showHelp
	}
	return cmds
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateTabSizes()
}

// refreshSnapshot recomputes the merged figures. It never touches storage.
func (m *Model) refreshSnapshot() {
	if m.services == nil {
		return
	}
	now := m.now()
	session, tracking := m.services.CurrentSession()
	m.state.SetSnapshot(Snapshot{
		At:           now,
		Tracking:     tracking,
		Session:      session,
		LastActivity: m.services.LastActivity(),
		Timeout:      m.services.Timeout(),
		Summary:      m.services.Statistics(),
	})
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = m.tabs[m.activeTab].Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updateTabSizes() {
	// navbar (2 lines), status bar (1 line)
	contentHeight := max(0, m.height-3)

	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

func (m *Model) switchTab(id TabID) tea.Cmd {
	if len(m.tabs) == 0 {
		return nil
	}
	m.activeTab = TabID((int(id) + len(m.tabs)) % len(m.tabs))
	m.updateTabSizes()
	return m.updateActiveTab(TabSwitchMsg{Tab: m.activeTab})
}

// handleKeyMsg handles global keys. It reports whether the key was
// consumed; unconsumed keys go on to the active tab.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keymap.Quit) {
		return tea.Quit, true
	}
	if m.confirm != nil {
		return m.handleConfirmKey(msg), true
	}

	switch {

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil, true

	case m.showHelp && key.Matches(msg, m.keymap.Cancel):
		m.showHelp = false
		return nil, true

	case key.Matches(msg, m.keymap.Tab1):
		return m.switchTab(TabTracker), true

	case key.Matches(msg, m.keymap.Tab2):
		return m.switchTab(TabHistory), true

	case key.Matches(msg, m.keymap.Tab3):
		return m.switchTab(TabInfo), true

	case key.Matches(msg, m.keymap.NextTab):
		return m.switchTab(m.activeTab + 1), true

	case key.Matches(msg, m.keymap.PrevTab):
		return m.switchTab(m.activeTab - 1), true
	}

	if m.services == nil {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keymap.Start):
		if !m.services.StartTracking() {
			return notifyInfoCmd("Already tracking"), true
		}
		return m.trackingChanged(), true

	case key.Matches(msg, m.keymap.Stop):
		if !m.services.StopTracking() {
			return notifyInfoCmd("Not tracking"), true
		}
		return m.trackingChanged(), true

	case key.Matches(msg, m.keymap.Export):
		path := DefaultExportPath(m.services.Config().StorageLocation, m.now())
		m.state.SetLoadingNotification("Exporting tracked time...")
		return exportCmd(m.services, path), true

	case key.Matches(msg, m.keymap.Reset):
		return Confirm("Delete ALL tracked time? This cannot be undone.", m.resetData), true
	}

	return nil, false
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	dialog := m.confirm
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		m.confirm = nil
		if dialog.OnConfirm != nil {
			return dialog.OnConfirm()
		}
	case key.Matches(msg, m.keymap.Cancel):
		m.confirm = nil
		return notifyInfoCmd("Cancelled")
	}
	return nil
}

func (m *Model) resetData() tea.Cmd {
	// A failed save also arrives as an ErrorEvent, which raises the toast.
	if err := m.services.ResetData(); err != nil {
		logger.Warn("reset was not saved", "error", err)
	}
	return m.trackingChanged()
}

// trackingChanged refreshes the snapshot at once and tells the tabs.
func (m *Model) trackingChanged() tea.Cmd {
	m.refreshSnapshot()
	return m.updateActiveTab(TrackingChangedMsg{})
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.TrackingStartedEvent:
		return notifySuccessCmd(e.Summary)

	case services.TrackingStoppedEvent:
		return notifyInfoCmd(e.Summary)

	case services.TrackingPausedEvent:
		m.refreshSnapshot()
		return tea.Batch(notifyWarningCmd(e.Summary+", press s to resume"), m.updateActiveTab(TrackingChangedMsg{}))

	case services.DataResetEvent:
		return notifyWarningCmd(e.Summary)

	case services.ConfigChangedEvent:
		if m.services == nil {
			return nil
		}
		m.services.ApplyConfig(e.Config)
		m.applyIntervals()
		m.refreshSnapshot()
		return tea.Batch(notifyInfoCmd("Settings reloaded"), m.updateActiveTab(TrackingChangedMsg{}))

	case services.ErrorEvent:
		return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}

	return nil
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View())))
		return b.String()
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		b.WriteString(m.tabs[m.activeTab].View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	mainView := b.String()

	switch {
	case m.confirm != nil:
		mainView = m.overlayCentered(mainView, m.renderConfirm())
	case m.showHelp:
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	notifications := m.renderNotifications()
	if len(notifications) > 0 {
		return m.overlayToasts(mainView, notifications)
	}

	return mainView
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")
	for len(mainLines) < m.height {
		mainLines = append(mainLines, "")
	}

	overlayHeight := len(overlayLines)
	overlayWidth := lipgloss.Width(overlay)

	y := max((m.height-overlayHeight)/2, 0)
	x := max((m.width-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]

		left := ansi.Truncate(mainLine, x, "")
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderNavbar() string {
	var tabs []string

	for i, name := range m.tabNames {
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

func (m *Model) renderStatusBar() string {
	snap := m.state.Snapshot()
	return components.StatusBar(snap.Today(), snap.Tracking, "s start · x stop · ? help", m.width)
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style = m.styles.NotificationSuccess
			prefix = "[OK]"
		case NotificationError:
			style = m.styles.NotificationError
			prefix = "[ERR]"
		case NotificationWarning:
			style = m.styles.NotificationWarning
			prefix = "[WARN]"
		case NotificationInfo:
			style = m.styles.NotificationInfo
			prefix = "[INFO]"
		case NotificationLoading:
			style = m.styles.NotificationInfo
			prefix = m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	if len(toasts) == 0 {
		return mainView
	}

	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	toastWidth := lipgloss.Width(toastStack)
	startX := max(m.width-toastWidth-2, 0)

	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			padding := strings.Repeat(" ", startX-mainLineWidth)
			mainLines[lineIdx] = mainLine + padding + toastLine
		} else {
			truncated := ansi.Truncate(mainLine, startX, "")
			mainLines[lineIdx] = truncated + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderConfirm() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.ButtonActiveStyle.Render("y  Yes"),
		styles.ButtonInactiveStyle.Render("n  No"),
	)
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Warning.Render(m.confirm.Prompt),
		"",
		buttons,
	)
	return m.styles.Dialog.Render(content)
}

func (m *Model) renderHelp() string {
	var lines []string

	lines = append(lines, m.styles.Title.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	lines = append(lines, styles.SubTitleStyle.Render("Navigation"))
	lines = append(lines, helpRow("1-3", "Switch tabs"))
	lines = append(lines, helpRow("Tab", "Next tab"))
	lines = append(lines, helpRow("Shift+Tab", "Previous tab"))
	lines = append(lines, "")

	lines = append(lines, styles.SubTitleStyle.Render("Tracking"))
	for _, b := range []key.Binding{m.keymap.Start, m.keymap.Stop, m.keymap.Export, m.keymap.Reset} {
		lines = append(lines, helpRow(b.Help().Key, b.Help().Desc))
	}
	lines = append(lines, "")

	lines = append(lines, styles.SubTitleStyle.Render("General"))
	lines = append(lines, helpRow("?", "Toggle help"))
	lines = append(lines, helpRow("q/Ctrl+C", "Quit"))
	lines = append(lines, "")

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		tabHelp := m.tabs[m.activeTab].ShortHelp()
		if len(tabHelp) > 0 {
			lines = append(lines, styles.SubTitleStyle.Render(fmt.Sprintf("%s Tab", m.tabNames[m.activeTab])))
			for _, binding := range tabHelp {
				lines = append(lines, helpRow(binding.Help().Key, binding.Help().Desc))
			}
			lines = append(lines, "")
		}
	}

	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func helpRow(keys, desc string) string {
	return "  " + styles.HelpKeyStyle.Render(fmt.Sprintf("%-10s", keys)) + " " + desc
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"Tab %d: %s\n\n%s",
		m.activeTab+1,
		m.tabNames[m.activeTab],
		m.styles.Subtle.Render("This tab is not yet implemented."),
	)
	return m.styles.Content.Render(content)
}
