package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/timekeeper-tui/internal/models"
	"github.com/j-veylop/timekeeper-tui/internal/ui/styles"
	"github.com/j-veylop/timekeeper-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Settings in effect and build information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Settings")}

	cfg := m.config()
	if cfg == nil {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
		return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	rows = append(rows,
		m.renderConfigRow("Tracking on start", onOff(cfg.TrackingEnabled)),
		m.renderConfigRow("Notifications", onOff(cfg.ShowNotifications)),
		m.renderConfigRow("Inactivity timeout", models.FormatMinutes(m.services.Timeout())),
		m.renderConfigRow("Timeout check", cfg.TimeoutCheckInterval.String()),
		m.renderConfigRow("Display refresh", cfg.DisplayRefreshInterval.String()),
		"",
		m.renderConfigRow("Storage backend", cfg.StorageBackend),
		m.renderConfigRow("Storage location", m.services.StoreLocation()),
		m.renderConfigRow("Settings file", orNone(cfg.EnvFile)),
		m.renderConfigRow("Log file", orNone(cfg.LogFile)),
		m.renderConfigRow("Log level", cfg.LogLevel),
	)

	if cfg.EnvFile != "" {
		rows = append(rows, "", styles.HelpStyle.Render("Edits to the settings file apply without a restart"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(20).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About Timekeeper"),
		m.renderConfigRow("Version", version.GetVersion()),
		m.renderConfigRow("Build Date", version.GetDate()),
		m.renderConfigRow("Git Commit", version.GetCommit()),
		m.renderConfigRow("Go Version", runtime.Version()),
		m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	}

	snap := m.state.Snapshot()
	rows = append(rows, "",
		fmt.Sprintf("Active days, last 7: %s", styles.InfoTextStyle.Render(fmt.Sprintf("%d", snap.Summary.TrackedDays()))),
	)

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
