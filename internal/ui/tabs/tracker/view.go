package tracker

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/timekeeper-tui/internal/app"
	"github.com/j-veylop/timekeeper-tui/internal/models"
	"github.com/j-veylop/timekeeper-tui/internal/tracker"
	"github.com/j-veylop/timekeeper-tui/internal/ui/components"
	"github.com/j-veylop/timekeeper-tui/internal/ui/styles"
)

// View renders the tracker tab.
func (m *Model) View() string {
	if !m.state.IsReady() {
		return styles.DocStyle.
			Width(m.width).
			Height(m.height).
			Render(styles.HelpStyle.Render("Waiting for the first update..."))
	}

	snap := m.state.Snapshot()

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderSessionCard(snap),
		m.renderTotalsCard(snap),
	)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Timekeeper")
	subtitle := styles.HelpStyle.Render("Tracks the time you actively spend in this workspace")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func (m *Model) renderSessionCard(snap app.Snapshot) string {
	rows := []string{
		styles.CardTitleStyle.Render("Session") + "  " + m.indicator.ViewWithLabel(),
	}

	if !snap.Tracking {
		rows = append(rows,
			row("Session", "none"),
			row("Timeout", models.FormatMinutes(snap.Timeout)),
			"",
			styles.InfoTextStyle.Render("╰─▶ Press s to start tracking"),
		)
		return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	rows = append(rows,
		row("Started", snap.Session.Started().Format("15:04:05")),
		row("Elapsed", models.FormatDuration(snap.SessionElapsed())),
		row("Last activity", sinceText(snap.At, snap.LastActivity)),
	)
	if snap.Session.ActiveFile != "" {
		rows = append(rows, row("Context", snap.Session.ActiveFile))
	}
	rows = append(rows, "", m.timeoutBar.View(snap.UntilPause(), snap.Timeout, "Pause in", m.cardWidth()-4))

	return styles.ActiveCardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderTotalsCard(snap app.Snapshot) string {
	rows := []string{
		styles.CardTitleStyle.Render("Totals"),
		styles.LabelStyle.Render("Today") + styles.BigNumberStyle.Render(models.FormatDuration(snap.Today())),
		row("All time", models.FormatDuration(snap.AllTime())),
		row("Sessions today", fmt.Sprintf("%d", snap.Summary.SessionsToday)),
		row("Daily average", models.FormatMinutes(snap.Summary.DailyAverage())),
	}

	if day, total := snap.Summary.PeakDay(); day != "" {
		rows = append(rows, row("Peak day", fmt.Sprintf("%s (%s)", day, models.FormatMinutes(total))))
	}

	series := components.DailyHours(snap.Summary.LastDays, tracker.SummaryDays, snap.At)
	rows = append(rows,
		"",
		styles.LabelStyle.Render(fmt.Sprintf("Last %d days", tracker.SummaryDays))+
			components.RenderSparkline(series, len(series)),
	)

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func row(label, value string) string {
	return styles.LabelStyle.Render(label) + styles.ValueStyle.Render(value)
}

// sinceText renders how long ago t was, e.g. "12s ago".
func sinceText(now, t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t).Truncate(time.Second)
	if d <= 0 {
		return "just now"
	}
	return models.FormatDuration(d) + " ago"
}
