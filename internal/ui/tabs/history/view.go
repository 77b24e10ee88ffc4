package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/timekeeper-tui/internal/models"
	"github.com/j-veylop/timekeeper-tui/internal/ui/components"
	"github.com/j-veylop/timekeeper-tui/internal/ui/styles"
)

// View renders the history tab.
func (m *Model) View() string {
	if len(m.rows) == 0 {
		return m.renderEmpty()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderDailyChart(),
		m.renderTable(),
		m.renderWeeklyPattern(),
	)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderEmpty() string {
	hint := "Tracked days will appear here once a session has run."
	if m.services == nil {
		hint = "Tracking data is not available."
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		styles.HelpStyle.Render("No tracked time in this range yet."),
		styles.HelpStyle.Render(hint),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("History")

	rangeStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)

	rangeIndicator := rangeStyle.Render(fmt.Sprintf("[t] %s", m.timeRange.String()))
	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", rangeIndicator)

	var subtitle string
	if len(m.rows) > 0 {
		var total time.Duration
		for _, r := range m.rows {
			total += r.Total
		}
		subtitle = styles.HelpStyle.Render(fmt.Sprintf("%s across %d days · %s → %s",
			models.FormatMinutes(total),
			len(m.rows),
			m.rows[len(m.rows)-1].Date,
			m.rows[0].Date,
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

// chartDays is the width of the chart window in days. For all time it
// spans from the oldest row to today.
func (m *Model) chartDays() int {
	if days := m.timeRange.Days(); days > 0 {
		return days
	}
	if len(m.rows) == 0 {
		return 0
	}
	oldest, err := models.ParseDayKey(m.rows[len(m.rows)-1].Date)
	if err != nil {
		return len(m.rows)
	}
	today, _ := models.ParseDayKey(models.DayKey(m.asOf()))
	return int(today.Sub(oldest).Hours()/24) + 1
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func (m *Model) renderDailyChart() string {
	cardWidth := m.cardWidth()

	rows := []string{styles.CardTitleStyle.Render("Daily Time")}

	chartWidth := max(cardWidth-18, 30)
	chart := components.RenderDailyChart(m.rows, m.chartDays(), m.asOf(), chartWidth, 8)
	for line := range strings.SplitSeq(chart, "\n") {
		rows = append(rows, "  "+line)
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderTable() string {
	cardWidth := m.cardWidth()
	today := models.DayKey(m.asOf())

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.TableHeaderStyle.Width(14).Render("Date"),
		styles.TableHeaderStyle.Width(14).Render("Total"),
		styles.TableHeaderStyle.Width(10).Render("Sessions"),
	)

	lines := []string{styles.CardTitleStyle.Render("Per Day"), header}
	for _, r := range m.rows {
		cell := styles.TableCellStyle
		if r.Date == today {
			cell = styles.TableSelectedStyle
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			cell.Width(14).Render(r.Date),
			cell.Width(14).Render(models.FormatMinutes(r.Total)),
			cell.Width(10).Render(fmt.Sprintf("%d", r.Sessions)),
		))
	}

	lines = append(lines, "", components.RenderDayBars(m.rows, cardWidth-6))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

func (m *Model) renderWeeklyPattern() string {
	rows := []string{
		styles.CardTitleStyle.Render("Weekly Pattern"),
		"  " + components.RenderWeekdayPattern(m.rows),
	}
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
