// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/timekeeper-tui/internal/models"
	"github.com/j-veylop/timekeeper-tui/internal/ui/styles"
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue),
	)
}

// DailyHours turns newest-first day rows into an oldest-first series of
// hours, filling days without rows with zero.
func DailyHours(rows []models.DaySummary, days int, asOf time.Time) []float64 {
	if days <= 0 {
		days = len(rows)
	}
	if days == 0 {
		return nil
	}

	byDate := make(map[string]time.Duration, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r.Total
	}

	series := make([]float64, days)
	for i := range days {
		day := models.DayKey(asOf.AddDate(0, 0, -(days - 1 - i)))
		series[i] = byDate[day].Hours()
	}
	return series
}

// RenderDailyChart plots hours per day for the last days ending at asOf.
func RenderDailyChart(rows []models.DaySummary, days int, asOf time.Time, width, height int) string {
	series := DailyHours(rows, days, asOf)
	if len(series) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	caption := fmt.Sprintf("hours per day, last %d days", len(series))
	if len(series) == 1 {
		// asciigraph needs two points to draw a line
		series = append([]float64{0}, series...)
	}
	return RenderLineChart(series, width, height, caption)
}

// RenderDayBars renders one horizontal bar per day scaled to the busiest day.
func RenderDayBars(rows []models.DaySummary, width int) string {
	if len(rows) == 0 {
		return ""
	}

	var peak time.Duration
	for _, r := range rows {
		peak = max(peak, r.Total)
	}
	if peak == 0 {
		peak = time.Second
	}

	const labelWidth = 10
	const valueWidth = 12
	barWidth := max(width-labelWidth-valueWidth-4, 10)

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		percent := float64(r.Total) / float64(peak) * 100
		value := lipgloss.NewStyle().
			Width(valueWidth).
			Align(lipgloss.Right).
			Foreground(styles.TextPrimary).
			Render(models.FormatMinutes(r.Total))
		lines = append(lines, fmt.Sprintf("%-*s │%s %s", labelWidth, r.Date, RenderGradientBar(percent, barWidth), value))
	}
	return strings.Join(lines, "\n")
}

// RenderWeekdayPattern sums the rows per weekday and renders one spark per day.
func RenderWeekdayPattern(rows []models.DaySummary) string {
	dayNames := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	totals := make([]float64, 7)

	for _, r := range rows {
		day, err := models.ParseDayKey(r.Date)
		if err != nil {
			continue
		}
		totals[day.Weekday()] += r.Total.Hours()
	}

	maxVal := 0.0
	for _, v := range totals {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	parts := make([]string, 0, 7)
	for i, v := range totals {
		intensity := int((v / maxVal) * float64(len(sparkChars)-1))
		intensity = min(max(intensity, 0), len(sparkChars)-1)
		parts = append(parts, fmt.Sprintf("%s %s", dayNames[i], string(sparkChars[intensity])))
	}
	return strings.Join(parts, " ")
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)

		style := lipgloss.NewStyle().Foreground(styles.Subtle)
		if val > 0 {
			style = lipgloss.NewStyle().Foreground(styles.Primary)
		}
		result.WriteString(style.Render(string(sparkChars[normalized])))
	}

	return result.String()
}
