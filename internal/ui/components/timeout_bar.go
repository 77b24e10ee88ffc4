package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/timekeeper-tui/internal/logger"
	"github.com/j-veylop/timekeeper-tui/internal/models"
	"github.com/j-veylop/timekeeper-tui/internal/ui/styles"
)

// TimeoutBar shows how much of the inactivity timeout is left before the
// open session is paused.
type TimeoutBar struct {
	progress progress.Model
}

// NewTimeoutBar creates a bar with a red-to-green gradient.
func NewTimeoutBar() TimeoutBar {
	return TimeoutBar{
		progress: progress.New(
			progress.WithScaledGradient("#ff6b6b", "#51cf66"),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

// RemainingPercent returns remaining/timeout as 0-100.
func RemainingPercent(remaining, timeout time.Duration) float64 {
	if timeout <= 0 {
		return 0
	}
	percent := float64(remaining) / float64(timeout) * 100
	return min(max(percent, 0), 100)
}

// View renders "label [bar] 4m 10s".
func (t TimeoutBar) View(remaining, timeout time.Duration, label string, width int) string {
	percent := RemainingPercent(remaining, timeout)

	t.progress.Width = max(width-38, 10)
	bar := t.progress.ViewAs(percent / 100)

	labelStr := styles.ProgressLabelStyle.Width(16).Render(label)
	timeStr := styles.GetRemainingStyle(percent).
		Width(12).
		Align(lipgloss.Right).
		Render(models.FormatDuration(remaining))

	return lipgloss.JoinHorizontal(lipgloss.Center, labelStr, bar, " ", timeStr)
}

// RenderGradientBar renders just the bar part with gradient colors.
func RenderGradientBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}

	filled := int(float64(width) * percent / 100)
	filled = min(max(filled, 0), width)

	var b strings.Builder
	for i := range width {
		if i < filled {
			t := float64(i) / float64(max(1, width-1))
			color := interpolateColor("#6c5ce7", "#ff6ec7", t)
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("█"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(styles.Subtle).Render("░"))
		}
	}
	return b.String()
}

func interpolateColor(fromHex, toHex string, t float64) string {
	from := hexToRGB(fromHex)
	to := hexToRGB(toHex)

	r := int(float64(from[0]) + t*(float64(to[0])-float64(from[0])))
	g := int(float64(from[1]) + t*(float64(to[1])-float64(from[1])))
	b := int(float64(from[2]) + t*(float64(to[2])-float64(from[2])))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func hexToRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		logger.Error("failed to parse hex color", "hex", hex, "error", err)
		return [3]int{0, 0, 0}
	}
	return [3]int{r, g, b}
}
