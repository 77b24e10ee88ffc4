package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/timekeeper-tui/internal/models"
	"github.com/j-veylop/timekeeper-tui/internal/ui/styles"
)

// StatusBar renders the status line across width with hint text on the
// right.
func StatusBar(today time.Duration, tracking bool, hint string, width int) string {
	left := fmt.Sprintf("⏱ Today %s · %s",
		styles.BigNumberStyle.Render(models.FormatDuration(today)),
		stateLabel(tracking))

	right := styles.HelpStyle.Render(hint)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return styles.StatusBarStyle.Width(max(width, 0)).Render(left)
	}
	return styles.StatusBarStyle.Width(width).Render(left + fmt.Sprintf("%*s", gap, "") + right)
}

func stateLabel(tracking bool) string {
	if tracking {
		return styles.TrackingStyle.Render(TrackingGlyph + " tracking")
	}
	return styles.IdleStyle.Render(IdleGlyph + " idle")
}
