package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/timekeeper-tui/internal/ui/styles"
)

const (
	// TrackingGlyph marks a running session.
	TrackingGlyph = "●"
	// IdleGlyph marks the idle state.
	IdleGlyph = "○"
)

// Indicator shows the tracking state. While tracking it pulses; when idle
// it renders a static hollow dot.
type Indicator struct {
	spinner  spinner.Model
	tracking bool
}

// NewIndicator creates an idle indicator.
func NewIndicator() Indicator {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{TrackingGlyph, TrackingGlyph, "◉", "◎"},
		FPS:    spinner.Pulse.FPS,
	}
	s.Style = lipgloss.NewStyle().Foreground(styles.Success)
	return Indicator{spinner: s}
}

// SetTracking switches the indicator state. It returns the tick command
// that starts the pulse when tracking begins.
func (i *Indicator) SetTracking(tracking bool) tea.Cmd {
	started := tracking && !i.tracking
	i.tracking = tracking
	if started {
		return i.spinner.Tick
	}
	return nil
}

// Tracking reports the displayed state.
func (i Indicator) Tracking() bool {
	return i.tracking
}

// Update advances the pulse. Ticks stop once the indicator is idle.
func (i Indicator) Update(msg tea.Msg) (Indicator, tea.Cmd) {
	if !i.tracking {
		return i, nil
	}
	var cmd tea.Cmd
	i.spinner, cmd = i.spinner.Update(msg)
	return i, cmd
}

// View renders the glyph alone.
func (i Indicator) View() string {
	if !i.tracking {
		return styles.IdleStyle.Render(IdleGlyph)
	}
	return i.spinner.View()
}

// ViewWithLabel renders the glyph followed by "tracking" or "idle".
func (i Indicator) ViewWithLabel() string {
	label := "idle"
	if i.tracking {
		label = "tracking"
	}
	return i.View() + " " + styles.GetStateStyle(i.tracking).Render(label)
}
