package tracker

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/timekeeper-tui/internal/app"
	"github.com/j-veylop/timekeeper-tui/internal/models"
)

var now = time.Date(2024, 3, 10, 15, 0, 0, 0, time.Local)

func trackingSnapshot() app.Snapshot {
	start := now.Add(-25 * time.Minute)
	return app.Snapshot{
		At:           now,
		Tracking:     true,
		Session:      models.NewSession(start, "/work/project"),
		LastActivity: now.Add(-time.Minute),
		Timeout:      5 * time.Minute,
		Summary: models.Summary{
			Tracking:      true,
			Today:         2 * time.Hour,
			SessionsToday: 3,
			AllTime:       10 * time.Hour,
			LastDays: []models.DaySummary{
				{Date: "2024-03-10", Total: 2 * time.Hour, Sessions: 3},
				{Date: "2024-03-08", Total: 4 * time.Hour, Sessions: 1},
			},
		},
	}
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.indicator.Tracking() {
		t.Error("indicator should start idle")
	}
}

func TestModel_Init(t *testing.T) {
	state := app.NewState()
	if cmd := New(state).Init(); cmd != nil {
		t.Error("Init should not pulse while idle")
	}

	state.SetSnapshot(trackingSnapshot())
	if cmd := New(state).Init(); cmd == nil {
		t.Error("Init should start the pulse for a running session")
	}
}

func TestModel_SyncIndicator(t *testing.T) {
	state := app.NewState()
	m := New(state)

	state.SetSnapshot(trackingSnapshot())
	if _, cmd := m.Update(app.TrackingChangedMsg{}); cmd == nil {
		t.Error("tracking change should start the pulse")
	}
	if !m.indicator.Tracking() {
		t.Error("indicator should show tracking")
	}
	if _, cmd := m.Update(app.DisplayTickMsg{Time: now}); cmd != nil {
		t.Error("display tick should not start a second pulse")
	}
	if _, cmd := m.Update(app.TabSwitchMsg{Tab: app.TabTracker}); cmd == nil {
		t.Error("switching back should restart the pulse")
	}
	if _, cmd := m.Update(app.TabSwitchMsg{Tab: app.TabHistory}); cmd != nil {
		t.Error("switching away should not touch the pulse")
	}

	snap := trackingSnapshot()
	snap.Tracking = false
	state.SetSnapshot(snap)
	m.Update(app.DisplayTickMsg{Time: now})
	if m.indicator.Tracking() {
		t.Error("indicator should go idle")
	}
}

func TestModel_Update(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 20)

	updated, _ := m.Update(nil)
	if updated == nil {
		t.Error("Update returned nil model")
	}
	if updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown}); updated == nil {
		t.Error("Update returned nil model")
	}
}

func TestModel_View(t *testing.T) {
	state := app.NewState()
	m := New(state)
	m.SetSize(100, 40)

	if view := m.View(); !strings.Contains(view, "Waiting") {
		t.Errorf("View before the first snapshot = %q", view)
	}

	idle := trackingSnapshot()
	idle.Tracking = false
	state.SetSnapshot(idle)
	view := m.View()
	if !strings.Contains(view, "Press s to start tracking") {
		t.Error("idle View should hint at the start key")
	}
	if !strings.Contains(view, "2h 00m 00s") {
		t.Error("idle View should still show today's total")
	}

	state.SetSnapshot(trackingSnapshot())
	m.Update(app.TrackingChangedMsg{})
	view = m.View()

	for _, want := range []string{
		"Timekeeper",
		"tracking",
		"25m 00s",     // session elapsed
		"1m 00s ago",  // last activity
		"4m 00s",      // until pause
		"10h 00m 00s", // all time
		"/work/project",
		"2024-03-08",  // peak day
		"Last 7 days",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
}

func TestSinceText(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"never", time.Time{}, "never"},
		{"now", now, "just now"},
		{"future", now.Add(time.Second), "just now"},
		{"ago", now.Add(-12 * time.Second), "12s ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sinceText(now, tt.t); got != tt.want {
				t.Errorf("sinceText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 || len(m.FullHelp()) == 0 {
		t.Error("help bindings should not be empty")
	}
}
