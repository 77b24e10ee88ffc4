package app

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/timekeeper-tui/internal/services"
)

func TestTickCommands(t *testing.T) {
	if timeoutTickCmd(0) == nil {
		t.Error("timeoutTickCmd returned nil")
	}
	if displayTickCmd(-time.Second) == nil {
		t.Error("displayTickCmd returned nil")
	}
}

func TestNotificationCommands(t *testing.T) {
	tests := []struct {
		name         string
		fn           func(string) tea.Cmd
		want         NotificationType
		wantDuration time.Duration
	}{
		{"Success", notifySuccessCmd, NotificationSuccess, DefaultNotificationDuration},
		{"Error", notifyErrorCmd, NotificationError, LongNotificationDuration},
		{"Warning", notifyWarningCmd, NotificationWarning, DefaultNotificationDuration},
		{"Info", notifyInfoCmd, NotificationInfo, QuickNotificationDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.fn("msg")()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Duration != tt.wantDuration {
				t.Errorf("Duration = %v, want %v", addMsg.Duration, tt.wantDuration)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	called := false
	msg := Confirm("Sure?", func() tea.Cmd {
		called = true
		return nil
	})()

	confirm, ok := msg.(ConfirmMsg)
	if !ok {
		t.Fatalf("Expected ConfirmMsg, got %T", msg)
	}
	if confirm.Prompt != "Sure?" {
		t.Errorf("Prompt = %q", confirm.Prompt)
	}
	if called {
		t.Fatal("OnConfirm must not run before confirmation")
	}
	confirm.OnConfirm()
	if !called {
		t.Error("OnConfirm was not wired")
	}
}

func TestWaitForServiceEventCmd(t *testing.T) {
	ch := make(chan services.ServiceEvent, 1)
	ch <- services.TrackingStoppedEvent{Summary: "stopped"}

	msg := waitForServiceEventCmd(ch)()
	evt, ok := msg.(ServiceEventMsg)
	if !ok {
		t.Fatalf("Expected ServiceEventMsg, got %T", msg)
	}
	if _, ok := evt.Event.(services.TrackingStoppedEvent); !ok {
		t.Errorf("Event = %T", evt.Event)
	}

	close(ch)
	if msg := waitForServiceEventCmd(ch)(); msg != nil {
		t.Errorf("closed channel should yield nil, got %T", msg)
	}
}

func TestDefaultExportPath(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 5, 9, 0, time.Local)
	got := DefaultExportPath(filepath.Join("data", "time-tracking.json"), now)
	want := filepath.Join("data", "exports", "timekeeper-export-20240301-140509.json")
	if got != want {
		t.Errorf("DefaultExportPath() = %s, want %s", got, want)
	}
}

func TestExportCmd_Error(t *testing.T) {
	cfg := testConfig(t)
	_, mgr, _ := newTestModel(t, cfg)

	// A path below a regular file cannot be created.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := mgr.ExportTo(blocker); err != nil {
		t.Fatalf("ExportTo() error = %v", err)
	}

	msg := exportCmd(mgr, filepath.Join(blocker, "export.json"))()
	res, ok := msg.(ExportResultMsg)
	if !ok {
		t.Fatalf("Expected ExportResultMsg, got %T", msg)
	}
	if res.Error == nil {
		t.Error("export below a file should fail")
	}
}
