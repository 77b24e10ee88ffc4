package app

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/timekeeper-tui/internal/services"
)

const (
	// DefaultTimeoutCheckInterval is used when the configuration has none.
	DefaultTimeoutCheckInterval = 30 * time.Second

	// DefaultDisplayRefreshInterval is used when the configuration has none.
	DefaultDisplayRefreshInterval = time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// timeoutTickCmd schedules the next inactivity check.
func timeoutTickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = DefaultTimeoutCheckInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TimeoutTickMsg{Time: t}
	})
}

// displayTickCmd schedules the next display refresh.
func displayTickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = DefaultDisplayRefreshInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return DisplayTickMsg{Time: t}
	})
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// exportCmd writes the ledger to path. The ledger belongs to the update
// loop, so the write happens before the command is returned and only the
// result travels as a message.
func exportCmd(mgr *services.Manager, path string) tea.Cmd {
	err := mgr.ExportTo(path)
	return func() tea.Msg {
		return ExportResultMsg{Path: path, Error: err}
	}
}

// DefaultExportPath names an export file next to the tracking data.
func DefaultExportPath(storageLocation string, now time.Time) string {
	dir := filepath.Dir(storageLocation)
	return filepath.Join(dir, "exports", "timekeeper-export-"+now.Format("20060102-150405")+".json")
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// Confirm returns a command that opens the confirm dialog.
func Confirm(prompt string, onConfirm func() tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		return ConfirmMsg{Prompt: prompt, OnConfirm: onConfirm}
	}
}
