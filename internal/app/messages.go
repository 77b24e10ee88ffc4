package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/timekeeper-tui/internal/services"
)

// TimeoutTickMsg drives the inactivity check.
type TimeoutTickMsg struct {
	Time time.Time
}

// DisplayTickMsg drives the live figures. Tabs refresh from the state
// snapshot when they receive it.
type DisplayTickMsg struct {
	Time time.Time
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// ConfirmMsg opens a yes/no dialog. OnConfirm runs on the update loop when
// the user answers yes.
type ConfirmMsg struct {
	Prompt    string
	OnConfirm func() tea.Cmd
}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Path  string
	Error error
}

// TrackingChangedMsg tells the tabs that tracking state or totals changed
// outside a display tick.
type TrackingChangedMsg struct{}
