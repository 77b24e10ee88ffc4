// Package notify surfaces tracker signals outside the terminal.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(title, message string) error
}

// Desktop sends native desktop notifications.
type Desktop struct {
	// Icon is an optional path passed to the platform notifier.
	Icon string
}

// Notify implements Notifier.
func (d Desktop) Notify(title, message string) error {
	if err := beeep.Notify(title, message, d.Icon); err != nil {
		return fmt.Errorf("desktop notification failed: %w", err)
	}
	return nil
}

// Nop discards notifications.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(string, string) error { return nil }

// Message is one recorded notification.
type Message struct {
	Title string
	Body  string
}

// Recorder keeps notifications in memory.
type Recorder struct {
	Messages []Message
	Err      error
}

// Notify implements Notifier. It records the message even when Err is set.
func (r *Recorder) Notify(title, message string) error {
	r.Messages = append(r.Messages, Message{Title: title, Body: message})
	return r.Err
}
