// Package activity carries user-activity signals from the host to the
// tracker.
package activity

import "time"

// Source delivers activity timestamps to registered callbacks.
type Source interface {
	// OnActivity registers fn and returns a function that removes it.
	OnActivity(fn func(time.Time)) (unsubscribe func())
}

// Bus is a Source fed by Emit. Callbacks run synchronously on the
// emitting goroutine in registration order. Bus is not safe for
// concurrent use.
type Bus struct {
	nextID    int
	listeners []listener
}

var _ Source = (*Bus)(nil)

type listener struct {
	id int
	fn func(time.Time)
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// OnActivity implements Source.
func (b *Bus) OnActivity(fn func(time.Time)) func() {
	if fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})

	return func() {
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers t to every registered callback.
func (b *Bus) Emit(t time.Time) {
	for _, l := range b.listeners {
		l.fn(t)
	}
}

// Len returns the number of registered callbacks.
func (b *Bus) Len() int {
	return len(b.listeners)
}
