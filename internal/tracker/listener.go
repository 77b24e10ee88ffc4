package tracker

// Listener receives tracker signals. Calls happen synchronously on the
// goroutine that drove the transition and must not block.
type Listener interface {
	OnStarted(summary string)
	OnStopped(summary string)
	OnPausedForInactivity(summary string)
	OnDataReset(summary string)
	OnError(err error)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Started             func(summary string)
	Stopped             func(summary string)
	PausedForInactivity func(summary string)
	DataReset           func(summary string)
	Error               func(err error)
}

// OnStarted implements Listener.
func (f ListenerFuncs) OnStarted(summary string) {
	if f.Started != nil {
		f.Started(summary)
	}
}

// OnStopped implements Listener.
func (f ListenerFuncs) OnStopped(summary string) {
	if f.Stopped != nil {
		f.Stopped(summary)
	}
}

// OnPausedForInactivity implements Listener.
func (f ListenerFuncs) OnPausedForInactivity(summary string) {
	if f.PausedForInactivity != nil {
		f.PausedForInactivity(summary)
	}
}

// OnDataReset implements Listener.
func (f ListenerFuncs) OnDataReset(summary string) {
	if f.DataReset != nil {
		f.DataReset(summary)
	}
}

// OnError implements Listener.
func (f ListenerFuncs) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}

// NopListener ignores every signal.
type NopListener struct{}

func (NopListener) OnStarted(string)             {}
func (NopListener) OnStopped(string)             {}
func (NopListener) OnPausedForInactivity(string) {}
func (NopListener) OnDataReset(string)           {}
func (NopListener) OnError(error)                {}
