package domain

// Event is emitted by the timer machine for the presentation layer.
type Event interface {
	eventName() string
}

type TimerStarted struct {
	Mode Mode
}

type TimerPaused struct {
	Mode Mode
}

type TimerReset struct {
	Mode Mode
}

// BreakReminder fires once per continuous-work streak.
type BreakReminder struct {
	ContinuousSeconds int
}

// SessionCompleted fires when the countdown hits zero. AwaitingFocus is set
// for work and mock exam segments.
type SessionCompleted struct {
	Mode          Mode
	AwaitingFocus bool
}

type ModeChanged struct {
	From Mode
	To   Mode
}

type SessionRecorded struct {
	Session Session
}

func (TimerStarted) eventName() string     { return "timer_started" }
func (TimerPaused) eventName() string      { return "timer_paused" }
func (TimerReset) eventName() string       { return "timer_reset" }
func (BreakReminder) eventName() string    { return "break_reminder" }
func (SessionCompleted) eventName() string { return "session_completed" }
func (ModeChanged) eventName() string      { return "mode_changed" }
func (SessionRecorded) eventName() string  { return "session_recorded" }

func EventName(e Event) string {
	if e == nil {
		return ""
	}
	return e.eventName()
}
