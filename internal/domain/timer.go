package domain

import (
	"fmt"
	"strings"
	"time"
)

type AppMode string

const (
	AppModePomodoro AppMode = "pomodoro"
	AppModeMockExam AppMode = "mockExam"
)

func ParseAppMode(raw string) (AppMode, error) {
	switch AppMode(strings.TrimSpace(raw)) {
	case AppModePomodoro:
		return AppModePomodoro, nil
	case AppModeMockExam:
		return AppModeMockExam, nil
	default:
		return "", newValidationError("app mode", fmt.Sprintf("unknown app mode %q", raw))
	}
}

type TimerStatus string

const (
	TimerIdle          TimerStatus = "idle"
	TimerRunning       TimerStatus = "running"
	TimerPausedStatus  TimerStatus = "paused"
	TimerAwaitingFocus TimerStatus = "awaitingFocus"
)

const (
	// BreakReminderSeconds is the continuous-work streak (2.5h) after which
	// the timer pauses and suggests a break.
	BreakReminderSeconds = 9000
	LongBreakEvery       = 4
	MinAdjustedSeconds   = 60
	maxDurationMinutes   = 600
)

// Durations are whole minutes per timer mode.
type Durations struct {
	Work      int
	Break     int
	LongBreak int
	MockExam  int
}

func DefaultDurations() Durations {
	return Durations{Work: 25, Break: 5, LongBreak: 15, MockExam: 120}
}

func (d Durations) Validate() error {
	for _, entry := range []struct {
		field string
		value int
	}{
		{"work minutes", d.Work},
		{"break minutes", d.Break},
		{"long break minutes", d.LongBreak},
		{"mock exam minutes", d.MockExam},
	} {
		if entry.value < 1 || entry.value > maxDurationMinutes {
			return newValidationError(entry.field, fmt.Sprintf("must be between 1 and %d", maxDurationMinutes))
		}
	}
	return nil
}

func (d Durations) SecondsFor(mode Mode) int {
	switch mode {
	case ModeBreak:
		return d.Break * 60
	case ModeLongBreak:
		return d.LongBreak * 60
	case ModeMockExam:
		return d.MockExam * 60
	default:
		return d.Work * 60
	}
}

// TimerState is the full, serializable state of a Machine.
type TimerState struct {
	AppMode           AppMode
	Mode              Mode
	Status            TimerStatus
	Remaining         int
	Total             int
	Elapsed           int
	ContinuousWork    int
	CompletedSessions int
	ReminderShown     bool
	ReminderPending   bool
	Section           string
	Durations         Durations
}

func (s TimerState) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Total-s.Remaining) / float64(s.Total)
}

func (s TimerState) ContinuousMinutes() int {
	return s.ContinuousWork / 60
}

// Machine is the pomodoro state machine. It is not safe for concurrent use;
// callers serialize access so a tick never interleaves with a transition.
type Machine struct {
	state TimerState
}

func NewMachine(durations Durations) *Machine {
	if durations.Validate() != nil {
		durations = DefaultDurations()
	}
	m := &Machine{state: TimerState{
		AppMode:   AppModePomodoro,
		Status:    TimerIdle,
		Durations: durations,
	}}
	m.switchMode(ModeWork)
	return m
}

// RestoreMachine rebuilds a machine from persisted state. A machine saved
// while running comes back paused since no ticks happened in between.
func RestoreMachine(state TimerState) *Machine {
	if state.Durations.Validate() != nil {
		state.Durations = DefaultDurations()
	}
	if _, err := ParseAppMode(string(state.AppMode)); err != nil {
		state.AppMode = AppModePomodoro
	}
	if _, err := ParseMode(string(state.Mode)); err != nil {
		state.Mode = ModeWork
		state.Total = 0
	}
	switch state.Status {
	case TimerRunning:
		state.Status = TimerPausedStatus
	case TimerIdle, TimerPausedStatus, TimerAwaitingFocus:
	default:
		state.Status = TimerIdle
	}
	if state.Total <= 0 || state.Remaining < 0 || state.Remaining > state.Total {
		state.Total = state.Durations.SecondsFor(state.Mode)
		state.Remaining = state.Total
		state.Elapsed = 0
	}
	if state.Elapsed < 0 {
		state.Elapsed = 0
	}
	if state.Status != TimerPausedStatus {
		state.ReminderPending = false
	}
	if state.ContinuousWork < 0 {
		state.ContinuousWork = 0
	}
	if state.CompletedSessions < 0 {
		state.CompletedSessions = 0
	}
	return &Machine{state: state}
}

func (m *Machine) State() TimerState {
	return m.state
}

func (m *Machine) Start(sections Sections) ([]Event, error) {
	switch m.state.Status {
	case TimerRunning:
		return nil, nil
	case TimerAwaitingFocus:
		return nil, ErrAwaitingFocus
	}

	if len(sections) > 0 && (m.state.Section == "" || !sections.Contains(m.state.Section)) {
		return nil, newValidationError("", "no section selected")
	}

	m.state.Status = TimerRunning
	m.state.ReminderPending = false
	return []Event{TimerStarted{Mode: m.state.Mode}}, nil
}

func (m *Machine) Pause() []Event {
	if m.state.Status != TimerRunning {
		return nil
	}
	m.state.Status = TimerPausedStatus
	return []Event{TimerPaused{Mode: m.state.Mode}}
}

func (m *Machine) Reset() ([]Event, error) {
	if m.state.Status == TimerAwaitingFocus {
		return nil, ErrAwaitingFocus
	}
	m.state.Status = TimerIdle
	m.switchMode(m.state.Mode)
	return []Event{TimerReset{Mode: m.state.Mode}}, nil
}

// Tick advances a running timer by one second.
func (m *Machine) Tick() []Event {
	if m.state.Status != TimerRunning {
		return nil
	}

	var events []Event
	if m.state.Remaining > 0 {
		m.state.Remaining--
		m.state.Elapsed++
		if m.state.Mode.Counts() {
			m.state.ContinuousWork++
			if m.state.ContinuousWork >= BreakReminderSeconds && !m.state.ReminderShown {
				m.state.ReminderShown = true
				m.state.ReminderPending = true
				m.state.Status = TimerPausedStatus
				events = append(events, BreakReminder{ContinuousSeconds: m.state.ContinuousWork})
			}
		}
	}

	if m.state.Remaining == 0 {
		events = append(events, m.complete()...)
	}
	return events
}

func (m *Machine) complete() []Event {
	finished := m.state.Mode
	if finished.Counts() {
		m.state.CompletedSessions++
		m.state.Status = TimerAwaitingFocus
		return []Event{SessionCompleted{Mode: finished, AwaitingFocus: true}}
	}

	m.state.ContinuousWork = 0
	m.state.ReminderShown = false
	m.state.Status = TimerIdle
	m.switchMode(ModeWork)
	return []Event{
		SessionCompleted{Mode: finished},
		ModeChanged{From: finished, To: ModeWork},
	}
}

// RecordFocus closes the segment awaiting a focus level, returns the
// session to persist and advances to the next segment.
func (m *Machine) RecordFocus(level FocusLevel, now time.Time, id string) (Session, []Event, error) {
	if m.state.Status != TimerAwaitingFocus {
		return Session{}, nil, ErrNotAwaitingFocus
	}
	if _, err := ParseFocusLevel(string(level)); err != nil {
		return Session{}, nil, err
	}
	if strings.TrimSpace(id) == "" {
		return Session{}, nil, newValidationError("id", "is required")
	}

	section := m.state.Section
	if section == "" {
		section = UncategorizedSection
	}
	session := Session{
		ID:        id,
		Date:      FormatDate(now),
		Timestamp: now.UnixMilli(),
		Duration:  roundMinutes(m.state.Elapsed),
		Mode:      m.state.Mode,
		Focus:     level,
		Section:   section,
	}
	events := []Event{SessionRecorded{Session: session}}

	from := m.state.Mode
	if m.state.AppMode == AppModeMockExam {
		m.state.Status = TimerIdle
		m.switchMode(from)
		return session, append(events, TimerReset{Mode: from}), nil
	}

	next := ModeBreak
	if m.state.CompletedSessions%LongBreakEvery == 0 {
		next = ModeLongBreak
		m.state.ContinuousWork = 0
		m.state.ReminderShown = false
	}
	m.switchMode(next)
	m.state.Status = TimerRunning
	events = append(events, ModeChanged{From: from, To: next}, TimerStarted{Mode: next})
	return session, events, nil
}

// TakeBreak answers a pending break reminder by resetting the streak and
// starting a long break.
func (m *Machine) TakeBreak() ([]Event, error) {
	if m.state.Status == TimerAwaitingFocus {
		return nil, ErrAwaitingFocus
	}
	if !m.state.ReminderPending {
		return nil, ErrNoBreakReminder
	}
	from := m.state.Mode
	m.state.ContinuousWork = 0
	m.state.ReminderShown = false
	m.switchMode(ModeLongBreak)
	m.state.Status = TimerRunning
	return []Event{ModeChanged{From: from, To: ModeLongBreak}, TimerStarted{Mode: ModeLongBreak}}, nil
}

// ContinueWork answers a pending break reminder by resuming; the streak
// is kept.
func (m *Machine) ContinueWork(sections Sections) ([]Event, error) {
	if m.state.Status == TimerAwaitingFocus {
		return nil, ErrAwaitingFocus
	}
	if !m.state.ReminderPending {
		return nil, ErrNoBreakReminder
	}
	return m.Start(sections)
}

func (m *Machine) AdjustTime(deltaMinutes int) error {
	switch m.state.Status {
	case TimerRunning:
		return ErrTimerRunning
	case TimerAwaitingFocus:
		return ErrAwaitingFocus
	}
	delta := deltaMinutes * 60
	m.state.Remaining = max(MinAdjustedSeconds, m.state.Remaining+delta)
	m.state.Total = max(MinAdjustedSeconds, m.state.Total+delta)
	if m.state.Remaining > m.state.Total {
		m.state.Total = m.state.Remaining
	}
	return nil
}

func (m *Machine) UpdateDurations(durations Durations) error {
	switch m.state.Status {
	case TimerRunning:
		return ErrTimerRunning
	case TimerAwaitingFocus:
		return ErrAwaitingFocus
	}
	if err := durations.Validate(); err != nil {
		return err
	}
	m.state.Durations = durations
	m.state.Status = TimerIdle
	m.switchMode(m.state.Mode)
	return nil
}

func (m *Machine) SwitchAppMode(mode AppMode) ([]Event, error) {
	switch m.state.Status {
	case TimerRunning:
		return nil, ErrTimerRunning
	case TimerAwaitingFocus:
		return nil, ErrAwaitingFocus
	}
	if _, err := ParseAppMode(string(mode)); err != nil {
		return nil, err
	}

	from := m.state.Mode
	next := ModeWork
	if mode == AppModeMockExam {
		next = ModeMockExam
	}
	m.state.AppMode = mode
	m.state.Status = TimerIdle
	m.switchMode(next)
	if from == next {
		return nil, nil
	}
	return []Event{ModeChanged{From: from, To: next}}, nil
}

// SelectSection sets the section future sessions are recorded under. An
// empty name clears the selection.
func (m *Machine) SelectSection(name string, sections Sections) error {
	if m.state.Status == TimerRunning {
		return ErrTimerRunning
	}
	name = strings.TrimSpace(name)
	if name != "" && !sections.Contains(name) {
		return fmt.Errorf("%w: %q", ErrSectionNotFound, name)
	}
	m.state.Section = name
	return nil
}

// SectionRemoved clears the selection if it pointed at the removed section.
func (m *Machine) SectionRemoved(name string) {
	if m.state.Section == name {
		m.state.Section = ""
	}
}

func (m *Machine) switchMode(mode Mode) {
	m.state.ReminderPending = false
	m.state.Mode = mode
	m.state.Elapsed = 0
	m.state.Total = m.state.Durations.SecondsFor(mode)
	m.state.Remaining = m.state.Total
}
