package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortDurations() Durations {
	return Durations{Work: 1, Break: 1, LongBreak: 2, MockExam: 3}
}

func tickN(m *Machine, n int) []Event {
	var events []Event
	for i := 0; i < n; i++ {
		events = append(events, m.Tick()...)
	}
	return events
}

func countEvents[T Event](events []Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

func completeWork(t *testing.T, m *Machine) {
	t.Helper()
	_, err := m.Start(nil)
	require.NoError(t, err)
	events := tickN(m, m.State().Remaining)
	require.Equal(t, 1, countEvents[SessionCompleted](events))
	require.Equal(t, TimerAwaitingFocus, m.State().Status)
}

func TestMachineStartRequiresSectionWhenSectionsExist(t *testing.T) {
	m := NewMachine(shortDurations())

	_, err := m.Start(Sections{"math"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "no section selected")
	assert.Equal(t, TimerIdle, m.State().Status)

	require.NoError(t, m.SelectSection("math", Sections{"math"}))
	events, err := m.Start(Sections{"math"})
	require.NoError(t, err)
	assert.Equal(t, []Event{TimerStarted{Mode: ModeWork}}, events)
	assert.Equal(t, TimerRunning, m.State().Status)
}

func TestMachineStartIsNoOpWhileRunning(t *testing.T) {
	m := NewMachine(shortDurations())
	_, err := m.Start(nil)
	require.NoError(t, err)

	events, err := m.Start(nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMachineTickIgnoredUnlessRunning(t *testing.T) {
	m := NewMachine(shortDurations())
	before := m.State()

	assert.Empty(t, m.Tick())
	assert.Equal(t, before, m.State())
}

func TestMachineWorkCompletionAwaitsFocus(t *testing.T) {
	m := NewMachine(shortDurations())
	completeWork(t, m)

	state := m.State()
	assert.Equal(t, 1, state.CompletedSessions)
	assert.Equal(t, 0, state.Remaining)
	assert.Equal(t, 60, state.Elapsed)

	_, err := m.Start(nil)
	assert.ErrorIs(t, err, ErrAwaitingFocus)
	_, err = m.Reset()
	assert.ErrorIs(t, err, ErrAwaitingFocus)
	assert.ErrorIs(t, m.AdjustTime(5), ErrAwaitingFocus)
	assert.Empty(t, m.Tick())
}

func TestMachineRecordFocusBuildsSession(t *testing.T) {
	m := NewMachine(shortDurations())
	require.NoError(t, m.SelectSection("math", Sections{"math"}))
	completeWork(t, m)

	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	session, events, err := m.RecordFocus(FocusFocused, now, "id-1")
	require.NoError(t, err)

	assert.Equal(t, Session{
		ID:        "id-1",
		Date:      "2026-03-02",
		Timestamp: now.UnixMilli(),
		Duration:  1,
		Mode:      ModeWork,
		Focus:     FocusFocused,
		Section:   "math",
	}, session)
	assert.Equal(t, 1, countEvents[SessionRecorded](events))
	assert.Equal(t, ModeBreak, m.State().Mode)
	assert.Equal(t, TimerRunning, m.State().Status)
	assert.Equal(t, 60, m.State().Remaining)
}

func TestMachineRecordFocusWithoutSectionUsesSentinel(t *testing.T) {
	m := NewMachine(shortDurations())
	completeWork(t, m)

	session, _, err := m.RecordFocus(FocusNormal, time.Now(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, UncategorizedSection, session.Section)
}

func TestMachineRecordFocusRejectedWhenNotAwaiting(t *testing.T) {
	m := NewMachine(shortDurations())

	_, _, err := m.RecordFocus(FocusFocused, time.Now(), "id-1")
	assert.ErrorIs(t, err, ErrNotAwaitingFocus)
}

func TestMachineRecordFocusRejectsUnknownLevel(t *testing.T) {
	m := NewMachine(shortDurations())
	completeWork(t, m)

	_, _, err := m.RecordFocus(FocusLevel("sleepy"), time.Now(), "id-1")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, TimerAwaitingFocus, m.State().Status)
}

func TestMachinePomodoroCadence(t *testing.T) {
	m := NewMachine(shortDurations())
	want := []Mode{ModeBreak, ModeBreak, ModeBreak, ModeLongBreak, ModeBreak}

	for i, next := range want {
		if m.State().Mode != ModeWork {
			tickN(m, m.State().Remaining)
			require.Equal(t, ModeWork, m.State().Mode)
		}
		completeWork(t, m)
		_, _, err := m.RecordFocus(FocusNormal, time.Now(), "id")
		require.NoError(t, err)
		assert.Equal(t, next, m.State().Mode, "after completion %d", i+1)
	}
}

func TestMachineBreakCompletionReturnsToWork(t *testing.T) {
	m := NewMachine(shortDurations())
	completeWork(t, m)
	_, _, err := m.RecordFocus(FocusNormal, time.Now(), "id")
	require.NoError(t, err)
	require.Equal(t, ModeBreak, m.State().Mode)

	events := tickN(m, 60)
	assert.Contains(t, events, Event(SessionCompleted{Mode: ModeBreak}))
	assert.Contains(t, events, Event(ModeChanged{From: ModeBreak, To: ModeWork}))
	assert.Equal(t, ModeWork, m.State().Mode)
	assert.Equal(t, TimerIdle, m.State().Status)
	assert.Equal(t, 0, m.State().ContinuousWork)
}

func TestMachineBreakReminderFiresOncePerStreak(t *testing.T) {
	m := NewMachine(Durations{Work: 600, Break: 5, LongBreak: 15, MockExam: 120})
	_, err := m.Start(nil)
	require.NoError(t, err)

	events := tickN(m, BreakReminderSeconds-1)
	assert.Zero(t, countEvents[BreakReminder](events))

	events = m.Tick()
	assert.Equal(t, []Event{BreakReminder{ContinuousSeconds: BreakReminderSeconds}}, events)
	assert.Equal(t, TimerPausedStatus, m.State().Status)

	_, err = m.ContinueWork(nil)
	require.NoError(t, err)
	events = tickN(m, 120)
	assert.Zero(t, countEvents[BreakReminder](events))
	assert.Equal(t, BreakReminderSeconds+120, m.State().ContinuousWork)
}

func TestMachineTakeBreakResetsStreak(t *testing.T) {
	m := NewMachine(Durations{Work: 600, Break: 5, LongBreak: 15, MockExam: 120})
	_, err := m.Start(nil)
	require.NoError(t, err)
	tickN(m, BreakReminderSeconds)

	events, err := m.TakeBreak()
	require.NoError(t, err)
	assert.Contains(t, events, Event(TimerStarted{Mode: ModeLongBreak}))
	state := m.State()
	assert.Equal(t, ModeLongBreak, state.Mode)
	assert.Equal(t, 0, state.ContinuousWork)
	assert.False(t, state.ReminderShown)
	assert.False(t, state.ReminderPending)
	assert.Equal(t, TimerRunning, state.Status)
}

func TestMachineReminderAnswersNeedPendingReminder(t *testing.T) {
	m := NewMachine(Durations{Work: 600, Break: 5, LongBreak: 15, MockExam: 120})

	_, err := m.TakeBreak()
	require.ErrorIs(t, err, ErrNoBreakReminder)
	_, err = m.ContinueWork(nil)
	require.ErrorIs(t, err, ErrNoBreakReminder)
	assert.Equal(t, TimerIdle, m.State().Status)
	assert.Equal(t, ModeWork, m.State().Mode)

	_, err = m.Start(nil)
	require.NoError(t, err)
	tickN(m, BreakReminderSeconds)
	require.True(t, m.State().ReminderPending)

	restored := RestoreMachine(m.State())
	assert.True(t, restored.State().ReminderPending)

	_, err = m.ContinueWork(nil)
	require.NoError(t, err)
	assert.False(t, m.State().ReminderPending)

	m.Pause()
	_, err = m.TakeBreak()
	require.ErrorIs(t, err, ErrNoBreakReminder)
	assert.Equal(t, ModeWork, m.State().Mode)
	assert.Equal(t, BreakReminderSeconds, m.State().ContinuousWork)
}

func TestMachineStartClearsPendingReminder(t *testing.T) {
	m := NewMachine(Durations{Work: 600, Break: 5, LongBreak: 15, MockExam: 120})
	_, err := m.Start(nil)
	require.NoError(t, err)
	tickN(m, BreakReminderSeconds)

	_, err = m.Start(nil)
	require.NoError(t, err)
	assert.False(t, m.State().ReminderPending)

	_, err = m.TakeBreak()
	require.ErrorIs(t, err, ErrNoBreakReminder)
}

func TestMachineAdjustTime(t *testing.T) {
	m := NewMachine(DefaultDurations())

	require.NoError(t, m.AdjustTime(5))
	assert.Equal(t, 30*60, m.State().Remaining)
	assert.Equal(t, 30*60, m.State().Total)

	require.NoError(t, m.AdjustTime(-60))
	assert.Equal(t, MinAdjustedSeconds, m.State().Remaining)
	assert.Equal(t, MinAdjustedSeconds, m.State().Total)

	_, err := m.Start(nil)
	require.NoError(t, err)
	assert.ErrorIs(t, m.AdjustTime(5), ErrTimerRunning)
}

func TestMachineUpdateDurationsOnlyWhenStopped(t *testing.T) {
	m := NewMachine(DefaultDurations())
	next := Durations{Work: 50, Break: 10, LongBreak: 30, MockExam: 90}

	_, err := m.Start(nil)
	require.NoError(t, err)
	assert.ErrorIs(t, m.UpdateDurations(next), ErrTimerRunning)

	m.Pause()
	require.NoError(t, m.UpdateDurations(next))
	assert.Equal(t, 50*60, m.State().Remaining)
	assert.Equal(t, TimerIdle, m.State().Status)

	err = m.UpdateDurations(Durations{})
	assert.True(t, IsValidation(err))
}

func TestMachineSwitchAppMode(t *testing.T) {
	m := NewMachine(DefaultDurations())

	events, err := m.SwitchAppMode(AppModeMockExam)
	require.NoError(t, err)
	assert.Equal(t, []Event{ModeChanged{From: ModeWork, To: ModeMockExam}}, events)
	assert.Equal(t, 120*60, m.State().Remaining)

	_, err = m.Start(nil)
	require.NoError(t, err)
	_, err = m.SwitchAppMode(AppModePomodoro)
	assert.ErrorIs(t, err, ErrTimerRunning)
	assert.Equal(t, AppModeMockExam, m.State().AppMode)
}

func TestMachineMockExamResetsAfterFocus(t *testing.T) {
	m := NewMachine(shortDurations())
	_, err := m.SwitchAppMode(AppModeMockExam)
	require.NoError(t, err)
	completeWork(t, m)

	session, _, err := m.RecordFocus(FocusDistracted, time.Now(), "exam-1")
	require.NoError(t, err)
	assert.Equal(t, ModeMockExam, session.Mode)
	assert.Equal(t, 3, session.Duration)
	assert.Equal(t, TimerIdle, m.State().Status)
	assert.Equal(t, ModeMockExam, m.State().Mode)
	assert.Equal(t, 180, m.State().Remaining)
}

func TestMachineSelectSection(t *testing.T) {
	m := NewMachine(DefaultDurations())

	err := m.SelectSection("art", Sections{"math"})
	assert.ErrorIs(t, err, ErrSectionNotFound)

	require.NoError(t, m.SelectSection("math", Sections{"math"}))
	m.SectionRemoved("math")
	assert.Empty(t, m.State().Section)
}

func TestRestoreMachineResumesPaused(t *testing.T) {
	m := NewMachine(DefaultDurations())
	_, err := m.Start(nil)
	require.NoError(t, err)
	tickN(m, 10)

	restored := RestoreMachine(m.State())
	state := restored.State()
	assert.Equal(t, TimerPausedStatus, state.Status)
	assert.Equal(t, 25*60-10, state.Remaining)
	assert.Equal(t, 10, state.Elapsed)
}

func TestRestoreMachineRepairsGarbage(t *testing.T) {
	restored := RestoreMachine(TimerState{Mode: "nap", Status: "sleeping", Remaining: -4})
	state := restored.State()

	assert.Equal(t, AppModePomodoro, state.AppMode)
	assert.Equal(t, ModeWork, state.Mode)
	assert.Equal(t, TimerIdle, state.Status)
	assert.Equal(t, DefaultDurations(), state.Durations)
	assert.Equal(t, 25*60, state.Remaining)
}
