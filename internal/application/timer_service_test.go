package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
	"github.com/bnema/studypomo/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSnapshots struct {
	ports.SnapshotStore
}

func (failingSnapshots) Save(context.Context, domain.Snapshot) error {
	return errors.New("disk full")
}

func (failingSnapshots) Update(context.Context, func(domain.Snapshot) (domain.Snapshot, error)) (domain.Snapshot, error) {
	return domain.Snapshot{}, errors.New("disk full")
}

func sessionIDs(t *testing.T, id string) *mocks.MockIDGenerator {
	t.Helper()

	ids := mocks.NewMockIDGenerator(t)
	ids.EXPECT().NewID().Return(id).Maybe()
	return ids
}

func (e *testEnv) timerService(t *testing.T, data *DataService) *TimerService {
	t.Helper()

	if data == nil {
		data = e.data
	}
	svc, err := NewTimerService(context.Background(), e.states, e.settings, data, sessionIDs(t, "id-1"), e.clock, nil)
	require.NoError(t, err)
	return svc
}

func shortWork(t *testing.T, svc *TimerService) {
	t.Helper()

	one := 1
	_, err := svc.UpdateSettings(context.Background(), UpdateSettingsCommand{WorkMinutes: &one})
	require.NoError(t, err)
}

func tickUntilEvents(t *testing.T, svc *TimerService, n int) []domain.Event {
	t.Helper()

	var last []domain.Event
	for range n {
		events, err := svc.Tick(context.Background())
		require.NoError(t, err)
		if len(events) > 0 {
			last = events
		}
	}
	return last
}

func TestTimerServiceStartRequiresSelectedSection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.timerService(t, nil)

	_, err := env.data.AddSection(ctx, "math")
	require.NoError(t, err)

	_, err = svc.Start(ctx)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, domain.TimerIdle, svc.State().Status)

	assert.ErrorIs(t, svc.SelectSection(ctx, "history"), domain.ErrSectionNotFound)
	require.NoError(t, svc.SelectSection(ctx, "math"))

	events, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Event{domain.TimerStarted{Mode: domain.ModeWork}}, events)

	assert.ErrorIs(t, svc.SelectSection(ctx, ""), domain.ErrTimerRunning)
}

func TestTimerServiceWorkCycleRecordsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.timerService(t, nil)
	shortWork(t, svc)

	_, err := svc.Start(ctx)
	require.NoError(t, err)

	events := tickUntilEvents(t, svc, 60)
	assert.Equal(t, []domain.Event{domain.SessionCompleted{Mode: domain.ModeWork, AwaitingFocus: true}}, events)
	assert.Equal(t, domain.TimerAwaitingFocus, svc.State().Status)

	_, err = svc.Reset(ctx)
	assert.ErrorIs(t, err, domain.ErrAwaitingFocus)

	session, events, err := svc.RecordFocus(ctx, domain.FocusFocused)
	require.NoError(t, err)
	assert.Equal(t, domain.Session{
		ID:        "id-1",
		Date:      "2026-04-07",
		Timestamp: testNow.UnixMilli(),
		Duration:  1,
		Mode:      domain.ModeWork,
		Focus:     domain.FocusFocused,
		Section:   domain.UncategorizedSection,
	}, session)
	assert.Contains(t, events, domain.TimerStarted{Mode: domain.ModeBreak})

	state := svc.State()
	assert.Equal(t, domain.ModeBreak, state.Mode)
	assert.Equal(t, domain.TimerRunning, state.Status)
	assert.Equal(t, 1, state.CompletedSessions)

	snapshot, err := env.data.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, snapshot.HasSession("id-1"))

	saved, found, err := env.states.Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.ModeBreak, saved.Mode)
}

func TestTimerServiceRecordFocusKeepsAwaitingWhenStoreFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	broken := NewDataService(failingSnapshots{env.snapshots}, env.queue, env.outbox, env.clock, nil)
	svc := env.timerService(t, broken)
	shortWork(t, svc)

	_, err := svc.Start(ctx)
	require.NoError(t, err)
	tickUntilEvents(t, svc, 60)

	_, _, err = svc.RecordFocus(ctx, domain.FocusNormal)
	assert.ErrorContains(t, err, "disk full")

	state := svc.State()
	assert.Equal(t, domain.TimerAwaitingFocus, state.Status)
	assert.Equal(t, domain.ModeWork, state.Mode)
	assert.Equal(t, 60, state.Elapsed)
}

func TestTimerServiceRestoresRunningTimerAsPaused(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.timerService(t, nil)

	_, err := svc.Start(ctx)
	require.NoError(t, err)
	tickUntilEvents(t, svc, 30)
	require.NoError(t, svc.Persist(ctx))

	restored := env.timerService(t, nil)
	state := restored.State()
	assert.Equal(t, domain.TimerPausedStatus, state.Status)
	assert.Equal(t, 25*60-30, state.Remaining)
	assert.Equal(t, 30, state.ContinuousWork)
}

func TestTimerServiceConcurrentTicksCompleteOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.timerService(t, nil)
	shortWork(t, svc)

	_, err := svc.Start(ctx)
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				events, err := svc.Tick(ctx)
				assert.NoError(t, err)
				for _, event := range events {
					if _, ok := event.(domain.SessionCompleted); ok {
						mu.Lock()
						completed++
						mu.Unlock()
					}
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, completed)
	state := svc.State()
	assert.Equal(t, domain.TimerAwaitingFocus, state.Status)
	assert.Equal(t, 0, state.Remaining)
	assert.Equal(t, 60, state.Elapsed)
}

func TestTimerServiceUpdateSettings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.timerService(t, nil)

	_, err := svc.Start(ctx)
	require.NoError(t, err)

	ten := 10
	_, err = svc.UpdateSettings(ctx, UpdateSettingsCommand{WorkMinutes: &ten})
	assert.ErrorIs(t, err, domain.ErrTimerRunning)

	_, err = svc.Pause(ctx)
	require.NoError(t, err)

	zero := 0
	_, err = svc.UpdateSettings(ctx, UpdateSettingsCommand{WorkMinutes: &zero})
	assert.True(t, domain.IsValidation(err))

	exam := domain.AppModeMockExam
	settings, err := svc.UpdateSettings(ctx, UpdateSettingsCommand{WorkMinutes: &ten, AppMode: &exam})
	require.NoError(t, err)
	assert.Equal(t, 10, settings.Durations.Work)

	state := svc.State()
	assert.Equal(t, domain.ModeMockExam, state.Mode)
	assert.Equal(t, domain.TimerIdle, state.Status)
	assert.Equal(t, 120*60, state.Remaining)

	stored, err := env.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, stored)
}

func TestTimerServiceSwitchAppModeSavesSettings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.timerService(t, nil)

	events, err := svc.SwitchAppMode(ctx, domain.AppModeMockExam)
	require.NoError(t, err)
	assert.Equal(t, []domain.Event{domain.ModeChanged{From: domain.ModeWork, To: domain.ModeMockExam}}, events)

	stored, err := env.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AppModeMockExam, stored.AppMode)

	fresh := env.timerService(t, nil)
	assert.Equal(t, domain.ModeMockExam, fresh.State().Mode)
}

func TestTimerServiceRemoveSelectedSection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.timerService(t, nil)

	_, err := env.data.AddSection(ctx, "math")
	require.NoError(t, err)
	require.NoError(t, svc.SelectSection(ctx, "math"))

	sections, err := svc.RemoveSection(ctx, "math")
	require.NoError(t, err)
	assert.Empty(t, sections)
	assert.Empty(t, svc.State().Section)

	_, err = svc.Start(ctx)
	require.NoError(t, err)
}

func TestTimerServiceAdjustTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.timerService(t, nil)

	require.NoError(t, svc.AdjustTime(ctx, 5))
	assert.Equal(t, 30*60, svc.State().Remaining)

	require.NoError(t, svc.AdjustTime(ctx, -60))
	assert.Equal(t, domain.MinAdjustedSeconds, svc.State().Remaining)

	_, err := svc.Toggle(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.AdjustTime(ctx, 5), domain.ErrTimerRunning)
}
