package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
)

// TimerService serializes every machine transition under one lock, so a
// tick never interleaves with complete, record and advance. State is
// persisted after each transition that changes it.
type TimerService struct {
	mu       sync.Mutex
	machine  *domain.Machine
	states   ports.TimerStateRepository
	settings ports.SettingsRepository
	data     *DataService
	ids      ports.IDGenerator
	clock    ports.Clock
	logger   *slog.Logger
}

// NewTimerService restores the persisted machine or builds a fresh one
// from the saved settings.
func NewTimerService(ctx context.Context, states ports.TimerStateRepository, settings ports.SettingsRepository, data *DataService, ids ports.IDGenerator, clock ports.Clock, logger *slog.Logger) (*TimerService, error) {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &TimerService{states: states, settings: settings, data: data, ids: ids, clock: clock, logger: logger}

	state, found, err := states.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load timer state: %w", err)
	}
	if found {
		s.machine = domain.RestoreMachine(state)
		return s, nil
	}

	current, err := settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	s.machine = domain.NewMachine(current.Durations)
	if _, err := s.machine.SwitchAppMode(current.AppMode); err != nil {
		return nil, fmt.Errorf("apply app mode: %w", err)
	}

	return s, nil
}

func (s *TimerService) State() domain.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State()
}

func (s *TimerService) Sections(ctx context.Context) (domain.Sections, error) {
	return s.data.Sections(ctx)
}

func (s *TimerService) Start(ctx context.Context) ([]domain.Event, error) {
	sections, err := s.data.Sections(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.machine.Start(sections)
	if err != nil {
		return nil, err
	}
	return events, s.persist(ctx)
}

func (s *TimerService) Pause(ctx context.Context) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.machine.Pause()
	if len(events) == 0 {
		return nil, nil
	}
	return events, s.persist(ctx)
}

func (s *TimerService) Toggle(ctx context.Context) ([]domain.Event, error) {
	if s.State().Status == domain.TimerRunning {
		return s.Pause(ctx)
	}
	return s.Start(ctx)
}

func (s *TimerService) Reset(ctx context.Context) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.machine.Reset()
	if err != nil {
		return nil, err
	}
	return events, s.persist(ctx)
}

// Tick advances a running timer by one second. State is only written when
// the tick produced an event.
func (s *TimerService) Tick(ctx context.Context) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.machine.Tick()
	if len(events) == 0 {
		return nil, nil
	}
	for _, event := range events {
		s.logger.Debug("timer event", slog.String("event", domain.EventName(event)))
	}
	return events, s.persist(ctx)
}

// RecordFocus stores the awaiting session and advances the machine. When
// the session cannot be stored the machine stays awaiting focus.
func (s *TimerService) RecordFocus(ctx context.Context, level domain.FocusLevel) (domain.Session, []domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.machine.State()
	session, events, err := s.machine.RecordFocus(level, s.clock.Now(), s.ids.NewID())
	if err != nil {
		return domain.Session{}, nil, err
	}

	if err := s.data.RecordSession(ctx, session); err != nil {
		s.machine = domain.RestoreMachine(before)
		return domain.Session{}, nil, fmt.Errorf("record session: %w", err)
	}

	s.logger.Info("session recorded",
		slog.String("session_id", session.ID),
		slog.String("mode", string(session.Mode)),
		slog.Int("minutes", session.Duration),
		slog.String("focus", string(session.Focus)),
	)
	return session, events, s.persist(ctx)
}

func (s *TimerService) TakeBreak(ctx context.Context) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.machine.TakeBreak()
	if err != nil {
		return nil, err
	}
	return events, s.persist(ctx)
}

func (s *TimerService) ContinueWork(ctx context.Context) ([]domain.Event, error) {
	sections, err := s.data.Sections(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.machine.ContinueWork(sections)
	if err != nil {
		return nil, err
	}
	return events, s.persist(ctx)
}

func (s *TimerService) AdjustTime(ctx context.Context, deltaMinutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.machine.AdjustTime(deltaMinutes); err != nil {
		return err
	}
	return s.persist(ctx)
}

func (s *TimerService) SwitchAppMode(ctx context.Context, mode domain.AppMode) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.machine.SwitchAppMode(mode)
	if err != nil {
		return nil, err
	}

	current, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	current.AppMode = mode
	if err := s.settings.Save(ctx, current); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	return events, s.persist(ctx)
}

func (s *TimerService) SelectSection(ctx context.Context, name string) error {
	sections, err := s.data.Sections(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.machine.SelectSection(name, sections); err != nil {
		return err
	}
	return s.persist(ctx)
}

// RemoveSection deletes a section and clears the selection if it pointed
// at it. Recorded sessions keep the name.
func (s *TimerService) RemoveSection(ctx context.Context, name string) (domain.Sections, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sections, err := s.data.RemoveSection(ctx, name)
	if err != nil {
		return nil, err
	}
	s.machine.SectionRemoved(name)
	return sections, s.persist(ctx)
}

func (s *TimerService) Settings(ctx context.Context) (domain.Settings, error) {
	current, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return current, nil
}

// UpdateSettings validates and saves the new settings, then applies them
// to the machine. It is rejected while the timer runs.
func (s *TimerService) UpdateSettings(ctx context.Context, cmd UpdateSettingsCommand) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	next := cmd.apply(current)
	if err := next.Validate(); err != nil {
		return domain.Settings{}, err
	}

	state := s.machine.State()
	if err := s.machine.UpdateDurations(next.Durations); err != nil {
		return domain.Settings{}, err
	}
	if next.AppMode != state.AppMode {
		if _, err := s.machine.SwitchAppMode(next.AppMode); err != nil {
			s.machine = domain.RestoreMachine(state)
			return domain.Settings{}, err
		}
	}

	if err := s.settings.Save(ctx, next); err != nil {
		s.machine = domain.RestoreMachine(state)
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	return next, s.persist(ctx)
}

// Persist writes the current machine state, for shutdown.
func (s *TimerService) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

func (s *TimerService) persist(ctx context.Context) error {
	if err := s.states.Save(ctx, s.machine.State()); err != nil {
		return fmt.Errorf("save timer state: %w", err)
	}
	return nil
}
