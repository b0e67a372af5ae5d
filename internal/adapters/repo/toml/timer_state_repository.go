package toml

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
	"github.com/spf13/viper"
)

type TimerStateRepository struct {
	path  string
	clock ports.Clock
	mu    *sync.RWMutex
}

var _ ports.TimerStateRepository = (*TimerStateRepository)(nil)

func NewTimerStateRepository(cfg *viper.Viper, clock ports.Clock) (*TimerStateRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	path, err := normalizePath(cfg.GetString(KeyTimerStatePath))
	if err != nil {
		return nil, fmt.Errorf("resolve timer state path: %w", err)
	}

	return &TimerStateRepository{path: path, clock: clock, mu: lockForPath(path)}, nil
}

// Get returns the persisted state and whether one was found.
func (r *TimerStateRepository) Get(ctx context.Context) (domain.TimerState, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.TimerState{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var file timerStateFileSchema
	found, err := readTOMLFile(r.path, "timer state", &file)
	if err != nil || !found {
		return domain.TimerState{}, false, err
	}
	if err := file.validateVersion(); err != nil {
		return domain.TimerState{}, false, err
	}

	s := file.State
	return domain.TimerState{
		AppMode:           domain.AppMode(s.AppMode),
		Mode:              domain.Mode(s.Mode),
		Status:            domain.TimerStatus(s.Status),
		Remaining:         s.RemainingSeconds,
		Total:             s.TotalSeconds,
		Elapsed:           s.ElapsedSeconds,
		ContinuousWork:    s.ContinuousSeconds,
		CompletedSessions: s.CompletedSessions,
		ReminderShown:     s.ReminderShown,
		ReminderPending:   s.ReminderPending,
		Section:           s.Section,
		Durations:         fromDurationsSchema(s.Durations),
	}, true, nil
}

func (r *TimerStateRepository) Save(ctx context.Context, state domain.TimerState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := timerStateFileSchema{State: timerStateSchema{
		AppMode:           string(state.AppMode),
		Mode:              string(state.Mode),
		Status:            string(state.Status),
		RemainingSeconds:  state.Remaining,
		TotalSeconds:      state.Total,
		ElapsedSeconds:    state.Elapsed,
		ContinuousSeconds: state.ContinuousWork,
		CompletedSessions: state.CompletedSessions,
		ReminderShown:     state.ReminderShown,
		ReminderPending:   state.ReminderPending,
		Section:           state.Section,
		Durations:         toDurationsSchema(state.Durations),
		SavedAt:           formatTime(r.clock.Now()),
	}}
	file.applyDefaults()

	return writeTOMLFile(r.path, "timer state", file)
}
