package toml

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/bnema/studypomo/internal/ports"
	"github.com/spf13/viper"
)

// SettingsRepository stores timer preferences edited at runtime. Until the
// file exists, values come from the config defaults.
type SettingsRepository struct {
	path     string
	defaults domain.Settings
	mu       *sync.RWMutex
}

var _ ports.SettingsRepository = (*SettingsRepository)(nil)

func NewSettingsRepository(cfg *viper.Viper, defaults domain.Settings) (*SettingsRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if defaults.Validate() != nil {
		defaults = domain.DefaultSettings()
	}

	path, err := normalizePath(cfg.GetString(KeySettingsPath))
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}

	return &SettingsRepository{path: path, defaults: defaults, mu: lockForPath(path)}, nil
}

func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return domain.Settings{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var file settingsFileSchema
	found, err := readTOMLFile(r.path, "settings", &file)
	if err != nil {
		return domain.Settings{}, err
	}
	if !found {
		return r.defaults, nil
	}
	if err := file.validateVersion(); err != nil {
		return domain.Settings{}, err
	}

	settings := domain.Settings{
		Durations: fromDurationsSchema(file.Timer),
		AppMode:   domain.AppMode(file.Timer.AppMode),
	}
	if err := settings.Validate(); err != nil {
		return r.defaults, nil
	}

	return settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := settingsFileSchema{Timer: toDurationsSchema(settings.Durations)}
	file.Timer.AppMode = string(settings.AppMode)
	file.applyDefaults()

	return writeTOMLFile(r.path, "settings", file)
}

func toDurationsSchema(d domain.Durations) timerSettingSchema {
	return timerSettingSchema{
		WorkMinutes:      d.Work,
		BreakMinutes:     d.Break,
		LongBreakMinutes: d.LongBreak,
		MockExamMinutes:  d.MockExam,
	}
}

func fromDurationsSchema(s timerSettingSchema) domain.Durations {
	return domain.Durations{
		Work:      s.WorkMinutes,
		Break:     s.BreakMinutes,
		LongBreak: s.LongBreakMinutes,
		MockExam:  s.MockExamMinutes,
	}
}
