package toml

import (
	"fmt"
	"time"
)

const (
	currentSettingsSchemaVersion   = 1
	currentTimerStateSchemaVersion = 1
	currentIdentitySchemaVersion   = 1
)

func validateVersion(label string, version, current int) error {
	if version > current {
		return fmt.Errorf("unsupported %s schema version %d (current %d)", label, version, current)
	}

	return nil
}

type settingsFileSchema struct {
	Version int                `toml:"version"`
	Timer   timerSettingSchema `toml:"timer"`
}

type timerSettingSchema struct {
	WorkMinutes      int    `toml:"work_minutes"`
	BreakMinutes     int    `toml:"break_minutes"`
	LongBreakMinutes int    `toml:"long_break_minutes"`
	MockExamMinutes  int    `toml:"mock_exam_minutes"`
	AppMode          string `toml:"app_mode"`
}

func (s *settingsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSettingsSchemaVersion
	}
}

func (s settingsFileSchema) validateVersion() error {
	return validateVersion("settings", s.Version, currentSettingsSchemaVersion)
}

type timerStateFileSchema struct {
	Version int              `toml:"version"`
	State   timerStateSchema `toml:"state"`
}

type timerStateSchema struct {
	AppMode           string             `toml:"app_mode"`
	Mode              string             `toml:"mode"`
	Status            string             `toml:"status"`
	RemainingSeconds  int                `toml:"remaining_seconds"`
	TotalSeconds      int                `toml:"total_seconds"`
	ElapsedSeconds    int                `toml:"elapsed_seconds"`
	ContinuousSeconds int                `toml:"continuous_seconds"`
	CompletedSessions int                `toml:"completed_sessions"`
	ReminderShown     bool               `toml:"reminder_shown"`
	ReminderPending   bool               `toml:"reminder_pending"`
	Section           string             `toml:"section"`
	Durations         timerSettingSchema `toml:"durations"`
	SavedAt           string             `toml:"saved_at"`
}

func (s *timerStateFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentTimerStateSchemaVersion
	}
}

func (s timerStateFileSchema) validateVersion() error {
	return validateVersion("timer state", s.Version, currentTimerStateSchemaVersion)
}

type identityFileSchema struct {
	Version  int            `toml:"version"`
	Identity identitySchema `toml:"identity"`
}

type identitySchema struct {
	Guest     bool   `toml:"guest"`
	UserID    string `toml:"user_id,omitempty"`
	Email     string `toml:"email,omitempty"`
	SecretRef string `toml:"secret_ref,omitempty"`
	MergedAt  string `toml:"merged_at,omitempty"`
}

func (s *identityFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentIdentitySchemaVersion
	}
}

func (s identityFileSchema) validateVersion() error {
	return validateVersion("identity", s.Version, currentIdentitySchemaVersion)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
