package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName    = "config"
	configType    = "toml"
	envPrefix     = "POMO"
	dataConfigDir = ".studypomo"

	KeyDataDir         = "data.dir"
	KeySettingsPath    = "settings.path"
	KeyTimerStatePath  = "timer.state_path"
	KeyIdentityPath    = "identity.path"
	KeyWorkMinutes     = "timer.work_minutes"
	KeyBreakMinutes    = "timer.break_minutes"
	KeyLongBreak       = "timer.long_break_minutes"
	KeyMockExamMinutes = "timer.mock_exam_minutes"
	KeyAppMode         = "timer.app_mode"
	KeyRemoteURL       = "sync.remote_url"
	KeyProbeInterval   = "sync.probe_interval"
	KeyHTTPTimeout     = "sync.http_timeout"
	KeyAuthIssuer      = "auth.issuer"
	KeyAuthClientID    = "auth.client_id"
	KeyAuthAudience    = "auth.audience"
	KeyAuthTimeout     = "auth.timeout"
	KeyLogLevel        = "log.level"
	KeyLogFile         = "log.file"
)

type Config struct {
	DataDir       string
	RemoteURL     string
	ProbeInterval time.Duration
	HTTPTimeout   time.Duration
	Auth          AuthConfig
	Log           LogConfig
	Defaults      domain.Settings
}

type AuthConfig struct {
	Issuer   string
	ClientID string
	Audience string
	Timeout  time.Duration
}

type LogConfig struct {
	Level string
	File  string
}

func (c Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "pomodoroData.json")
}

func (c Config) QueuePath() string {
	return filepath.Join(c.DataDir, "queue.db")
}

func (c Config) SecretsDir() string {
	return filepath.Join(c.DataDir, "secrets")
}

// LoadConfig registers defaults on cfg, reads config.toml from the data
// directory when present and applies POMO_* environment overrides.
func LoadConfig(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	defaultDir := filepath.Join(homeDir, dataConfigDir)
	defaults := domain.DefaultSettings()

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(defaultDir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(KeyDataDir, defaultDir)
	cfg.SetDefault(KeyWorkMinutes, defaults.Durations.Work)
	cfg.SetDefault(KeyBreakMinutes, defaults.Durations.Break)
	cfg.SetDefault(KeyLongBreak, defaults.Durations.LongBreak)
	cfg.SetDefault(KeyMockExamMinutes, defaults.Durations.MockExam)
	cfg.SetDefault(KeyAppMode, string(defaults.AppMode))
	cfg.SetDefault(KeyRemoteURL, "")
	cfg.SetDefault(KeyProbeInterval, 30*time.Second)
	cfg.SetDefault(KeyHTTPTimeout, 15*time.Second)
	cfg.SetDefault(KeyAuthIssuer, "https://auth.studypomo.app")
	cfg.SetDefault(KeyAuthClientID, "pomo-cli")
	cfg.SetDefault(KeyAuthAudience, "studypomo-sync")
	cfg.SetDefault(KeyAuthTimeout, 10*time.Minute)
	cfg.SetDefault(KeyLogLevel, "info")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	dataDir, err := normalizePath(cfg.GetString(KeyDataDir))
	if err != nil {
		return Config{}, err
	}
	cfg.SetDefault(KeySettingsPath, filepath.Join(dataDir, "settings.toml"))
	cfg.SetDefault(KeyTimerStatePath, filepath.Join(dataDir, "timer.toml"))
	cfg.SetDefault(KeyIdentityPath, filepath.Join(dataDir, "identity.toml"))
	cfg.SetDefault(KeyLogFile, filepath.Join(dataDir, "logs", "pomo.log"))

	appMode, err := domain.ParseAppMode(cfg.GetString(KeyAppMode))
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", KeyAppMode, err)
	}

	out := Config{
		DataDir:       dataDir,
		RemoteURL:     strings.TrimSpace(cfg.GetString(KeyRemoteURL)),
		ProbeInterval: cfg.GetDuration(KeyProbeInterval),
		HTTPTimeout:   cfg.GetDuration(KeyHTTPTimeout),
		Auth: AuthConfig{
			Issuer:   strings.TrimRight(cfg.GetString(KeyAuthIssuer), "/"),
			ClientID: cfg.GetString(KeyAuthClientID),
			Audience: cfg.GetString(KeyAuthAudience),
			Timeout:  cfg.GetDuration(KeyAuthTimeout),
		},
		Log: LogConfig{
			Level: cfg.GetString(KeyLogLevel),
			File:  cfg.GetString(KeyLogFile),
		},
		Defaults: domain.Settings{
			Durations: domain.Durations{
				Work:      cfg.GetInt(KeyWorkMinutes),
				Break:     cfg.GetInt(KeyBreakMinutes),
				LongBreak: cfg.GetInt(KeyLongBreak),
				MockExam:  cfg.GetInt(KeyMockExamMinutes),
			},
			AppMode: appMode,
		},
	}
	if err := out.Defaults.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate timer defaults: %w", err)
	}

	return out, nil
}
