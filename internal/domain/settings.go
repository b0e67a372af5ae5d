package domain

// Settings are the timer preferences a new machine starts from.
type Settings struct {
	Durations Durations
	AppMode   AppMode
}

func DefaultSettings() Settings {
	return Settings{Durations: DefaultDurations(), AppMode: AppModePomodoro}
}

func (s Settings) Validate() error {
	if err := s.Durations.Validate(); err != nil {
		return err
	}
	_, err := ParseAppMode(string(s.AppMode))
	return err
}
