package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Mode string

const (
	ModeWork      Mode = "work"
	ModeBreak     Mode = "break"
	ModeLongBreak Mode = "longBreak"
	ModeMockExam  Mode = "mockExam"
)

// Counts reports whether time spent in the mode extends the continuous-work
// streak and produces a session.
func (m Mode) Counts() bool {
	return m == ModeWork || m == ModeMockExam
}

func (m Mode) Label() string {
	switch m {
	case ModeWork:
		return "Work"
	case ModeBreak:
		return "Break"
	case ModeLongBreak:
		return "Long break"
	case ModeMockExam:
		return "Mock exam"
	default:
		return string(m)
	}
}

func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.TrimSpace(raw)) {
	case ModeWork, ModeBreak, ModeLongBreak, ModeMockExam:
		return Mode(strings.TrimSpace(raw)), nil
	default:
		return "", newValidationError("mode", fmt.Sprintf("unknown mode %q", raw))
	}
}

type FocusLevel string

const (
	FocusFocused    FocusLevel = "focused"
	FocusNormal     FocusLevel = "normal"
	FocusDistracted FocusLevel = "distracted"
)

var FocusLevels = []FocusLevel{FocusFocused, FocusNormal, FocusDistracted}

func ParseFocusLevel(raw string) (FocusLevel, error) {
	level := FocusLevel(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range FocusLevels {
		if level == known {
			return level, nil
		}
	}
	return "", newValidationError("focus", fmt.Sprintf("unknown focus level %q", raw))
}

// UncategorizedSection is recorded when no section was selected.
const UncategorizedSection = "uncategorized"

const dateLayout = "2006-01-02"

type Session struct {
	ID        string     `json:"id"`
	Date      string     `json:"date"`
	Timestamp int64      `json:"timestamp"`
	Duration  int        `json:"duration"`
	Mode      Mode       `json:"mode"`
	Focus     FocusLevel `json:"focus"`
	Section   string     `json:"section"`
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return newValidationError("id", "is required")
	}
	if _, err := time.Parse(dateLayout, s.Date); err != nil {
		return newValidationError("date", fmt.Sprintf("invalid date %q", s.Date))
	}
	if s.Duration < 0 {
		return newValidationError("duration", "must not be negative")
	}
	if _, err := ParseMode(string(s.Mode)); err != nil {
		return err
	}
	if _, err := ParseFocusLevel(string(s.Focus)); err != nil {
		return err
	}
	return nil
}

func (s Session) RecordedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// SectionOrDefault maps an empty section reference to the sentinel.
func (s Session) SectionOrDefault() string {
	if strings.TrimSpace(s.Section) == "" {
		return UncategorizedSection
	}
	return s.Section
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, newValidationError("date", fmt.Sprintf("invalid date %q", raw))
	}
	return t, nil
}

func roundMinutes(seconds int) int {
	return int(math.Round(float64(seconds) / 60))
}
