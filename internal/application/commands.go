package application

import (
	"fmt"

	"github.com/bnema/studypomo/internal/domain"
)

// UpdateSettingsCommand changes only the fields that are set.
type UpdateSettingsCommand struct {
	WorkMinutes      *int
	BreakMinutes     *int
	LongBreakMinutes *int
	MockExamMinutes  *int
	AppMode          *domain.AppMode
}

func (c UpdateSettingsCommand) apply(settings domain.Settings) domain.Settings {
	if c.WorkMinutes != nil {
		settings.Durations.Work = *c.WorkMinutes
	}
	if c.BreakMinutes != nil {
		settings.Durations.Break = *c.BreakMinutes
	}
	if c.LongBreakMinutes != nil {
		settings.Durations.LongBreak = *c.LongBreakMinutes
	}
	if c.MockExamMinutes != nil {
		settings.Durations.MockExam = *c.MockExamMinutes
	}
	if c.AppMode != nil {
		settings.AppMode = *c.AppMode
	}
	return settings
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(raw) {
	case ExportCSV, ExportJSON:
		return ExportFormat(raw), nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want csv or json)", raw)
	}
}
