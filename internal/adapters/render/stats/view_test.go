package stats

import (
	"testing"
	"time"

	"github.com/bnema/studypomo/internal/application"
	"github.com/bnema/studypomo/internal/domain"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(t *testing.T, period domain.Period) application.StatsReport {
	t.Helper()

	now := time.Date(2026, 4, 7, 18, 0, 0, 0, time.UTC)
	sections := domain.Sections{"math", "physics"}
	sessions := []domain.Session{
		{ID: "1", Date: "2026-04-07", Timestamp: time.Date(2026, 4, 7, 9, 10, 0, 0, time.UTC).UnixMilli(), Duration: 25, Mode: domain.ModeWork, Focus: domain.FocusFocused, Section: "math"},
		{ID: "2", Date: "2026-04-07", Timestamp: time.Date(2026, 4, 7, 9, 40, 0, 0, time.UTC).UnixMilli(), Duration: 50, Mode: domain.ModeWork, Focus: domain.FocusDistracted, Section: "physics"},
		{ID: "3", Date: "2026-04-07", Timestamp: time.Date(2026, 4, 7, 14, 0, 0, 0, time.UTC).UnixMilli(), Duration: 25, Mode: domain.ModeWork, Focus: domain.FocusNormal, Section: "math"},
	}

	bar, err := domain.BuildBarChart(sessions, period, now)
	require.NoError(t, err)
	pie, err := domain.BuildPieChart(sessions, sections, period, now)
	require.NoError(t, err)

	return application.StatsReport{
		Period:   period,
		Now:      now,
		Today:    domain.ComputeTodayStats(sessions, now, 3000),
		Bar:      bar,
		Pie:      pie,
		Sections: sections,
		Theme:    domain.ThemeDark,
	}
}

func TestRenderTodayReport(t *testing.T) {
	output, err := Render(sampleReport(t, domain.PeriodToday), RenderOptions{BarWidth: 20})
	require.NoError(t, err)

	plain := ansi.Strip(output)
	assert.Contains(t, plain, "Study stats: today")
	assert.Contains(t, plain, "sessions: 3")
	assert.Contains(t, plain, "studied:  1h40m")
	assert.Contains(t, plain, "streak:   50m")
	assert.Contains(t, plain, "Focus by hour")
	assert.Contains(t, plain, "09:00")
	assert.Contains(t, plain, "1h15m")
	assert.Contains(t, plain, "math")
	assert.Contains(t, plain, " 50% 50m")
}

func TestRenderEmptyPeriod(t *testing.T) {
	report := sampleReport(t, domain.PeriodWeek)
	report.Bar = domain.BarChart{Period: domain.PeriodWeek, Labels: []string{"04/01"}, Focused: []int{0}, Normal: []int{0}, Distracted: []int{0}}
	report.Pie = domain.PieChart{Period: domain.PeriodWeek}

	output, err := Render(report, RenderOptions{})
	require.NoError(t, err)

	plain := ansi.Strip(output)
	assert.Contains(t, plain, "last 7 days")
	assert.Contains(t, plain, "No sessions recorded in this period.")
}

func TestRenderStackedBarFitsWidth(t *testing.T) {
	chart := domain.BarChart{
		Labels:     []string{"a", "b"},
		Focused:    []int{10, 1},
		Normal:     []int{10, 1},
		Distracted: []int{10, 1},
	}
	s := newStyles(domain.ThemeLight)

	assert.Equal(t, 12, ansi.StringWidth(renderStackedBar(chart, 0, 30, 12, s)))
	assert.Equal(t, 12, ansi.StringWidth(renderStackedBar(chart, 1, 30, 12, s)))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", formatMinutes(0))
	assert.Equal(t, "59m", formatMinutes(59))
	assert.Equal(t, "2h05m", formatMinutes(125))
}
