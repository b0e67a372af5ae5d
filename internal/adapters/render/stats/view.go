package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/studypomo/internal/application"
	"github.com/bnema/studypomo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 30

type RenderOptions struct {
	// BarWidth is the width in cells of the longest bar.
	BarWidth int
}

func renderView(report application.StatsReport, opts RenderOptions, s styles) string {
	width := opts.BarWidth
	if width <= 0 {
		width = defaultBarWidth
	}

	lines := []string{
		s.title.Render(fmt.Sprintf("Study stats: %s", periodLabel(report.Period))),
		s.header.Render(report.Now.Format("Mon 02 Jan 2006 15:04")),
		s.section.Render(renderToday(report.Today, s)),
		s.section.Render(renderBars(report.Bar, width, s)),
		s.section.Render(renderPie(report.Pie, width, s)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderToday(today domain.TodayStats, s styles) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("Today"),
		s.detail.Render(fmt.Sprintf("sessions: %d", today.Sessions)),
		s.detail.Render(fmt.Sprintf("studied:  %s", formatMinutes(today.Minutes))),
		s.detail.Render(fmt.Sprintf("streak:   %s", formatMinutes(today.ContinuousMinutes))),
	)
}

func renderBars(chart domain.BarChart, width int, s styles) string {
	lines := []string{s.title.Render("Focus by " + bucketLabel(chart.Period))}

	peak := 0
	for i := range chart.Labels {
		peak = max(peak, chart.Total(i))
	}
	if peak == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render("No sessions recorded in this period."))...)
	}

	for i, label := range chart.Labels {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			s.label.Render(label),
			renderStackedBar(chart, i, peak, width, s),
			" ",
			s.value.Render(formatMinutes(chart.Total(i))),
		))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
		s.focused.Render("█ focused  "),
		s.normal.Render("█ normal  "),
		s.distracted.Render("█ distracted"),
	))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderStackedBar scales the bucket against the busiest one.
func renderStackedBar(chart domain.BarChart, i, peak, width int, s styles) string {
	cells := func(minutes int) int {
		return int(math.Round(float64(minutes) / float64(peak) * float64(width)))
	}

	focused := cells(chart.Focused[i])
	normal := cells(chart.Normal[i])
	distracted := min(cells(chart.Distracted[i]), width-focused-normal)
	distracted = max(distracted, 0)
	rest := max(width-focused-normal-distracted, 0)

	return s.focused.Render(strings.Repeat("█", focused)) +
		s.normal.Render(strings.Repeat("█", normal)) +
		s.distracted.Render(strings.Repeat("█", distracted)) +
		s.barEmpty.Render(strings.Repeat("·", rest))
}

func renderPie(chart domain.PieChart, width int, s styles) string {
	lines := []string{s.title.Render("By section")}

	total := chart.TotalMinutes()
	if total == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render("No sessions recorded in this period."))...)
	}

	nameWidth := 0
	for _, slice := range chart.Slices {
		nameWidth = max(nameWidth, lipgloss.Width(slice.Section))
	}

	for _, slice := range chart.Slices {
		share := float64(slice.Minutes) / float64(total)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(slice.Color))
		filled := int(math.Round(share * float64(width)))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			swatch.Render("● "),
			s.detail.Width(nameWidth+2).Render(slice.Section),
			swatch.Render(strings.Repeat("■", filled)),
			" ",
			s.value.Render(fmt.Sprintf("%3.0f%% %s", share*100, formatMinutes(slice.Minutes))),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func periodLabel(period domain.Period) string {
	switch period {
	case domain.PeriodToday:
		return "today"
	case domain.PeriodWeek:
		return "last 7 days"
	case domain.PeriodMonth:
		return "last 4 weeks"
	case domain.PeriodYear:
		return "last 12 months"
	default:
		return string(period)
	}
}

func bucketLabel(period domain.Period) string {
	switch period {
	case domain.PeriodToday:
		return "hour"
	case domain.PeriodWeek:
		return "day"
	case domain.PeriodMonth:
		return "week"
	default:
		return "month"
	}
}
