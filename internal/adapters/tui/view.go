package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/studypomo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const progressWidth = 32

func (m model) View() string {
	s := m.styles
	state := m.state

	section := state.Section
	if section == "" {
		section = "none"
	}
	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.title.Render("studypomo"),
			s.header.Render(fmt.Sprintf("  %s · %s · section: %s", appModeLabel(state.AppMode), m.identity, section)),
		),
		lipgloss.JoinHorizontal(lipgloss.Center,
			modeBadge(s, state.Mode),
			"  ",
			s.clock.Render(formatClock(state.Remaining)),
			"  ",
			s.header.Render(statusLabel(state.Status)),
		),
		renderProgressBar(state.Progress(), progressWidth, s),
		s.detail.Render(fmt.Sprintf("sessions: %d   streak: %dm", state.CompletedSessions, state.ContinuousMinutes())),
	}

	switch {
	case m.err != nil:
		lines = append(lines, s.warning.Render(m.err.Error()))
	case m.notice != "":
		lines = append(lines, s.notice.Render(m.notice))
	}

	lines = append(lines, "", m.help.View(m.keys))
	return s.frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func modeBadge(s styles, mode domain.Mode) string {
	style, ok := s.mode[mode]
	if !ok {
		style = s.title
	}
	return style.Render(strings.ToUpper(mode.Label()))
}

func formatClock(seconds int) string {
	seconds = max(seconds, 0)
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func statusLabel(status domain.TimerStatus) string {
	switch status {
	case domain.TimerRunning:
		return "running"
	case domain.TimerPausedStatus:
		return "paused"
	case domain.TimerAwaitingFocus:
		return "rate your focus"
	default:
		return "ready"
	}
}

func appModeLabel(mode domain.AppMode) string {
	if mode == domain.AppModeMockExam {
		return "mock exam"
	}
	return "pomodoro"
}

func renderProgressBar(fraction float64, width int, s styles) string {
	fraction = math.Max(0, math.Min(1, fraction))
	filled := int(math.Round(float64(width) * fraction))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barEmpty.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barEmpty.Render("]"),
	)
}
