package tui

import (
	"github.com/bnema/studypomo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	frame    lipgloss.Style
	title    lipgloss.Style
	header   lipgloss.Style
	mode     map[domain.Mode]lipgloss.Style
	clock    lipgloss.Style
	detail   lipgloss.Style
	notice   lipgloss.Style
	warning  lipgloss.Style
	barFill  lipgloss.Style
	barEmpty lipgloss.Style
}

func newStyles(theme domain.Theme) styles {
	text, faint := lipgloss.Color("236"), lipgloss.Color("245")
	if theme == domain.ThemeDark {
		text, faint = lipgloss.Color("252"), lipgloss.Color("241")
	}
	badge := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.Color("231")).Background(lipgloss.Color(color))
	}

	return styles{
		frame:  lipgloss.NewStyle().Padding(1, 2),
		title:  lipgloss.NewStyle().Bold(true).Foreground(text),
		header: lipgloss.NewStyle().Foreground(faint),
		mode: map[domain.Mode]lipgloss.Style{
			domain.ModeWork:      badge("#ef4444"),
			domain.ModeBreak:     badge("#10b981"),
			domain.ModeLongBreak: badge("#3b82f6"),
			domain.ModeMockExam:  badge("#8b5cf6"),
		},
		clock:    lipgloss.NewStyle().Bold(true).Foreground(text),
		detail:   lipgloss.NewStyle().Foreground(text),
		notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")).MarginTop(1),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")).MarginTop(1),
		barFill:  lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
