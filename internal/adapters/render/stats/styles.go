package stats

import (
	"github.com/bnema/studypomo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	detail     lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	label      lipgloss.Style
	value      lipgloss.Style
	focused    lipgloss.Style
	normal     lipgloss.Style
	distracted lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles(theme domain.Theme) styles {
	text, faint := lipgloss.Color("236"), lipgloss.Color("245")
	if theme == domain.ThemeDark {
		text, faint = lipgloss.Color("252"), lipgloss.Color("241")
	}

	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(faint),
		detail:     lipgloss.NewStyle().Foreground(text),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		label:      lipgloss.NewStyle().Foreground(faint).Width(7),
		value:      lipgloss.NewStyle().Foreground(text),
		focused:    lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981")),
		normal:     lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")),
		distracted: lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
