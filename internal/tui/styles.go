package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	doc         lipgloss.Style
	danger      lipgloss.Style
	warning     lipgloss.Style
	status      lipgloss.Style
	modal       lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		activeTab: lipgloss.NewStyle().
			Foreground(t.HeaderText).
			Background(t.Header).
			Padding(0, 1).
			Bold(true),
		inactiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1),
		doc: lipgloss.NewStyle().Padding(1, 2),
		danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true),
		status: lipgloss.NewStyle().
			Foreground(t.Hover).
			Italic(true),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Header).
			Padding(1, 3),
	}
}
