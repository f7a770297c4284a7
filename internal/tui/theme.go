package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayfit/internal/constants"
)

// Theme is a named colour palette.
type Theme struct {
	Text       lipgloss.Color
	Table      lipgloss.Color
	Hover      lipgloss.Color
	HoverText  lipgloss.Color
	Header     lipgloss.Color
	HeaderText lipgloss.Color
	Background lipgloss.Color
}

var themes = map[string]Theme{
	constants.ThemeDarkRed: {
		Text: "#FAF6F3", Table: "#363636", Hover: "#AD0E0E", HoverText: "#FFFFFF",
		Header: "#B53534", HeaderText: "#FFFFFF", Background: "#2A2A2A",
	},
	constants.ThemeDarkGreen: {
		Text: "#FAF6F3", Table: "#363636", Hover: "#0EAD0E", HoverText: "#FFFFFF",
		Header: "#2CAD2C", HeaderText: "#FFFFFF", Background: "#1F1F1F",
	},
	constants.ThemeDarkBlue: {
		Text: "#FFFFFF", Table: "#1C1C2A", Hover: "#0E4DAE", HoverText: "#FFFFFF",
		Header: "#003366", HeaderText: "#FFFFFF", Background: "#1A1A2E",
	},
	constants.ThemeLight: {
		Text: "#4B5563", Table: "#F1F0E8", Hover: "#89A8B2", HoverText: "#FFFFFF",
		Header: "#B3C8CF", HeaderText: "#4B5563", Background: "#F1F0E8",
	},
	constants.ThemeDarkMode: {
		Text: "#EEEEEE", Table: "#31363F", Hover: "#76ABAE", HoverText: "#EEEEEE",
		Header: "#76ABAE", HeaderText: "#EEEEEE", Background: "#222831",
	},
	constants.ThemeDarkPink: {
		Text: "#FAF6F3", Table: "#3D2A30", Hover: "#D5006D", HoverText: "#FFFFFF",
		Header: "#C2185B", HeaderText: "#FFFFFF", Background: "#2A2A2A",
	},
	constants.ThemeTheBest: {
		Text: "#FFFFFF", Table: "#444444", Hover: "#FF5722", HoverText: "#FFFFFF",
		Header: "#FF9800", HeaderText: "#FFFFFF", Background: "#212121",
	},
	constants.ThemeOptimal: {
		Text: "#504B38", Table: "#F8F3D9", Hover: "#B9B28A", HoverText: "#504B38",
		Header: "#EBE5C2", HeaderText: "#504B38", Background: "#F8F3D9",
	},
	constants.ThemeDarkOptimal: {
		Text: "#ECDFCC", Table: "#3C3D37", Hover: "#697565", HoverText: "#ECDFCC",
		Header: "#697565", HeaderText: "#ECDFCC", Background: "#181C14",
	},
}

// ThemeFor returns the named palette, falling back to dark_red.
func ThemeFor(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[constants.DefaultTheme]
}

// TableStyles colours a bubbles table with the palette.
func (t Theme) TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Header).
		BorderBottom(true).
		Foreground(t.HeaderText).
		Background(t.Header).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(t.HoverText).
		Background(t.Hover).
		Bold(false)
	return s
}
