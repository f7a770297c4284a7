package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayfit/internal/constants"
)

var tabTitles = []string{"With Breaks", "Without Breaks", "Joint", "Report", "Settings"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateEditing, constants.StateEditSettings:
		content = m.styles.doc.Render(m.form.View())
	case constants.StateConfirm:
		content = m.viewConfirm()
	case constants.StateWarning:
		content = m.viewWarning()
	case constants.StateReport:
		content = m.styles.doc.Render(m.reportModel.View())
	case constants.StateSettings:
		content = m.styles.doc.Render(m.viewSettings())
	default:
		content = m.styles.doc.Render(m.tables[m.activeTable()].View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.styles.status.Render(m.status),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	tabs := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if m.tab() == constants.SessionState(i) {
			tabs[i] = m.styles.activeTab.Render(title)
		} else {
			tabs[i] = m.styles.inactiveTab.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewSettings() string {
	exportDir := m.settings.ExportDir
	if exportDir == "" {
		exportDir = "(current directory)"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Theme:          %s", m.settings.Theme),
		fmt.Sprintf("Row numbering:  %s", m.settings.NumberFormat),
		fmt.Sprintf("Export locale:  %s", m.settings.Locale),
		fmt.Sprintf("Export dir:     %s", exportDir),
		"",
		"Press 'e' to edit.",
	)
}

func (m Model) modal(body string) string {
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		m.styles.modal.Render(body),
	)
}

func (m Model) viewConfirm() string {
	message := "Are you sure?"
	if m.confirmation != nil {
		message = m.confirmation.Message
	}
	return m.modal(lipgloss.JoinVertical(lipgloss.Center,
		m.styles.danger.Render(message),
		"",
		"[y] Yes",
		"[n] No",
	))
}

func (m Model) viewWarning() string {
	return m.modal(lipgloss.JoinVertical(lipgloss.Center,
		m.styles.warning.Render("Warning"),
		"",
		m.warning,
		"",
		"[enter] OK",
	))
}
