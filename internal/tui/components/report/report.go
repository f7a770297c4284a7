// Package report renders the last calculation in a scrollable viewport.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/dayfit/internal/duration"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/utils"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(26)

	skippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)
)

type Model struct {
	viewport     viewport.Model
	Report       *models.ScheduleReport
	numberFormat string
	header       lipgloss.Color
	headerText   lipgloss.Color
}

func New(width, height int) Model {
	return Model{
		viewport:   viewport.New(width, height),
		header:     lipgloss.Color("#B53534"),
		headerText: lipgloss.Color("#FFFFFF"),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Report == nil {
		return "\n  No calculation yet. Press 'c' to calculate."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetColors sets the header colours of the report table.
func (m *Model) SetColors(header, headerText lipgloss.Color) {
	m.header = header
	m.headerText = headerText
	m.Render()
}

func (m *Model) SetReport(report models.ScheduleReport, numberFormat string) {
	m.Report = &report
	m.numberFormat = numberFormat
	m.Render()
	m.viewport.GotoTop()
}

func (m *Model) SetNumberFormat(numberFormat string) {
	m.numberFormat = numberFormat
	m.Render()
}

func (m *Model) Render() {
	if m.Report == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(Content(*m.Report, m.numberFormat, m.header, m.headerText))
}

// Content lays out the task table, the summary lines and any skipped rows.
func Content(r models.ScheduleReport, numberFormat string, header, headerText lipgloss.Color) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(headerText).
		Background(header).
		Bold(true).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(header)).
		Headers("#", "Activity", "Rest", "Work", "Total").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, row := range r.Rows {
		rest := "no"
		if row.RestEligible {
			rest = "yes"
		}
		t.Row(utils.RowLabel(i+1, numberFormat), row.Name, rest, row.WorkText(), duration.Format(row.Total))
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n\n")
	for _, line := range r.Summary() {
		b.WriteString(labelStyle.Render(line.Label+":") + line.Value + "\n")
	}
	for _, s := range r.Skipped {
		b.WriteString(skippedStyle.Render(fmt.Sprintf("Skipped: %s", s.Error())) + "\n")
	}
	return b.String()
}
