// Package activitytable shows one activity table as a selectable grid.
package activitytable

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/utils"
)

type AddActivityMsg struct {
	List models.ListKind
}

type EditActivityMsg struct {
	Activity models.Activity
}

type DeleteActivityMsg struct {
	Activity models.Activity
}

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	kind         models.ListKind
	table        table.Model
	rows         []models.Activity
	numberFormat string
	keys         KeyMap
}

func New(kind models.ListKind, width, height int) Model {
	tableKeys := table.DefaultKeyMap()
	// d is delete here
	tableKeys.HalfPageDown = key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "½ page down"),
	)

	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithWidth(width),
		table.WithKeyMap(tableKeys),
	)
	return Model{kind: kind, table: t, keys: DefaultKeyMap()}
}

func columns(width int) []table.Column {
	name := width - 6 - 10 - 6
	if name < 20 {
		name = 20
	}
	return []table.Column{
		{Title: "#", Width: 6},
		{Title: "Activity", Width: name},
		{Title: "Duration", Width: 10},
	}
}

func (m Model) Kind() models.ListKind {
	return m.kind
}

// SetActivities replaces the rows, labelling them in the given number format.
func (m *Model) SetActivities(rows []models.Activity, numberFormat string) {
	m.rows = rows
	m.numberFormat = numberFormat
	out := make([]table.Row, len(rows))
	for i, a := range rows {
		out[i] = table.Row{utils.RowLabel(i+1, numberFormat), a.Name, a.Duration}
	}
	m.table.SetRows(out)
	if m.table.Cursor() >= len(out) {
		m.table.SetCursor(max(len(out)-1, 0))
	}
}

func (m *Model) SetStyles(s table.Styles) {
	m.table.SetStyles(s)
}

// Selected returns the activity under the cursor.
func (m Model) Selected() (models.Activity, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return models.Activity{}, false
	}
	return m.rows[i], true
}

func (m Model) Len() int {
	return len(m.rows)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			kind := m.kind
			return m, func() tea.Msg { return AddActivityMsg{List: kind} }
		case key.Matches(msg, m.keys.Edit):
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditActivityMsg{Activity: a} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteActivityMsg{Activity: a} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.rows) == 0 {
		return "\n  No activities yet.\n  Press 'a' to add one."
	}
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	m.table.SetColumns(columns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}
