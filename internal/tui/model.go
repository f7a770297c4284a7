package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/scheduler"
	"github.com/julianstephens/dayfit/internal/storage"
	"github.com/julianstephens/dayfit/internal/tui/components/activitytable"
	"github.com/julianstephens/dayfit/internal/tui/components/report"
)

type Model struct {
	store         storage.Provider
	scheduler     *scheduler.Scheduler
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	tables        []activitytable.Model
	reportModel   report.Model
	settings      storage.Settings
	theme         Theme
	styles        styles
	form          *huh.Form
	activityForm  *ActivityFormModel
	settingsForm  *SettingsFormModel
	editing       *models.Activity
	confirmation  *constants.ConfirmationMsg
	warning       string
	status        string
	quitting      bool
	width         int
	height        int
	now           func() time.Time
}

func NewModel(store storage.Provider, sched *scheduler.Scheduler) (Model, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return Model{}, fmt.Errorf("failed to load settings: %w", err)
	}

	tables := make([]activitytable.Model, len(models.ListKinds))
	for i, kind := range models.ListKinds {
		tables[i] = activitytable.New(kind, 0, 0)
	}

	m := Model{
		store:       store,
		scheduler:   sched,
		state:       constants.StateWithRest,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		tables:      tables,
		reportModel: report.New(0, 0),
		now:         time.Now,
	}
	m.applySettings(settings)
	if err := m.refresh(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// refresh reloads the three activity tables from the store.
func (m *Model) refresh() error {
	sheet, err := m.store.GetSheet()
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}
	for i := range m.tables {
		m.tables[i].SetActivities(sheet.List(m.tables[i].Kind()), m.settings.NumberFormat)
	}
	return nil
}

func (m *Model) applySettings(s storage.Settings) {
	m.settings = s
	m.theme = ThemeFor(s.Theme)
	m.styles = newStyles(m.theme)
	for i := range m.tables {
		m.tables[i].SetStyles(m.theme.TableStyles())
	}
	m.reportModel.SetColors(m.theme.Header, m.theme.HeaderText)
	m.reportModel.SetNumberFormat(s.NumberFormat)
}

// tab is the tab to highlight; modal states keep the tab they opened from.
func (m Model) tab() constants.SessionState {
	if m.state < constants.TabCount {
		return m.state
	}
	return m.previousState
}

// activeTable returns the index of the activity table for the current
// tab, or -1 on the report and settings tabs.
func (m Model) activeTable() int {
	if t := m.tab(); t <= constants.StateJoint {
		return int(t)
	}
	return -1
}

func tabFor(kind models.ListKind) constants.SessionState {
	for i, k := range models.ListKinds {
		if k == kind {
			return constants.SessionState(i)
		}
	}
	return constants.StateWithRest
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateConfirm:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case constants.StateWarning:
		return []key.Binding{m.keys.Dismiss}
	}
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch {
	case m.activeTable() >= 0:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case m.state == constants.StateSettings:
		keys = append(keys, m.keys.Edit)
	}
	return append(keys, m.keys.Calculate, m.keys.Export)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	actions := []key.Binding{m.keys.Calculate, m.keys.Export}
	switch {
	case m.activeTable() >= 0:
		actions = append(actions, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case m.state == constants.StateSettings:
		actions = append(actions, m.keys.Edit)
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
