package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/export"
	"github.com/julianstephens/dayfit/internal/logger"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/scheduler"
	"github.com/julianstephens/dayfit/internal/storage"
	"github.com/julianstephens/dayfit/internal/tui/components/activitytable"
)

// sheetChangedMsg is sent after a background write to the store.
type sheetChangedMsg struct {
	status string
}

type exportDoneMsg struct {
	paths []string
}

type errMsg struct {
	err error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(msg.Width, msg.Height)
	}

	switch m.state {
	case constants.StateEditing:
		return m.updateActivityForm(msg)
	case constants.StateEditSettings:
		return m.updateSettingsForm(msg)
	}

	switch msg := msg.(type) {
	case constants.ConfirmationMsg:
		m.confirmation = &msg
		m.previousState = m.state
		m.state = constants.StateConfirm
		return m, nil

	case activitytable.AddActivityMsg:
		return m.openActivityForm(models.Activity{List: msg.List})

	case activitytable.EditActivityMsg:
		return m.openActivityForm(msg.Activity)

	case activitytable.DeleteActivityMsg:
		return m, confirmDelete(m.store, msg.Activity)

	case sheetChangedMsg:
		if err := m.refresh(); err != nil {
			m.status = "Error: " + err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, nil

	case exportDoneMsg:
		names := make([]string, len(msg.paths))
		for i, p := range msg.paths {
			names[i] = filepath.Base(p)
		}
		m.status = "Exported " + strings.Join(names, ", ")
		return m, nil

	case errMsg:
		logger.Error("TUI operation failed", "error", msg.err)
		m.status = "Error: " + msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	// tabs, status line and help take the rest
	w, h := max(width-4, 0), max(height-8, 3)
	for i := range m.tables {
		m.tables[i].SetSize(w, h)
	}
	m.reportModel.SetSize(w, h)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateConfirm:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			var cmd tea.Cmd
			if m.confirmation != nil && m.confirmation.Action != nil {
				cmd = m.confirmation.Action()
			}
			m.confirmation = nil
			m.state = m.previousState
			return m, cmd
		case key.Matches(msg, m.keys.Cancel):
			m.confirmation = nil
			m.state = m.previousState
		}
		return m, nil

	case constants.StateWarning:
		if key.Matches(msg, m.keys.Dismiss) {
			m.warning = ""
			m.state = m.previousState
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
		m.state = (m.state + 1) % constants.TabCount
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
		m.state = (m.state - 1 + constants.TabCount) % constants.TabCount
		return m, nil
	case key.Matches(msg, m.keys.Calculate):
		m.calculate()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		return m, m.export()
	}

	var cmd tea.Cmd
	switch {
	case m.activeTable() >= 0:
		i := m.activeTable()
		m.tables[i], cmd = m.tables[i].Update(msg)
	case m.state == constants.StateReport:
		m.reportModel, cmd = m.reportModel.Update(msg)
	case m.state == constants.StateSettings:
		if key.Matches(msg, m.keys.Edit) {
			return m.openSettingsForm()
		}
	}
	return m, cmd
}

func (m *Model) showWarning(text string) {
	m.warning = text
	m.previousState = m.state
	m.state = constants.StateWarning
}

// calculate runs the scheduler over the stored sheet and switches to the
// report tab. An empty sheet raises a warning instead.
func (m *Model) calculate() {
	sheet, err := m.store.GetSheet()
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	r, err := m.scheduler.Calculate(sheet)
	if errors.Is(err, scheduler.ErrEmptyInput) {
		m.showWarning(err.Error())
		return
	}
	if err != nil {
		logger.Error("Calculation failed", "error", err)
		m.status = "Error: " + err.Error()
		return
	}

	m.reportModel.SetReport(r, m.settings.NumberFormat)
	m.state = constants.StateReport
	m.status = fmt.Sprintf("Calculated %d task(s)", len(r.Rows))
	if n := len(r.Skipped); n > 0 {
		for _, s := range r.Skipped {
			logger.Warn("Skipped activity", "name", s.Name, "duration", s.Duration, "error", s.Err)
		}
		m.status += fmt.Sprintf(", skipped %d invalid row(s)", n)
	}
}

// export writes the workbooks in the background.
func (m *Model) export() tea.Cmd {
	sheet, err := m.store.GetSheet()
	if err != nil {
		m.status = "Error: " + err.Error()
		return nil
	}
	entries := export.Entries(sheet)
	if len(entries) == 0 {
		m.showWarning("nothing to export: add at least one activity with a name and a duration")
		return nil
	}

	dir := m.settings.ExportDir
	if dir == "" {
		dir = "."
	}
	locales := export.LocalesFor(m.settings.Locale)
	now := m.now()
	m.status = "Exporting..."

	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errMsg{fmt.Errorf("failed to create export directory: %w", err)}
		}
		paths, err := export.All(context.Background(), entries, locales, dir, now)
		if err != nil {
			return errMsg{err}
		}
		return exportDoneMsg{paths: paths}
	}
}

func confirmDelete(store storage.Provider, a models.Activity) tea.Cmd {
	return func() tea.Msg {
		return constants.ConfirmationMsg{
			Message: fmt.Sprintf("Delete %q (%s)?", a.Name, a.Duration),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					if err := store.DeleteActivity(a.ID); err != nil {
						return errMsg{err}
					}
					return sheetChangedMsg{status: "Deleted " + a.Name}
				}
			},
		}
	}
}

func (m Model) openActivityForm(a models.Activity) (tea.Model, tea.Cmd) {
	names, err := m.store.GetActivityNames()
	if err != nil {
		logger.Warn("Failed to load activity names", "error", err)
	}
	m.editing = &a
	m.activityForm = &ActivityFormModel{Name: a.Name, Duration: a.Duration, List: a.List}
	m.form = NewActivityForm(m.activityForm, names)
	m.previousState = m.state
	m.state = constants.StateEditing
	return m, m.form.Init()
}

func (m Model) updateActivityForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.saveActivityForm()
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

// saveActivityForm adds or updates the edited row and shows the table it
// ended up in.
func (m *Model) saveActivityForm() {
	a := *m.editing
	a.Name = strings.TrimSpace(m.activityForm.Name)
	a.Duration = strings.TrimSpace(m.activityForm.Duration)
	a.List = m.activityForm.List

	var err error
	if a.ID == "" {
		_, err = m.store.AddActivity(a)
	} else {
		err = m.store.UpdateActivity(a)
	}
	m.editing = nil
	if err != nil {
		m.status = "Error: " + err.Error()
		m.state = m.previousState
		return
	}
	if err := m.refresh(); err != nil {
		m.status = "Error: " + err.Error()
	} else {
		m.status = "Saved " + a.Name
	}
	m.state = tabFor(a.List)
}

func (m Model) openSettingsForm() (tea.Model, tea.Cmd) {
	m.settingsForm = &SettingsFormModel{
		Theme:        m.settings.Theme,
		NumberFormat: m.settings.NumberFormat,
		Locale:       m.settings.Locale,
		ExportDir:    m.settings.ExportDir,
	}
	m.form = NewSettingsForm(m.settingsForm)
	m.previousState = m.state
	m.state = constants.StateEditSettings
	return m, m.form.Init()
}

func (m Model) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.saveSettingsForm()
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m *Model) saveSettingsForm() {
	s := storage.Settings{
		Theme:        m.settingsForm.Theme,
		NumberFormat: m.settingsForm.NumberFormat,
		Locale:       m.settingsForm.Locale,
		ExportDir:    strings.TrimSpace(m.settingsForm.ExportDir),
	}
	m.state = m.previousState
	if err := s.Validate(); err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	if err := m.store.SaveSettings(s); err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.applySettings(s)
	if err := m.refresh(); err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.status = "Settings saved"
}
