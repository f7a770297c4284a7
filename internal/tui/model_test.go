package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/scheduler"
	"github.com/julianstephens/dayfit/internal/storage"
	"github.com/julianstephens/dayfit/internal/tui/components/activitytable"
)

func setupStore(t *testing.T, rows ...models.Activity) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "dayfit.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	for _, a := range rows {
		if _, err := store.AddActivity(a); err != nil {
			t.Fatalf("failed to add activity: %v", err)
		}
	}
	return store
}

func scenarioRows() []models.Activity {
	return []models.Activity{
		{List: models.ListWithRest, Name: "Study", Duration: "3:00"},
		{List: models.ListJoint, Name: "Breakfast", Duration: "1:00"},
	}
}

func newTestModel(t *testing.T, store storage.Provider) Model {
	t.Helper()
	m, err := NewModel(store, scheduler.New())
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, setupStore(t, scenarioRows()...))

	if m.state != constants.StateWithRest {
		t.Errorf("expected first tab, got %d", m.state)
	}
	if got := m.tables[0].Len(); got != 1 {
		t.Errorf("expected 1 row with breaks, got %d", got)
	}
	if got := m.tables[2].Len(); got != 1 {
		t.Errorf("expected 1 joint row, got %d", got)
	}
	if !strings.Contains(m.View(), "Study") {
		t.Errorf("expected Study in view")
	}
}

func TestTabNavigation(t *testing.T) {
	m := newTestModel(t, setupStore(t))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateSettings {
		t.Fatalf("shift+tab from first tab should wrap to settings, got %d", m.state)
	}
	for i := 0; i < constants.TabCount; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	if m.state != constants.StateSettings {
		t.Errorf("a full cycle should return to settings, got %d", m.state)
	}
	m, _ = update(t, m, runes("l"))
	if m.state != constants.StateWithRest {
		t.Errorf("l should move to the next tab, got %d", m.state)
	}
}

func TestCalculate(t *testing.T) {
	m := newTestModel(t, setupStore(t, scenarioRows()...))

	m, _ = update(t, m, runes("c"))
	if m.state != constants.StateReport {
		t.Fatalf("expected report tab after calculating, got %d", m.state)
	}
	r := m.reportModel.Report
	if r == nil {
		t.Fatal("expected a report")
	}
	if r.GrandTotal != 265*time.Minute || !r.FitsInDay {
		t.Errorf("unexpected totals: %+v", *r)
	}
	if !strings.Contains(m.status, "Calculated 2 task(s)") {
		t.Errorf("unexpected status: %q", m.status)
	}
}

func TestCalculate_EmptyShowsWarning(t *testing.T) {
	m := newTestModel(t, setupStore(t))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = update(t, m, runes("c"))
	if m.state != constants.StateWarning {
		t.Fatalf("expected warning state, got %d", m.state)
	}
	if !strings.Contains(m.View(), "no activities to calculate") {
		t.Errorf("expected warning text in view")
	}

	// The warning blocks other keys until dismissed
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateWarning {
		t.Fatalf("tab should not dismiss the warning")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != constants.StateWithoutRest {
		t.Errorf("expected to return to the previous tab, got %d", m.state)
	}
}

func TestDeleteFlow(t *testing.T) {
	store := setupStore(t, scenarioRows()...)
	m := newTestModel(t, store)

	confirm := func(m Model) Model {
		t.Helper()
		m, cmd := update(t, m, runes("d"))
		if cmd == nil {
			t.Fatal("expected delete command")
		}
		del, ok := cmd().(activitytable.DeleteActivityMsg)
		if !ok {
			t.Fatal("expected DeleteActivityMsg")
		}
		m, cmd = update(t, m, del)
		m, _ = update(t, m, cmd())
		if m.state != constants.StateConfirm {
			t.Fatalf("expected confirm state, got %d", m.state)
		}
		return m
	}

	m = confirm(m)
	if !strings.Contains(m.View(), `Delete "Study" (3:00)?`) {
		t.Errorf("expected confirmation message in view")
	}
	m, cmd := update(t, m, runes("n"))
	if cmd != nil || m.state != constants.StateWithRest {
		t.Fatalf("n should cancel without a command")
	}

	m = confirm(m)
	m, cmd = update(t, m, runes("y"))
	if cmd == nil {
		t.Fatal("expected delete action")
	}
	m, _ = update(t, m, cmd())
	if m.tables[0].Len() != 0 {
		t.Errorf("expected Study to be removed from the table")
	}
	if m.status != "Deleted Study" {
		t.Errorf("unexpected status: %q", m.status)
	}
	deleted, err := store.GetDeletedActivities()
	if err != nil || len(deleted) != 1 {
		t.Errorf("expected 1 soft-deleted activity, got %d (%v)", len(deleted), err)
	}
}

func TestSaveActivityForm(t *testing.T) {
	store := setupStore(t)
	m := newTestModel(t, store)

	m, _ = update(t, m, activitytable.AddActivityMsg{List: models.ListWithRest})
	if m.state != constants.StateEditing {
		t.Fatalf("expected editing state, got %d", m.state)
	}
	m.activityForm.Name = " Gym "
	m.activityForm.Duration = "1:15"
	m.activityForm.List = models.ListJoint
	m.saveActivityForm()

	if m.state != constants.StateJoint {
		t.Errorf("expected joint tab after saving, got %d", m.state)
	}
	a, ok := m.tables[2].Selected()
	if !ok || a.Name != "Gym" || a.Duration != "1:15" {
		t.Errorf("unexpected saved row: %+v", a)
	}

	// Editing moves the row and keeps its id
	m, _ = update(t, m, activitytable.EditActivityMsg{Activity: a})
	m.activityForm.List = models.ListWithoutRest
	m.saveActivityForm()
	if m.tables[2].Len() != 0 || m.tables[1].Len() != 1 {
		t.Errorf("expected row moved to without_rest")
	}
	got, err := store.GetActivity(a.ID)
	if err != nil || got.List != models.ListWithoutRest {
		t.Errorf("expected stored row moved, got %+v (%v)", got, err)
	}
}

func TestActivityForm_EscCancels(t *testing.T) {
	m := newTestModel(t, setupStore(t))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, activitytable.AddActivityMsg{List: models.ListWithoutRest})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateWithoutRest {
		t.Errorf("esc should return to the table, got %d", m.state)
	}
}

func TestSaveSettingsForm(t *testing.T) {
	store := setupStore(t, scenarioRows()...)
	m := newTestModel(t, store)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})

	m, _ = update(t, m, runes("e"))
	if m.state != constants.StateEditSettings {
		t.Fatalf("expected settings form, got %d", m.state)
	}
	m.settingsForm.Theme = constants.ThemeDarkBlue
	m.settingsForm.NumberFormat = constants.NumberFormatRoman
	m.saveSettingsForm()

	if m.state != constants.StateSettings {
		t.Errorf("expected settings tab, got %d", m.state)
	}
	if m.theme != ThemeFor(constants.ThemeDarkBlue) {
		t.Errorf("expected dark_blue palette to be applied")
	}
	saved, err := store.GetSettings()
	if err != nil || saved.NumberFormat != constants.NumberFormatRoman {
		t.Errorf("expected settings persisted, got %+v (%v)", saved, err)
	}
	if !strings.Contains(m.View(), "roman_numerals") {
		t.Errorf("expected settings view to show the new format")
	}
}

func TestSaveSettingsForm_RejectsUnknownTheme(t *testing.T) {
	store := setupStore(t)
	m := newTestModel(t, store)
	m.state = constants.StateSettings
	m, _ = update(t, m, runes("e"))

	m.settingsForm.Theme = "neon"
	m.saveSettingsForm()
	if !strings.HasPrefix(m.status, "Error: unknown theme") {
		t.Errorf("unexpected status: %q", m.status)
	}
	saved, _ := store.GetSettings()
	if saved.Theme != constants.DefaultTheme {
		t.Errorf("theme should be unchanged, got %s", saved.Theme)
	}
}

func TestExport(t *testing.T) {
	store := setupStore(t, scenarioRows()...)
	dir := filepath.Join(t.TempDir(), "out")
	settings := storage.DefaultSettings()
	settings.ExportDir = dir
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, store)
	m.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }

	m, cmd := update(t, m, runes("x"))
	if cmd == nil {
		t.Fatal("expected export command")
	}
	done, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatal("expected exportDoneMsg")
	}
	if len(done.paths) != 2 {
		t.Fatalf("expected both locales exported, got %v", done.paths)
	}
	for _, p := range done.paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}

	m, _ = update(t, m, done)
	if !strings.Contains(m.status, "plan_2026-10-18_En.xlsx") {
		t.Errorf("unexpected status: %q", m.status)
	}
}

func TestExport_EmptyShowsWarning(t *testing.T) {
	m := newTestModel(t, setupStore(t))
	m, cmd := update(t, m, runes("x"))
	if cmd != nil {
		t.Error("expected no export command")
	}
	if m.state != constants.StateWarning {
		t.Errorf("expected warning state, got %d", m.state)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, setupStore(t))
	m, cmd := update(t, m, runes("q"))
	if cmd == nil || !m.quitting {
		t.Fatal("expected quit")
	}
	if m.View() != "" {
		t.Errorf("expected empty view after quitting")
	}
}

func TestThemeFor(t *testing.T) {
	for _, name := range constants.Themes {
		if _, ok := themes[name]; !ok {
			t.Errorf("missing palette for %s", name)
		}
	}
	if ThemeFor("unknown") != themes[constants.ThemeDarkRed] {
		t.Errorf("unknown themes should fall back to dark_red")
	}
}
