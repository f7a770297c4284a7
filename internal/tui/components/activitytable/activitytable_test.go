package activitytable

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/models"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testRows() []models.Activity {
	return []models.Activity{
		{ID: "a", List: models.ListWithRest, Name: "Study", Duration: "3:00"},
		{ID: "b", List: models.ListWithRest, Name: "Reading", Duration: "0:45"},
	}
}

func TestSetActivities(t *testing.T) {
	m := New(models.ListWithRest, 60, 10)
	m.SetActivities(testRows(), constants.NumberFormatRoman)

	if m.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", m.Len())
	}
	if got := m.table.Rows()[1][0]; got != "II" {
		t.Errorf("expected roman label II, got %q", got)
	}
	a, ok := m.Selected()
	if !ok || a.ID != "a" {
		t.Errorf("expected first row selected, got %+v", a)
	}
}

func TestSetActivities_ClampsCursor(t *testing.T) {
	m := New(models.ListWithRest, 60, 10)
	m.SetActivities(testRows(), constants.NumberFormatNumbers)
	m.table.SetCursor(1)

	m.SetActivities(testRows()[:1], constants.NumberFormatNumbers)
	a, ok := m.Selected()
	if !ok || a.ID != "a" {
		t.Errorf("expected cursor clamped to remaining row, got %+v", a)
	}
}

func TestUpdate_Messages(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		empty bool
		check func(t *testing.T, msg tea.Msg)
	}{
		{
			name: "add",
			key:  "a",
			check: func(t *testing.T, msg tea.Msg) {
				add, ok := msg.(AddActivityMsg)
				if !ok || add.List != models.ListWithRest {
					t.Errorf("expected AddActivityMsg for with_rest, got %#v", msg)
				}
			},
		},
		{
			name:  "add on empty table",
			key:   "a",
			empty: true,
			check: func(t *testing.T, msg tea.Msg) {
				if _, ok := msg.(AddActivityMsg); !ok {
					t.Errorf("expected AddActivityMsg, got %#v", msg)
				}
			},
		},
		{
			name: "edit",
			key:  "e",
			check: func(t *testing.T, msg tea.Msg) {
				edit, ok := msg.(EditActivityMsg)
				if !ok || edit.Activity.ID != "a" {
					t.Errorf("expected EditActivityMsg for a, got %#v", msg)
				}
			},
		},
		{
			name: "delete",
			key:  "d",
			check: func(t *testing.T, msg tea.Msg) {
				del, ok := msg.(DeleteActivityMsg)
				if !ok || del.Activity.Name != "Study" {
					t.Errorf("expected DeleteActivityMsg for Study, got %#v", msg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(models.ListWithRest, 60, 10)
			if !tt.empty {
				m.SetActivities(testRows(), constants.NumberFormatNumbers)
			}
			_, cmd := m.Update(runes(tt.key))
			if cmd == nil {
				t.Fatal("expected a command")
			}
			tt.check(t, cmd())
		})
	}
}

func TestUpdate_EditAndDeleteNeedSelection(t *testing.T) {
	m := New(models.ListJoint, 60, 10)
	for _, k := range []string{"e", "d"} {
		if _, cmd := m.Update(runes(k)); cmd != nil {
			t.Errorf("%s on an empty table should not emit a command", k)
		}
	}
}

func TestView_Empty(t *testing.T) {
	m := New(models.ListJoint, 60, 10)
	if got := m.View(); got != "\n  No activities yet.\n  Press 'a' to add one." {
		t.Errorf("unexpected empty view: %q", got)
	}
}
