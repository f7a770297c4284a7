package models

import (
	"fmt"
	"strings"
)

// ListKind identifies which activity table a row belongs to
type ListKind string

const (
	ListWithRest    ListKind = "with_rest"
	ListWithoutRest ListKind = "without_rest"
	ListJoint       ListKind = "joint"
)

// ListKinds lists every activity table in display order.
var ListKinds = []ListKind{ListWithRest, ListWithoutRest, ListJoint}

// ParseListKind accepts the canonical names plus a few short aliases.
func ParseListKind(s string) (ListKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "with_rest", "with-rest", "rest", "breaks":
		return ListWithRest, nil
	case "without_rest", "without-rest", "no-rest", "nobreaks", "no-breaks":
		return ListWithoutRest, nil
	case "joint", "daily":
		return ListJoint, nil
	default:
		return "", fmt.Errorf("invalid list: %s (expected with_rest, without_rest or joint)", s)
	}
}

// RestEligible reports whether rows of this list get breaks inserted.
func (k ListKind) RestEligible() bool {
	return k == ListWithRest
}

// Title is the heading used for the list in the TUI and legacy files.
func (k ListKind) Title() string {
	switch k {
	case ListWithRest:
		return "Activities with breaks"
	case ListWithoutRest:
		return "Activities without breaks"
	case ListJoint:
		return "Daily joint activities"
	default:
		return string(k)
	}
}

// Activity is one editable row of an activity table.
type Activity struct {
	ID        string   `json:"id"`
	List      ListKind `json:"list"`
	Position  int      `json:"position"`
	Name      string   `json:"name"`
	Duration  string   `json:"duration"`             // H:MM or HH:MM as entered
	DeletedAt *string  `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// IsBlank reports whether the row is missing its name or its duration.
func (a Activity) IsBlank() bool {
	return strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Duration) == ""
}

// Sheet is a snapshot of all three activity tables.
type Sheet struct {
	WithRest    []Activity `json:"with_rest"`
	WithoutRest []Activity `json:"without_rest"`
	Joint       []Activity `json:"joint"`
}

// List returns the rows of the given table.
func (s Sheet) List(kind ListKind) []Activity {
	switch kind {
	case ListWithRest:
		return s.WithRest
	case ListWithoutRest:
		return s.WithoutRest
	case ListJoint:
		return s.Joint
	}
	return nil
}

// SetList replaces the rows of the given table, stamping list and position.
func (s *Sheet) SetList(kind ListKind, rows []Activity) {
	out := make([]Activity, len(rows))
	for i, r := range rows {
		r.List = kind
		r.Position = i
		out[i] = r
	}
	switch kind {
	case ListWithRest:
		s.WithRest = out
	case ListWithoutRest:
		s.WithoutRest = out
	case ListJoint:
		s.Joint = out
	}
}

// All returns every row in table order.
func (s Sheet) All() []Activity {
	all := make([]Activity, 0, s.Len())
	all = append(all, s.WithRest...)
	all = append(all, s.WithoutRest...)
	all = append(all, s.Joint...)
	return all
}

func (s Sheet) Len() int {
	return len(s.WithRest) + len(s.WithoutRest) + len(s.Joint)
}
