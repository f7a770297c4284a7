package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/duration"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/scheduler"
)

const (
	ConflictIncompleteRow     constants.ConflictType = "incomplete_row"
	ConflictInvalidDuration   constants.ConflictType = "invalid_duration"
	ConflictDuplicateActivity constants.ConflictType = "duplicate_activity_name"
	ConflictOvercommitted     constants.ConflictType = "overcommitted"
	ConflictEmptySheet        constants.ConflictType = "empty_sheet"
)

// Severity separates problems that change the result from informational notes.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict represents a detected problem in an activity sheet
type Conflict struct {
	Type        constants.ConflictType
	Severity    Severity
	Description string
	List        models.ListKind
	Items       []string // Activity names involved
	ActivityIDs []string // IDs of rows involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict has error severity
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", conflict.Severity, conflict.Description)
	}
	return b.String()
}

// Validator checks activity sheets before calculation
type Validator struct {
	scheduler *scheduler.Scheduler
}

// New creates a new Validator
func New() *Validator {
	return &Validator{scheduler: scheduler.New()}
}

// ValidateSheet reports incomplete rows, unparsable durations, repeated
// names within a table, an empty sheet and a schedule that overruns the day.
func (v *Validator) ValidateSheet(sheet models.Sheet) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, kind := range models.ListKinds {
		rows := sheet.List(kind)
		result.Conflicts = append(result.Conflicts, v.validateRows(kind, rows)...)
		result.Conflicts = append(result.Conflicts, duplicateNames(kind, rows)...)
	}

	report, err := v.scheduler.Calculate(sheet)
	switch {
	case errors.Is(err, scheduler.ErrEmptyInput):
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictEmptySheet,
			Severity:    SeverityError,
			Description: "No complete activities: every table is empty",
		})
	case err == nil && !report.FitsInDay:
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:     ConflictOvercommitted,
			Severity: SeverityError,
			Description: fmt.Sprintf("Overcommitted: %s planned including rest, %s over one day",
				duration.Format(report.GrandTotal), duration.Format(-report.Remainder)),
		})
	}

	return result
}

func (v *Validator) validateRows(kind models.ListKind, rows []models.Activity) []Conflict {
	var conflicts []Conflict
	for _, row := range rows {
		if row.DeletedAt != nil {
			continue
		}
		name := strings.TrimSpace(row.Name)
		dur := strings.TrimSpace(row.Duration)

		switch {
		case name == "" && dur == "":
			// Fully blank rows are ignored by the calculation.
		case name == "" || dur == "":
			conflicts = append(conflicts, Conflict{
				Type:        ConflictIncompleteRow,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("%s: row %d is missing its %s and will be ignored", kind.Title(), row.Position+1, missingField(name, dur)),
				List:        kind,
				Items:       []string{row.Name},
				ActivityIDs: idList(row.ID),
			})
		default:
			if _, err := duration.Parse(row.Duration); err != nil {
				conflicts = append(conflicts, Conflict{
					Type:        ConflictInvalidDuration,
					Severity:    SeverityError,
					Description: fmt.Sprintf("%s: \"%s\" has %v", kind.Title(), row.Name, err),
					List:        kind,
					Items:       []string{row.Name},
					ActivityIDs: idList(row.ID),
				})
			}
		}
	}
	return conflicts
}

func missingField(name, dur string) string {
	if name == "" {
		return "name"
	}
	return "duration"
}

func idList(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}

func duplicateNames(kind models.ListKind, rows []models.Activity) []Conflict {
	ids := make(map[string][]string)
	counts := make(map[string]int)
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if row.DeletedAt != nil || name == "" {
			continue
		}
		counts[name]++
		if row.ID != "" {
			ids[name] = append(ids[name], row.ID)
		}
	}

	names := make([]string, 0, len(counts))
	for name, n := range counts {
		if n > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	conflicts := make([]Conflict, 0, len(names))
	for _, name := range names {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateActivity,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("%s: \"%s\" appears %d times", kind.Title(), name, counts[name]),
			List:        kind,
			Items:       []string{name},
			ActivityIDs: ids[name],
		})
	}
	return conflicts
}

// AutoFixIncompleteRows soft-deletes rows reported as incomplete.
// Returns a slice of FixActions describing what was fixed
func AutoFixIncompleteRows(conflicts []Conflict, deleteFunc func(id string) error) []FixAction {
	actions := []FixAction{}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictIncompleteRow || len(conflict.ActivityIDs) == 0 {
			continue
		}

		var deleted, failed []string
		for _, id := range conflict.ActivityIDs {
			if err := deleteFunc(id); err != nil {
				failed = append(failed, id)
				continue
			}
			deleted = append(deleted, id)
		}

		if len(deleted) > 0 {
			msg := fmt.Sprintf("Removed incomplete row from %s (IDs: %v)", conflict.List.Title(), deleted)
			if len(failed) > 0 {
				msg += fmt.Sprintf(" (failed to remove: %v)", failed)
			}
			actions = append(actions, FixAction{Action: msg, SourceConflict: conflict})
		} else if len(failed) > 0 {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to remove incomplete row from %s: %v", conflict.List.Title(), failed),
				SourceConflict: conflict,
			})
		}
	}

	return actions
}
